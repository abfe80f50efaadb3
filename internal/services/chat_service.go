package services

import (
	"context"

	"pitstop/internal/models"
	"pitstop/pkg/categorizer"

	log "github.com/sirupsen/logrus"
)

// CatalogFetcher returns the store's products. Failures come back as a
// placeholder list, never as an error.
type CatalogFetcher interface {
	FetchProducts(ctx context.Context) []models.Product
}

// PolicyFetcher returns the store's policies, placeholder on failure.
type PolicyFetcher interface {
	FetchPolicies(ctx context.Context) []models.Policy
}

// ChatOutcome is everything the pipeline produced for one message.
type ChatOutcome struct {
	Query      string
	Categories []categorizer.Category
	Context    string
	Reply      string
	// Fallback is set when Reply is the apology instead of a model answer.
	Fallback bool
	Err      error
}

type ChatServiceDeps struct {
	Catalog       CatalogFetcher
	Policies      PolicyFetcher
	Categorizer   categorizer.QueryCategorizer
	Assembler     *ContextAssembler
	Replies       *ReplyService
	FallbackReply string
}

// ChatService runs fetch, classify, assemble and complete for one message.
type ChatService struct {
	catalog       CatalogFetcher
	policies      PolicyFetcher
	categorizer   categorizer.QueryCategorizer
	assembler     *ContextAssembler
	replies       *ReplyService
	fallbackReply string
}

func NewChatService(deps ChatServiceDeps) *ChatService {
	return &ChatService{
		catalog:       deps.Catalog,
		policies:      deps.Policies,
		categorizer:   deps.Categorizer,
		assembler:     deps.Assembler,
		replies:       deps.Replies,
		fallbackReply: deps.FallbackReply,
	}
}

// Prepare classifies the message and assembles its context without calling
// the completion provider. Policies are fetched only when the policies
// category matched.
func (s *ChatService) Prepare(ctx context.Context, message string) ChatOutcome {
	query := categorizer.NormalizeQuery(message)
	out := ChatOutcome{Query: query}

	products := s.catalog.FetchProducts(ctx)

	cats, err := s.categorizer.Categorize(ctx, query)
	if err != nil {
		log.Warnf("Categorization failed, using general context: %v", err)
		cats = nil
	}
	out.Categories = cats

	var policies []models.Policy
	if containsCategory(cats, categorizer.CategoryPolicies) && s.policies != nil {
		policies = s.policies.FetchPolicies(ctx)
	}

	out.Context = s.assembler.Assemble(cats, products, policies)
	return out
}

// Respond runs the whole pipeline. It always yields a reply; completion
// failures produce the configured apology.
func (s *ChatService) Respond(ctx context.Context, message string) ChatOutcome {
	out := s.Prepare(ctx, message)

	res := s.replies.Request(ctx, out.Query, out.Context)
	out.Reply = res.TextOr(s.fallbackReply)
	out.Fallback = !res.OK()
	out.Err = res.Err

	log.WithFields(log.Fields{
		"categories": out.Categories,
		"fallback":   out.Fallback,
	}).Debugf("Answered query %q", out.Query)
	return out
}

func containsCategory(cats []categorizer.Category, want categorizer.Category) bool {
	for _, c := range cats {
		if c == want {
			return true
		}
	}
	return false
}
