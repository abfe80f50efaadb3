package services

import (
	"context"
	"fmt"
	"strings"

	"pitstop/internal/models"

	log "github.com/sirupsen/logrus"
)

const (
	queryPrefix   = "Consulta del usuario: "
	contextPrefix = "Información disponible de Shopify:\n"
)

// ReplyResult is the outcome of one completion request: either reply text or
// the reason it could not be produced.
type ReplyResult struct {
	Text string
	Err  error
}

func (r ReplyResult) OK() bool { return r.Err == nil }

// TextOr returns the reply text, or fallback when the request failed.
func (r ReplyResult) TextOr(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	return r.Text
}

// ReplyService turns a query and its context block into a model reply.
type ReplyService struct {
	completer    CompletionService
	systemPrompt string
}

func NewReplyService(completer CompletionService, systemPrompt string) *ReplyService {
	return &ReplyService{completer: completer, systemPrompt: systemPrompt}
}

// BuildMessages returns the system, user and assistant messages for a request.
func BuildMessages(systemPrompt, query, contextBlock string) []ChatMessage {
	return []ChatMessage{
		{Role: ChatMessageRoleSystem, Content: systemPrompt},
		{Role: ChatMessageRoleUser, Content: queryPrefix + query},
		{Role: ChatMessageRoleAssistant, Content: contextPrefix + contextBlock},
	}
}

// Request calls the completion provider once. It never panics on provider
// failure; the error is carried in the result.
func (s *ReplyService) Request(ctx context.Context, query, contextBlock string) ReplyResult {
	if s.completer == nil {
		return ReplyResult{Err: fmt.Errorf("reply service: %w", models.ErrProviderDisabled)}
	}

	text, err := s.completer.GenerateChatCompletion(ctx, BuildMessages(s.systemPrompt, query, contextBlock))
	if err != nil {
		log.WithFields(log.Fields{
			"provider": s.completer.Name(),
			"model":    s.completer.ModelName(),
		}).Errorf("Completion request failed: %v", err)
		return ReplyResult{Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return ReplyResult{Err: models.ErrEmptyCompletion}
	}
	return ReplyResult{Text: text}
}
