package app

import (
	"context"
	"fmt"
	"net/http"

	"pitstop/internal/config"
	"pitstop/internal/costtracker"
	"pitstop/internal/services"
	"pitstop/internal/shopify"
	"pitstop/pkg/categorizer"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

type App struct {
	Config      *config.Config
	CostTracker costtracker.CostTracker

	Shopify           *shopify.Client
	Categorizer       categorizer.QueryCategorizer
	Assembler         *services.ContextAssembler
	CompletionService services.CompletionService

	// --- Initialized Services ---
	ReplyService *services.ReplyService
	ChatService  *services.ChatService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, CostTracker: costtracker.New()}

	app.initShopifyClient()
	if err := app.initCategorizer(); err != nil {
		return nil, err
	}
	if err := app.initAssembler(); err != nil {
		return nil, err
	}
	if err := app.initCompletionService(ctx); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initCoreServices(); err != nil {
		app.Close()
		return nil, err
	}

	log.Debug("Application initialization complete.")
	return app, nil
}

// --- Private Helper Methods ---

func (a *App) initShopifyClient() {
	cfg := a.Config.Shopify
	a.Shopify = shopify.NewClient(cfg.StoreURL, cfg.APIKey, cfg.Password, cfg.APIVersion,
		shopify.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		shopify.WithPageSize(cfg.PageSize),
	)
}

func (a *App) initCategorizer() error {
	cfg := a.Config
	table, err := categorizer.QueryTable(cfg.Categories)
	if err != nil {
		return fmt.Errorf("init categorizer: %w", err)
	}
	keyword := categorizer.NewKeywordCategorizer(table)

	switch cfg.Categorization.Type {
	case "", "keyword":
		a.Categorizer = keyword
	case "llm":
		prompt, err := config.LoadPromptContent(cfg.Categorization.PromptTemplate, categorizer.DefaultLLMPrompt)
		if err != nil {
			log.Warnf("Failed to load categorization prompt: %v. Using built-in prompt.", err)
			prompt = categorizer.DefaultLLMPrompt
		}
		a.Categorizer = categorizer.NewLLMCategorizer(
			openai.NewClient(cfg.Completion.OpenaiApiKey),
			cfg.Categorization.Model,
			prompt,
			keyword,
			a.CostTracker,
			cfg.Pricing["openai"],
		)
		log.Infof("LLM categorizer enabled (model %s) with keyword fallback", cfg.Categorization.Model)
	default:
		return fmt.Errorf("unknown categorization type: %s", cfg.Categorization.Type)
	}
	return nil
}

func (a *App) initAssembler() error {
	sections, err := services.SectionsFromConfig(a.Config.Categories)
	if err != nil {
		return fmt.Errorf("init context assembler: %w", err)
	}
	a.Assembler = services.NewContextAssembler(sections, a.Config.Store.Description)
	return nil
}

func (a *App) initCompletionService(ctx context.Context) error {
	cfg := a.Config.Completion

	switch cfg.Provider {
	case "openai":
		a.CompletionService = services.NewOpenAIProvider(
			cfg.OpenaiApiKey,
			cfg.Model,
			cfg.Temperature,
			cfg.MaxTokens,
			a.CostTracker,
			a.Config.Pricing["openai"],
		)
	case "gemini":
		gemini, err := services.NewGeminiProvider(ctx,
			cfg.GoogleApiKey,
			cfg.Model,
			cfg.Temperature,
			cfg.MaxTokens,
			a.CostTracker,
			a.Config.Pricing["gemini"],
		)
		if err != nil {
			return fmt.Errorf("failed to initialize Gemini completion provider: %w", err)
		}
		a.CompletionService = gemini
	default:
		return fmt.Errorf("unknown or unsupported completion provider configured: %s", cfg.Provider)
	}
	return nil
}

func (a *App) initCoreServices() error {
	prompt, err := config.LoadPromptContent(a.Config.Completion.SystemPrompt, config.DefaultSystemPrompt)
	if err != nil {
		return fmt.Errorf("load system prompt: %w", err)
	}

	a.ReplyService = services.NewReplyService(a.CompletionService, prompt)
	a.ChatService = services.NewChatService(services.ChatServiceDeps{
		Catalog:       a.Shopify,
		Policies:      a.Shopify,
		Categorizer:   a.Categorizer,
		Assembler:     a.Assembler,
		Replies:       a.ReplyService,
		FallbackReply: a.Config.Completion.FallbackReply,
	})
	return nil
}

// Close releases provider resources.
func (a *App) Close() {
	if cs, ok := a.CompletionService.(interface{ Close() error }); ok && cs != nil {
		if err := cs.Close(); err != nil {
			log.Errorf("Error closing completion service: %v", err)
		}
	}
}
