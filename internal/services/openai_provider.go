package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pitstop/internal/config"
	"pitstop/internal/costtracker"
	"pitstop/internal/models"
	"pitstop/pkg/categorizer"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAIProvider implements CompletionService using the OpenAI chat API.
type OpenAIProvider struct {
	client      categorizer.ChatCompletionCreator
	model       string
	temperature float32
	maxTokens   int

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewOpenAIProvider creates a new OpenAI completion provider. An empty API key
// yields a disabled provider rather than an error.
func NewOpenAIProvider(apiKey, model string, temperature float32, maxTokens int, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIProvider {
	if apiKey == "" {
		log.Warn("OpenAI API key not provided. OpenAI provider will be disabled.")
		return &OpenAIProvider{model: model}
	}
	log.Infof("OpenAI provider initialized with model %s", model)
	return NewOpenAIProviderWithClient(openai.NewClient(apiKey), model, temperature, maxTokens, costTracker, pricing)
}

// NewOpenAIProviderWithClient wires an existing OpenAI-compatible client.
func NewOpenAIProviderWithClient(client categorizer.ChatCompletionCreator, model string, temperature float32, maxTokens int, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIProvider {
	return &OpenAIProvider{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		costTracker: costTracker,
		pricing:     pricing,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string { return "openai" }

// ModelName returns the specific model identifier.
func (p *OpenAIProvider) ModelName() string { return p.model }

func (p *OpenAIProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("OpenAI provider: %w", models.ErrProviderDisabled)
	}

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: categorizer.RequestTemperature(p.temperature),
		MaxTokens:   p.maxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", models.ErrEmptyCompletion)
	}

	p.recordCost(ctx, resp.Usage)

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai returned blank content: %w", models.ErrEmptyCompletion)
	}
	return content, nil
}

func (p *OpenAIProvider) recordCost(ctx context.Context, usage openai.Usage) {
	if p.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	priceInfo, ok := p.pricing[p.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost.", p.model)
		return
	}
	event := costtracker.CostEvent{
		Operation: models.ServiceTypeChat,
		AmountUSD: costtracker.Estimate(usage.PromptTokens, usage.CompletionTokens, priceInfo.InputPerToken, priceInfo.OutputPerToken),
		Details: map[string]interface{}{
			"provider_name": p.Name(),
			"model_name":    p.model,
			"input_tokens":  usage.PromptTokens,
			"output_tokens": usage.CompletionTokens,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := p.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage log for chat completion: %v", err)
	}
}

// Status returns the operational status of the provider.
func (p *OpenAIProvider) Status() ProviderStatus {
	if p.client == nil {
		return ProviderStatusDisabled
	}
	return ProviderStatusActive
}

var _ CompletionService = (*OpenAIProvider)(nil)
