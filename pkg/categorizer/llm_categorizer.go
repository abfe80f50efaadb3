package categorizer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"pitstop/internal/config"
	"pitstop/internal/costtracker"
	"pitstop/internal/models"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// DefaultLLMPrompt is used when no categorization prompt is configured.
const DefaultLLMPrompt = `Clasifica la consulta de un cliente de una tienda de equipamiento para motorsports.
Categorías válidas: {{CATEGORIES}}.
Responde solo con JSON de la forma {"categories": ["..."]}. Usa una lista vacía si ninguna aplica.
Consulta: {{QUERY}}`

// RequestTemperature maps a configured temperature onto the request field.
// go-openai omits a zero temperature from the request body, which makes the
// API fall back to its default of 1, so zero is sent as the smallest positive
// float32 instead.
func RequestTemperature(t float32) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// ChatCompletionCreator is the subset of the OpenAI client the categorizer needs.
type ChatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMCategorizer asks a completion model to pick categories from the closed set.
// When the model call or its answer fails, the fallback categorizer decides.
type LLMCategorizer struct {
	client         ChatCompletionCreator
	model          string
	promptTemplate string
	fallback       QueryCategorizer

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewLLMCategorizer creates a categorizer using an OpenAI-compatible client.
// costTracker and pricing may be nil.
func NewLLMCategorizer(client ChatCompletionCreator, model, prompt string, fallback QueryCategorizer, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *LLMCategorizer {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultLLMPrompt
	}
	return &LLMCategorizer{
		client:         client,
		model:          model,
		promptTemplate: prompt,
		fallback:       fallback,
		costTracker:    costTracker,
		pricing:        pricing,
	}
}

func (c *LLMCategorizer) Categorize(ctx context.Context, query string) ([]Category, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return nil, nil
	}

	cats, err := c.classify(ctx, query)
	if err == nil {
		return cats, nil
	}
	if c.fallback == nil {
		return nil, err
	}
	log.Warnf("LLM categorization failed, using keyword fallback: %v", err)
	return c.fallback.Categorize(ctx, query)
}

func (c *LLMCategorizer) classify(ctx context.Context, query string) ([]Category, error) {
	if c.client == nil {
		return nil, fmt.Errorf("LLM categorizer is not initialized with an OpenAI client")
	}

	names := make([]string, len(Canonical))
	for i, cat := range Canonical {
		names[i] = string(cat)
	}
	prompt := strings.ReplaceAll(c.promptTemplate, "{{CATEGORIES}}", strings.Join(names, ", "))
	prompt = strings.ReplaceAll(prompt, "{{QUERY}}", query)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: RequestTemperature(0),
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from OpenAI")
	}

	c.recordCost(ctx, resp.Usage)

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")

	var parsed struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w\nResponse content: %s", err, content)
	}

	seen := map[Category]bool{}
	for _, name := range parsed.Categories {
		cat, err := ParseCategory(name)
		if err != nil || cat == CategoryGeneral {
			log.Debugf("Ignoring category %q suggested by LLM", name)
			continue
		}
		seen[cat] = true
	}

	var out []Category
	for _, cat := range Canonical {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (c *LLMCategorizer) recordCost(ctx context.Context, usage openai.Usage) {
	if c.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	priceInfo, ok := c.pricing[c.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost for categorization.", c.model)
		return
	}
	event := costtracker.CostEvent{
		Operation: models.ServiceTypeCategorization,
		AmountUSD: costtracker.Estimate(usage.PromptTokens, usage.CompletionTokens, priceInfo.InputPerToken, priceInfo.OutputPerToken),
		Details: map[string]interface{}{
			"provider_name": "openai",
			"model_name":    c.model,
			"input_tokens":  usage.PromptTokens,
			"output_tokens": usage.CompletionTokens,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := c.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage log for categorization: %v", err)
	}
}

var _ QueryCategorizer = (*LLMCategorizer)(nil)
