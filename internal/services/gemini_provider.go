package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pitstop/internal/config"
	"pitstop/internal/costtracker"
	"pitstop/internal/models"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GeminiProvider implements CompletionService using the Google Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewGeminiProvider creates a new Gemini completion provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string, temperature float32, maxTokens int, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) (*GeminiProvider, error) {
	if apiKey == "" {
		log.Warn("Gemini API key not provided. Gemini provider will be disabled.")
		return &GeminiProvider{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Infof("Gemini provider initialized with model %s", model)
	return &GeminiProvider{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		costTracker: costTracker,
		pricing:     pricing,
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string { return "gemini" }

// ModelName returns the specific model identifier.
func (p *GeminiProvider) ModelName() string { return p.model }

// GenerateChatCompletion sends system messages as the system instruction and
// folds the remaining turns into a single user turn, since Gemini expects the
// final turn of a request to come from the user.
func (p *GeminiProvider) GenerateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("Gemini provider: %w", models.ErrProviderDisabled)
	}

	system, turn := splitGeminiMessages(messages)

	gm := p.client.GenerativeModel(p.model)
	gm.SetTemperature(p.temperature)
	if p.maxTokens > 0 {
		gm.SetMaxOutputTokens(int32(p.maxTokens))
	}
	if system != "" {
		gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := gm.GenerateContent(ctx, genai.Text(turn))
	if err != nil {
		return "", fmt.Errorf("Gemini API error generating completion: %w", err)
	}

	p.recordCost(ctx, resp)

	text := geminiResponseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", models.ErrEmptyCompletion)
	}
	return text, nil
}

func splitGeminiMessages(messages []ChatMessage) (system, turn string) {
	var sys, rest []string
	for _, m := range messages {
		if m.Role == ChatMessageRoleSystem {
			sys = append(sys, m.Content)
			continue
		}
		rest = append(rest, m.Content)
	}
	return strings.Join(sys, "\n\n"), strings.Join(rest, "\n\n")
}

// geminiResponseText concatenates the text parts of the first candidate.
func geminiResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

func (p *GeminiProvider) recordCost(ctx context.Context, resp *genai.GenerateContentResponse) {
	if p.costTracker == nil || resp == nil || resp.UsageMetadata == nil {
		return
	}
	priceInfo, ok := p.pricing[p.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost.", p.model)
		return
	}
	in := int(resp.UsageMetadata.PromptTokenCount)
	out := int(resp.UsageMetadata.CandidatesTokenCount)
	event := costtracker.CostEvent{
		Operation: models.ServiceTypeChat,
		AmountUSD: costtracker.Estimate(in, out, priceInfo.InputPerToken, priceInfo.OutputPerToken),
		Details: map[string]interface{}{
			"provider_name": p.Name(),
			"model_name":    p.model,
			"input_tokens":  in,
			"output_tokens": out,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := p.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage log for chat completion: %v", err)
	}
}

// Status returns the operational status of the provider.
func (p *GeminiProvider) Status() ProviderStatus {
	if p.client == nil {
		return ProviderStatusDisabled
	}
	return ProviderStatusActive
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

var _ CompletionService = (*GeminiProvider)(nil)
