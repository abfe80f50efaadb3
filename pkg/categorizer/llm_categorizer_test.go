package categorizer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"pitstop/internal/config"
	"pitstop/internal/costtracker"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock OpenAI Client ---
type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

func responseWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

// --- End Mock OpenAI Client ---

func TestLLMCategorizer_Categorize_Parsing(t *testing.T) {
	mockClient := &mockOpenAIClient{
		mockResponse: responseWith(`{"categories": ["prices", "helmets", "boots", "general", "helmets"]}`),
	}
	c := NewLLMCategorizer(mockClient, "gpt-test", "", nil, nil, nil)

	cats, err := c.Categorize(context.Background(), "¿Cuánto sale el Arai?")
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryHelmets, CategoryPrices}, cats, "unknown names dropped, canonical order kept")

	require.Len(t, mockClient.lastRequest.Messages, 1)
	assert.Contains(t, mockClient.lastRequest.Messages[0].Content, "¿cuánto sale el arai?")
	assert.Contains(t, mockClient.lastRequest.Messages[0].Content, "shirts, helmets, accessories, prices, policies")

	body, err := json.Marshal(mockClient.lastRequest)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"temperature":`, "a zero temperature must still reach the API")
}

func TestLLMCategorizer_Categorize_FencedJSON(t *testing.T) {
	mockClient := &mockOpenAIClient{mockResponse: responseWith("```json\n{\"categories\": [\"policies\"]}\n```")}
	c := NewLLMCategorizer(mockClient, "gpt-test", "", nil, nil, nil)

	cats, err := c.Categorize(context.Background(), "devoluciones")
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryPolicies}, cats)
}

func TestLLMCategorizer_Categorize_InvalidJSON(t *testing.T) {
	invalidJSON := `This is just plain text, not JSON.`
	c := NewLLMCategorizer(&mockOpenAIClient{mockResponse: responseWith(invalidJSON)}, "gpt-test", "dummy prompt", nil, nil, nil)

	_, err := c.Categorize(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse LLM response as JSON")
	assert.Contains(t, err.Error(), invalidJSON)
}

func TestLLMCategorizer_Categorize_APIErrorUsesFallback(t *testing.T) {
	mockErr := errors.New("simulated API error 429 Too Many Requests")
	fallback := NewKeywordCategorizer(DefaultQueryKeywords())
	c := NewLLMCategorizer(&mockOpenAIClient{mockError: mockErr}, "gpt-test", "", fallback, nil, nil)

	cats, err := c.Categorize(context.Background(), "¿tienen cascos Arai?")
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryHelmets}, cats)
}

func TestLLMCategorizer_Categorize_APIErrorWithoutFallback(t *testing.T) {
	mockErr := errors.New("simulated API error")
	c := NewLLMCategorizer(&mockOpenAIClient{mockError: mockErr}, "gpt-test", "", nil, nil, nil)

	_, err := c.Categorize(context.Background(), "casco")
	require.Error(t, err)
	assert.ErrorIs(t, err, mockErr)
	assert.Contains(t, err.Error(), "openai chat completion failed")
}

func TestLLMCategorizer_Categorize_EmptyResponse(t *testing.T) {
	c := NewLLMCategorizer(&mockOpenAIClient{mockResponse: openai.ChatCompletionResponse{}}, "gpt-test", "", nil, nil, nil)

	_, err := c.Categorize(context.Background(), "casco")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices returned from OpenAI")
}

func TestLLMCategorizer_Categorize_EmptyQuerySkipsModel(t *testing.T) {
	mockClient := &mockOpenAIClient{mockError: errors.New("must not be called")}
	c := NewLLMCategorizer(mockClient, "gpt-test", "", nil, nil, nil)

	cats, err := c.Categorize(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.Empty(t, mockClient.lastRequest.Model)
}

func TestLLMCategorizer_RecordsCost(t *testing.T) {
	resp := responseWith(`{"categories": ["shirts"]}`)
	resp.Usage = openai.Usage{PromptTokens: 100, CompletionTokens: 10, TotalTokens: 110}
	tracker := costtracker.New()
	pricing := map[string]config.PricingInfo{"gpt-test": {InputPerToken: 0.001, OutputPerToken: 0.002}}
	c := NewLLMCategorizer(&mockOpenAIClient{mockResponse: resp}, "gpt-test", "", nil, tracker, pricing)

	_, err := c.Categorize(context.Background(), "playeras")
	require.NoError(t, err)

	total, err := tracker.TotalCost(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.12, total, 1e-9)
}

func TestRequestTemperature(t *testing.T) {
	assert.Greater(t, RequestTemperature(0), float32(0))
	assert.Less(t, RequestTemperature(0), float32(1e-6))
	assert.Greater(t, RequestTemperature(-1), float32(0))
	assert.Equal(t, float32(0.7), RequestTemperature(0.7))
}
