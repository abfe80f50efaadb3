package app

import (
	"context"
	"testing"

	"pitstop/internal/config"
	"pitstop/internal/services"
	"pitstop/pkg/categorizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("SHOPIFY_STORE_URL", "msport.myshopify.com")
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_PASSWORD", "secret")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewApp_KeywordDefaults(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &categorizer.KeywordCategorizer{}, a.Categorizer)
	assert.IsType(t, &services.OpenAIProvider{}, a.CompletionService)
	assert.Equal(t, services.ProviderStatusActive, a.CompletionService.Status())
	assert.Equal(t, "gpt-4", a.CompletionService.ModelName())
	assert.NotNil(t, a.ChatService)
	assert.NotNil(t, a.Shopify)
}

func TestNewApp_LLMCategorizer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Categorization.Type = "llm"

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &categorizer.LLMCategorizer{}, a.Categorizer)
}

func TestNewApp_RejectsUnknownCategory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Categories["boots"] = config.CategoryConfig{Label: "Botas", Limit: 5}

	_, err := NewApp(context.Background(), cfg)
	assert.ErrorContains(t, err, "boots")
}

func TestNewApp_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	cfg.Completion.Provider = "llama"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}
