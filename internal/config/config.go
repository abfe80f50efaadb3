package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

// CategoryConfig describes how one category is detected in a query and how
// its context section is rendered.
type CategoryConfig struct {
	QueryKeywords   []string `mapstructure:"query_keywords"`   // matched against the user's message
	ProductKeywords []string `mapstructure:"product_keywords"` // matched against product display strings; empty = no filter
	Label           string   `mapstructure:"label"`
	EmptyMessage    string   `mapstructure:"empty_message"`
	Limit           int      `mapstructure:"limit"`
}

type Config struct {
	Server struct {
		Addr        string   `mapstructure:"addr"`
		Port        string   `mapstructure:"port"`
		CORSOrigins []string `mapstructure:"cors_origins"`
	} `mapstructure:"server"`

	Log struct {
		Level       string `mapstructure:"level"`
		Environment string `mapstructure:"environment"` // "local" = text output, anything else = JSON
	} `mapstructure:"log"`

	Shopify struct {
		StoreURL   string        `mapstructure:"store_url"` // bare host, e.g. my-store.myshopify.com
		APIKey     string        `mapstructure:"api_key"`
		Password   string        `mapstructure:"password"`
		APIVersion string        `mapstructure:"api_version"`
		PageSize   int           `mapstructure:"page_size"` // 0 = platform default
		Timeout    time.Duration `mapstructure:"timeout"`   // 0 = no timeout
	} `mapstructure:"shopify"`

	Store struct {
		Name        string `mapstructure:"name"`
		Description string `mapstructure:"description"`
	} `mapstructure:"store"`

	Completion struct {
		Provider      string  `mapstructure:"provider"` // "openai" or "gemini"
		Model         string  `mapstructure:"model"`
		OpenaiApiKey  string  `mapstructure:"openai_api_key"`
		GoogleApiKey  string  `mapstructure:"google_api_key"`
		Temperature   float32 `mapstructure:"temperature"`
		MaxTokens     int     `mapstructure:"max_tokens"`
		SystemPrompt  string  `mapstructure:"system_prompt"` // path to prompt file; empty = built-in
		FallbackReply string  `mapstructure:"fallback_reply"`
	} `mapstructure:"completion"`

	Categorization struct {
		Type           string `mapstructure:"type"`  // "keyword" or "llm"
		Model          string `mapstructure:"model"` // model for "llm"
		PromptTemplate string `mapstructure:"prompt_template"`
	} `mapstructure:"categorization"`

	Categories map[string]CategoryConfig `mapstructure:"categories"`

	// Pricing: map[provider][model] = struct{input_per_token, output_per_token}
	Pricing map[string]map[string]PricingInfo `mapstructure:"pricing"`
}

// LoadConfig reads .env and config.yaml from the working directory, then the environment.
func LoadConfig() (*Config, error) {
	return Load(".")
}

// Load reads configuration from the given search paths. A missing config file
// or .env is not an error; defaults and environment variables still apply.
func Load(paths ...string) (*Config, error) {
	for _, p := range paths {
		envFile := filepath.Join(p, ".env")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	// Credentials and deployment knobs keep their conventional variable names.
	bindings := map[string]string{
		"completion.openai_api_key": "OPENAI_API_KEY",
		"completion.google_api_key": "GEMINI_API_KEY",
		"shopify.api_key":           "SHOPIFY_API_KEY",
		"shopify.password":          "SHOPIFY_PASSWORD",
		"shopify.store_url":         "SHOPIFY_STORE_URL",
		"server.port":               "PORT",
		"log.level":                 "LOG_LEVEL",
		"log.environment":           "ENVIRONMENT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.cors_origins", []string{"https://msportwarehouse.com"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "local")

	v.SetDefault("shopify.api_version", "2023-10")
	v.SetDefault("shopify.page_size", 0)
	v.SetDefault("shopify.timeout", time.Duration(0))

	v.SetDefault("store.name", "MSPORTWAREHOUSE")
	v.SetDefault("store.description", DefaultStoreDescription)

	v.SetDefault("completion.provider", "openai")
	v.SetDefault("completion.model", "gpt-4")
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.max_tokens", 500)
	v.SetDefault("completion.fallback_reply", DefaultFallbackReply)

	v.SetDefault("categorization.type", "keyword")
	v.SetDefault("categorization.model", "gpt-4o-mini")

	// USD per token.
	v.SetDefault("pricing.openai.gpt-4.input_per_token", 0.00003)
	v.SetDefault("pricing.openai.gpt-4.output_per_token", 0.00006)
	v.SetDefault("pricing.openai.gpt-4o-mini.input_per_token", 0.00000015)
	v.SetDefault("pricing.openai.gpt-4o-mini.output_per_token", 0.0000006)

	// Leaf-level defaults so a config file can override a single field of a category.
	for name, cat := range DefaultCategories() {
		prefix := "categories." + name + "."
		v.SetDefault(prefix+"query_keywords", cat.QueryKeywords)
		v.SetDefault(prefix+"product_keywords", cat.ProductKeywords)
		v.SetDefault(prefix+"label", cat.Label)
		v.SetDefault(prefix+"empty_message", cat.EmptyMessage)
		v.SetDefault(prefix+"limit", cat.Limit)
	}
}
