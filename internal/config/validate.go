package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that every field needed to serve chat requests is present
// and that enabled providers carry their credentials.
func (c *Config) Validate() error {
	for _, origin := range c.Server.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("server.cors_origins entry %q must be '*' or start with http:// or https://", origin)
		}
	}

	// Shopify config
	if c.Shopify.StoreURL == "" {
		return errors.New("shopify.store_url is required (SHOPIFY_STORE_URL)")
	}
	if strings.Contains(c.Shopify.StoreURL, "/") {
		return fmt.Errorf("shopify.store_url must be a bare host, got %q", c.Shopify.StoreURL)
	}
	if c.Shopify.APIKey == "" || c.Shopify.Password == "" {
		return errors.New("shopify.api_key and shopify.password are required (SHOPIFY_API_KEY, SHOPIFY_PASSWORD)")
	}
	if c.Shopify.APIVersion == "" {
		return errors.New("shopify.api_version is required")
	}
	if c.Shopify.PageSize < 0 {
		return errors.New("shopify.page_size must not be negative")
	}
	if c.Shopify.Timeout < 0 {
		return errors.New("shopify.timeout must not be negative")
	}

	// Completion config
	switch c.Completion.Provider {
	case "openai":
		if c.Completion.OpenaiApiKey == "" {
			return errors.New("completion.openai_api_key is required when completion.provider is openai (OPENAI_API_KEY)")
		}
	case "gemini":
		if c.Completion.GoogleApiKey == "" {
			return errors.New("completion.google_api_key is required when completion.provider is gemini (GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("completion.provider must be 'openai' or 'gemini', got %q", c.Completion.Provider)
	}
	if c.Completion.Model == "" {
		return errors.New("completion.model is required")
	}
	if c.Completion.MaxTokens <= 0 {
		return errors.New("completion.max_tokens must be a positive integer")
	}
	if c.Completion.Temperature < 0 || c.Completion.Temperature > 2 {
		return fmt.Errorf("completion.temperature (%.2f) must be between 0 and 2", c.Completion.Temperature)
	}
	if strings.TrimSpace(c.Completion.FallbackReply) == "" {
		return errors.New("completion.fallback_reply must not be empty")
	}

	// Categorization config
	switch c.Categorization.Type {
	case "keyword":
	case "llm":
		if c.Categorization.Model == "" {
			return errors.New("categorization.model is required when categorization.type is llm")
		}
		if c.Completion.OpenaiApiKey == "" {
			return errors.New("completion.openai_api_key is required when categorization.type is llm")
		}
	default:
		return fmt.Errorf("categorization.type must be 'keyword' or 'llm', got %q", c.Categorization.Type)
	}

	// Category sections
	known := DefaultCategories()
	for name, cat := range c.Categories {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("categories.%s is not a known category", name)
		}
		if cat.Limit <= 0 {
			return fmt.Errorf("categories.%s.limit must be a positive integer", name)
		}
		if strings.TrimSpace(cat.Label) == "" {
			return fmt.Errorf("categories.%s.label is required", name)
		}
	}

	// Pricing config (optional, but if present, must be valid)
	for provider, models := range c.Pricing {
		for model, price := range models {
			if price.InputPerToken < 0 || price.OutputPerToken < 0 {
				return fmt.Errorf("pricing for provider '%s', model '%s' has negative token cost", provider, model)
			}
		}
	}

	return nil
}
