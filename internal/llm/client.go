package llm

import (
	"context"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent returns the reply to prompt as plain text
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON asks for a JSON reply and strips any markdown fence around it
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the client for config.Provider. Anthropic is the default.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewClaudeClient(config, apiKey)
	}
}
