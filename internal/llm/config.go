// Package llm provides centralized LLM configuration and client abstractions.
// Callers pick a model tier; the provider config maps tiers to model names and token limits.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites: summaries, descriptions, verb swaps
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: skills comparison
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or structured output: tailoring, ATS review, cover letters
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// ParseProvider maps a configuration string to a provider, defaulting to Anthropic.
func ParseProvider(s string) Provider {
	switch Provider(s) {
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderAnthropic
	}
}

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	MaxTokens   map[ModelTier]int64
	Temperature float64
}

// DefaultConfig returns the default configuration (Anthropic)
func DefaultConfig() *Config {
	return DefaultAnthropicConfig()
}

// ConfigFor returns the default configuration of a provider.
func ConfigFor(p Provider) *Config {
	if p == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultAnthropicConfig()
}

func defaultMaxTokens() map[ModelTier]int64 {
	return map[ModelTier]int64{
		TierLite:     1024,
		TierStandard: 1536,
		TierAdvanced: 2048,
	}
}

// DefaultAnthropicConfig returns the default Claude configuration
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierLite:     "claude-sonnet-4-20250514",
			TierStandard: "claude-sonnet-4-20250514",
			TierAdvanced: "claude-sonnet-4-20250514",
		},
		MaxTokens:   defaultMaxTokens(),
		Temperature: 0.7,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		MaxTokens:   defaultMaxTokens(),
		Temperature: 0.7,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// GetMaxTokens returns the output token limit for a tier, 1024 if unset.
func (c *Config) GetMaxTokens(tier ModelTier) int64 {
	if n, ok := c.MaxTokens[tier]; ok && n > 0 {
		return n
	}
	return 1024
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		MaxTokens:   make(map[ModelTier]int64),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.MaxTokens {
		newConfig.MaxTokens[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
