package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderAnthropic, config.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", config.GetModel(TierLite))
	assert.Equal(t, "claude-sonnet-4-20250514", config.GetModel(TierAdvanced))
	assert.Equal(t, int64(1024), config.GetMaxTokens(TierLite))
	assert.Equal(t, int64(1536), config.GetMaxTokens(TierStandard))
	assert.Equal(t, int64(2048), config.GetMaxTokens(TierAdvanced))
}

func TestDefaultGeminiConfig(t *testing.T) {
	config := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, ProviderGemini, ConfigFor(ProviderGemini).Provider)
	assert.Equal(t, ProviderAnthropic, ConfigFor(ProviderAnthropic).Provider)
	assert.Equal(t, ProviderAnthropic, ConfigFor("other").Provider)
}

func TestParseProvider(t *testing.T) {
	assert.Equal(t, ProviderGemini, ParseProvider("gemini"))
	assert.Equal(t, ProviderAnthropic, ParseProvider("anthropic"))
	assert.Equal(t, ProviderAnthropic, ParseProvider(""))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
	assert.Equal(t, int64(1024), config.GetMaxTokens(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultGeminiConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers and limits should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, int64(2048), newConfig.GetMaxTokens(TierAdvanced))
	assert.Equal(t, config.Temperature, newConfig.Temperature)
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("lite"), TierLite)
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}
