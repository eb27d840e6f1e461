package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeClient implements Client for Anthropic's Messages API
type ClaudeClient struct {
	client anthropic.Client
	config *Config
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(config *Config, apiKey string, opts ...option.RequestOption) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultAnthropicConfig()
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ClaudeClient{
		client: anthropic.NewClient(opts...),
		config: config,
	}, nil
}

// GenerateContent sends prompt as a single user message and returns the text reply.
func (c *ClaudeClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   c.config.GetMaxTokens(tier),
		Temperature: anthropic.Float(c.config.Temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.AsText().Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text content in Claude response")
	}
	return strings.Join(parts, ""), nil
}

// GenerateJSON generates content and strips any markdown or prose around the JSON payload.
func (c *ClaudeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *ClaudeClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK client holds no resources.
func (c *ClaudeClient) Close() error {
	return nil
}
