package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClaude(t *testing.T, handler http.HandlerFunc) *ClaudeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClaudeClient(nil, "test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	return client
}

func messageResponse(text string) string {
	return `{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-20250514",` +
		`"content":[{"type":"text","text":` + mustJSON(text) + `}],` +
		`"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":5}}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestNewClaudeClient_RequiresKey(t *testing.T) {
	_, err := NewClaudeClient(nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestClaudeClient_GenerateContent(t *testing.T) {
	var body map[string]any
	client := newTestClaude(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, messageResponse("A sharper summary."))
	})

	text, err := client.GenerateContent(context.Background(), "rewrite this", TierAdvanced)
	require.NoError(t, err)
	assert.Equal(t, "A sharper summary.", text)

	assert.Equal(t, "claude-sonnet-4-20250514", body["model"])
	assert.Equal(t, float64(2048), body["max_tokens"])
}

func TestClaudeClient_GenerateJSONStripsFences(t *testing.T) {
	client := newTestClaude(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, messageResponse("Here you go:\n```json\n{\"overallScore\": 80}\n```"))
	})

	text, err := client.GenerateJSON(context.Background(), "score", TierAdvanced)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overallScore": 80}`, text)
}

func TestClaudeClient_APIError(t *testing.T) {
	client := newTestClaude(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	})

	_, err := client.GenerateContent(context.Background(), "hi", TierLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call Claude API")
}

func TestClaudeClient_GetModel(t *testing.T) {
	client, err := NewClaudeClient(DefaultAnthropicConfig().WithModel(TierLite, "claude-haiku"), "k")
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku", client.GetModel(TierLite))
	assert.NoError(t, client.Close())
}

func TestNewClient_SelectsProvider(t *testing.T) {
	c, err := NewClient(context.Background(), DefaultAnthropicConfig(), "k")
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	_, err = NewClient(context.Background(), DefaultGeminiConfig(), "")
	assert.Error(t, err)
}
