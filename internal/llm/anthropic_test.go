package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// messagesRequest is the request body the Messages API receives
type messagesRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func TestAnthropicClient_Complete(t *testing.T) {
	var got messagesRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, testAnthropicKey, r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",` +
			`"content":[{"type":"text","text":"{\"name\":"},` +
			`{"type":"tool_use","id":"t1","name":"noop","input":{}},` +
			`{"type":"text","text":"\"Jane\"}"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL+"/", server.Client())
	out, err := client.Complete(context.Background(), testAnthropicKey, CompletionRequest{
		Model:       "claude-test",
		MaxTokens:   100,
		Temperature: 0.5,
		Prompt:      "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Jane"}`, out)

	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	assert.InDelta(t, 0.5, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 1)
	assert.Equal(t, "text", got.Messages[0].Content[0].Type)
	assert.Equal(t, "hello", got.Messages[0].Content[0].Text)
}

func TestAnthropicClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"type":"error","error":{"type":"rate_limit_error","message":"Too many requests"}}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, "Too many requests", rateErr.Message)
			},
		},
		{
			name:   "overloaded",
			status: 529,
			body:   `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`,
			check: func(t *testing.T, err error) {
				var rateErr *RateLimitError
				require.ErrorAs(t, err, &rateErr)
				assert.Equal(t, "Overloaded", rateErr.Message)
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens too large"}}`,
			check: func(t *testing.T, err error) {
				var provErr *ProviderError
				require.ErrorAs(t, err, &provErr)
				assert.Equal(t, http.StatusBadRequest, provErr.StatusCode)
				assert.Equal(t, "max_tokens too large", provErr.Message)
			},
		},
		{
			name:   "non-json error body",
			status: http.StatusBadGateway,
			body:   "upstream unavailable",
			check: func(t *testing.T, err error) {
				var provErr *ProviderError
				require.ErrorAs(t, err, &provErr)
				assert.Equal(t, "upstream unavailable", provErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewAnthropicClient(server.URL, server.Client()).
				Complete(context.Background(), testAnthropicKey, CompletionRequest{Model: "m", MaxTokens: 10, Prompt: "p"})
			tt.check(t, err)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestAnthropicClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewAnthropicClient(url, nil).
		Complete(context.Background(), testAnthropicKey, CompletionRequest{Model: "m", MaxTokens: 10, Prompt: "p"})
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestNewClient(t *testing.T) {
	assert.Equal(t, ProviderAnthropic, NewClient(DefaultConfig(), "").Provider())
	assert.Equal(t, ProviderGemini, NewClient(DefaultGeminiConfig(), "").Provider())
	assert.Equal(t, ProviderAnthropic, NewClient(nil, "").Provider())
}
