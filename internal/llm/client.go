package llm

import "context"

// CompletionRequest is one prompt sent to a provider
type CompletionRequest struct {
	Model       string
	MaxTokens   int
	Temperature float32
	Prompt      string
}

// Client is an abstraction over LLM providers. Complete sends a single user
// message and returns the concatenated text of the reply. Implementations
// return the typed errors of this package where the failure is recognisable.
type Client interface {
	Provider() Provider
	Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error)
}

// NewClient creates the client for a configured provider
func NewClient(config *Config, baseURL string) Client {
	if config != nil && config.Provider == ProviderGemini {
		return NewGeminiClient()
	}
	return NewAnthropicClient(baseURL, nil)
}
