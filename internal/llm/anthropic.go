package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultAnthropicBaseURL is the public Messages API endpoint
	DefaultAnthropicBaseURL = "https://api.anthropic.com/"
	statusOverloaded        = 529
)

// AnthropicClient calls the Anthropic Messages API through the official SDK
type AnthropicClient struct {
	messages anthropic.MessageService
}

// NewAnthropicClient creates a client. The HTTP client carries no timeout of
// its own and the SDK does not retry; the gateway bounds every call with a
// context deadline and the orchestrator owns retries.
func NewAnthropicClient(baseURL string, httpClient *http.Client) *AnthropicClient {
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &AnthropicClient{messages: anthropic.NewMessageService(
		anthropicoption.WithBaseURL(baseURL),
		anthropicoption.WithHTTPClient(httpClient),
		anthropicoption.WithMaxRetries(0),
	)}
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Provider returns ProviderAnthropic
func (c *AnthropicClient) Provider() Provider {
	return ProviderAnthropic
}

// Complete sends the prompt as a single user message and joins the text blocks
// of the reply in order
func (c *AnthropicClient) Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error) {
	var httpResp *http.Response
	msg, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}, anthropicoption.WithAPIKey(apiKey), anthropicoption.WithResponseInto(&httpResp))
	if err != nil {
		return "", anthropicError(ctx, err, httpResp)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}

// anthropicError maps an SDK failure onto the gateway error types. Error
// bodies that are not JSON surface as a decode error, so the raw response is
// consulted for the status as well.
func anthropicError(ctx context.Context, err error, resp *http.Response) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return statusError(apiErr.StatusCode, []byte(apiErr.RawJSON()), err)
	}
	if resp != nil && resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return statusError(resp.StatusCode, body, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ConnectionError{Message: "calling Messages API", Cause: err}
	}
	return &UnexpectedError{Message: "calling Messages API", Cause: err}
}

func statusError(status int, body []byte, cause error) error {
	message := strings.TrimSpace(string(body))
	var errBody anthropicErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
		message = errBody.Error.Message
	}
	if message == "" {
		message = http.StatusText(status)
	}

	if status == http.StatusTooManyRequests || status == statusOverloaded {
		return &RateLimitError{Message: message, Cause: cause}
	}
	return &ProviderError{StatusCode: status, Message: message, Cause: cause}
}

var _ Client = (*AnthropicClient)(nil)
