package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	opts []option.ClientOption
}

// NewGeminiClient creates a Gemini client. Extra options (endpoint, HTTP
// client) are appended after the per-call API key.
func NewGeminiClient(opts ...option.ClientOption) *GeminiClient {
	return &GeminiClient{opts: opts}
}

// Provider returns ProviderGemini
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Complete generates content for a single text prompt
func (c *GeminiClient) Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", &UnexpectedError{Message: "failed to create Gemini client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", geminiError(ctx, err)
	}
	return extractTextFromResponse(resp)
}

// extractTextFromResponse joins the text parts of the first candidate
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ProviderError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProviderError{Message: fmt.Sprintf("no content in response (finish reason %s)", candidate.FinishReason)}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, ""), nil
}

func geminiError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &ProviderError{Message: blocked.Error(), Cause: err}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == http.StatusTooManyRequests {
			return &RateLimitError{Message: gErr.Message, Cause: err}
		}
		return &ProviderError{StatusCode: gErr.Code, Message: gErr.Message, Cause: err}
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			return &RateLimitError{Message: st.Message(), Cause: err}
		case codes.Unavailable:
			return &ConnectionError{Message: st.Message(), Cause: err}
		case codes.DeadlineExceeded:
			return context.DeadlineExceeded
		}
		return &ProviderError{Message: st.Message(), Cause: err}
	}
	return err
}

var _ Client = (*GeminiClient)(nil)
