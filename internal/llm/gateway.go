package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/secrets"
)

// DefaultTimeout bounds a call when the request does not set one
const DefaultTimeout = 20 * time.Second

// keyPrefixes are the documented API key prefixes per provider
var keyPrefixes = map[Provider]string{
	ProviderAnthropic: "sk-ant-",
	ProviderGemini:    "AIza",
}

// DefaultEnvNames lists the environment fallbacks for each provider's key
var DefaultEnvNames = map[Provider][]string{
	ProviderAnthropic: {"CLAUDE_AI_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// Credentials tells the gateway where to find the API key. The secret store is
// consulted first under ParameterName, then Env under each of EnvNames.
type Credentials struct {
	Store         secrets.Source
	ParameterName string
	Env           secrets.Source
	EnvNames      []string
}

// Request is one bounded LLM call. Model overrides the tier's configured model.
type Request struct {
	Prompt      string
	Tier        ModelTier
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Gateway owns credential resolution, the deadline around each provider call
// and translation of provider failures into this package's error types.
// It never retries.
type Gateway struct {
	client Client
	config *Config
	creds  Credentials
}

// NewGateway creates a gateway over client
func NewGateway(client Client, config *Config, creds Credentials) *Gateway {
	if config == nil {
		config = ConfigFor(client.Provider())
	}
	if creds.Env == nil {
		creds.Env = secrets.EnvSource{}
	}
	if creds.EnvNames == nil {
		creds.EnvNames = DefaultEnvNames[client.Provider()]
	}
	return &Gateway{client: client, config: config, creds: creds}
}

// Model returns the model a request resolves to
func (g *Gateway) Model(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.config.GetModel(req.Tier)
}

// Call sends the prompt and returns the raw response text. On expiry of the
// timeout the in-flight call is abandoned and a TimeoutError is returned at once.
func (g *Gateway) Call(ctx context.Context, req Request) (string, error) {
	apiKey, err := g.ResolveKey(ctx)
	if err != nil {
		return "", err
	}

	model := g.Model(req)
	if model == "" {
		return "", &UnexpectedError{Message: fmt.Sprintf("no model configured for tier %q", req.Tier)}
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := logging.Ctx(ctx)
	log.Debug().
		Str("provider", string(g.client.Provider())).
		Str("model", model).
		Int("prompt_chars", len(req.Prompt)).
		Dur("timeout", timeout).
		Msg("calling LLM")

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	// Buffered so an abandoned call can still deliver and exit
	done := make(chan result, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: &UnexpectedError{Message: fmt.Sprintf("provider panic: %v", r)}}
			}
		}()
		text, err := g.client.Complete(callCtx, apiKey, CompletionRequest{
			Model:       model,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			Prompt:      req.Prompt,
		})
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			err := translate(res.err, timeout)
			log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("LLM call failed")
			return "", err
		}
		log.Info().
			Str("model", model).
			Dur("elapsed", time.Since(start)).
			Int("response_chars", len(res.text)).
			Msg("LLM call completed")
		return res.text, nil
	case <-callCtx.Done():
		err := translate(callCtx.Err(), timeout)
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("LLM call abandoned")
		return "", err
	}
}

// ResolveKey returns the API key from the secret store or the environment
// and checks the provider's key prefix.
func (g *Gateway) ResolveKey(ctx context.Context) (string, error) {
	provider := g.client.Provider()
	key := ""

	if g.creds.Store != nil && g.creds.ParameterName != "" {
		found := g.creds.Store.GetMany(ctx, []string{g.creds.ParameterName})
		key = strings.TrimSpace(found[g.creds.ParameterName])
		if key != "" {
			logging.Ctx(ctx).Debug().Str("source", "secret_store").Msg("API key resolved")
		}
	}
	if key == "" {
		for _, name := range g.creds.EnvNames {
			if v, ok := g.creds.Env.Get(ctx, name); ok && strings.TrimSpace(v) != "" {
				key = strings.TrimSpace(v)
				logging.Ctx(ctx).Debug().Str("source", "env").Str("name", name).Msg("API key resolved")
				break
			}
		}
	}

	if key == "" {
		return "", &CredentialError{Reason: CredentialMissing, Provider: provider}
	}
	if prefix, ok := keyPrefixes[provider]; ok && !strings.HasPrefix(key, prefix) {
		return "", &CredentialError{Reason: CredentialInvalidFormat, Provider: provider}
	}
	return key, nil
}

// translate maps a provider or context failure onto the gateway error types
func translate(err error, timeout time.Duration) error {
	var (
		credErr  *CredentialError
		timeErr  *TimeoutError
		rateErr  *RateLimitError
		connErr  *ConnectionError
		provErr  *ProviderError
		unexpErr *UnexpectedError
	)
	switch {
	case errors.As(err, &credErr), errors.As(err, &timeErr), errors.As(err, &rateErr),
		errors.As(err, &connErr), errors.As(err, &provErr), errors.As(err, &unexpErr):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(timeout)
	case errors.Is(err, context.Canceled):
		return &UnexpectedError{Message: "call cancelled", Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return NewTimeoutError(timeout)
		}
		return &ConnectionError{Message: netErr.Error(), Cause: err}
	}
	return &UnexpectedError{Message: err.Error(), Cause: err}
}
