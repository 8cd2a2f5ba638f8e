package llm

import (
	"fmt"
	"time"
)

// Credential failure reasons
const (
	CredentialMissing       = "missing"
	CredentialInvalidFormat = "invalid_format"
)

// CredentialError is returned when no usable API key can be resolved
type CredentialError struct {
	Reason   string
	Provider Provider
}

func (e *CredentialError) Error() string {
	if e.Reason == CredentialInvalidFormat {
		return fmt.Sprintf("%s API key has an invalid format", e.Provider)
	}
	return fmt.Sprintf("%s API key not found in secret store or environment", e.Provider)
}

// TimeoutError is returned when a call exceeds its deadline. The in-flight
// request is abandoned, not awaited.
type TimeoutError struct {
	Seconds float64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("LLM call timed out after %gs", e.Seconds)
}

// NewTimeoutError builds a TimeoutError from a duration
func NewTimeoutError(d time.Duration) *TimeoutError {
	return &TimeoutError{Seconds: d.Seconds()}
}

// RateLimitError is returned when the provider throttles the request
type RateLimitError struct {
	Message string
	Cause   error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited by provider: %s", e.Message)
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// ConnectionError is returned when the provider cannot be reached
type ConnectionError struct {
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to provider failed: %s", e.Message)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// ProviderError is an API-level failure reported by the provider
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// UnexpectedError covers every other failure inside the gateway
type UnexpectedError struct {
	Message string
	Cause   error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected LLM error: %s", e.Message)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Cause
}
