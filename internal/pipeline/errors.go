package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/docx"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/pipeline/steps"
)

// Kind classifies why a request failed
type Kind string

// Failure kinds
const (
	KindCorruptDocument          Kind = "CorruptDocument"
	KindUnsupportedFormat        Kind = "UnsupportedFormat"
	KindNoExtractableText        Kind = "NoExtractableText"
	KindCredentialMissing        Kind = "CredentialMissing"
	KindCredentialInvalidFormat  Kind = "CredentialInvalidFormat"
	KindLLMTimeout               Kind = "LLMTimeout"
	KindLLMRateLimited           Kind = "LLMRateLimited"
	KindLLMConnectionFailed      Kind = "LLMConnectionFailed"
	KindLLMProviderError         Kind = "LLMProviderError"
	KindLLMUnexpected            Kind = "LLMUnexpected"
	KindMalformedResponse        Kind = "MalformedResponse"
	KindSchemaViolation          Kind = "SchemaViolation"
	KindMalformedUpstreamPayload Kind = "MalformedUpstreamPayload"
	KindNoQualificationsFound    Kind = "NoQualificationsFound"
	KindCancelled                Kind = "Cancelled"
	KindUnknownMode              Kind = "UnknownMode"
)

// ErrUnknownMode is the cause of a KindUnknownMode failure
var ErrUnknownMode = errors.New("unknown extraction mode")

// Failure is the result of a request that ended in FAILED. Cause is the
// originating error, unchanged.
type Failure struct {
	Kind    Kind
	Stage   steps.State
	Message string
	Cause   error
	// RawText holds the model output for MalformedResponse failures
	RawText string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s during %s: %s", f.Kind, f.Stage, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Retryable reports whether re-invoking the call may succeed
func (f *Failure) Retryable() bool {
	switch f.Kind {
	case KindLLMRateLimited, KindLLMConnectionFailed, KindLLMTimeout:
		return true
	}
	return false
}

// KindOf returns the failure kind of err, or "" when err is not a Failure
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// classify maps an error from the ingestion or gateway layers onto a Kind
func classify(err error) Kind {
	var (
		extractErr *docx.ExtractionFailure
		credErr    *llm.CredentialError
		timeoutErr *llm.TimeoutError
		rateErr    *llm.RateLimitError
		connErr    *llm.ConnectionError
		provErr    *llm.ProviderError
		unexpErr   *llm.UnexpectedError
	)
	switch {
	case errors.Is(err, ingestion.ErrNoExtractableText):
		return KindNoExtractableText
	case errors.As(err, &extractErr):
		if extractErr.Reason == docx.ReasonUnsupportedFormat {
			return KindUnsupportedFormat
		}
		return KindCorruptDocument
	case errors.As(err, &credErr):
		if credErr.Reason == llm.CredentialInvalidFormat {
			return KindCredentialInvalidFormat
		}
		return KindCredentialMissing
	case errors.As(err, &timeoutErr):
		return KindLLMTimeout
	case errors.As(err, &rateErr):
		return KindLLMRateLimited
	case errors.As(err, &connErr):
		return KindLLMConnectionFailed
	case errors.As(err, &provErr):
		return KindLLMProviderError
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.As(err, &unexpErr):
		return KindLLMUnexpected
	}
	return KindLLMUnexpected
}
