// Package pipeline sequences résumé extraction and gap analysis: flatten the
// document, build the prompt, call the model, parse and coerce the response.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline/steps"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Caller sends one prompt to the model. *llm.Gateway implements it.
type Caller interface {
	Call(ctx context.Context, req llm.Request) (string, error)
}

// Mode selects the extraction prompt
type Mode string

// Extraction modes
const (
	ModeQuick Mode = "quick"
	ModeFull  Mode = "full"
)

// TaskSettings are the model parameters of one kind of call
type TaskSettings struct {
	Tier        llm.ModelTier
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Transition is reported for every state change of a request
type Transition struct {
	RequestID string
	Task      string
	From      steps.State
	To        steps.State
	Elapsed   time.Duration
	// Err is set on the move to FAILED
	Err error
}

// TransitionCallback is called synchronously on every state change
type TransitionCallback func(Transition)

// Options configures an Orchestrator
type Options struct {
	Quick      TaskSettings
	Full       TaskSettings
	Gap        TaskSettings
	Validation TaskSettings

	// RetryAttempts is the total number of calls made when the gateway
	// reports a rate limit or connection failure. Values below 1 mean 1.
	RetryAttempts int
	// RetryBackoff is multiplied by the attempt number between attempts
	RetryBackoff time.Duration

	ValidateSchema bool
	OnTransition   TransitionCallback
}

// DefaultOptions mirrors the limits used for each task in production
func DefaultOptions() Options {
	return Options{
		Quick:          TaskSettings{Tier: llm.TierLite, MaxTokens: 2000, Temperature: 0.1, Timeout: 20 * time.Second},
		Full:           TaskSettings{Tier: llm.TierStandard, MaxTokens: 3000, Temperature: 0.1, Timeout: 60 * time.Second},
		Gap:            TaskSettings{Tier: llm.TierAdvanced, MaxTokens: 4000, Temperature: 0.1, Timeout: 90 * time.Second},
		Validation:     TaskSettings{Tier: llm.TierLite, MaxTokens: 10, Temperature: 0, Timeout: 20 * time.Second},
		RetryAttempts:  1,
		RetryBackoff:   500 * time.Millisecond,
		ValidateSchema: true,
	}
}

// Orchestrator runs requests against a Caller. It holds no per-request state
// and is safe for concurrent use.
type Orchestrator struct {
	caller Caller
	opts   Options
}

// New creates an orchestrator
func New(caller Caller, opts Options) *Orchestrator {
	return &Orchestrator{caller: caller, opts: opts}
}

// ExtractResume turns a document into a coerced ResumeRecord. Failures are
// returned as *Failure carrying the originating error.
func (o *Orchestrator) ExtractResume(ctx context.Context, doc Document, mode Mode) (*types.ResumeRecord, error) {
	var (
		settings TaskSettings
		build    func(string) string
	)
	switch mode {
	case ModeQuick, "":
		mode, settings, build = ModeQuick, o.opts.Quick, prompts.BuildQuickExtractionPrompt
	case ModeFull:
		settings, build = o.opts.Full, prompts.BuildFullExtractionPrompt
	}

	r, ctx := o.start(ctx, "extract_"+string(mode))
	if build == nil {
		return nil, r.failKind(KindUnknownMode, fmt.Sprintf("unknown extraction mode %q", mode), ErrUnknownMode)
	}
	r.log.Debug().Str("document", doc.Name).Str("format", string(doc.Format())).Msg("extracting resume")

	r.to(steps.Flattening)
	text, err := doc.Flatten()
	if err != nil {
		return nil, r.fail(err)
	}

	r.to(steps.Prompting)
	prompt := build(text)

	r.to(steps.CallingLLM)
	raw, err := o.call(ctx, r, settings, prompt)
	if err != nil {
		return nil, r.fail(err)
	}

	r.to(steps.Parsing)
	parsed := o.parse(r, raw)

	r.to(steps.Coercing)
	obj, ok := parsed.Object()
	if !ok || parsed.IsFallback() {
		return nil, r.malformed(raw)
	}
	record := Coerce(obj)
	if o.opts.ValidateSchema {
		if err := schemas.ValidateResumeRecord(record); err != nil {
			return nil, r.failKind(KindSchemaViolation, "coerced record does not match schema", err)
		}
	}

	r.done()
	return record, nil
}

// ValidateResume asks the model whether text looks like a résumé
func (o *Orchestrator) ValidateResume(ctx context.Context, doc Document) (bool, error) {
	r, ctx := o.start(ctx, "validate_resume")

	r.to(steps.Flattening)
	text, err := doc.Flatten()
	if err != nil {
		return false, r.fail(err)
	}

	r.to(steps.Prompting)
	prompt := prompts.BuildResumeValidationPrompt(text)

	r.to(steps.CallingLLM)
	raw, err := o.call(ctx, r, o.opts.Validation, prompt)
	if err != nil {
		return false, r.fail(err)
	}

	r.to(steps.Parsing)
	answer := strings.ToUpper(strings.TrimSpace(raw))

	r.to(steps.Coercing)
	valid := answer == "YES"
	r.log.Debug().Str("answer", logging.Preview(answer, 20)).Bool("valid", valid).Msg("resume validation answer")

	r.done()
	return valid, nil
}

// parse runs the response parser and logs any recovery it needed
func (o *Orchestrator) parse(r *run, raw string) llm.ParseResult {
	parsed := llm.ParseResponse(raw)
	switch parsed.Strategy {
	case llm.StrategyDirect:
	case llm.StrategyRawText:
		r.log.Warn().Str("preview", logging.Preview(raw, 200)).Msg("response is not JSON")
	default:
		r.log.Debug().Str("strategy", string(parsed.Strategy)).Msg("recovered JSON from response")
	}
	return parsed
}

// call invokes the caller, retrying rate limits and connection failures with
// linear backoff
func (o *Orchestrator) call(ctx context.Context, r *run, s TaskSettings, prompt string) (string, error) {
	attempts := o.opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	req := llm.Request{
		Prompt:      prompt,
		Tier:        s.Tier,
		Model:       s.Model,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
		Timeout:     s.Timeout,
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := time.Duration(i) * o.opts.RetryBackoff
			r.log.Warn().Err(lastErr).Int("attempt", i+1).Dur("wait", wait).Msg("retrying LLM call")
			select {
			case <-ctx.Done():
				return "", &llm.UnexpectedError{Message: "call cancelled", Cause: ctx.Err()}
			case <-time.After(wait):
			}
			r.to(steps.CallingLLM)
		}

		raw, err := o.caller.Call(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}
	return "", lastErr
}

func retryable(err error) bool {
	var (
		rateErr *llm.RateLimitError
		connErr *llm.ConnectionError
	)
	return errors.As(err, &rateErr) || errors.As(err, &connErr)
}

// run tracks the state of one request
type run struct {
	id      string
	task    string
	state   steps.State
	started time.Time
	log     *zerolog.Logger
	notify  TransitionCallback
}

func (o *Orchestrator) start(ctx context.Context, task string) (*run, context.Context) {
	id := uuid.New().String()
	ctx = logging.WithFields(ctx, map[string]string{"request_id": id, "task": task})
	r := &run{
		id:      id,
		task:    task,
		state:   steps.Preparing,
		started: time.Now(),
		log:     logging.Ctx(ctx),
		notify:  o.opts.OnTransition,
	}
	r.log.Debug().Str("state", string(r.state)).Msg("request started")
	return r, ctx
}

func (r *run) to(next steps.State) {
	r.move(next, nil)
}

func (r *run) move(next steps.State, err error) {
	if verr := steps.ValidateTransition(r.state, next); verr != nil {
		r.log.Error().Err(verr).Msg("invalid request state transition")
	}
	t := Transition{
		RequestID: r.id,
		Task:      r.task,
		From:      r.state,
		To:        next,
		Elapsed:   time.Since(r.started),
		Err:       err,
	}
	r.state = next
	r.log.Debug().Str("from", string(t.From)).Str("to", string(t.To)).Msg("state transition")
	if r.notify != nil {
		r.notify(t)
	}
}

func (r *run) done() {
	r.move(steps.Done, nil)
	r.log.Info().Dur("elapsed", time.Since(r.started)).Msg("request completed")
}

// fail classifies err and moves to FAILED
func (r *run) fail(err error) error {
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Kind: classify(err), Stage: r.state, Message: err.Error(), Cause: err}
	}
	return r.failWith(f)
}

func (r *run) failKind(kind Kind, message string, cause error) error {
	return r.failWith(&Failure{Kind: kind, Stage: r.state, Message: message, Cause: cause})
}

func (r *run) malformed(raw string) error {
	f := &Failure{
		Kind:    KindMalformedResponse,
		Stage:   r.state,
		Message: "model response is not a JSON object",
		RawText: strings.TrimSpace(raw),
	}
	return r.failWith(f)
}

func (r *run) failWith(f *Failure) error {
	r.log.Warn().
		Str("kind", string(f.Kind)).
		Str("stage", string(f.Stage)).
		Err(f.Cause).
		Dur("elapsed", time.Since(r.started)).
		Msg("request failed")
	r.move(steps.Failed, f)
	return f
}
