// Package steps defines the states of an extraction request and the
// transitions allowed between them.
package steps

import "fmt"

// State is one stage of a request
type State string

// Request states
const (
	Preparing  State = "PREPARING"
	Flattening State = "FLATTENING"
	Prompting  State = "PROMPTING"
	CallingLLM State = "CALLING_LLM"
	Parsing    State = "PARSING"
	Coercing   State = "COERCING"
	Done       State = "DONE"
	Failed     State = "FAILED"
)

// Step categories
const (
	CategoryIngestion = "ingestion"
	CategoryLLM       = "llm"
	CategoryOutput    = "output"
)

// StepDefinition defines metadata for a request state
type StepDefinition struct {
	Name     State
	Category string
	// Next lists the states reachable on success. Every non-terminal state
	// may also move to Failed.
	Next     []State
	Terminal bool
}

// Sequence is the success path in order
var Sequence = []State{Preparing, Flattening, Prompting, CallingLLM, Parsing, Coercing, Done}

// StepRegistry holds all state definitions
var StepRegistry = map[State]StepDefinition{
	Preparing: {
		Name:     Preparing,
		Category: CategoryIngestion,
		Next:     []State{Flattening},
	},
	Flattening: {
		Name:     Flattening,
		Category: CategoryIngestion,
		Next:     []State{Prompting},
	},
	Prompting: {
		Name:     Prompting,
		Category: CategoryLLM,
		Next:     []State{CallingLLM},
	},
	CallingLLM: {
		Name:     CallingLLM,
		Category: CategoryLLM,
		// Retries re-enter the call state
		Next: []State{CallingLLM, Parsing},
	},
	Parsing: {
		Name:     Parsing,
		Category: CategoryLLM,
		Next:     []State{Coercing},
	},
	Coercing: {
		Name:     Coercing,
		Category: CategoryOutput,
		Next:     []State{Done},
	},
	Done: {
		Name:     Done,
		Category: CategoryOutput,
		Terminal: true,
	},
	Failed: {
		Name:     Failed,
		Category: CategoryOutput,
		Terminal: true,
	},
}

// TransitionError reports a move the state machine does not allow
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// ValidateTransition checks that a request in state from may move to to
func ValidateTransition(from, to State) error {
	def, ok := StepRegistry[from]
	if !ok {
		return fmt.Errorf("unknown state: %s", from)
	}
	if _, ok := StepRegistry[to]; !ok {
		return fmt.Errorf("unknown state: %s", to)
	}
	if def.Terminal {
		return &TransitionError{From: from, To: to}
	}
	if to == Failed {
		return nil
	}
	for _, next := range def.Next {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// IsTerminal reports whether no transition leaves s
func IsTerminal(s State) bool {
	return StepRegistry[s].Terminal
}
