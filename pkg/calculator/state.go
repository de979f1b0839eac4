package calculator

import "strings"

// State is a snapshot of the calculator fields.
type State struct {
	Previous    string    `json:"previous"`
	Current     string    `json:"current"`
	Operation   Operation `json:"operation,omitempty"`
	ResetScreen bool      `json:"reset_screen,omitempty"`
}

// InitialState returns the state of a freshly created or cleared calculator.
func InitialState() State {
	return State{Current: "0"}
}

// Validate checks the snapshot invariants: at most one decimal point in each
// operand and a pending operation exactly when a previous operand exists.
func (s State) Validate() error {
	if strings.Count(s.Current, ".") > 1 || strings.Count(s.Previous, ".") > 1 {
		return ErrInvalidState
	}
	if s.Operation != None && !s.Operation.Valid() {
		return ErrInvalidState
	}
	if (s.Operation == None) != (s.Previous == "") {
		return ErrInvalidState
	}
	return nil
}

// Phase is the conceptual state derived from the calculator fields.
type Phase string

const (
	// PhaseIdle: nothing typed and no pending operator.
	PhaseIdle Phase = "idle"
	// PhaseEntry: an operand is being typed with no pending operator.
	PhaseEntry Phase = "entry"
	// PhasePending: an operator is selected and awaits its right operand.
	PhasePending Phase = "pending"
	// PhaseResult: a result is shown; the next digit starts a new operand.
	PhaseResult Phase = "result"
)

func (s State) phase() Phase {
	switch {
	case s.Operation != None:
		return PhasePending
	case s.ResetScreen:
		return PhaseResult
	case s.Current != "0" && s.Current != "":
		return PhaseEntry
	default:
		return PhaseIdle
	}
}
