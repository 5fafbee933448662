package quantum

import (
	"errors"
	"fmt"
)

// Domain errors for simulator operations.
var (
	// ErrUnknownGate indicates a gate name that is not in the catalog.
	ErrUnknownGate = errors.New("quantum: unknown gate")

	// ErrDimensionMismatch indicates an operator whose size disagrees with the
	// state dimension. It points at a construction bug, not a user mistake.
	ErrDimensionMismatch = errors.New("quantum: operator dimension does not match state")

	// ErrInvalidQubit indicates a target or control index outside [0, n), or
	// a control equal to the target.
	ErrInvalidQubit = errors.New("quantum: invalid qubit index")

	// ErrInvalidQubitCount indicates a simulator size outside [1, MaxQubits].
	ErrInvalidQubitCount = errors.New("quantum: invalid qubit count")

	// ErrInvalidShotCount indicates a negative shot count.
	ErrInvalidShotCount = errors.New("quantum: invalid shot count")

	// ErrInvalidDistribution indicates probabilities that are negative or do
	// not sum to one.
	ErrInvalidDistribution = errors.New("quantum: invalid probability distribution")

	// ErrDegenerateState indicates an operator that mapped the state to the
	// zero vector.
	ErrDegenerateState = errors.New("quantum: operator produced a zero-norm state")
)

// GateError wraps an error with the gate application that caused it.
type GateError struct {
	Gate    string
	Target  int
	Control *int
	Wrapped error
}

func (e *GateError) Error() string {
	if e.Control != nil {
		return fmt.Sprintf("%s (control=%d, target=%d): %v", e.Gate, *e.Control, e.Target, e.Wrapped)
	}
	return fmt.Sprintf("%s (target=%d): %v", e.Gate, e.Target, e.Wrapped)
}

func (e *GateError) Unwrap() error {
	return e.Wrapped
}

// StepError wraps an error with its position in a circuit.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
