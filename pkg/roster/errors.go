package roster

import (
	"errors"
	"fmt"
)

// Sentinel errors for operations rejected before they are scheduled.
// No task is created and no callback fires for a rejected call.
var (
	// ErrBusy indicates another operation is still in flight.
	ErrBusy = errors.New("registry busy")

	// ErrInvalidPredicate indicates a search was started without a predicate.
	ErrInvalidPredicate = errors.New("predicate is not callable")

	// ErrNilContext indicates an operation was started with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// Sentinel errors for operation results.
var (
	// ErrMissingSeniorityLevel indicates a participant without a seniority level.
	ErrMissingSeniorityLevel = errors.New(`property "seniorityLevel" is not defined`)

	// ErrUnassignedSeniorityLevel indicates a participant whose seniority level
	// has no rate in the pricing table.
	ErrUnassignedSeniorityLevel = errors.New("seniority level is not assigned in pricing list")
)

// OperationError wraps an error with the operation that produced it.
type OperationError struct {
	// Op is the operation name (e.g., "add_participant").
	Op string
	// TaskID identifies the task; empty when the call was rejected before
	// a task existed.
	TaskID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.TaskID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether err is a transient rejection that may succeed
// once the in-flight operation completes.
func Retryable(err error) bool {
	return errors.Is(err, ErrBusy)
}

// PanicError captures a panic raised while an operation body ran, usually
// from a caller-supplied predicate.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}
