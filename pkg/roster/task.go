package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of an asynchronous operation.
// Err is non-nil only for operations that report a result error
// (AddParticipant with an invalid participant); lookups that find nothing
// report a nil Value instead.
type Result[T any] struct {
	Value T
	Err   error
}

// Callback receives the result of an operation. It runs on the scheduler's
// goroutine after the registry is no longer busy, so it may start the next
// operation.
type Callback[T any] func(Result[T])

// Task is a handle on a scheduled operation.
// A task always completes; there is no cancellation.
type Task[T any] struct {
	id     string
	op     string
	done   chan struct{}
	result Result[T]
}

func newTask[T any](op string) *Task[T] {
	return &Task[T]{
		id:   uuid.New().String(),
		op:   op,
		done: make(chan struct{}),
	}
}

// ID returns the unique task identifier.
func (t *Task[T]) ID() string {
	return t.id
}

// Op returns the operation name.
func (t *Task[T]) Op() string {
	return t.op
}

// Done returns a channel closed once the result is set and the callback,
// if any, has returned.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Result returns the result without blocking. ok is false while the task
// is pending.
func (t *Task[T]) Result() (r Result[T], ok bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return r, false
	}
}

// Wait blocks until the task completes or ctx is done.
// Cancelling ctx stops the wait, not the operation.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result.Value, t.result.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (t *Task[T]) finish() {
	close(t.done)
}

// Scheduler runs deferred operation bodies.
type Scheduler interface {
	// Schedule runs fn once after delay. It must not block the caller.
	Schedule(delay time.Duration, fn func())
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(delay time.Duration, fn func())

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(delay time.Duration, fn func()) {
	f(delay, fn)
}

// TimerScheduler runs each body on its own timer goroutine.
type TimerScheduler struct{}

// Schedule implements Scheduler.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
