package roster

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/roster/pkg/roster/event"
	"github.com/randalmurphal/roster/pkg/roster/observability"
	"github.com/randalmurphal/roster/pkg/roster/pricing"
)

// Operation names used in errors, logs, metrics and spans.
const (
	OpInit              = "init"
	OpFindParticipant   = "find_participant"
	OpFindParticipants  = "find_participants"
	OpAddParticipant    = "add_participant"
	OpRemoveParticipant = "remove_participant"
	OpSetPricing        = "set_pricing"
	OpCalculateSalary   = "calculate_salary"
)

// Registry holds an ordered participant collection and a pricing table.
//
// At most one asynchronous operation is in flight per registry. A call made
// while another is pending is rejected with ErrBusy rather than queued.
// Init and CalculateSalary are synchronous and not gated: they may run
// between the scheduling and the completion of a pending operation.
type Registry struct {
	cfg    registryConfig
	logger *slog.Logger

	mu           sync.RWMutex
	participants []*Participant
	pricing      *pricing.Table

	busy atomic.Bool
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{
		cfg:     cfg,
		logger:  cfg.logger.With(slog.String("registry", cfg.name)),
		pricing: pricing.New(),
	}
}

// Init replaces registry state synchronously.
//
// A non-empty participants slice replaces the collection with its valid
// entries; a non-empty rates map replaces the pricing table with its
// non-negative entries. Invalid entries are dropped without error. A nil or
// empty argument leaves that part of the state untouched.
func (r *Registry) Init(participants []*Participant, rates map[string]float64) {
	r.replace(participants, rates, len(participants) > 0, len(rates) > 0)
}

// replace implements Init. withParticipants and withRates select which parts
// are replaced, so a caller that already filtered its input can still empty
// a part.
func (r *Registry) replace(participants []*Participant, rates map[string]float64, withParticipants, withRates bool) {
	var droppedParticipants, droppedRates int

	r.mu.Lock()
	if withParticipants {
		kept := make([]*Participant, 0, len(participants))
		for _, p := range participants {
			if p.Valid() {
				kept = append(kept, p)
			}
		}
		droppedParticipants = len(participants) - len(kept)
		r.participants = kept
	}
	if withRates {
		kept := r.pricing.Replace(rates)
		droppedRates = len(rates) - len(kept)
	}
	count := len(r.participants)
	levels := r.pricing.Levels()
	r.mu.Unlock()

	observability.LogDropped(r.logger, OpInit, "participant", droppedParticipants)
	observability.LogDropped(r.logger, OpInit, "rate", droppedRates)
	if !withParticipants && !withRates {
		return
	}
	observability.LogInit(r.logger, count, droppedParticipants, len(levels))
	r.publish(context.Background(), event.TypeInitialized, "",
		event.InitPayload{Participants: count, Levels: levels})
}

// FindParticipant schedules a search for the first participant matching pred.
// The result Value is nil when nothing matches.
//
// pred runs on a snapshot taken when the body starts, without the registry
// lock held, so it may call back into the registry.
func (r *Registry) FindParticipant(ctx context.Context, pred Predicate, cb Callback[*Participant]) (*Task[*Participant], error) {
	if err := r.acquire(ctx, OpFindParticipant, pred == nil); err != nil {
		return nil, err
	}
	return schedule(r, ctx, OpFindParticipant, func(context.Context, string, emitFunc) Result[*Participant] {
		for _, p := range r.Participants() {
			if pred(p) {
				return Result[*Participant]{Value: p}
			}
		}
		return Result[*Participant]{}
	}, cb), nil
}

// FindParticipants schedules a search for every participant matching pred,
// in collection order. The result Value is never nil.
func (r *Registry) FindParticipants(ctx context.Context, pred Predicate, cb Callback[[]*Participant]) (*Task[[]*Participant], error) {
	if err := r.acquire(ctx, OpFindParticipants, pred == nil); err != nil {
		return nil, err
	}
	return schedule(r, ctx, OpFindParticipants, func(context.Context, string, emitFunc) Result[[]*Participant] {
		matches := make([]*Participant, 0)
		for _, p := range r.Participants() {
			if pred(p) {
				matches = append(matches, p)
			}
		}
		return Result[[]*Participant]{Value: matches}
	}, cb), nil
}

// AddParticipant schedules appending p to the collection.
// An invalid p is not stored; the result Err then wraps
// ErrMissingSeniorityLevel.
func (r *Registry) AddParticipant(ctx context.Context, p *Participant, cb Callback[*Participant]) (*Task[*Participant], error) {
	if err := r.acquire(ctx, OpAddParticipant, false); err != nil {
		return nil, err
	}
	return schedule(r, ctx, OpAddParticipant, func(ctx context.Context, taskID string, emit emitFunc) Result[*Participant] {
		if !p.Valid() {
			return Result[*Participant]{Err: &OperationError{
				Op:     OpAddParticipant,
				TaskID: taskID,
				Err:    ErrMissingSeniorityLevel,
			}}
		}

		r.mu.Lock()
		r.participants = append(r.participants, p)
		count := len(r.participants)
		r.mu.Unlock()

		emit(event.TypeParticipantAdded, event.ParticipantPayload{
			Name:           p.Name,
			SeniorityLevel: p.SeniorityLevel,
			Count:          count,
		})
		return Result[*Participant]{Value: p}
	}, cb), nil
}

// RemoveParticipant schedules removal of the first stored entry that is the
// same pointer as p. The result Value is p when removed and nil when p was
// not stored.
func (r *Registry) RemoveParticipant(ctx context.Context, p *Participant, cb Callback[*Participant]) (*Task[*Participant], error) {
	if err := r.acquire(ctx, OpRemoveParticipant, false); err != nil {
		return nil, err
	}
	return schedule(r, ctx, OpRemoveParticipant, func(ctx context.Context, taskID string, emit emitFunc) Result[*Participant] {
		r.mu.Lock()
		idx := slices.Index(r.participants, p)
		if idx < 0 {
			r.mu.Unlock()
			r.cfg.spans.AddSpanEvent(ctx, "participant.not_found")
			return Result[*Participant]{}
		}
		r.participants = slices.Delete(r.participants, idx, idx+1)
		count := len(r.participants)
		r.mu.Unlock()

		emit(event.TypeParticipantRemoved, event.ParticipantPayload{
			Name:           p.Name,
			SeniorityLevel: p.SeniorityLevel,
			Count:          count,
		})
		return Result[*Participant]{Value: p}
	}, cb), nil
}

// SetPricing schedules merging rates into the pricing table. Entries with a
// negative or NaN rate are ignored. The result Value lists the applied levels
// in sorted order; Err is always nil.
func (r *Registry) SetPricing(ctx context.Context, rates map[string]float64, cb Callback[[]string]) (*Task[[]string], error) {
	if err := r.acquire(ctx, OpSetPricing, false); err != nil {
		return nil, err
	}
	return schedule(r, ctx, OpSetPricing, func(ctx context.Context, taskID string, emit emitFunc) Result[[]string] {
		r.mu.Lock()
		applied := r.pricing.Merge(rates)
		snapshot := r.pricing.Snapshot()
		r.mu.Unlock()

		if dropped := len(rates) - len(applied); dropped > 0 {
			observability.LogDropped(r.logger, OpSetPricing, "rate", dropped)
			r.cfg.spans.AddSpanEvent(ctx, "rates.dropped", attribute.Int("count", dropped))
		}
		if len(applied) > 0 {
			emit(event.TypePricingUpdated, event.PricingPayload{
				Applied: applied,
				Rates:   snapshot,
			})
		}
		return Result[[]string]{Value: applied}
	}, cb), nil
}

// Participants returns a copy of the collection in order. The participants
// themselves are shared, so they can be passed to RemoveParticipant.
func (r *Registry) Participants() []*Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.participants)
}

// Pricing returns a copy of the pricing table.
func (r *Registry) Pricing() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pricing.Snapshot()
}

// Len returns the number of stored participants.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

// Busy reports whether an asynchronous operation is in flight.
func (r *Registry) Busy() bool {
	return r.busy.Load()
}

// acquire takes the busy slot or reports why the call is rejected.
// Rejection order: nil context, busy, invalid predicate.
func (r *Registry) acquire(ctx context.Context, op string, invalidPredicate bool) error {
	var reason error
	switch {
	case ctx == nil:
		reason = ErrNilContext
	case r.busy.Load():
		reason = ErrBusy
	case invalidPredicate:
		reason = ErrInvalidPredicate
	case !r.busy.CompareAndSwap(false, true):
		reason = ErrBusy
	}
	if reason == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	observability.LogOperationRejected(r.logger, op, reason)
	r.cfg.metrics.RecordRejection(ctx, op, reason)
	return &OperationError{Op: op, Err: reason}
}

// emitFunc queues a change event from an operation body. Queued events are
// published once the busy slot is released.
type emitFunc func(eventType string, payload any)

type pendingEvent struct {
	eventType string
	payload   any
}

// operationBody is the deferred part of an asynchronous operation.
type operationBody[T any] func(ctx context.Context, taskID string, emit emitFunc) Result[T]

// schedule runs body after the work delay and completes the task.
// The caller must hold the busy slot; schedule releases it before events are
// published and the callback runs.
func schedule[T any](
	r *Registry,
	ctx context.Context,
	op string,
	body operationBody[T],
	cb Callback[T],
) *Task[T] {
	task := newTask[T](op)

	// The operation outlives the caller's cancellation; ctx only carries
	// trace and metric context from here on.
	ctx = context.WithoutCancel(ctx)
	ctx, span := r.cfg.spans.StartOperationSpan(ctx, r.cfg.name, op, task.id)
	observability.LogOperationStart(r.logger, op, task.id, r.cfg.delay)
	start := time.Now()

	r.cfg.scheduler.Schedule(r.cfg.delay, func() {
		var events []pendingEvent
		emit := func(eventType string, payload any) {
			events = append(events, pendingEvent{eventType: eventType, payload: payload})
		}

		res := runBody(ctx, op, task.id, body, emit)
		task.result = res
		r.busy.Store(false)

		for _, e := range events {
			r.publish(ctx, e.eventType, task.id, e.payload)
		}

		took := time.Since(start)
		r.cfg.metrics.RecordOperation(ctx, op, took, res.Err)
		observability.LogOperationComplete(r.logger, op, task.id, float64(took.Microseconds())/1000, res.Err)
		r.cfg.spans.EndOperationSpan(span, res.Err)

		if cb != nil {
			r.runCallback(op, task.id, func() { cb(res) })
		}
		task.finish()
	})
	return task
}

// runBody converts a panic in body (typically from a caller's predicate)
// into a result error so the busy slot is always released.
func runBody[T any](ctx context.Context, op, taskID string, body operationBody[T], emit emitFunc) (res Result[T]) {
	defer func() {
		if v := recover(); v != nil {
			res = Result[T]{Err: &OperationError{
				Op:     op,
				TaskID: taskID,
				Err:    &PanicError{Value: v, Stack: string(debug.Stack())},
			}}
		}
	}()
	return body(ctx, taskID, emit)
}

func (r *Registry) runCallback(op, taskID string, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			observability.EnrichLogger(r.logger, op, taskID).Error("callback panicked",
				slog.String("panic", fmt.Sprint(v)))
		}
	}()
	fn()
}

// publish sends a change event when a bus is configured. Failures are logged
// and never affect the operation result.
func (r *Registry) publish(ctx context.Context, eventType, taskID string, payload any) {
	if r.cfg.bus == nil {
		return
	}
	evt := event.New(eventType, r.cfg.name, payload, event.WithTaskID(taskID))
	if err := r.cfg.bus.Publish(ctx, evt); err != nil {
		observability.LogEventError(r.logger, eventType, err)
	}
}
