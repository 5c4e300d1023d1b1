package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrBusClosed is returned by Publish after Close.
var ErrBusClosed = errors.New("event bus closed")

// Handler processes a delivered event.
type Handler func(ctx context.Context, evt Event) error

// Bus provides pub/sub event distribution with fan-out support.
type Bus interface {
	// Publish sends an event to all matching subscribers.
	Publish(ctx context.Context, evt Event) error

	// Subscribe creates a subscription for specific event types.
	// An empty types list subscribes to every event.
	Subscribe(handler Handler, types ...string) Subscription

	// Close shuts down the bus and all subscriptions.
	Close() error
}

// Subscription represents an active subscription.
type Subscription interface {
	// ID returns the subscription identifier.
	ID() string

	// Unsubscribe removes the subscription. It is idempotent.
	Unsubscribe()
}

// BusConfig configures bus behavior.
type BusConfig struct {
	// BufferSize is the channel buffer size per subscription.
	// Default: 64
	BufferSize int

	// NonBlocking makes Publish drop events for subscribers whose buffer is
	// full instead of waiting.
	// Default: false (blocking)
	NonBlocking bool

	// OnDrop is called when an event is dropped (non-blocking mode).
	OnDrop func(evt Event, subscriberID string)

	// OnError is called when a handler returns an error.
	OnError func(evt Event, subscriberID string, err error)
}

// DefaultBusConfig provides reasonable defaults.
var DefaultBusConfig = BusConfig{
	BufferSize: 64,
}

// LocalBus is an in-memory event bus. Each subscription is served by its own
// goroutine, so a slow handler only delays its own deliveries.
type LocalBus struct {
	config BusConfig

	mu   sync.RWMutex
	subs map[string]*subscription

	nextID  atomic.Int64
	closed  atomic.Bool
	closeCh chan struct{}
}

// Compile-time interface check.
var _ Bus = (*LocalBus)(nil)

// NewBus creates a new local event bus.
func NewBus(config BusConfig) *LocalBus {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBusConfig.BufferSize
	}
	return &LocalBus{
		config:  config,
		subs:    make(map[string]*subscription),
		closeCh: make(chan struct{}),
	}
}

type subscription struct {
	id      string
	types   map[string]struct{} // empty = all types
	handler Handler
	events  chan Event
	done    chan struct{}
	once    sync.Once
	bus     *LocalBus
}

// Publish sends an event to all matching subscribers.
func (b *LocalBus) Publish(ctx context.Context, evt Event) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.matches(evt.Type) {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		if b.config.NonBlocking {
			select {
			case sub.events <- evt:
			case <-sub.done:
			default:
				if b.config.OnDrop != nil {
					b.config.OnDrop(evt, sub.id)
				}
			}
			continue
		}

		select {
		case sub.events <- evt:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		case <-b.closeCh:
			return ErrBusClosed
		}
	}
	return nil
}

// Subscribe creates a subscription. It returns nil if the bus is closed.
func (b *LocalBus) Subscribe(handler Handler, types ...string) Subscription {
	if b.closed.Load() || handler == nil {
		return nil
	}

	sub := &subscription{
		id:      fmt.Sprintf("sub-%d", b.nextID.Add(1)),
		types:   make(map[string]struct{}, len(types)),
		handler: handler,
		events:  make(chan Event, b.config.BufferSize),
		done:    make(chan struct{}),
		bus:     b,
	}
	for _, t := range types {
		sub.types[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	go sub.process()
	return sub
}

// Len returns the number of active subscriptions.
func (b *LocalBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close shuts down the bus. Buffered events that were not yet handled are
// discarded.
func (b *LocalBus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(b.closeCh)

	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[string]*subscription)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
	return nil
}

func (s *subscription) matches(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

func (s *subscription) process() {
	for {
		select {
		case evt := <-s.events:
			if err := s.handler(context.Background(), evt); err != nil && s.bus.config.OnError != nil {
				s.bus.config.OnError(evt, s.id, err)
			}
		case <-s.done:
			return
		}
	}
}

func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
}

// ID returns the subscription identifier.
func (s *subscription) ID() string {
	return s.id
}

// Unsubscribe removes the subscription.
func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
	s.stop()
}
