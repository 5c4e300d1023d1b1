package roster

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/roster/pkg/roster/event"
	"github.com/randalmurphal/roster/pkg/roster/observability"
)

// manualScheduler holds scheduled bodies until run is called, so tests
// control exactly when a pending operation completes.
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (s *manualScheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
	s.delays = append(s.delays, delay)
}

// run executes pending bodies in order, including any scheduled by callbacks
// while running. Returns the number executed.
func (s *manualScheduler) run() int {
	n := 0
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return n
		}
		fn := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()
		fn()
		n++
	}
}

func (s *manualScheduler) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// recordingMetrics counts calls to each recorder method.
type recordingMetrics struct {
	mu         sync.Mutex
	operations map[string]int
	opErrors   map[string]int
	rejections map[string][]error
	salaries   []error
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		operations: make(map[string]int),
		opErrors:   make(map[string]int),
		rejections: make(map[string][]error),
	}
}

func (m *recordingMetrics) RecordOperation(_ context.Context, op string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[op]++
	if err != nil {
		m.opErrors[op]++
	}
}

func (m *recordingMetrics) RecordRejection(_ context.Context, op string, reason error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections[op] = append(m.rejections[op], reason)
}

func (m *recordingMetrics) RecordSalary(_ context.Context, _ int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salaries = append(m.salaries, err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newManualRegistry returns a registry whose operations complete only when
// the returned scheduler runs.
func newManualRegistry(opts ...Option) (*Registry, *manualScheduler) {
	sched := &manualScheduler{}
	base := []Option{WithScheduler(sched), WithLogger(discardLogger())}
	return New(append(base, opts...)...), sched
}

func junior(name string) *Participant {
	return MustParticipant("junior", WithName(name))
}

func senior(name string) *Participant {
	return MustParticipant("senior", WithName(name))
}

// recordingSpans records span events by name and counts ended spans.
type recordingSpans struct {
	observability.NoopSpanManager

	mu     sync.Mutex
	events []string
	ended  int
}

func (s *recordingSpans) AddSpanEvent(_ context.Context, name string, _ ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}

func (s *recordingSpans) EndOperationSpan(trace.Span, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended++
}

// busyRecordingBus records, for each published event, whether the registry was
// busy at publish time.
type busyRecordingBus struct {
	reg *Registry

	mu    sync.Mutex
	types []string
	busy  []bool
}

func (b *busyRecordingBus) Publish(_ context.Context, evt event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, evt.Type)
	b.busy = append(b.busy, b.reg.Busy())
	return nil
}

func (b *busyRecordingBus) Subscribe(event.Handler, ...string) event.Subscription { return nil }

func (b *busyRecordingBus) Close() error { return nil }
