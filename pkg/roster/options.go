package roster

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/roster/pkg/roster/event"
	"github.com/randalmurphal/roster/pkg/roster/observability"
)

// DefaultWorkDelay is the delay before an asynchronous operation runs.
const DefaultWorkDelay = 50 * time.Millisecond

// registryConfig holds registry construction settings.
type registryConfig struct {
	name      string
	delay     time.Duration
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	bus       event.Bus
	scheduler Scheduler
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		name:      "roster",
		delay:     DefaultWorkDelay,
		logger:    slog.Default(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
		scheduler: TimerScheduler{},
	}
}

// Option configures a Registry.
type Option func(*registryConfig)

// WithRegistryName sets the name used as event source and log attribute.
// Default: "roster"
func WithRegistryName(name string) Option {
	return func(c *registryConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithWorkDelay sets the fixed delay applied to every asynchronous operation.
// Default: 50ms. Negative values are ignored.
func WithWorkDelay(d time.Duration) Option {
	return func(c *registryConfig) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the structured logger.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *registryConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
//
// Example:
//
//	r := roster.New(roster.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *registryConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the tracing span manager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *registryConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithEventBus publishes change events to bus.
//
// Events are published after the busy slot is released and before the
// callback runs. A blocking bus with a full subscriber delays the callback,
// but never keeps the registry busy.
func WithEventBus(bus event.Bus) Option {
	return func(c *registryConfig) {
		c.bus = bus
	}
}

// WithScheduler replaces the timer-based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *registryConfig) {
		if s != nil {
			c.scheduler = s
		}
	}
}
