package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics discards every measurement. It is the registry default.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

func (NoopMetrics) RecordOperation(context.Context, string, time.Duration, error) {}
func (NoopMetrics) RecordRejection(context.Context, string, error) {}
func (NoopMetrics) RecordSalary(context.Context, int, error) {}

// NoopSpanManager creates non-recording spans. It is the registry default.
type NoopSpanManager struct{}

var _ SpanManager = NoopSpanManager{}

// StartOperationSpan returns ctx unchanged with a non-recording span.
func (NoopSpanManager) StartOperationSpan(ctx context.Context, _, _, _ string) (context.Context, trace.Span) {
	return ctx, noop.Span{}
}

func (NoopSpanManager) EndOperationSpan(trace.Span, error) {}
func (NoopSpanManager) AddSpanEvent(context.Context, string, ...attribute.KeyValue) {}
