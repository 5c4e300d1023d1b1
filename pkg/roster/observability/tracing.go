package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrRegistry = attribute.Key("roster.registry")
	AttrOp       = attribute.Key("roster.op")
	AttrTaskID   = attribute.Key("roster.task_id")
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("roster")

// SpanManager handles the span of each scheduled operation.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartOperationSpan starts a span that stays open from scheduling until
	// the operation completes, so its duration includes the work delay.
	StartOperationSpan(ctx context.Context, registry, op, taskID string) (context.Context, trace.Span)

	// EndOperationSpan ends the span, marking it failed when err is non-nil.
	EndOperationSpan(span trace.Span, err error)

	// AddSpanEvent adds an event to the span in ctx, if it is recording.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager backed by the global tracer provider.
// Install the provider first:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return otelSpanManager{}
}

func (otelSpanManager) StartOperationSpan(ctx context.Context, registry, op, taskID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "roster."+op,
		trace.WithAttributes(
			AttrRegistry.String(registry),
			AttrOp.String(op),
			AttrTaskID.String(taskID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (otelSpanManager) EndOperationSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
