package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs a tracer provider backed by an in-memory exporter.
func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("roster")

	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		tracer = otel.Tracer("roster")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})
	return exporter
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]string {
	out := make(map[attribute.Key]string, len(attrs))
	for _, kv := range attrs {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestSpanManager_OperationSpan(t *testing.T) {
	exporter := setupTracingTest(t)
	m := NewSpanManager()

	ctx, span := m.StartOperationSpan(context.Background(), "team-a", "remove_participant", "task-1")
	m.AddSpanEvent(ctx, "participant.not_found")
	m.EndOperationSpan(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "roster.remove_participant", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)
	require.Len(t, s.Events, 1)
	assert.Equal(t, "participant.not_found", s.Events[0].Name)

	attrs := attrMap(s.Attributes)
	assert.Equal(t, "team-a", attrs[AttrRegistry])
	assert.Equal(t, "remove_participant", attrs[AttrOp])
	assert.Equal(t, "task-1", attrs[AttrTaskID])
}

func TestSpanManager_EndWithError(t *testing.T) {
	exporter := setupTracingTest(t)
	m := NewSpanManager()

	_, span := m.StartOperationSpan(context.Background(), "roster", "add_participant", "task-2")
	m.EndOperationSpan(span, errors.New("missing seniority level"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "missing seniority level", spans[0].Status.Description)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestSpanManager_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSpanManager().EndOperationSpan(nil, errors.New("x"))
	})
}

func TestSpanManager_EventWithoutSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		NewSpanManager().AddSpanEvent(context.Background(), "orphan")
	})
}
