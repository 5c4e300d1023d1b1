package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordOperation records a completed operation with its duration and result error.
	RecordOperation(ctx context.Context, op string, duration time.Duration, err error)

	// RecordRejection records an operation refused before scheduling.
	RecordRejection(ctx context.Context, op string, reason error)

	// RecordSalary records a salary calculation.
	RecordSalary(ctx context.Context, participants int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	operations  metric.Int64Counter
	latency     metric.Float64Histogram
	opErrors    metric.Int64Counter
	rejections  metric.Int64Counter
	salaries    metric.Int64Counter
	salaryErrs  metric.Int64Counter
	participant metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("roster")

	operations, err := meter.Int64Counter("roster.operation.count",
		metric.WithDescription("Number of completed registry operations"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("roster.operation.latency_ms",
		metric.WithDescription("Operation latency including the work delay, in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	opErrors, err := meter.Int64Counter("roster.operation.errors",
		metric.WithDescription("Number of operations that completed with an error result"),
	)
	if err != nil {
		return nil, err
	}

	rejections, err := meter.Int64Counter("roster.operation.rejections",
		metric.WithDescription("Number of operations rejected before scheduling"),
	)
	if err != nil {
		return nil, err
	}

	salaries, err := meter.Int64Counter("roster.salary.calculations",
		metric.WithDescription("Number of salary calculations"),
	)
	if err != nil {
		return nil, err
	}

	salaryErrs, err := meter.Int64Counter("roster.salary.errors",
		metric.WithDescription("Number of failed salary calculations"),
	)
	if err != nil {
		return nil, err
	}

	participant, err := meter.Int64Histogram("roster.salary.participants",
		metric.WithDescription("Participants covered by a salary calculation"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		operations:  operations,
		latency:     latency,
		opErrors:    opErrors,
		rejections:  rejections,
		salaries:    salaries,
		salaryErrs:  salaryErrs,
		participant: participant,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordOperation records a completed operation.
func (m *otelMetrics) RecordOperation(ctx context.Context, op string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))

	m.operations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.opErrors.Add(ctx, 1, attrs)
	}
}

// RecordRejection records a rejected operation.
func (m *otelMetrics) RecordRejection(ctx context.Context, op string, reason error) {
	r := "unknown"
	if reason != nil {
		r = reason.Error()
	}
	m.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("reason", r),
	))
}

// RecordSalary records a salary calculation.
func (m *otelMetrics) RecordSalary(ctx context.Context, participants int, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.salaries.Add(ctx, 1, attrs)
	if err != nil {
		m.salaryErrs.Add(ctx, 1)
		return
	}
	m.participant.Record(ctx, int64(participants))
}
