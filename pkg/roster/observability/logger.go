// Package observability provides logging, metrics and tracing for roster
// registries.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds task context to a logger.
// Returns a new logger with op and task_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "add_participant", task.ID())
//	enriched.Info("stored") // includes op and task_id
func EnrichLogger(logger *slog.Logger, op, taskID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("op", op),
		slog.String("task_id", taskID),
	)
}

// LogOperationStart logs that an operation was accepted and scheduled.
func LogOperationStart(logger *slog.Logger, op, taskID string, delay time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("operation scheduled",
		slog.String("op", op),
		slog.String("task_id", taskID),
		slog.Duration("delay", delay),
	)
}

// LogOperationComplete logs a finished operation. A non-nil err is the
// operation's own result (for example a rejected participant), not a failure
// of the registry.
func LogOperationComplete(logger *slog.Logger, op, taskID string, durationMs float64, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("operation completed with error",
			slog.String("op", op),
			slog.String("task_id", taskID),
			slog.Float64("duration_ms", durationMs),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("operation completed",
		slog.String("op", op),
		slog.String("task_id", taskID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogOperationRejected logs an operation refused before scheduling.
func LogOperationRejected(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Debug("operation rejected",
		slog.String("op", op),
		slog.String("reason", err.Error()),
	)
}

// LogInit logs the outcome of an init call.
func LogInit(logger *slog.Logger, participants, dropped, levels int) {
	if logger == nil {
		return
	}
	logger.Info("registry initialized",
		slog.Int("participants", participants),
		slog.Int("dropped", dropped),
		slog.Int("levels", levels),
	)
}

// LogDropped logs entries discarded by validation.
func LogDropped(logger *slog.Logger, op string, kind string, count int) {
	if logger == nil || count == 0 {
		return
	}
	logger.Debug("invalid entries dropped",
		slog.String("op", op),
		slog.String("kind", kind),
		slog.Int("count", count),
	)
}

// LogSalary logs a successful salary calculation.
func LogSalary(logger *slog.Logger, periodInDays, total float64, participants int) {
	if logger == nil {
		return
	}
	logger.Info("salary calculated",
		slog.Float64("period_days", periodInDays),
		slog.Float64("total", total),
		slog.Int("participants", participants),
	)
}

// LogSalaryError logs a failed salary calculation.
func LogSalaryError(logger *slog.Logger, periodInDays float64, err error) {
	if logger == nil {
		return
	}
	logger.Error("salary calculation failed",
		slog.Float64("period_days", periodInDays),
		slog.String("error", err.Error()),
	)
}

// LogEventError logs a change event that could not be published (non-fatal).
func LogEventError(logger *slog.Logger, eventType string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("event publish failed",
		slog.String("event_type", eventType),
		slog.String("error", err.Error()),
	)
}
