package roster

import (
	"context"

	"github.com/randalmurphal/roster/pkg/roster/observability"
)

// HoursPerDay is the number of billable hours in one working day.
const HoursPerDay = 8

// CalculateSalary returns the cost of every participant over periodInDays:
// the sum of rate * periodInDays * HoursPerDay.
//
// It fails with ErrUnassignedSeniorityLevel as soon as a participant's level
// has no rate; no partial total is returned. CalculateSalary is synchronous
// and not gated by a pending asynchronous operation.
func (r *Registry) CalculateSalary(periodInDays float64) (float64, error) {
	r.mu.RLock()
	var (
		total float64
		err   error
	)
	for _, p := range r.participants {
		rate, ok := r.pricing.Rate(p.SeniorityLevel)
		if !ok {
			err = ErrUnassignedSeniorityLevel
			break
		}
		total += rate * periodInDays * HoursPerDay
	}
	count := len(r.participants)
	r.mu.RUnlock()

	r.cfg.metrics.RecordSalary(context.Background(), count, err)
	if err != nil {
		observability.LogSalaryError(r.logger, periodInDays, err)
		return 0, &OperationError{Op: OpCalculateSalary, Err: err}
	}
	observability.LogSalary(r.logger, periodInDays, total, count)
	return total, nil
}
