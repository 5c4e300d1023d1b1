package pricing

import (
	"maps"
	"math"
	"sort"
)

// Table maps seniority levels to hourly rates.
// A Table is not safe for concurrent use; the registry guards it with its
// own lock.
type Table struct {
	rates map[string]float64
}

// New creates an empty pricing table.
func New() *Table {
	return &Table{
		rates: make(map[string]float64),
	}
}

// Valid reports whether rate may be stored: a number that is not NaN and
// not negative.
func Valid(rate float64) bool {
	return !math.IsNaN(rate) && rate >= 0
}

// Merge stores every valid entry of rates, overwriting existing levels,
// and returns the levels it applied in sorted order. Invalid entries are
// skipped.
func (t *Table) Merge(rates map[string]float64) []string {
	applied := make([]string, 0, len(rates))
	for level, rate := range rates {
		if !Valid(rate) {
			continue
		}
		t.rates[level] = rate
		applied = append(applied, level)
	}
	sort.Strings(applied)
	return applied
}

// Replace discards the current rates and stores the valid entries of rates.
// It returns the levels kept in sorted order.
func (t *Table) Replace(rates map[string]float64) []string {
	t.rates = make(map[string]float64, len(rates))
	return t.Merge(rates)
}

// Rate returns the hourly rate for level and whether it is priced.
func (t *Table) Rate(level string) (float64, bool) {
	rate, ok := t.rates[level]
	return rate, ok
}

// Levels returns all priced levels in sorted order.
func (t *Table) Levels() []string {
	levels := make([]string, 0, len(t.rates))
	for level := range t.rates {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

// Snapshot returns a copy of the table. Changes to the copy do not affect
// the table.
func (t *Table) Snapshot() map[string]float64 {
	return maps.Clone(t.rates)
}
