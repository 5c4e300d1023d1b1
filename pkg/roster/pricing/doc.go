// Package pricing holds the hourly rate for each seniority level.
//
// A Table only ever stores non-negative rates. Merge and Replace
// silently skip anything else, so callers can pass unvetted input:
//
//	t := pricing.New()
//	applied := t.Merge(map[string]float64{
//	    "junior":  10,
//	    "invalid": -5, // skipped
//	})
//	// applied == []string{"junior"}
//
//	rate, ok := t.Rate("junior") // 10, true
//
// A Table has no lock of its own; its owner serializes access. Snapshot and
// Levels return copies that the caller owns.
package pricing
