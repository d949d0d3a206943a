// Package coverage joins the failure sets of two test runs and
// reports how far one run's failures are reproduced by the other.
// The usual application is comparing two temperature corners to judge
// whether one corner's screening subsumes the other's.
package coverage

import (
	"math"

	"github.com/waferlab/waferfail/internal/wafer"
)

// Status classifies one joined failure row.
type Status string

const (
	StatusBothFail Status = "both_fail"
	StatusAOnly    Status = "fail_in_a_only"
	StatusBOnly    Status = "fail_in_b_only"
)

// Record is one row of the full outer join of two failure sets, keyed
// on (X, Y, TestItem). A side's fields are nil (values, limits) or
// empty (units) when that side did not fail the key.
type Record struct {
	X        int
	Y        int
	TestItem string

	UnitA      string
	ValueA     *float64
	LimitHighA *float64
	LimitLowA  *float64

	UnitB      string
	ValueB     *float64
	LimitHighB *float64
	LimitLowB  *float64

	Status Status
}

type key struct {
	x, y int
	item string
}

// Join performs a full outer join of two failure sets on
// (X, Y, TestItem). Rows keep A's order first, then B-only rows in
// B's order, so reruns are deterministic. Every row gets a status:
// both sides present is both_fail, A alone is fail_in_a_only, and the
// fallback is fail_in_b_only (after an outer join at least one side
// is always present).
func Join(a, b []wafer.Failure) []Record {
	byKeyB := make(map[key]wafer.Failure, len(b))
	for _, f := range b {
		byKeyB[keyOf(f)] = f
	}

	records := make([]Record, 0, len(a)+len(b))
	seen := make(map[key]bool, len(a))
	for _, fa := range a {
		k := keyOf(fa)
		seen[k] = true
		rec := Record{
			X:          fa.X,
			Y:          fa.Y,
			TestItem:   fa.TestItem,
			UnitA:      fa.Unit,
			ValueA:     ptr(fa.Value),
			LimitHighA: fa.LimitHigh,
			LimitLowA:  fa.LimitLow,
			Status:     StatusAOnly,
		}
		if fb, ok := byKeyB[k]; ok {
			rec.UnitB = fb.Unit
			rec.ValueB = ptr(fb.Value)
			rec.LimitHighB = fb.LimitHigh
			rec.LimitLowB = fb.LimitLow
			rec.Status = StatusBothFail
		}
		records = append(records, rec)
	}
	for _, fb := range b {
		if seen[keyOf(fb)] {
			continue
		}
		records = append(records, Record{
			X:          fb.X,
			Y:          fb.Y,
			TestItem:   fb.TestItem,
			UnitB:      fb.Unit,
			ValueB:     ptr(fb.Value),
			LimitHighB: fb.LimitHigh,
			LimitLowB:  fb.LimitLow,
			Status:     StatusBOnly,
		})
	}
	return records
}

// Overall returns the percentage of A's failures that B reproduces:
// both_fail count over A's total failure count, 0 when A has none.
func Overall(records []Record, totalA int) float64 {
	if totalA == 0 {
		return 0
	}
	both := 0
	for _, r := range records {
		if r.Status == StatusBothFail {
			both++
		}
	}
	return float64(both) / float64(totalA) * 100
}

func keyOf(f wafer.Failure) key {
	return key{x: f.X, y: f.Y, item: f.TestItem}
}

func ptr(v float64) *float64 { return &v }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
