package coverage

import "sort"

// ItemSummary aggregates the joined rows of one test item.
type ItemSummary struct {
	TestItem string `json:"test_item"`
	// FailsA and FailsB count the item's failures on each side.
	FailsA int `json:"fails_a"`
	FailsB int `json:"fails_b"`
	// BothFail counts dies failing the item in both runs.
	BothFail int `json:"both_fail"`
	// CoverageAInB is BothFail/FailsA as a percentage, 0 when FailsA
	// is 0. CoverageBInA is symmetric. Rounded to two decimals.
	CoverageAInB float64 `json:"coverage_a_in_b"`
	CoverageBInA float64 `json:"coverage_b_in_a"`
	// AFullyCovered means A had failures and B reproduced every one.
	AFullyCovered bool `json:"a_fully_covered"`
	BFullyCovered bool `json:"b_fully_covered"`
	// PresentInA and PresentInB report whether the item was declared
	// in each file's header at all, independent of failures.
	PresentInA bool `json:"present_in_a"`
	PresentInB bool `json:"present_in_b"`
}

// Summarize groups joined rows by test item. itemsA and itemsB are
// the declared header item names of each source file, so an item that
// only ever failed in one file still gets correct presence flags.
// Rows are sorted by item name to keep reruns byte-identical.
func Summarize(records []Record, itemsA, itemsB []string) []ItemSummary {
	inA := toSet(itemsA)
	inB := toSet(itemsB)

	byItem := make(map[string]*ItemSummary)
	order := make([]string, 0)
	for _, r := range records {
		s, ok := byItem[r.TestItem]
		if !ok {
			s = &ItemSummary{
				TestItem:   r.TestItem,
				PresentInA: inA[r.TestItem],
				PresentInB: inB[r.TestItem],
			}
			byItem[r.TestItem] = s
			order = append(order, r.TestItem)
		}
		if r.ValueA != nil {
			s.FailsA++
		}
		if r.ValueB != nil {
			s.FailsB++
		}
		if r.Status == StatusBothFail {
			s.BothFail++
		}
	}

	sort.Strings(order)
	out := make([]ItemSummary, 0, len(order))
	for _, item := range order {
		s := byItem[item]
		if s.FailsA > 0 {
			s.CoverageAInB = round2(float64(s.BothFail) / float64(s.FailsA) * 100)
		}
		if s.FailsB > 0 {
			s.CoverageBInA = round2(float64(s.BothFail) / float64(s.FailsB) * 100)
		}
		s.AFullyCovered = s.FailsA > 0 && s.CoverageAInB == 100
		s.BFullyCovered = s.FailsB > 0 && s.CoverageBInA == 100
		out = append(out, *s)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
