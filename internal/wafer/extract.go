package wafer

// Failure is one out-of-limit reading: a die whose measurement for a
// test item fell strictly outside the item's limits.
type Failure struct {
	// X and Y address the die on the wafer.
	X int
	Y int
	// TestItem is the disambiguated column name the reading belongs to.
	TestItem string
	// Unit is the measurement unit from the header.
	Unit string
	// Value is the offending reading.
	Value float64
	// LimitHigh and LimitLow are the limits the reading was judged
	// against; nil means that side was non-binding.
	LimitHigh *float64
	LimitLow  *float64
}

// Extract evaluates every reading against its column's limits and
// returns one Failure per out-of-limit reading. Readings exactly at a
// limit pass; non-numeric or missing readings never fail. Order is
// data-row order within a test item, items concatenated in column
// order, so reruns on the same file are byte-identical. The result is
// always non-nil, empty when nothing failed.
func Extract(l *Layout) []Failure {
	failures := make([]Failure, 0)
	for _, spec := range l.Specs {
		for _, row := range l.Data {
			x, ok := cellInt(row, l.xCol)
			if !ok {
				continue
			}
			y, ok := cellInt(row, l.yCol)
			if !ok {
				continue
			}
			v, ok := cellFloat(row, spec.col)
			if !ok {
				continue
			}
			if !outOfLimits(v, spec) {
				continue
			}
			failures = append(failures, Failure{
				X:         x,
				Y:         y,
				TestItem:  spec.Name,
				Unit:      spec.Unit,
				Value:     v,
				LimitHigh: spec.LimitHigh,
				LimitLow:  spec.LimitLow,
			})
		}
	}
	return failures
}

// outOfLimits applies the strict pass window: a reading fails only
// when strictly above the upper or strictly below the lower limit.
func outOfLimits(v float64, spec ColumnSpec) bool {
	if spec.LimitHigh != nil && v > *spec.LimitHigh {
		return true
	}
	if spec.LimitLow != nil && v < *spec.LimitLow {
		return true
	}
	return false
}

func cellFloat(row []string, col int) (float64, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	return parseFloat(row[col])
}

func cellInt(row []string, col int) (int, bool) {
	v, ok := cellFloat(row, col)
	if !ok {
		return 0, false
	}
	return int(v), true
}
