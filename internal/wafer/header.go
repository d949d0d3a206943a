package wafer

import (
	"fmt"
	"strconv"
	"strings"
)

// fixedColumns is the number of leading non-measurement columns in an
// export (lot/wafer identifiers and die coordinates).
const fixedColumns = 8

// DefaultMetadataRows is the number of leading metadata rows in the
// export format most testers produce. The count drifts between tester
// software revisions, so it stays configurable.
const DefaultMetadataRows = 29

// ColumnSpec describes one test-item column of an export.
type ColumnSpec struct {
	// Group is the test-group label (row 0 of the header block).
	Group string
	// Item is the test-item label (row 1 of the header block).
	Item string
	// Name is the disambiguated "group-item" identifier, unique within
	// the file. Downstream joins key on it.
	Name string
	// Unit is the measurement unit from the header row.
	Unit string
	// LimitHigh and LimitLow bound a passing reading. A nil limit is
	// non-binding on that side.
	LimitHigh *float64
	LimitLow  *float64

	// col is the column index into the cleaned table.
	col int
}

// Layout is a resolved export: header metadata stripped, empty rows
// and columns dropped, and every test column described by a spec.
type Layout struct {
	// File is the source path, carried for error messages and reports.
	File string
	// Specs describe the test-item columns in file order.
	Specs []ColumnSpec
	// Data holds the measurement rows (one per die).
	Data [][]string

	xCol int
	yCol int
}

// ItemNames returns the declared test-item names in column order,
// independent of whether any die ever failed them.
func (l *Layout) ItemNames() []string {
	names := make([]string, len(l.Specs))
	for i, spec := range l.Specs {
		names[i] = spec.Name
	}
	return names
}

// Resolve interprets a raw table as a wafer export. The first
// metadataRows rows are skipped, then fully empty columns and rows are
// dropped. Of what remains, row 0 holds test-group labels for columns
// 8 and up, row 1 test-item labels, row 2 upper limits, row 3 lower
// limits, row 4 the fixed column headers (which must include XAdr and
// YAdr) plus per-item units, and rows 5 onward the per-die data.
func Resolve(t *Table, metadataRows int) (*Layout, error) {
	rows := t.Rows
	if metadataRows > len(rows) {
		metadataRows = len(rows)
	}
	rows = dropEmptyColumns(rows[metadataRows:])
	rows = dropEmptyRows(rows)

	if len(rows) < 6 {
		return nil, &FormatError{File: t.File, Reason: "not enough rows after metadata"}
	}

	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	headers := rows[4]
	if len(headers) > fixedColumns {
		headers = headers[:fixedColumns]
	}
	xCol := indexOf(headers, "XAdr")
	yCol := indexOf(headers, "YAdr")
	if xCol < 0 || yCol < 0 {
		return nil, &FormatError{File: t.File, Reason: "fixed columns XAdr/YAdr not found"}
	}

	var specs []ColumnSpec
	if width > fixedColumns {
		groups := rows[0][fixedColumns:]
		items := rows[1][fixedColumns:]
		upper := rows[2][fixedColumns:]
		lower := rows[3][fixedColumns:]
		units := rows[4][fixedColumns:]

		names := uniqueNames(groups, items)
		specs = make([]ColumnSpec, len(names))
		for i, name := range names {
			specs[i] = ColumnSpec{
				Group:     strings.TrimSpace(groups[i]),
				Item:      strings.TrimSpace(items[i]),
				Name:      name,
				Unit:      strings.TrimSpace(units[i]),
				LimitHigh: parseLimit(upper[i]),
				LimitLow:  parseLimit(lower[i]),
				col:       fixedColumns + i,
			}
		}
	}

	return &Layout{
		File:  t.File,
		Specs: specs,
		Data:  rows[5:],
		xCol:  xCol,
		yCol:  yCol,
	}, nil
}

// uniqueNames builds "group-item" identifiers, appending _2, _3, … on
// repeats. First-seen occurrences stay unsuffixed; the suffix order is
// the column order, which downstream joins depend on.
func uniqueNames(groups, items []string) []string {
	counts := make(map[string]int, len(groups))
	names := make([]string, len(groups))
	for i := range groups {
		base := fmt.Sprintf("%s-%s", strings.TrimSpace(groups[i]), strings.TrimSpace(items[i]))
		counts[base]++
		if n := counts[base]; n > 1 {
			names[i] = fmt.Sprintf("%s_%d", base, n)
		} else {
			names[i] = base
		}
	}
	return names
}

// parseLimit coerces a limit cell to a float. Non-numeric cells mean
// the limit is non-binding, never an error.
func parseLimit(s string) *float64 {
	v, ok := parseFloat(s)
	if !ok {
		return nil
	}
	return &v
}

// parseFloat coerces a cell to a float, reporting whether it held a
// numeric value at all.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func indexOf(cells []string, want string) int {
	for i, c := range cells {
		if strings.TrimSpace(c) == want {
			return i
		}
	}
	return -1
}

// dropEmptyColumns removes columns that are empty in every row. Export
// tools routinely append trailing blank columns.
func dropEmptyColumns(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	keep := make([]int, 0, width)
	for col := 0; col < width; col++ {
		for _, row := range rows {
			if col < len(row) && !isEmptyCell(row[col]) {
				keep = append(keep, col)
				break
			}
		}
	}
	if len(keep) == width {
		return rows
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(keep))
		for j, col := range keep {
			if col < len(row) {
				cells[j] = row[col]
			}
		}
		out[i] = cells
	}
	return out
}

// dropEmptyRows removes rows with no values in any cell.
func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if !isEmptyCell(cell) {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
