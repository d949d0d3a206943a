package wafer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedHeader is the fixed leading-column header row used by the
// tester exports in these tests. XAdr/YAdr sit at columns 6 and 7.
var fixedHeader = []string{"LotNo", "WaferNo", "Temp", "Vdd", "Bin", "Site", "XAdr", "YAdr"}

// buildTable assembles an export table from its header block parts.
// Each data row is (x, y, readings...).
func buildTable(metadataRows int, groups, items, upper, lower, units []string, data [][]string) *Table {
	rows := make([][]string, 0, metadataRows+5+len(data))
	for i := 0; i < metadataRows; i++ {
		rows = append(rows, []string{fmt.Sprintf("meta_%d", i), "x"})
	}
	pad8 := func(cells []string) []string {
		return append([]string{"", "", "", "", "", "", "", ""}, cells...)
	}
	rows = append(rows, pad8(groups))
	rows = append(rows, pad8(items))
	rows = append(rows, pad8(upper))
	rows = append(rows, pad8(lower))
	rows = append(rows, append(append([]string{}, fixedHeader...), units...))
	for _, d := range data {
		row := []string{"L1", "1", "25", "1.0", "1", "0", d[0], d[1]}
		row = append(row, d[2:]...)
		rows = append(rows, row)
	}
	return &Table{File: "test.csv", Rows: padRows(rows)}
}

func TestUniqueNames(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		items  []string
		want   []string
	}{
		{
			name:   "no collisions",
			groups: []string{"DC", "DC", "AC"},
			items:  []string{"Idd", "Vth", "Freq"},
			want:   []string{"DC-Idd", "DC-Vth", "AC-Freq"},
		},
		{
			name:   "collision gets numeric suffix in first-seen order",
			groups: []string{"G", "G", "H"},
			items:  []string{"X", "X", "X"},
			want:   []string{"G-X", "G-X_2", "H-X"},
		},
		{
			name:   "triple collision",
			groups: []string{"G", "G", "G"},
			items:  []string{"X", "X", "X"},
			want:   []string{"G-X", "G-X_2", "G-X_3"},
		},
		{
			name:   "empty input",
			groups: nil,
			items:  nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueNames(tt.groups, tt.items)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	table := buildTable(3,
		[]string{"G1", "G1"},
		[]string{"V1", "V2"},
		[]string{"3.0", "abc"},
		[]string{"1.0", "0.5"},
		[]string{"V", "mA"},
		[][]string{{"5", "10", "3.5", "0.6"}},
	)

	layout, err := Resolve(table, 3)
	require.NoError(t, err)

	require.Len(t, layout.Specs, 2)
	assert.Equal(t, "G1-V1", layout.Specs[0].Name)
	assert.Equal(t, "G1-V2", layout.Specs[1].Name)
	assert.Equal(t, "V", layout.Specs[0].Unit)
	assert.Equal(t, "mA", layout.Specs[1].Unit)

	require.NotNil(t, layout.Specs[0].LimitHigh)
	assert.Equal(t, 3.0, *layout.Specs[0].LimitHigh)
	require.NotNil(t, layout.Specs[0].LimitLow)
	assert.Equal(t, 1.0, *layout.Specs[0].LimitLow)

	// Non-numeric upper limit means unbounded above, not an error
	assert.Nil(t, layout.Specs[1].LimitHigh)
	require.NotNil(t, layout.Specs[1].LimitLow)
	assert.Equal(t, 0.5, *layout.Specs[1].LimitLow)

	assert.Len(t, layout.Data, 1)
	assert.Equal(t, []string{"G1-V1", "G1-V2"}, layout.ItemNames())
}

func TestResolve_DropsEmptyRowsAndColumns(t *testing.T) {
	table := buildTable(0,
		[]string{"G1"},
		[]string{"V1"},
		[]string{"3.0"},
		[]string{"1.0"},
		[]string{"V"},
		[][]string{{"5", "10", "3.5"}},
	)
	// Trailing blank column from the export tool plus an all-empty row
	for i := range table.Rows {
		table.Rows[i] = append(table.Rows[i], "")
	}
	table.Rows = append(table.Rows, make([]string, len(table.Rows[0])))

	layout, err := Resolve(table, 0)
	require.NoError(t, err)
	require.Len(t, layout.Specs, 1)
	assert.Len(t, layout.Data, 1, "all-empty row should be dropped")
}

func TestResolve_FormatErrors(t *testing.T) {
	t.Run("too few rows after metadata", func(t *testing.T) {
		table := &Table{File: "short.csv", Rows: [][]string{{"a"}, {"b"}}}
		_, err := Resolve(table, 0)
		require.Error(t, err)

		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, "short.csv", ferr.File)
		assert.Contains(t, err.Error(), "not enough rows")
	})

	t.Run("missing XAdr/YAdr headers", func(t *testing.T) {
		table := buildTable(0,
			[]string{"G1"},
			[]string{"V1"},
			[]string{"3.0"},
			[]string{"1.0"},
			[]string{"V"},
			[][]string{{"5", "10", "3.5"}},
		)
		// Clobber the coordinate headers
		table.Rows[4][6] = "ColF"
		table.Rows[4][7] = "ColG"

		_, err := Resolve(table, 0)
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
		assert.Contains(t, err.Error(), "XAdr/YAdr")
	})

	t.Run("metadata skip larger than file", func(t *testing.T) {
		table := &Table{File: "tiny.csv", Rows: [][]string{{"only"}}}
		_, err := Resolve(table, 29)
		var ferr *FormatError
		require.True(t, errors.As(err, &ferr))
	})
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"1.5", 1.5, true},
		{" 2.0 ", 2.0, true},
		{"-3e2", -300, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"--", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
