// Package report serializes extraction and coverage results to
// delimited files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/waferlab/waferfail/internal/coverage"
	"github.com/waferlab/waferfail/internal/wafer"
)

// Fixed output names for comparison reports.
const (
	CoverageFile = "coverage.csv"
	SummaryFile  = "summary.csv"
)

// FailuresName derives the per-input report name from the input path:
// lot42.csv becomes lot42_failures.csv.
func FailuresName(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return stem + "_failures.csv"
}

// WriteFailures writes one row per failure to path.
func WriteFailures(path string, failures []wafer.Failure) error {
	header := []string{"XAdr", "YAdr", "test_item", "unit", "value", "limit_high", "limit_low"}
	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		rows = append(rows, []string{
			strconv.Itoa(f.X),
			strconv.Itoa(f.Y),
			f.TestItem,
			f.Unit,
			formatFloat(f.Value),
			formatOptFloat(f.LimitHigh),
			formatOptFloat(f.LimitLow),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteCoverage writes the joined comparison rows to path.
func WriteCoverage(path string, records []coverage.Record) error {
	header := []string{
		"XAdr", "YAdr", "test_item",
		"unit_a", "value_a", "limit_high_a", "limit_low_a",
		"unit_b", "value_b", "limit_high_b", "limit_low_b",
		"status",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.X),
			strconv.Itoa(r.Y),
			r.TestItem,
			r.UnitA,
			formatOptFloat(r.ValueA),
			formatOptFloat(r.LimitHighA),
			formatOptFloat(r.LimitLowA),
			r.UnitB,
			formatOptFloat(r.ValueB),
			formatOptFloat(r.LimitHighB),
			formatOptFloat(r.LimitLowB),
			string(r.Status),
		})
	}
	return writeCSV(path, header, rows)
}

// WriteSummary writes the per-item aggregation to path.
func WriteSummary(path string, summaries []coverage.ItemSummary) error {
	header := []string{
		"test_item", "fails_a", "fails_b", "both_fail",
		"coverage_a_in_b", "coverage_b_in_a",
		"a_fully_covered", "b_fully_covered",
		"present_in_a", "present_in_b",
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.TestItem,
			strconv.Itoa(s.FailsA),
			strconv.Itoa(s.FailsB),
			strconv.Itoa(s.BothFail),
			formatFloat(s.CoverageAInB),
			formatFloat(s.CoverageBInA),
			strconv.FormatBool(s.AFullyCovered),
			strconv.FormatBool(s.BFullyCovered),
			strconv.FormatBool(s.PresentInA),
			strconv.FormatBool(s.PresentInB),
		})
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}
