package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/waferlab/waferfail/internal/cli/output"
	"github.com/waferlab/waferfail/internal/coverage"
	"github.com/waferlab/waferfail/internal/report"
	"github.com/waferlab/waferfail/internal/wafer"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file_a.csv> <file_b.csv>",
		Short: "Compare failing dies between two wafer CSV exports",
		Long: `Compare the failure sets of two wafer test CSV exports, typically two
test conditions of the same lot. The failure sets are outer-joined on
(XAdr, YAdr, test item) and each joined row is classified as failing
in A only, in B only, or in both.

Two reports are written into the output directory:
  - coverage.csv  one row per joined failure with its classification
  - summary.csv   per-test-item counts, coverage percentages, and
                  full-coverage flags

When neither file has any failures there is nothing to compare and no
report is written.`,
		Example: `  # Compare a cold and a hot run
  waferfail compare lot42_m40C.csv lot42_125C.csv

  # Summary table as markdown (for CI logs)
  waferfail compare -o markdown lot42_m40C.csv lot42_125C.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1])
		},
	}
	return cmd
}

// compareOutput is the JSON document for the compare command.
type compareOutput struct {
	FileA        string                 `json:"file_a"`
	FileB        string                 `json:"file_b"`
	FailuresA    int                    `json:"failures_a"`
	FailuresB    int                    `json:"failures_b"`
	Coverage     float64                `json:"coverage_a_in_b_pct"`
	CoverageFile string                 `json:"coverage_file,omitempty"`
	SummaryFile  string                 `json:"summary_file,omitempty"`
	Summary      []coverage.ItemSummary `json:"summary"`
}

func runCompare(cmd *cobra.Command, fileA, fileB string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	layoutA, failsA, err := wafer.ParseFile(fileA, cfg.MetadataRows, cfg.Encoding)
	if err != nil {
		return err
	}
	layoutB, failsB, err := wafer.ParseFile(fileB, cfg.MetadataRows, cfg.Encoding)
	if err != nil {
		return err
	}
	logger.Debug("exports parsed", "failures_a", len(failsA), "failures_b", len(failsB))

	if len(failsA) == 0 && len(failsB) == 0 {
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(compareOutput{FileA: fileA, FileB: fileB, Summary: []coverage.ItemSummary{}})
		}
		r.Muted("Both files have no failures to compare")
		return nil
	}

	records := coverage.Join(failsA, failsB)
	pct := coverage.Overall(records, len(failsA))
	summaries := coverage.Summarize(records, layoutA.ItemNames(), layoutB.ItemNames())

	coveragePath := filepath.Join(cfg.OutDir, report.CoverageFile)
	if err := report.WriteCoverage(coveragePath, records); err != nil {
		return err
	}
	summaryPath := filepath.Join(cfg.OutDir, report.SummaryFile)
	if err := report.WriteSummary(summaryPath, summaries); err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(compareOutput{
			FileA:        fileA,
			FileB:        fileB,
			FailuresA:    len(failsA),
			FailuresB:    len(failsB),
			Coverage:     pct,
			CoverageFile: coveragePath,
			SummaryFile:  summaryPath,
			Summary:      summaries,
		})
	}

	r.Success(fmt.Sprintf("Coverage of %s on %s: %.2f%%", fileA, fileB, pct))
	r.Println(fmt.Sprintf("Detailed coverage written to %s", coveragePath))
	r.Println(fmt.Sprintf("Summary written to %s", summaryPath))
	r.Println("")
	renderSummaryTable(r, summaries)
	return nil
}

// renderSummaryTable prints the per-item summary as a table (text or
// markdown depending on mode).
func renderSummaryTable(r *output.Renderer, summaries []coverage.ItemSummary) {
	header := []string{"test_item", "fails_a", "fails_b", "both_fail", "a_in_b %", "b_in_a %"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.TestItem,
			strconv.Itoa(s.FailsA),
			strconv.Itoa(s.FailsB),
			strconv.Itoa(s.BothFail),
			strconv.FormatFloat(s.CoverageAInB, 'f', 2, 64),
			strconv.FormatFloat(s.CoverageBInA, 'f', 2, 64),
		})
	}
	r.Table(header, rows)
}
