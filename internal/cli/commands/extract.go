package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/waferlab/waferfail/internal/cli/output"
	"github.com/waferlab/waferfail/internal/report"
	"github.com/waferlab/waferfail/internal/wafer"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file.csv> [file.csv ...]",
		Short: "Extract failing dies from wafer CSV exports",
		Long: `Extract every out-of-limit reading from one or more wafer test CSV
exports. For each input with failures a <stem>_failures.csv report is
written into the output directory; inputs without failures produce a
notice and no file.

Files are processed strictly in order. A structurally invalid file
aborts the invocation with a message naming the file.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format

Use --output to override: auto, text, markdown, json`,
		Example: `  # Extract failures from one export
  waferfail extract lot42_25C.csv

  # Several exports, reports into a separate directory
  waferfail extract --out-dir reports lot42_25C.csv lot42_125C.csv

  # Export with a different metadata block height
  waferfail extract --metadata-rows 31 lot42_25C.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args)
		},
	}
	return cmd
}

// extractResult describes one processed input for JSON output.
type extractResult struct {
	Input    string `json:"input"`
	Failures int    `json:"failures"`
	Report   string `json:"report,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	results := make([]extractResult, 0, len(args))
	for _, path := range args {
		cmdCtx.Logger.Debug("parsing export", "file", path, "metadata_rows", cfg.MetadataRows)

		_, failures, err := wafer.ParseFile(path, cfg.MetadataRows, cfg.Encoding)
		if err != nil {
			return err
		}

		res := extractResult{Input: path, Failures: len(failures)}
		if len(failures) == 0 {
			if r.EffectiveMode() != output.ModeJSON {
				r.Muted(fmt.Sprintf("No failures found in %s", path))
			}
			results = append(results, res)
			continue
		}

		outPath := filepath.Join(cfg.OutDir, report.FailuresName(path))
		if err := report.WriteFailures(outPath, failures); err != nil {
			return err
		}
		res.Report = outPath
		results = append(results, res)

		cmdCtx.Logger.Debug("report written", "file", outPath, "failures", len(failures))
		if r.EffectiveMode() != output.ModeJSON {
			r.Success(fmt.Sprintf("Saved %d failures to %s", len(failures), outPath))
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(results)
	}
	return nil
}
