// Package config provides configuration management for the waferfail
// CLI. Values come from a YAML config file, WAFERFAIL_* environment
// variables, and command-line flags, with flags taking precedence.
package config

import (
	"fmt"

	"github.com/waferlab/waferfail/internal/cli/output"
	"github.com/waferlab/waferfail/internal/wafer"
)

// Config holds all CLI configuration options.
type Config struct {
	// MetadataRows is the number of leading metadata rows to skip in
	// each export. Tester software revisions disagree on the count,
	// so it is configurable rather than fixed.
	MetadataRows int `koanf:"metadata_rows"`
	// OutDir is where report files are written.
	OutDir string `koanf:"out_dir"`
	// Encoding is the input charset of the CSV exports.
	Encoding string `koanf:"encoding"`
	// OutputFormat selects the renderer mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultOutDir   = "."
	DefaultEncoding = "utf-8"
	DefaultOutput   = "auto" // auto-detect: TTY=text, piped=markdown
)

// Validate rejects configurations the tool cannot act on.
func (c *Config) Validate() error {
	if c.MetadataRows < 0 {
		return fmt.Errorf("metadata_rows must not be negative (got %d)", c.MetadataRows)
	}
	if _, err := wafer.DecoderFor(c.Encoding); err != nil {
		return err
	}
	if !output.ValidMode(c.OutputFormat) {
		return fmt.Errorf("unknown output mode %q (supported: auto, text, markdown, json)", c.OutputFormat)
	}
	return nil
}
