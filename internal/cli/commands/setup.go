package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/waferlab/waferfail/internal/cli/config"
	"github.com/waferlab/waferfail/internal/cli/output"
	"github.com/waferlab/waferfail/internal/wafer"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's
// loaded configuration and context-carried logger.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables, so commands stay usable in isolation (tests,
// scripting without the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	metadataRows := wafer.DefaultMetadataRows
	if v := os.Getenv("WAFERFAIL_METADATA_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			metadataRows = n
		}
	}

	return &config.Config{
		MetadataRows: metadataRows,
		OutDir:       getEnvOrDefault("WAFERFAIL_OUT_DIR", config.DefaultOutDir),
		Encoding:     getEnvOrDefault("WAFERFAIL_ENCODING", config.DefaultEncoding),
		OutputFormat: getEnvOrDefault("WAFERFAIL_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("WAFERFAIL_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
