package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waferlab/waferfail/internal/cli/config"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "waferfail", cmd.Use)
	assert.Equal(t, Version, cmd.Version)

	for _, name := range []string{"extract", "compare", "version", "completion"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "subcommand %q should be registered", name)
	}

	for _, flag := range []string{"config", "metadata-rows", "out-dir", "encoding", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmd_ExtractEndToEnd(t *testing.T) {
	config.ResetConfig()
	outDir := t.TempDir()
	inDir := t.TempDir()

	content := strings.Join([]string{
		"meta,row",
		"meta,row",
		",,,,,,,,G1",
		",,,,,,,,V1",
		",,,,,,,,3.0",
		",,,,,,,,1.0",
		"LotNo,WaferNo,Temp,Vdd,Bin,Site,XAdr,YAdr,V",
		"L1,1,25,1.0,1,0,5,10,3.5",
		"",
	}, "\n")
	input := filepath.Join(inDir, "lot7.csv")
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"extract",
		"--metadata-rows", "2",
		"--out-dir", outDir,
		"-o", "markdown",
		input,
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Saved 1 failures")

	report, err := os.ReadFile(filepath.Join(outDir, "lot7_failures.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "5,10,G1-V1,V,3.5,3,1")
}

func TestRootCmd_RejectsInvalidConfig(t *testing.T) {
	config.ResetConfig()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extract", "--metadata-rows", "-3", "whatever.csv"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata_rows")
}
