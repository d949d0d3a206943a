// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractCommand(t *testing.T) {
	cmd := NewExtractCommand()

	assert.Equal(t, "extract <file.csv> [file.csv ...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Requires at least one input file
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.csv"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.csv", "b.csv"}))
}

func TestNewCompareCommand(t *testing.T) {
	cmd := NewCompareCommand()

	assert.Equal(t, "compare <file_a.csv> <file_b.csv>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Comparison takes exactly two files
	assert.Error(t, cmd.Args(cmd, []string{"a.csv"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a.csv", "b.csv"}))
	assert.Error(t, cmd.Args(cmd, []string{"a.csv", "b.csv", "c.csv"}))
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}
