// Package main provides the waferfail CLI entry point.
package main

import (
	"os"

	"github.com/waferlab/waferfail/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
