// aadex - automotive attack database explorer
//
// A one-shot Go CLI tool that inspects a SQLite attack database,
// runs canned aggregate reports, and exports every table to
// CSV/TSV/XLSX files alongside a timestamped analysis log.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/aadex/aadex-go/internal/cli"
)

// Version information (set via ldflags at build time)
// These variables are intentionally unused in code but set via ldflags
var (
	version   = "dev"     //nolint:unused // Set via ldflags
	buildTime = "unknown" //nolint:unused // Set via ldflags
)

func main() {
	if err := cli.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
