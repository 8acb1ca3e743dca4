// Package cli provides the command-line interface for aadex.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aadex/aadex-go/internal/config"
	"github.com/aadex/aadex-go/internal/database"
	"github.com/aadex/aadex-go/internal/exporter"
	"github.com/aadex/aadex-go/internal/report"
)

var (
	// Colors for output
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "aadex",
	Short: "Inspect and export a SQLite attack database",
	Long: `aadex - automotive attack database explorer

A one-shot tool that opens a SQLite database read-only, reports its
schema, loads every table into memory, runs aggregate reports against
the attack table, and exports every table to CSV/TSV/XLSX files.

Each run writes a timestamped analysis log with the schema report,
per-table shapes and previews, and the aggregate results.`,
	Example: `  # Full run with default logs/ and exports/ directories
  aadex -d datasets/AAD/Automotive_Attack_Database_V3.0.db

  # Gzipped TSV export into a custom directory
  aadex -d aad.db --format tsv --compress -o /tmp/aad-exports

  # Inspection and reports only, echoed to the console
  aadex -d aad.db --skip-export -v`,
	RunE: runCommand,
}

func init() {
	rootCmd.Flags().StringP("db", "d", "", "SQLite database file to analyze (required)")
	rootCmd.Flags().StringP("out", "o", "exports", "Directory for exported table files")
	rootCmd.Flags().String("logs", "logs", "Directory for analysis log files")
	rootCmd.Flags().StringP("table", "t", "Automotive Security Attacks", "Table the aggregate reports run against")
	rootCmd.Flags().String("prefix", "AAD", "Filename prefix for logs and exports")
	rootCmd.Flags().String("format", "csv", "Export format: 'csv', 'tsv', or 'xlsx'")
	rootCmd.Flags().Bool("compress", false, "Gzip csv/tsv export files")
	rootCmd.Flags().Int("sample", 5, "Rows shown in the attack table sample")
	rootCmd.Flags().Int("top", 10, "Groups shown in the count-by reports")
	rootCmd.Flags().BoolP("verbose", "v", false, "Echo every log line to stdout")
	rootCmd.Flags().Bool("skip-export", false, "Run inspection and reports only")
	_ = rootCmd.MarkFlagRequired("db")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}

	cfg.DBPath, _ = cmd.Flags().GetString("db")
	cfg.OutDir, _ = cmd.Flags().GetString("out")
	cfg.LogDir, _ = cmd.Flags().GetString("logs")
	cfg.AttackTable, _ = cmd.Flags().GetString("table")
	cfg.Prefix, _ = cmd.Flags().GetString("prefix")
	cfg.Compress, _ = cmd.Flags().GetBool("compress")
	cfg.SampleRows, _ = cmd.Flags().GetInt("sample")
	cfg.TopGroups, _ = cmd.Flags().GetInt("top")
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	cfg.SkipExport, _ = cmd.Flags().GetBool("skip-export")

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := config.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	cfg.Format = format

	if err := cfg.Validate(); err != nil {
		return err
	}

	return run(cfg)
}

func run(cfg *config.Config) error {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	var console io.Writer
	if cfg.Verbose {
		console = os.Stdout
	}

	now := time.Now()
	log, err := report.NewLogger(cfg.LogDir, cfg.Prefix, now, console)
	if err != nil {
		return err
	}
	defer func() {
		if err := log.Close(); err != nil {
			warnColor.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	infoColor.Printf("Database: %s\n", db.Path)
	infoColor.Printf("Log file: %s\n", log.Path)

	if err := report.Structure(db, log); err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	successColor.Printf("✓ Inspected database structure\n")

	frames, err := report.LoadAll(db, log)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}
	successColor.Printf("✓ Loaded %d table(s) into memory\n", len(frames))

	report.Aggregates(db, log, cfg.AttackTable, cfg.SampleRows, cfg.TopGroups)
	successColor.Printf("✓ Ran aggregate reports on '%s'\n", cfg.AttackTable)

	if !cfg.SkipExport {
		if err := runExport(db, log, cfg, now); err != nil {
			return err
		}
	}

	successColor.Printf("\nAnalysis complete! Results saved to: %s\n", log.Path)
	return nil
}

func runExport(db *database.DB, log *report.Logger, cfg *config.Config, now time.Time) error {
	log.Section("EXPORTING TABLES")

	opts := exporter.Options{
		OutDir:   cfg.OutDir,
		Prefix:   cfg.Prefix,
		Format:   cfg.Format,
		Compress: cfg.Compress,
		Stamp:    now,
	}

	results, err := exporter.ExportAll(db, opts)
	for _, r := range results {
		log.Blank()
		log.Logf("Exported: %s", r.Table)
		log.Logf("  Rows: %d", r.Rows)
		log.Logf("  Columns: %d", r.Columns)
		log.Logf("  File: %s", r.Path)
	}
	if err != nil {
		log.Logf("Export error: %v", err)
		return fmt.Errorf("failed to export tables: %w", err)
	}

	log.Blank()
	log.Logf("All exports complete! Files saved to: %s", cfg.OutDir)
	successColor.Printf("✓ Exported %d table(s) to %s\n", len(results), cfg.OutDir)
	return nil
}
