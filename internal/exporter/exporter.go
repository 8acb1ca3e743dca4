// Package exporter writes every table to disk with sanitized text.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aadex/aadex-go/internal/config"
	"github.com/aadex/aadex-go/internal/database"
	"github.com/aadex/aadex-go/internal/frame"
)

// Options controls one run of the export stage. All files of a run
// share the same timestamp.
type Options struct {
	OutDir   string
	Prefix   string
	Format   config.Format
	Compress bool
	Stamp    time.Time
}

// Result describes one exported table.
type Result struct {
	Table   string
	Rows    int
	Columns int
	Path    string
}

// ExportAll reloads every user table, strips embedded line breaks
// from its text columns, and writes one file per table into OutDir.
// Results for tables already written are returned alongside an error.
func ExportAll(db *database.DB, opts Options) ([]Result, error) {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
	}

	tables, err := database.Tables(db.DB)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, tableName := range tables {
		f, err := frame.Load(db.DB, tableName)
		if err != nil {
			return results, err
		}
		f.CleanText()

		path := opts.FilePath(tableName)
		if err := writeFrame(f, path, opts); err != nil {
			return results, fmt.Errorf("failed to export table %s: %w", tableName, err)
		}

		rows, cols := f.Shape()
		results = append(results, Result{
			Table:   tableName,
			Rows:    rows,
			Columns: cols,
			Path:    path,
		})
	}

	return results, nil
}

// FilePath returns the output path for one table:
// <outdir>/<prefix>_<table>_<timestamp>.<ext>[.gz]
func (o Options) FilePath(tableName string) string {
	name := fmt.Sprintf("%s_%s_%s.%s",
		o.Prefix,
		database.SanitizeFileName(tableName),
		o.Stamp.Format("20060102_150405"),
		o.Format.Ext())
	if o.Compress && o.Format != config.FormatXLSX {
		name += ".gz"
	}
	return filepath.Join(o.OutDir, name)
}

func writeFrame(f *frame.Frame, path string, opts Options) error {
	if opts.Format == config.FormatXLSX {
		return writeXLSX(f, path)
	}
	return writeDelimited(f, path, opts.Format.Delimiter())
}
