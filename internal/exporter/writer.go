package exporter

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aadex/aadex-go/internal/frame"
)

// writeDelimited writes a frame as a delimited text file, header row
// first. A .gz path gets gzip compression.
func writeDelimited(f *frame.Frame, path string, delimiter rune) error {
	output, err := openOutputFile(path)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(output)
	writer.Comma = delimiter

	if err := writer.Write(f.ColumnNames()); err != nil {
		output.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range f.Rows {
		if err := writer.Write(row); err != nil {
			output.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		output.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return output.Close()
}

// openOutputFile creates an output file, adding gzip compression for
// a .gz extension.
func openOutputFile(path string) (io.WriteCloser, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".gz" {
		return &gzipWriter{file: file, writer: gzip.NewWriter(file)}, nil
	}
	return file, nil
}

// gzipWriter wraps gzip writer and file to close both properly.
type gzipWriter struct {
	file   *os.File
	writer *gzip.Writer
}

func (g *gzipWriter) Write(p []byte) (int, error) {
	return g.writer.Write(p)
}

func (g *gzipWriter) Close() error {
	if err := g.writer.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}
