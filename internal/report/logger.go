// Package report writes the per-run analysis log: the schema report,
// the bulk-load report, and the canned aggregate reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	bannerWidth = 60
	ruleWidth   = 40
)

// Logger appends lines to the run's analysis log file and optionally
// echoes them to a console writer. Write errors are sticky: the first
// one is kept and surfaced by Close, later writes become no-ops.
type Logger struct {
	Path    string
	file    *os.File
	console io.Writer
	err     error
}

// NewLogger creates <dir>/<prefix>_analysis_<timestamp>.log, creating
// the directory if needed. If console is non-nil every line is echoed
// to it as well.
func NewLogger(dir, prefix string, now time.Time, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	name := fmt.Sprintf("%s_analysis_%s.log", prefix, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", path, err)
	}

	return &Logger{Path: path, file: file, console: console}, nil
}

// Logf writes one formatted line to the log.
func (l *Logger) Logf(format string, args ...interface{}) {
	l.write(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (l *Logger) Blank() {
	l.write("")
}

// Section writes a stage banner around a title.
func (l *Logger) Section(title string) {
	l.write(strings.Repeat("=", bannerWidth))
	l.write(title)
	l.write(strings.Repeat("=", bannerWidth))
}

// Rule writes a short dashed divider.
func (l *Logger) Rule() {
	l.write(strings.Repeat("-", ruleWidth))
}

func (l *Logger) write(line string) {
	if l.err != nil {
		return
	}
	if _, err := l.file.WriteString(line + "\n"); err != nil {
		l.err = fmt.Errorf("failed to write log %s: %w", l.Path, err)
		return
	}
	if l.console != nil {
		fmt.Fprintln(l.console, line)
	}
}

// Close closes the log file, returning the first write error if any.
func (l *Logger) Close() error {
	closeErr := l.file.Close()
	if l.err != nil {
		return l.err
	}
	return closeErr
}
