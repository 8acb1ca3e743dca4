// Package config provides configuration types and parsing for aadex.
package config

import (
	"fmt"
	"strings"
)

// Format is an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// Config holds all configuration options for a run.
type Config struct {
	DBPath      string
	LogDir      string
	OutDir      string
	AttackTable string // Table the aggregate reports run against
	Prefix      string // Filename prefix for logs and exports
	Format      Format
	Compress    bool
	SampleRows  int
	TopGroups   int
	Verbose     bool
	SkipExport  bool
}

// ParseFormat converts a format string to a Format.
// Valid values: "csv", "tsv", "xlsx", "excel".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("invalid format: %s (use 'csv', 'tsv', or 'xlsx')", s)
	}
}

// Delimiter returns the field delimiter for delimited formats.
func (f Format) Delimiter() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("must specify a database file (--db)")
	}
	if c.AttackTable == "" {
		return fmt.Errorf("attack table name must not be empty")
	}
	if c.SampleRows < 1 {
		return fmt.Errorf("sample row count must be at least 1, got %d", c.SampleRows)
	}
	if c.TopGroups < 1 {
		return fmt.Errorf("group limit must be at least 1, got %d", c.TopGroups)
	}
	if c.Compress && c.Format == FormatXLSX {
		return fmt.Errorf("--compress applies to csv/tsv output only")
	}
	return nil
}
