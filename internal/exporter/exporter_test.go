package exporter

import (
	"compress/gzip"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aadex/aadex-go/internal/config"
	"github.com/aadex/aadex-go/internal/database"
)

var testStamp = time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)

// openTestDB seeds a two-table database with newline-laden text and
// opens it read-only.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}

	stmts := []string{
		`CREATE TABLE "Automotive Security Attacks" (
			"Attack ID" TEXT,
			"Description" TEXT,
			"Severity" INTEGER
		)`,
		`INSERT INTO "Automotive Security Attacks" VALUES
			('AAD-0001', 'Line one' || char(10) || 'line two', 3),
			('AAD-0002', '  padded ' || char(13) || ' value ', 5)`,
		`CREATE TABLE "References" ("Attack ID" TEXT, "URL" TEXT)`,
		`INSERT INTO "References" VALUES ('AAD-0001', 'https://example.com/1')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Exec(%q) error = %v", stmt, err)
		}
	}
	db.Close()

	rdb, err := database.Open(path)
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	return rdb
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		name     string
		format   config.Format
		compress bool
		table    string
		want     string
	}{
		{"csv", config.FormatCSV, false, "Automotive Security Attacks",
			"AAD_Automotive_Security_Attacks_20260827_143005.csv"},
		{"tsv", config.FormatTSV, false, "References",
			"AAD_References_20260827_143005.tsv"},
		{"compressed csv", config.FormatCSV, true, "References",
			"AAD_References_20260827_143005.csv.gz"},
		{"xlsx never compressed", config.FormatXLSX, true, "References",
			"AAD_References_20260827_143005.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{
				OutDir:   "out",
				Prefix:   "AAD",
				Format:   tt.format,
				Compress: tt.compress,
				Stamp:    testStamp,
			}
			got := opts.FilePath(tt.table)
			want := filepath.Join("out", tt.want)
			if got != want {
				t.Errorf("FilePath(%q) = %q, want %q", tt.table, got, want)
			}
		})
	}
}

func TestExportAllCSV(t *testing.T) {
	db := openTestDB(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	results, err := ExportAll(db, Options{
		OutDir: outDir,
		Prefix: "AAD",
		Format: config.FormatCSV,
		Stamp:  testStamp,
	})
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	attacks := results[0]
	if attacks.Table != "Automotive Security Attacks" {
		t.Errorf("results[0].Table = %q", attacks.Table)
	}
	if attacks.Rows != 2 || attacks.Columns != 3 {
		t.Errorf("results[0] shape = (%d, %d), want (2, 3)", attacks.Rows, attacks.Columns)
	}

	file, err := os.Open(attacks.Path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", attacks.Path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}
	if records[0][1] != "Description" {
		t.Errorf("Header[1] = %q, want %q", records[0][1], "Description")
	}

	// Newlines stripped and whitespace trimmed in text columns
	if records[1][1] != "Line one line two" {
		t.Errorf("Description = %q, want newline stripped", records[1][1])
	}
	if records[2][1] != "padded   value" {
		t.Errorf("Description = %q, want trimmed", records[2][1])
	}
}

func TestExportAllTSV(t *testing.T) {
	db := openTestDB(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	results, err := ExportAll(db, Options{
		OutDir: outDir,
		Prefix: "AAD",
		Format: config.FormatTSV,
		Stamp:  testStamp,
	})
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	data, err := os.ReadFile(results[1].Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "Attack ID\tURL") {
		t.Errorf("Expected tab-delimited header, got %q", string(data))
	}
}

func TestExportAllCompressed(t *testing.T) {
	db := openTestDB(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	results, err := ExportAll(db, Options{
		OutDir:   outDir,
		Prefix:   "AAD",
		Format:   config.FormatCSV,
		Compress: true,
		Stamp:    testStamp,
	})
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	path := results[1].Path
	if !strings.HasSuffix(path, ".csv.gz") {
		t.Fatalf("Expected .csv.gz path, got %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	defer gz.Close()

	records, err := csv.NewReader(gz).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected header + 1 row, got %d records", len(records))
	}
}

func TestExportAllXLSX(t *testing.T) {
	db := openTestDB(t)
	outDir := filepath.Join(t.TempDir(), "exports")

	results, err := ExportAll(db, Options{
		OutDir: outDir,
		Prefix: "AAD",
		Format: config.FormatXLSX,
		Stamp:  testStamp,
	})
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	book, err := excelize.OpenFile(results[0].Path)
	if err != nil {
		t.Fatalf("excelize.OpenFile() error = %v", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(0)
	if sheet != "Automotive Security Attacks" {
		t.Errorf("Sheet name = %q, want table name", sheet)
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "AAD-0001" {
		t.Errorf("Cell A2 = %q, want %q", rows[1][0], "AAD-0001")
	}
}

func TestExportAllCreatesOutputDir(t *testing.T) {
	db := openTestDB(t)
	outDir := filepath.Join(t.TempDir(), "nested", "exports")

	if _, err := ExportAll(db, Options{
		OutDir: outDir,
		Prefix: "AAD",
		Format: config.FormatCSV,
		Stamp:  testStamp,
	}); err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		t.Error("Expected output directory to be created")
	}
}
