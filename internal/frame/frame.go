// Package frame provides the in-memory tabular structure tables are
// bulk-loaded into.
package frame

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aadex/aadex-go/internal/database"
)

// maxCellWidth caps a rendered cell; longer values are truncated.
const maxCellWidth = 40

// Column is a frame column with the type declared in the schema.
// Frames built from ad-hoc query results carry an empty Type.
type Column struct {
	Name string
	Type string
}

// IsText reports whether the column stores free text. SQLite gives
// columns with no declared type no affinity, and the AAD schema uses
// that for text, so an empty type counts as text.
func (c Column) IsText() bool {
	t := strings.ToUpper(c.Type)
	if t == "" {
		return true
	}
	return strings.Contains(t, "TEXT") || strings.Contains(t, "CHAR") || strings.Contains(t, "CLOB")
}

// Frame holds an entire table (or query result) in memory.
// All values are kept as strings; NULL becomes the empty string.
type Frame struct {
	Table   string
	Columns []Column
	Rows    [][]string
}

// Load bulk-loads an entire table, keeping the declared column types.
func Load(db *sql.DB, tableName string) (*Frame, error) {
	cols, err := database.TableColumns(db, tableName)
	if err != nil {
		return nil, err
	}

	f, err := Query(db, fmt.Sprintf("SELECT * FROM %s", database.QuoteIdent(tableName)))
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", tableName, err)
	}

	f.Table = tableName
	for i := range f.Columns {
		if i < len(cols) {
			f.Columns[i].Type = cols[i].Type
		}
	}

	return f, nil
}

// Query runs a query and captures the full result set as a Frame.
// Column types are unknown for ad-hoc results and left empty.
func Query(db *sql.DB, query string) (*Frame, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	f := &Frame{Columns: make([]Column, len(names))}
	for i, name := range names {
		f.Columns[i] = Column{Name: name}
	}

	values := make([]interface{}, len(names))
	valuePtrs := make([]interface{}, len(names))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make([]string, len(names))
		for i, val := range values {
			record[i] = formatValue(val)
		}
		f.Rows = append(f.Rows, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return f, nil
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Shape returns the (rows, columns) dimensions of the frame.
func (f *Frame) Shape() (int, int) {
	return len(f.Rows), len(f.Columns)
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Head returns a frame holding the first n rows. The returned frame
// shares the underlying row data.
func (f *Frame) Head(n int) *Frame {
	if n > len(f.Rows) {
		n = len(f.Rows)
	}
	return &Frame{Table: f.Table, Columns: f.Columns, Rows: f.Rows[:n]}
}

// CleanText strips embedded line breaks from text-typed columns and
// trims surrounding whitespace, keeping exports one record per line.
func (f *Frame) CleanText() {
	for ci, col := range f.Columns {
		if !col.IsText() {
			continue
		}
		for _, row := range f.Rows {
			if ci >= len(row) {
				continue
			}
			s := strings.ReplaceAll(row[ci], "\n", " ")
			s = strings.ReplaceAll(s, "\r", " ")
			row[ci] = strings.TrimSpace(s)
		}
	}
}

// String renders the frame as an aligned text grid for the analysis log.
func (f *Frame) String() string {
	widths := make([]int, len(f.Columns))
	for i, c := range f.Columns {
		widths[i] = displayWidth(c.Name)
	}
	for _, row := range f.Rows {
		for i := range f.Columns {
			if i >= len(row) {
				continue
			}
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeGridRow(&b, f.ColumnNames(), widths)
	for _, row := range f.Rows {
		writeGridRow(&b, row, widths)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeGridRow(b *strings.Builder, cells []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncateCell(cells[i])
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			if pad := w - utf8.RuneCountInString(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
}

func displayWidth(s string) int {
	if n := utf8.RuneCountInString(s); n <= maxCellWidth {
		return n
	}
	return maxCellWidth
}

func truncateCell(s string) string {
	if utf8.RuneCountInString(s) <= maxCellWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxCellWidth-1]) + "…"
}
