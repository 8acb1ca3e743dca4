package report

import (
	"fmt"
	"strings"

	"github.com/aadex/aadex-go/internal/database"
	"github.com/aadex/aadex-go/internal/frame"
)

// headPreviewRows is how many rows of each table the load report shows.
const headPreviewRows = 3

// Structure writes the schema report: every user table with its
// declared columns and current row count.
func Structure(db *database.DB, log *Logger) error {
	log.Section("INSPECTING DATABASE STRUCTURE")

	tables, err := database.Tables(db.DB)
	if err != nil {
		return err
	}

	log.Blank()
	log.Logf("Found %d table(s):", len(tables))
	log.Blank()

	for _, tableName := range tables {
		log.Logf("Table: %s", tableName)
		log.Rule()

		columns, err := database.TableColumns(db.DB, tableName)
		if err != nil {
			return err
		}
		for _, col := range columns {
			log.Logf("  %-30s %-10s", col.Name, col.Type)
		}

		count, err := database.RowCount(db.DB, tableName)
		if err != nil {
			return err
		}
		log.Blank()
		log.Logf("  Total rows: %d", count)
		log.Blank()
	}

	return nil
}

// LoadAll bulk-loads every user table into a frame and writes the
// load report: shape, column names, and a short row preview per table.
// The returned map is keyed by table name.
func LoadAll(db *database.DB, log *Logger) (map[string]*frame.Frame, error) {
	log.Section("LOADING TABLES INTO MEMORY")

	tables, err := database.Tables(db.DB)
	if err != nil {
		return nil, err
	}

	frames := make(map[string]*frame.Frame, len(tables))
	for _, tableName := range tables {
		f, err := frame.Load(db.DB, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", tableName, err)
		}
		frames[tableName] = f

		rows, cols := f.Shape()
		log.Blank()
		log.Logf("Table: %s", tableName)
		log.Logf("Shape: (%d, %d)", rows, cols)
		log.Logf("Columns: %s", strings.Join(f.ColumnNames(), ", "))
		log.Blank()
		log.Logf("%s", f.Head(headPreviewRows))
		log.Blank()
	}

	return frames, nil
}
