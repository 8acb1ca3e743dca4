package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aadex/aadex-go/internal/frame"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

// writeXLSX writes a frame as a single-sheet workbook named after the
// table.
func writeXLSX(f *frame.Frame, path string) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	if name := sheetName(f.Table); name != "" {
		if err := book.SetSheetName(sheet, name); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
		sheet = name
	}

	header := toCells(f.ColumnNames())
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range f.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		cells := toCells(row)
		if err := book.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func sheetName(tableName string) string {
	runes := []rune(tableName)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	return string(runes)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
