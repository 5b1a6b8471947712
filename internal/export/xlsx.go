package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/sadopc/katsayi/internal/calc"
)

const SheetName = "Hesap"

const (
	headerFill = "4F81BD"
	totalFill  = "D9E1F2"
)

// WriteXLSX writes the tabular document: a styled header, one line per row
// and a trailing total line.
func WriteXLSX(w io.Writer, rows []calc.Row, total decimal.Decimal) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d cell: %w", i+1, err)
		}
		values := []any{
			row.Record.City,
			formatDate(row.Record, false),
			formatDate(row.Record, true),
			row.TotalDays,
			row.Record.ReportedDays,
			row.NetDays,
			row.Record.Coefficient.InexactFloat64(),
			row.Rounded().InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	totalRow := len(rows) + 2
	if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", totalRow), TotalLabel); err != nil {
		return fmt.Errorf("write total label: %w", err)
	}
	if err := f.SetCellValue(SheetName, fmt.Sprintf("H%d", totalRow), total.InexactFloat64()); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	if err := styleRow(f, 1, &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	}); err != nil {
		return err
	}
	if err := styleRow(f, totalRow, &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalFill}},
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func styleRow(f *excelize.File, row int, style *excelize.Style) error {
	id, err := f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("new style: %w", err)
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	last, err := excelize.CoordinatesToCellName(len(Header), row)
	if err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	if err := f.SetCellStyle(SheetName, first, last, id); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}
