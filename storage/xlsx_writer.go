package storage

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter collects rows into a single-sheet workbook that is written to
// the destination on Close. Cells that parse as numbers are stored as
// numbers so spreadsheet sorting works.
type XLSXWriter struct {
	dst   io.Writer
	file  *excelize.File
	sheet string
	row   int
}

// NewXLSXWriter starts a workbook whose only sheet is named sheet and whose
// first row is header.
func NewXLSXWriter(dst io.Writer, sheet string, header []string) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	xw := &XLSXWriter{dst: dst, file: f, sheet: sheet, row: 1}
	if err := xw.writeRow(header, false); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: freeze header: %w", err)
	}
	return xw, nil
}

// Write appends rows.
func (x *XLSXWriter) Write(records [][]string) error {
	for _, rec := range records {
		if err := x.writeRow(rec, true); err != nil {
			return err
		}
	}
	return nil
}

func (x *XLSXWriter) writeRow(rec []string, numeric bool) error {
	cell, err := excelize.CoordinatesToCellName(1, x.row)
	if err != nil {
		return fmt.Errorf("xlsx: row %d: %w", x.row, err)
	}
	values := make([]interface{}, len(rec))
	for i, v := range rec {
		values[i] = v
		if numeric {
			if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
				values[i] = f
			}
		}
	}
	if err := x.file.SetSheetRow(x.sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: write row %d: %w", x.row, err)
	}
	x.row++
	return nil
}

// Close writes the workbook to the destination.
func (x *XLSXWriter) Close() error {
	defer x.file.Close()
	if err := x.file.Write(x.dst); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}
