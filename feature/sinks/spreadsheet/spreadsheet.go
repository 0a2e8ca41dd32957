package spreadsheet

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"data-extractor/core/fault"
	"data-extractor/core/table"

	"github.com/xuri/excelize/v2"
)

// Backend names this sink in diagnostics.
const Backend = "xlsx"

// SheetName is the single worksheet every workbook carries.
const SheetName = "Sheet1"

// CheckPath rejects output paths that do not end in .xlsx.
func CheckPath(path string) error {
	if path == "" {
		return fault.Configuration(Backend, "output path is required")
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fault.Configuration(Backend, "output path %q must end in .xlsx", path)
	}
	return nil
}

// Write stores t at path: header row first, then data rows in order.
func Write(path string, t *table.Table) error {
	if err := CheckPath(path); err != nil {
		return err
	}

	f, err := build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fault.Sink(Backend, fmt.Errorf("failed to save %s: %w", path, err))
	}
	return nil
}

// Encode returns the workbook bytes for t, for uploads that never touch disk.
func Encode(t *table.Table) (*bytes.Buffer, error) {
	f, err := build(t)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fault.Sink(Backend, fmt.Errorf("failed to encode workbook: %w", err))
	}
	return buf, nil
}

func build(t *table.Table) (*excelize.File, error) {
	if t == nil {
		return nil, fault.Sink(Backend, fmt.Errorf("table is nil"))
	}
	if err := t.Validate(); err != nil {
		return nil, fault.Sink(Backend, err)
	}

	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		_ = f.Close()
		return nil, fault.Sink(Backend, err)
	}

	// Zero headers with zero rows writes an empty sheet.
	if len(t.Headers) > 0 {
		if err := writeRow(sw, 1, t.Headers); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	for i, row := range t.Rows {
		if err := writeRow(sw, i+2, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		_ = f.Close()
		return nil, fault.Sink(Backend, err)
	}
	return f, nil
}

func writeRow(sw *excelize.StreamWriter, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fault.Sink(Backend, err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := sw.SetRow(cell, values); err != nil {
		return fault.Sink(Backend, fmt.Errorf("failed to write row %d: %w", n, err))
	}
	return nil
}

// Read loads the first worksheet of the workbook at path. The first row is
// the header row; data rows are padded with "" to the header width.
func Read(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fault.Sink(Backend, fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer f.Close()

	rows, err := f.Rows(f.GetSheetName(0))
	if err != nil {
		return nil, fault.Sink(Backend, err)
	}
	defer rows.Close()

	var t *table.Table
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fault.Sink(Backend, err)
		}
		if t == nil {
			t = table.New(cells)
			continue
		}
		if len(cells) > len(t.Headers) {
			return nil, fault.Sink(Backend, &table.RowWidthError{Index: t.Len(), Got: len(cells), Want: len(t.Headers)})
		}
		row := make([]string, len(t.Headers))
		copy(row, cells)
		if err := t.AppendRow(row); err != nil {
			return nil, fault.Sink(Backend, err)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fault.Sink(Backend, err)
	}

	if t == nil {
		return table.Empty(), nil
	}
	return t, nil
}
