package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
)

// WriteCSV serializes the dataset as comma-delimited text. Column order
// and row order are emitted exactly as stored, so identical datasets
// produce identical bytes.
func WriteCSV(d *Dataset, w io.Writer) error {
	if d.Cols() == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Headers()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < d.Rows(); i++ {
		if err := cw.Write(d.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the dataset to path atomically.
func SaveCSV(d *Dataset, path string) error {
	var buf bytes.Buffer
	if err := WriteCSV(d, &buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// WriteXLSX serializes the dataset as a single-sheet workbook.
func WriteXLSX(d *Dataset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for j, name := range d.Headers() {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetCellValue(sheet, col+"1", name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for i := 0; i < d.Rows(); i++ {
		for j, cell := range d.Row(i) {
			col, err := excelize.ColumnNumberToName(j + 1)
			if err != nil {
				return fmt.Errorf("column name: %w", err)
			}
			ref := fmt.Sprintf("%s%d", col, i+2)
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return fmt.Errorf("write cell %s: %w", ref, err)
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path atomically.
func SaveXLSX(d *Dataset, path string) error {
	var buf bytes.Buffer
	if err := WriteXLSX(d, &buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
