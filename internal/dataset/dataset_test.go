package dataset_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReadFileCSV(t *testing.T) {
	p := writeTemp(t, "crops.csv", " name ,yield,notes\n"+
		"wheat,42,  \n"+
		"rye,,ok\n")
	ds, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := ds.Headers(); got[0] != "name" || got[1] != "yield" || got[2] != "notes" {
		t.Fatalf("headers not trimmed: %v", got)
	}
	if ds.Rows() != 2 || ds.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", ds.Rows(), ds.Cols())
	}
	if ds.Source != "crops.csv" {
		t.Fatalf("source = %q", ds.Source)
	}
	// Whitespace-only and empty cells normalize to the missing marker.
	if got := ds.Columns[2].Cells[0]; got != "" {
		t.Fatalf("blank cell = %q, want missing", got)
	}
	if got := ds.Columns[1].Cells[1]; got != "" {
		t.Fatalf("empty cell = %q, want missing", got)
	}
}

func TestReadFileTSV(t *testing.T) {
	p := writeTemp(t, "plots.tsv", "plot\tarea\nA1\t10\nB3\t12\n")
	ds, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Rows() != 2 || ds.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", ds.Rows(), ds.Cols())
	}
	if got := ds.Columns[0].Cells[1]; got != "B3" {
		t.Fatalf("cell = %q", got)
	}
}

func TestReadFileCSVWithBOM(t *testing.T) {
	p := writeTemp(t, "bom.csv", "\xef\xbb\xbfid,v\n1,2\n")
	ds, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := ds.Headers()[0]; got != "id" {
		t.Fatalf("header = %q, want id", got)
	}
}

func TestReadFileRaggedCSV(t *testing.T) {
	p := writeTemp(t, "bad.csv", "a,b,c\n1,2\n")
	_, err := dataset.ReadFile(p)
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
	var in *dataset.InputError
	if !errors.As(err, &in) {
		t.Fatalf("error type = %T, want *InputError", err)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	p := writeTemp(t, "doc.pdf", "%PDF-1.4")
	_, err := dataset.ReadFile(p)
	if !errors.Is(err, dataset.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestBlankHeadersGetPositionalNames(t *testing.T) {
	p := writeTemp(t, "anon.csv", "a,,c\n1,2,3\n")
	ds, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := ds.Headers()[1]; got != "column_2" {
		t.Fatalf("generated header = %q, want column_2", got)
	}
}

func TestReadNamedXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, v := range []string{"name", "score", "grade"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, col+"1", v); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	// Second row is short: trailing empty cells are elided by the format.
	f.SetCellValue(sheet, "A2", "ana")
	f.SetCellValue(sheet, "B2", 91)
	f.SetCellValue(sheet, "C2", "A")
	f.SetCellValue(sheet, "A3", "ben")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	ds, err := dataset.ReadNamed("scores.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Rows() != 2 || ds.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", ds.Rows(), ds.Cols())
	}
	if got := ds.Columns[1].Cells[0]; got != "91" {
		t.Fatalf("numeric cell = %q", got)
	}
	// Short row padded with missing cells.
	if got := ds.Columns[1].Cells[1]; got != "" {
		t.Fatalf("padded cell = %q, want missing", got)
	}
}

func TestClone(t *testing.T) {
	p := writeTemp(t, "c.csv", "x,y\n1,2\n")
	ds, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	cp := ds.Clone()
	cp.Columns[0].Cells[0] = "9"
	if ds.Columns[0].Cells[0] != "1" {
		t.Fatal("clone shares cell storage with original")
	}
}
