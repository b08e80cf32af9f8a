package dataset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

func TestWriteCSVStableBytes(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "plot", Cells: []string{"A1", "B3"}},
		{Name: "yield", Cells: []string{"42", ""}},
	}}
	var a, b bytes.Buffer
	if err := dataset.WriteCSV(ds, &a); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := dataset.WriteCSV(ds, &b); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("identical datasets produced different bytes")
	}
	want := "plot,yield\nA1,42\nB3,\n"
	if a.String() != want {
		t.Fatalf("csv = %q, want %q", a.String(), want)
	}
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&dataset.Dataset{}, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty dataset wrote %d bytes", buf.Len())
	}
}

func TestSaveCSVRoundTrip(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "name", Cells: []string{"ana", "ben"}},
		{Name: "score", Cells: []string{"91", "88"}},
	}}
	p := filepath.Join(t.TempDir(), "out.csv")
	if err := dataset.SaveCSV(ds, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if back.Rows() != 2 || back.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", back.Rows(), back.Cols())
	}
	if got := back.Columns[1].Cells[1]; got != "88" {
		t.Fatalf("cell = %q", got)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}

func TestSaveXLSXRoundTrip(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		{Name: "name", Cells: []string{"ana", "ben"}},
		{Name: "score", Cells: []string{"91", ""}},
	}}
	p := filepath.Join(t.TempDir(), "out.xlsx")
	if err := dataset.SaveXLSX(ds, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := dataset.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if back.Rows() != 2 || back.Cols() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", back.Rows(), back.Cols())
	}
	if got := back.Columns[0].Cells[1]; got != "ben" {
		t.Fatalf("cell = %q", got)
	}
	if got := back.Columns[1].Cells[1]; got != "" {
		t.Fatalf("missing cell = %q, want missing", got)
	}
}
