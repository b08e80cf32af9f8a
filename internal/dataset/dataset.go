package dataset

import (
	"fmt"
	"strings"
)

// Column is one named column of cell values. Cells are stored as text;
// the empty string marks a missing value.
type Column struct {
	Name  string
	Cells []string
}

// Dataset is an ordered collection of columns sharing one row count.
type Dataset struct {
	// Source is the base filename the dataset was loaded from, if any.
	Source  string
	Columns []Column
}

// IsMissing reports whether a cell holds no value. Whitespace-only cells
// count as missing.
func IsMissing(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// Cols returns the number of columns.
func (d *Dataset) Cols() int {
	return len(d.Columns)
}

// Headers returns the column names in order.
func (d *Dataset) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// Row assembles row i across all columns.
func (d *Dataset) Row(i int) []string {
	out := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		out[j] = c.Cells[i]
	}
	return out
}

// RowKey returns a canonical key for row i. Missing cells compare equal
// regardless of their raw spelling, so whitespace-only and empty cells
// collide as intended.
func (d *Dataset) RowKey(i int) string {
	parts := make([]string, len(d.Columns))
	for j, c := range d.Columns {
		cell := c.Cells[i]
		if IsMissing(cell) {
			cell = ""
		}
		parts[j] = cell
	}
	return strings.Join(parts, "\x1f")
}

// Clone returns a deep copy sharing no cell storage with the receiver.
func (d *Dataset) Clone() *Dataset {
	cp := &Dataset{Source: d.Source, Columns: make([]Column, len(d.Columns))}
	for i, c := range d.Columns {
		cells := make([]string, len(c.Cells))
		copy(cells, c.Cells)
		cp.Columns[i] = Column{Name: c.Name, Cells: cells}
	}
	return cp
}

// fromRecords builds a Dataset from a header row plus data rows.
// Header names are trimmed; blank headers get positional names.
// Whitespace-only cells normalize to the missing marker.
// If padShort is true, short rows are extended with missing cells
// (spreadsheet readers elide trailing empties); otherwise row width
// must match the header exactly.
func fromRecords(records [][]string, padShort bool) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := records[0]
	ncol := len(header)
	for _, rec := range records[1:] {
		if len(rec) > ncol {
			ncol = len(rec)
		}
	}
	ds := &Dataset{Columns: make([]Column, ncol)}
	for i := 0; i < ncol; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		ds.Columns[i] = Column{Name: name, Cells: make([]string, 0, len(records)-1)}
	}
	for n, rec := range records[1:] {
		if len(rec) < ncol && !padShort {
			return nil, fmt.Errorf("row %d has %d fields, want %d", n+2, len(rec), ncol)
		}
		for i := 0; i < ncol; i++ {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			if IsMissing(cell) {
				cell = ""
			}
			ds.Columns[i].Cells = append(ds.Columns[i].Cells, cell)
		}
	}
	return ds, nil
}
