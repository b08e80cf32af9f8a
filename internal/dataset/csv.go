package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (csvReader) Read(content []byte) (*Dataset, error) {
	return readDelimited(content, ',')
}

type tsvReader struct{}

func (tsvReader) CanRead(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".tsv")
}

func (tsvReader) Read(content []byte) (*Dataset, error) {
	return readDelimited(content, '\t')
}

func readDelimited(content []byte, comma rune) (*Dataset, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")) // UTF-8 BOM
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = comma
	// Default FieldsPerRecord rejects ragged rows, which keeps the
	// rectangular invariant without a second pass.
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	return fromRecords(records, false)
}
