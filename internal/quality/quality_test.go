package quality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/quality"
)

func col(name string, cells ...string) dataset.Column {
	return dataset.Column{Name: name, Cells: cells}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := quality.WeightCompleteness + quality.WeightUniqueness + quality.WeightConsistency
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScoreEmptyDataset(t *testing.T) {
	tests := []struct {
		name string
		ds   *dataset.Dataset
	}{
		{"no columns", &dataset.Dataset{}},
		{"header only", &dataset.Dataset{Columns: []dataset.Column{col("a"), col("b")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 100.0, quality.Score(tt.ds), 1e-9)
		})
	}
}

func TestScoreCleanDataset(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("id", "1", "2", "3"),
		col("tag", "a", "b", "c"),
	}}
	assert.InDelta(t, 100.0, quality.Score(ds), 1e-9)
}

func TestScoreStaysInRange(t *testing.T) {
	tests := []struct {
		name string
		ds   *dataset.Dataset
	}{
		{"all missing", &dataset.Dataset{Columns: []dataset.Column{col("a", "", "", "")}}},
		{"all duplicate", &dataset.Dataset{Columns: []dataset.Column{col("a", "x", "x", "x")}}},
		{"mixed types", &dataset.Dataset{Columns: []dataset.Column{col("a", "1", "two", "3")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := quality.Score(tt.ds)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		})
	}
}

func TestCompleteness(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "", "3", " "),
	}}
	b := quality.Evaluate(ds)
	// Two of four cells missing, whitespace-only included.
	assert.InDelta(t, 0.5, b.Completeness, 1e-9)
}

func TestCompletenessAllMissingColumn(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "", ""),
		col("b", "1", "2"),
	}}
	b := quality.Evaluate(ds)
	assert.InDelta(t, 0.5, b.Completeness, 1e-9)
}

func TestUniqueness(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "x", "y", "x", "z"),
		col("b", "1", "2", "1", "3"),
	}}
	b := quality.Evaluate(ds)
	assert.InDelta(t, 0.75, b.Uniqueness, 1e-9)
	assert.Equal(t, 1, quality.DuplicateRows(ds))
}

func TestDuplicateRowsMissingEqualsMissing(t *testing.T) {
	// A whitespace-only cell and an empty cell are the same missing value.
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "x", "x"),
		col("b", "", "  "),
	}}
	assert.Equal(t, 1, quality.DuplicateRows(ds))
}

func TestConsistency(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("clean", "1", "2", "3"),
		col("mixed", "1", "two", "3"),
	}}
	b := quality.Evaluate(ds)
	assert.InDelta(t, 0.5, b.Consistency, 1e-9)
}

func TestScoreDeterministic(t *testing.T) {
	ds := &dataset.Dataset{Columns: []dataset.Column{
		col("a", "1", "", "1"),
		col("b", "x", "y", "x"),
	}}
	assert.Equal(t, quality.Score(ds), quality.Score(ds))
}
