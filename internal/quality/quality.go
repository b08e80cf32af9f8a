package quality

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

// Sub-metric weights for the composite score. Equal thirds.
const (
	WeightCompleteness = 1.0 / 3
	WeightUniqueness   = 1.0 / 3
	WeightConsistency  = 1.0 / 3
)

// Breakdown carries the quality sub-metrics, each in [0,1].
type Breakdown struct {
	Completeness float64 `json:"completeness"`
	Uniqueness   float64 `json:"uniqueness"`
	Consistency  float64 `json:"consistency"`
}

// Score combines the sub-metrics into a composite in [0,100].
func (b Breakdown) Score() float64 {
	return 100 * (WeightCompleteness*b.Completeness +
		WeightUniqueness*b.Uniqueness +
		WeightConsistency*b.Consistency)
}

// Evaluate computes the sub-metrics for a dataset snapshot. Degenerate
// denominators resolve to a perfect sub-metric, so an empty dataset
// scores 100: nothing to improve.
func Evaluate(ds *dataset.Dataset) Breakdown {
	b := Breakdown{Completeness: 1, Uniqueness: 1, Consistency: 1}
	if total := ds.Rows() * ds.Cols(); total > 0 {
		missing := 0
		for _, c := range ds.Columns {
			for _, cell := range c.Cells {
				if dataset.IsMissing(cell) {
					missing++
				}
			}
		}
		b.Completeness = 1 - float64(missing)/float64(total)
	}
	if rows := ds.Rows(); rows > 0 {
		b.Uniqueness = float64(rows-DuplicateRows(ds)) / float64(rows)
	}
	if ds.Cols() > 0 {
		consistent := 0
		for _, c := range ds.Columns {
			if profile.Column(c.Name, c.Cells).Consistent() {
				consistent++
			}
		}
		b.Consistency = float64(consistent) / float64(ds.Cols())
	}
	return b
}

// Score computes the composite quality score for a dataset snapshot.
// Deterministic given the same content; no side effects.
func Score(ds *dataset.Dataset) float64 {
	return Evaluate(ds).Score()
}

// DuplicateRows counts rows that repeat an earlier row exactly.
func DuplicateRows(ds *dataset.Dataset) int {
	seen := make(map[string]struct{}, ds.Rows())
	dups := 0
	for i := 0; i < ds.Rows(); i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
