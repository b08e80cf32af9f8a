package profile

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

// Kind classifies a column by its non-missing cell values.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindText        Kind = "text"
	KindEmpty       Kind = "empty"
)

// categoricalDistinctRatio is the distinct/non-missing ratio at or below
// which a non-numeric column counts as categorical rather than free text.
const categoricalDistinctRatio = 0.5

// iqrFactor scales the interquartile range when deriving outlier bounds.
const iqrFactor = 1.5

// ColumnProfile is a read-only summary of one column, recomputed on
// demand and never persisted.
type ColumnProfile struct {
	Name        string  `json:"name"`
	Kind        Kind    `json:"kind"`
	Rows        int     `json:"rows"`
	Missing     int     `json:"missing"`
	MissingFrac float64 `json:"missing_frac"`
	Distinct    int     `json:"distinct"`
	// Mixed is true when numeric and text values coexist in the column.
	Mixed bool `json:"mixed"`
	// Mode is the most frequent non-missing value; ties break toward the
	// first-encountered value in column order.
	Mode      string `json:"mode,omitempty"`
	ModeCount int    `json:"mode_count,omitempty"`
	// Numeric stats, set only for KindNumeric.
	Min        float64 `json:"min,omitempty"`
	Max        float64 `json:"max,omitempty"`
	Mean       float64 `json:"mean,omitempty"`
	Q1         float64 `json:"q1,omitempty"`
	Median     float64 `json:"median,omitempty"`
	Q3         float64 `json:"q3,omitempty"`
	IQR        float64 `json:"iqr,omitempty"`
	LowerBound float64 `json:"lower_bound,omitempty"`
	UpperBound float64 `json:"upper_bound,omitempty"`
}

// Consistent reports whether the column conforms to a single inferred
// type. Empty columns are vacuously consistent.
func (p ColumnProfile) Consistent() bool { return !p.Mixed }

// ParseNumber reports whether a cell holds a plain numeric value and
// returns it. Only unadorned numerals parse: no thousands separators,
// percent signs, or units. Non-finite literals do not count.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber renders a numeric value in the canonical cell form used
// when the pipeline writes values back.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Classify returns the tagged kind for a column of cells.
func Classify(cells []string) Kind {
	return Column("", cells).Kind
}

// Column profiles a single column.
func Column(name string, cells []string) ColumnProfile {
	p := ColumnProfile{Name: name, Rows: len(cells)}
	counts := make(map[string]int)
	var nums []float64
	numCnt, txtCnt := 0, 0
	for _, cell := range cells {
		if dataset.IsMissing(cell) {
			p.Missing++
			continue
		}
		counts[cell]++
		if v, ok := ParseNumber(cell); ok {
			numCnt++
			nums = append(nums, v)
		} else {
			txtCnt++
		}
	}
	if p.Rows > 0 {
		p.MissingFrac = float64(p.Missing) / float64(p.Rows)
	}
	p.Distinct = len(counts)
	p.Mixed = numCnt > 0 && txtCnt > 0

	// Mode by count, first occurrence wins ties.
	for _, cell := range cells {
		if dataset.IsMissing(cell) {
			continue
		}
		if n := counts[cell]; n > p.ModeCount {
			p.Mode = cell
			p.ModeCount = n
		}
	}

	nonMissing := p.Rows - p.Missing
	switch {
	case nonMissing == 0:
		p.Kind = KindEmpty
	case txtCnt == 0:
		p.Kind = KindNumeric
		sort.Float64s(nums)
		p.Min = nums[0]
		p.Max = nums[len(nums)-1]
		sum := 0.0
		for _, v := range nums {
			sum += v
		}
		p.Mean = sum / float64(len(nums))
		p.Q1 = closestRank(nums, 0.25)
		p.Median = quantile(nums, 0.5)
		p.Q3 = closestRank(nums, 0.75)
		p.IQR = p.Q3 - p.Q1
		p.LowerBound = p.Q1 - iqrFactor*p.IQR
		p.UpperBound = p.Q3 + iqrFactor*p.IQR
	case float64(p.Distinct) <= categoricalDistinctRatio*float64(nonMissing):
		p.Kind = KindCategorical
	default:
		p.Kind = KindText
	}
	return p
}

// Columns profiles every column of a dataset in order.
func Columns(ds *dataset.Dataset) []ColumnProfile {
	out := make([]ColumnProfile, 0, ds.Cols())
	for _, c := range ds.Columns {
		out = append(out, Column(c.Name, c.Cells))
	}
	return out
}

// closestRank returns the order statistic nearest to position q*(n-1).
// Quartiles are exact data points, so IQR bounds do not move when
// outliers are clipped onto them and a second clipping pass finds
// nothing left to do.
func closestRank(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(math.Round(q * float64(len(sorted)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// quantile returns the q-quantile of a sorted slice using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Median returns the median of the numeric values among cells, and
// whether any numeric value was present.
func Median(cells []string) (float64, bool) {
	var nums []float64
	for _, cell := range cells {
		if dataset.IsMissing(cell) {
			continue
		}
		if v, ok := ParseNumber(cell); ok {
			nums = append(nums, v)
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	sort.Float64s(nums)
	return quantile(nums, 0.5), true
}
