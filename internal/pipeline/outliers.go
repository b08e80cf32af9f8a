package pipeline

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

// clipOutliers bounds numeric columns to [Q1-1.5*IQR, Q3+1.5*IQR].
// Values outside the bounds are clipped to the nearest bound, not
// removed. Constant columns (IQR of zero) are skipped.
type clipOutliers struct{}

func (clipOutliers) Name() string { return StageClipOutliers }

func (clipOutliers) Enabled(opt Options) bool { return opt.HandleOutliers }

func (clipOutliers) Apply(ds *dataset.Dataset, log *Log) {
	for j := range ds.Columns {
		c := &ds.Columns[j]
		p := profile.Column(c.Name, c.Cells)
		if p.Kind != profile.KindNumeric || p.IQR == 0 {
			continue
		}
		clipped := 0
		for i, cell := range c.Cells {
			if dataset.IsMissing(cell) {
				continue
			}
			v, ok := profile.ParseNumber(cell)
			if !ok {
				continue
			}
			switch {
			case v < p.LowerBound:
				c.Cells[i] = profile.FormatNumber(p.LowerBound)
				clipped++
			case v > p.UpperBound:
				c.Cells[i] = profile.FormatNumber(p.UpperBound)
				clipped++
			}
		}
		if clipped > 0 {
			log.AddColumn(StageClipOutliers, c.Name, clipped)
		}
	}
}
