package pipeline

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

// fillMissing imputes missing cells per column: numeric columns take
// the column median, categorical and text columns take the mode. A
// column with no values at all is left as-is and flagged unfillable.
type fillMissing struct{}

func (fillMissing) Name() string { return StageFillMissing }

func (fillMissing) Enabled(opt Options) bool { return opt.FillMissing }

func (fillMissing) Apply(ds *dataset.Dataset, log *Log) {
	for j := range ds.Columns {
		c := &ds.Columns[j]
		p := profile.Column(c.Name, c.Cells)
		if p.Missing == 0 {
			continue
		}
		if p.Kind == profile.KindEmpty {
			log.AddWarning(StageFillMissing, c.Name, NoteUnfillable)
			continue
		}
		fill := p.Mode
		if p.Kind == profile.KindNumeric {
			fill = profile.FormatNumber(p.Median)
		}
		filled := 0
		for i, cell := range c.Cells {
			if dataset.IsMissing(cell) {
				c.Cells[i] = fill
				filled++
			}
		}
		log.AddColumn(StageFillMissing, c.Name, filled)
	}
}
