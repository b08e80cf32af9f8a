package pipeline

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

// normalizeTypes rewrites numeric-looking text columns, where every
// non-missing value parses as a number, into canonical numeric form.
// Columns mixing numbers and text are left as text.
type normalizeTypes struct{}

func (normalizeTypes) Name() string { return StageNormalizeTypes }

func (normalizeTypes) Enabled(opt Options) bool { return opt.NormalizeTypes }

func (normalizeTypes) Apply(ds *dataset.Dataset, log *Log) {
	for j := range ds.Columns {
		c := &ds.Columns[j]
		if profile.Classify(c.Cells) != profile.KindNumeric {
			continue
		}
		changed := 0
		for i, cell := range c.Cells {
			if dataset.IsMissing(cell) {
				continue
			}
			v, ok := profile.ParseNumber(cell)
			if !ok {
				continue
			}
			if canon := profile.FormatNumber(v); canon != cell {
				c.Cells[i] = canon
				changed++
			}
		}
		if changed > 0 {
			log.AddColumn(StageNormalizeTypes, c.Name, changed)
		}
	}
}
