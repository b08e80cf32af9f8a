package pipeline

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

// dropEmptyColumns removes columns whose every cell is missing or
// whitespace-only. Removal is unconditional once the stage is enabled.
type dropEmptyColumns struct{}

func (dropEmptyColumns) Name() string { return StageDropEmptyColumns }

func (dropEmptyColumns) Enabled(opt Options) bool { return opt.DropEmptyColumns }

func (dropEmptyColumns) Apply(ds *dataset.Dataset, log *Log) {
	// A zero-row dataset has no cells to judge; keep its columns.
	if ds.Rows() == 0 {
		return
	}
	kept := ds.Columns[:0]
	for _, c := range ds.Columns {
		if emptyColumn(c) {
			log.AddColumn(StageDropEmptyColumns, c.Name, len(c.Cells))
			continue
		}
		kept = append(kept, c)
	}
	ds.Columns = kept
}

func emptyColumn(c dataset.Column) bool {
	for _, cell := range c.Cells {
		if !dataset.IsMissing(cell) {
			return false
		}
	}
	return true
}
