package pipeline

import (
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

// removeDuplicates drops rows whose cells all compare equal to an
// earlier row, missing-equals-missing. The first occurrence survives in
// original row order.
type removeDuplicates struct{}

func (removeDuplicates) Name() string { return StageRemoveDuplicates }

func (removeDuplicates) Enabled(opt Options) bool { return opt.RemoveDuplicates }

func (removeDuplicates) Apply(ds *dataset.Dataset, log *Log) {
	rows := ds.Rows()
	if rows == 0 {
		return
	}
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := ds.RowKey(i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}
	removed := rows - len(keep)
	if removed == 0 {
		return
	}
	for j := range ds.Columns {
		cells := make([]string, 0, len(keep))
		for _, i := range keep {
			cells = append(cells, ds.Columns[j].Cells[i])
		}
		ds.Columns[j].Cells = cells
	}
	log.AddRow(StageRemoveDuplicates, removed)
}
