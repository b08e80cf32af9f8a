package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
)

// Stage name constants, also used in action log entries.
const (
	StageDropEmptyColumns = "drop_empty_columns"
	StageRemoveDuplicates = "remove_duplicates"
	StageFillMissing      = "fill_missing"
	StageClipOutliers     = "clip_outliers"
	StageNormalizeTypes   = "normalize_types"
)

// Options toggles individual cleaning stages. Stage order is fixed
// regardless of which subset is enabled.
type Options struct {
	DropEmptyColumns bool `json:"drop_empty_columns" mapstructure:"drop_empty_columns"`
	RemoveDuplicates bool `json:"remove_duplicates" mapstructure:"remove_duplicates"`
	FillMissing      bool `json:"fill_missing" mapstructure:"fill_missing"`
	HandleOutliers   bool `json:"handle_outliers" mapstructure:"handle_outliers"`
	NormalizeTypes   bool `json:"normalize_types" mapstructure:"normalize_types"`
}

// DefaultOptions enables every stage.
func DefaultOptions() Options {
	return Options{
		DropEmptyColumns: true,
		RemoveDuplicates: true,
		FillMissing:      true,
		HandleOutliers:   true,
		NormalizeTypes:   true,
	}
}

// Stage is one cleaning transformation. Stages may not fail: conditions
// a stage cannot act on become warning entries in the log.
type Stage interface {
	Name() string
	Enabled(opt Options) bool
	Apply(ds *dataset.Dataset, log *Log)
}

// stages run in this fixed order. Options only enable or disable.
var stages = []Stage{
	dropEmptyColumns{},
	removeDuplicates{},
	fillMissing{},
	clipOutliers{},
	normalizeTypes{},
}

// Clean runs the enabled stages over a copy of ds and returns the
// cleaned dataset with the action log. The input dataset is not
// modified. The context is checked between stages only; a cancelled
// context aborts the remaining stages and returns what has been done
// so far alongside the error.
func Clean(ctx context.Context, ds *dataset.Dataset, opt Options) (*dataset.Dataset, *Log, error) {
	out := ds.Clone()
	log := &Log{}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return out, log, fmt.Errorf("pipeline aborted before %s: %w", st.Name(), err)
		}
		if !st.Enabled(opt) {
			continue
		}
		before := len(log.Entries)
		st.Apply(out, log)
		slog.Debug("stage complete",
			"stage", st.Name(),
			"rows", out.Rows(),
			"columns", out.Cols(),
			"entries", len(log.Entries)-before)
	}
	return out, log, nil
}
