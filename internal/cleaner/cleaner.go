package cleaner

import (
	"context"
	"log/slog"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/narrative"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/quality"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/report"
)

// Cleaner runs the full flow: score, clean, score again, narrate,
// assemble the report. A nil Narrative produces templated prose only.
type Cleaner struct {
	Options   pipeline.Options
	Narrative narrative.Generator
}

// Result holds the cleaned dataset and its report.
type Result struct {
	Dataset *dataset.Dataset
	Report  *report.Report
}

// RunFile loads a tabular file and cleans it.
func (c *Cleaner) RunFile(ctx context.Context, path string) (*Result, error) {
	ds, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, ds)
}

// Run cleans ds and returns the cleaned copy with a full report. The
// input dataset is not modified. Returns an error only when the run is
// aborted via ctx.
func (c *Cleaner) Run(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	before := quality.Evaluate(ds)
	issuesIn := narrative.Input{
		Source:      ds.Source,
		Profiles:    profile.Columns(ds),
		ScoreBefore: before.Score(),
		RowsBefore:  ds.Rows(),
		ColsBefore:  ds.Cols(),
	}

	cleaned, log, err := pipeline.Clean(ctx, ds, c.Options)
	if err != nil {
		return nil, err
	}

	after := quality.Evaluate(cleaned)
	rep := report.New(ds.Source)
	rep.RowsBefore, rep.RowsAfter = ds.Rows(), cleaned.Rows()
	rep.ColsBefore, rep.ColsAfter = ds.Cols(), cleaned.Cols()
	rep.Before, rep.After = before, after
	rep.ScoreBefore, rep.ScoreAfter = before.Score(), after.Score()
	rep.Improvement = rep.ScoreAfter - rep.ScoreBefore
	rep.Actions = log.Entries
	rep.Columns = profile.Columns(cleaned)

	summaryIn := narrative.Input{
		Source:      ds.Source,
		Profiles:    rep.Columns,
		Actions:     log.Entries,
		ScoreBefore: rep.ScoreBefore,
		ScoreAfter:  rep.ScoreAfter,
		RowsBefore:  rep.RowsBefore,
		RowsAfter:   rep.RowsAfter,
		ColsBefore:  rep.ColsBefore,
		ColsAfter:   rep.ColsAfter,
	}
	rep.Issues = narrative.Issues(ctx, c.Narrative, issuesIn)
	rep.Summary = narrative.Summary(ctx, c.Narrative, summaryIn)

	slog.Info("cleaning run finished",
		"run", rep.ID,
		"source", rep.Source,
		"rows", rep.RowsAfter,
		"columns", rep.ColsAfter,
		"score_before", rep.ScoreBefore,
		"score_after", rep.ScoreAfter)
	return &Result{Dataset: cleaned, Report: rep}, nil
}
