package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
)

// promptTokenBudget caps prompt size before a request goes out.
const promptTokenBudget = 8000

// Generator produces prose from a prepared prompt. Runs and tests can
// substitute any implementation; a nil Generator means templated
// narratives only.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input carries everything the narrative needs to know about one run.
type Input struct {
	Source      string
	Profiles    []profile.ColumnProfile
	Actions     []pipeline.Entry
	ScoreBefore float64
	ScoreAfter  float64
	RowsBefore  int
	RowsAfter   int
	ColsBefore  int
	ColsAfter   int
}

// Issues returns the pre-cleaning narrative describing data quality
// problems. Generation failures of any kind degrade to the templated
// fallback; this never fails.
func Issues(ctx context.Context, g Generator, in Input) string {
	if g == nil {
		return FallbackIssues(in)
	}
	out, err := g.Generate(ctx, BuildIssuesPrompt(in))
	if err != nil {
		slog.Warn("narrative generation failed, using fallback", "phase", "issues", "error", err)
		return FallbackIssues(in)
	}
	if strings.TrimSpace(out) == "" {
		return FallbackIssues(in)
	}
	return strings.TrimSpace(out)
}

// Summary returns the post-cleaning narrative. Same fallback contract
// as Issues.
func Summary(ctx context.Context, g Generator, in Input) string {
	if g == nil {
		return FallbackSummary(in)
	}
	out, err := g.Generate(ctx, BuildSummaryPrompt(in))
	if err != nil {
		slog.Warn("narrative generation failed, using fallback", "phase", "summary", "error", err)
		return FallbackSummary(in)
	}
	if strings.TrimSpace(out) == "" {
		return FallbackSummary(in)
	}
	return strings.TrimSpace(out)
}

// BuildIssuesPrompt assembles the pre-cleaning prompt from the dataset
// profiles.
func BuildIssuesPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("[INSTRUCTIONS]\n")
	sb.WriteString("You are reviewing a tabular dataset before automated cleaning. ")
	sb.WriteString("Write two short paragraphs of plain prose describing its data quality problems.\n\n")
	sb.WriteString(datasetSection(in))
	sb.WriteString("\n[TASK]\n")
	sb.WriteString("Point out the most significant issues (missing values, duplicate rows, mixed types, empty columns) and their likely impact on analysis.\n")
	return finishPrompt(sb.String(), "issues")
}

// BuildSummaryPrompt assembles the post-cleaning prompt from the action
// log and scores.
func BuildSummaryPrompt(in Input) string {
	var sb strings.Builder
	sb.WriteString("[INSTRUCTIONS]\n")
	sb.WriteString("You are summarizing an automated cleaning run over a tabular dataset. ")
	sb.WriteString("Write one short paragraph of plain prose for a non-technical reader.\n\n")
	sb.WriteString(datasetSection(in))
	sb.WriteString("\n[ACTIONS]\n")
	if len(in.Actions) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, e := range in.Actions {
		sb.WriteString("- ")
		sb.WriteString(describeEntry(e))
		sb.WriteString("\n")
	}
	sb.WriteString("\n[SCORES]\n")
	fmt.Fprintf(&sb, "Quality before: %.1f/100\n", in.ScoreBefore)
	fmt.Fprintf(&sb, "Quality after: %.1f/100\n", in.ScoreAfter)
	fmt.Fprintf(&sb, "Improvement: %+.1f\n", in.ScoreAfter-in.ScoreBefore)
	sb.WriteString("\n[TASK]\n")
	sb.WriteString("Summarize what was cleaned and how the quality changed.\n")
	return finishPrompt(sb.String(), "summary")
}

func datasetSection(in Input) string {
	var sb strings.Builder
	sb.WriteString("[DATASET]\n")
	if in.Source != "" {
		fmt.Fprintf(&sb, "File: %s\n", in.Source)
	}
	fmt.Fprintf(&sb, "Rows: %d\n", in.RowsBefore)
	fmt.Fprintf(&sb, "Columns: %d\n", in.ColsBefore)
	for _, p := range in.Profiles {
		fmt.Fprintf(&sb, "- %s: %s (missing %d, %.1f%%)", p.Name, p.Kind, p.Missing, p.MissingFrac*100)
		if p.Kind == profile.KindNumeric {
			fmt.Fprintf(&sb, "; min %s, median %s, max %s",
				profile.FormatNumber(p.Min), profile.FormatNumber(p.Median), profile.FormatNumber(p.Max))
		}
		if p.Mixed {
			sb.WriteString("; mixes numbers and text")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func finishPrompt(prompt, phase string) string {
	slog.Debug("narrative prompt assembled",
		"phase", phase,
		"tokens", utils.CountTokens(prompt))
	return utils.TruncateToTokenLimit(prompt, promptTokenBudget)
}

// describeEntry renders one action log entry as a sentence fragment.
func describeEntry(e pipeline.Entry) string {
	col := ""
	if e.Column != nil {
		col = *e.Column
	}
	switch e.Stage {
	case pipeline.StageDropEmptyColumns:
		return fmt.Sprintf("dropped empty column %q", col)
	case pipeline.StageRemoveDuplicates:
		return fmt.Sprintf("removed %d duplicate row(s)", e.Count)
	case pipeline.StageFillMissing:
		if e.Warning() {
			return fmt.Sprintf("column %q had no values to fill from", col)
		}
		return fmt.Sprintf("filled %d missing value(s) in %q", e.Count, col)
	case pipeline.StageClipOutliers:
		return fmt.Sprintf("clipped %d outlier(s) in %q to the IQR bounds", e.Count, col)
	case pipeline.StageNormalizeTypes:
		return fmt.Sprintf("normalized %d value(s) in %q to numeric form", e.Count, col)
	}
	if col != "" {
		return fmt.Sprintf("%s on %q: %d", e.Stage, col, e.Count)
	}
	return fmt.Sprintf("%s: %d", e.Stage, e.Count)
}

// FallbackIssues is the deterministic pre-cleaning narrative used when
// no generation service is available.
func FallbackIssues(in Input) string {
	missingCells := 0
	var emptyCols, mixedCols []string
	for _, p := range in.Profiles {
		missingCells += p.Missing
		if p.Kind == profile.KindEmpty {
			emptyCols = append(emptyCols, p.Name)
		}
		if p.Mixed {
			mixedCols = append(mixedCols, p.Name)
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "The dataset has %d rows and %d columns.", in.RowsBefore, in.ColsBefore)
	if missingCells > 0 {
		fmt.Fprintf(&sb, " %d cells are missing values.", missingCells)
	}
	switch len(emptyCols) {
	case 0:
	case 1:
		fmt.Fprintf(&sb, " Column %q carries no data at all.", emptyCols[0])
	default:
		fmt.Fprintf(&sb, " Columns %s carry no data at all.", joinQuoted(emptyCols))
	}
	switch len(mixedCols) {
	case 0:
	case 1:
		fmt.Fprintf(&sb, " Column %q mixes numeric and text values.", mixedCols[0])
	default:
		fmt.Fprintf(&sb, " Columns %s mix numeric and text values.", joinQuoted(mixedCols))
	}
	if missingCells == 0 && len(emptyCols) == 0 && len(mixedCols) == 0 {
		sb.WriteString(" No obvious quality problems were detected.")
	}
	return sb.String()
}

// FallbackSummary is the deterministic post-cleaning narrative built
// from the action log and scores.
func FallbackSummary(in Input) string {
	var sb strings.Builder
	if in.Source != "" {
		fmt.Fprintf(&sb, "Cleaned %s: ", in.Source)
	} else {
		sb.WriteString("Cleaning finished: ")
	}
	fmt.Fprintf(&sb, "%d rows and %d columns in, %d rows and %d columns out.",
		in.RowsBefore, in.ColsBefore, in.RowsAfter, in.ColsAfter)
	acted := false
	for _, e := range in.Actions {
		if e.Warning() {
			continue
		}
		acted = true
		sb.WriteString(" ")
		s := describeEntry(e)
		sb.WriteString(strings.ToUpper(s[:1]) + s[1:] + ".")
	}
	if !acted {
		sb.WriteString(" No cleaning actions were needed.")
	}
	for _, e := range in.Actions {
		if e.Warning() {
			sb.WriteString(" ")
			s := describeEntry(e)
			sb.WriteString(strings.ToUpper(s[:1]) + s[1:] + ".")
		}
	}
	fmt.Fprintf(&sb, " The quality score moved from %.1f to %.1f (%+.1f).",
		in.ScoreBefore, in.ScoreAfter, in.ScoreAfter-in.ScoreBefore)
	return sb.String()
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
