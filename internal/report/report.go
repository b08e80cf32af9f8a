package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/quality"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
)

// Report captures one full cleaning run: shapes, scores, the action
// log and the narrative text.
type Report struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
	RowsBefore int       `json:"rows_before"`
	RowsAfter  int       `json:"rows_after"`
	ColsBefore int       `json:"columns_before"`
	ColsAfter  int       `json:"columns_after"`

	Before      quality.Breakdown `json:"before"`
	After       quality.Breakdown `json:"after"`
	ScoreBefore float64           `json:"score_before"`
	ScoreAfter  float64           `json:"score_after"`
	Improvement float64           `json:"improvement"`

	Actions []pipeline.Entry        `json:"actions"`
	Columns []profile.ColumnProfile `json:"columns"`
	Issues  string                  `json:"issues,omitempty"`
	Summary string                  `json:"summary,omitempty"`
}

// New returns a Report with a fresh ID and timestamp for the given
// source file.
func New(source string) *Report {
	return &Report{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

// ExportError marks a failed report or dataset export. The cleaned
// data itself is unaffected.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export %s: %v", e.Path, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

// Markdown renders a compact plain-text report suitable for terminals
// or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[CLEANING REPORT]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	if r.ID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", r.ID))
	}
	if !r.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Date: %s\n", r.CreatedAt.Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf("Rows: %d -> %d\n", r.RowsBefore, r.RowsAfter))
	b.WriteString(fmt.Sprintf("Columns: %d -> %d\n\n", r.ColsBefore, r.ColsAfter))

	b.WriteString("[SCORES]\n")
	b.WriteString(fmt.Sprintf("Overall: %.1f -> %.1f (%+.1f)\n", r.ScoreBefore, r.ScoreAfter, r.Improvement))
	b.WriteString(fmt.Sprintf("Completeness: %.1f%% -> %.1f%%\n", r.Before.Completeness*100, r.After.Completeness*100))
	b.WriteString(fmt.Sprintf("Uniqueness: %.1f%% -> %.1f%%\n", r.Before.Uniqueness*100, r.After.Uniqueness*100))
	b.WriteString(fmt.Sprintf("Consistency: %.1f%% -> %.1f%%\n\n", r.Before.Consistency*100, r.After.Consistency*100))

	b.WriteString("[ACTIONS]\n")
	if len(r.Actions) == 0 {
		b.WriteString("(none)\n")
	}
	for _, e := range r.Actions {
		col := "-"
		if e.Column != nil {
			col = *e.Column
		}
		if e.Warning() {
			b.WriteString(fmt.Sprintf("- %s: %s (%s)\n", e.Stage, col, e.Note))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %s (%d)\n", e.Stage, col, e.Count))
	}
	b.WriteString("\n")

	b.WriteString("[COLUMNS]\n")
	for _, c := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (rows %d, missing %.1f%%)", c.Name, c.Kind, c.Rows, c.MissingFrac*100))
		if c.Kind == profile.KindNumeric {
			b.WriteString(fmt.Sprintf(" — min %s, median %s, max %s",
				profile.FormatNumber(c.Min), profile.FormatNumber(c.Median), profile.FormatNumber(c.Max)))
		}
		b.WriteString("\n")
	}

	if r.Issues != "" {
		b.WriteString("\n[ISSUES]\n")
		b.WriteString(strings.TrimSpace(r.Issues))
		b.WriteString("\n")
	}
	if r.Summary != "" {
		b.WriteString("\n[SUMMARY]\n")
		b.WriteString(strings.TrimSpace(r.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// SaveJSON writes the report as JSON to path.
func (r *Report) SaveJSON(path string) error {
	out, err := r.JSON()
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, out); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// SaveMarkdown writes the plain-text report to path.
func (r *Report) SaveMarkdown(path string) error {
	if err := utils.SafeWriteFile(path, []byte(r.Markdown())); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// SaveHTML writes the rendered HTML document to path.
func (r *Report) SaveHTML(path string) error {
	var b strings.Builder
	if err := r.Document().Render(&b); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, []byte(b.String())); err != nil {
		return &ExportError{Path: path, Err: err}
	}
	return nil
}
