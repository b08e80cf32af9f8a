package pipeline

// NoteUnfillable marks a column the fill stage had to leave untouched.
const NoteUnfillable = "unfillable"

// Entry records one action taken by a stage. Column is nil for
// row-level actions. A non-empty Note marks a warning: the stage could
// not act and says why.
type Entry struct {
	Stage  string  `json:"stage"`
	Column *string `json:"column"`
	Count  int     `json:"count"`
	Note   string  `json:"note,omitempty"`
}

// Warning reports whether the entry records a condition a stage could
// not act on rather than an action taken.
func (e Entry) Warning() bool { return e.Note != "" }

// Log is the ordered action log for one cleaning run.
type Log struct {
	Entries []Entry `json:"entries"`
}

// AddColumn appends a column-level action.
func (l *Log) AddColumn(stage, column string, count int) {
	l.Entries = append(l.Entries, Entry{Stage: stage, Column: &column, Count: count})
}

// AddRow appends a row-level action with no column attribution.
func (l *Log) AddRow(stage string, count int) {
	l.Entries = append(l.Entries, Entry{Stage: stage, Count: count})
}

// AddWarning appends a warning entry for a column a stage skipped.
func (l *Log) AddWarning(stage, column, note string) {
	l.Entries = append(l.Entries, Entry{Stage: stage, Column: &column, Note: note})
}

// Warnings returns only the warning entries.
func (l *Log) Warnings() []Entry {
	var out []Entry
	for _, e := range l.Entries {
		if e.Warning() {
			out = append(out, e)
		}
	}
	return out
}
