package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

func sampleInput() Input {
	age := "age"
	return Input{
		Source: "plots.csv",
		Profiles: []profile.ColumnProfile{
			{Name: "age", Kind: profile.KindNumeric, Rows: 10, Missing: 3, MissingFrac: 0.3, Median: 34},
			{Name: "notes", Kind: profile.KindEmpty, Rows: 10, Missing: 10, MissingFrac: 1},
			{Name: "price", Kind: profile.KindText, Rows: 10, Mixed: true},
		},
		Actions: []pipeline.Entry{
			{Stage: pipeline.StageRemoveDuplicates, Count: 2},
			{Stage: pipeline.StageFillMissing, Column: &age, Count: 3},
		},
		ScoreBefore: 61.5,
		ScoreAfter:  93.2,
		RowsBefore:  10,
		RowsAfter:   8,
		ColsBefore:  3,
		ColsAfter:   2,
	}
}

func TestIssuesNilGeneratorUsesFallback(t *testing.T) {
	in := sampleInput()
	got := Issues(context.Background(), nil, in)
	if got != FallbackIssues(in) {
		t.Fatalf("expected fallback narrative, got %q", got)
	}
}

func TestIssuesGeneratorErrorFallsBack(t *testing.T) {
	in := sampleInput()
	g := stubGenerator{err: errors.New("boom")}
	got := Issues(context.Background(), g, in)
	if got != FallbackIssues(in) {
		t.Fatalf("expected fallback narrative on error, got %q", got)
	}
}

func TestSummaryBlankOutputFallsBack(t *testing.T) {
	in := sampleInput()
	g := stubGenerator{out: "  \n\t"}
	got := Summary(context.Background(), g, in)
	if got != FallbackSummary(in) {
		t.Fatalf("expected fallback narrative on blank output, got %q", got)
	}
}

func TestSummaryUsesGeneratorOutput(t *testing.T) {
	g := stubGenerator{out: "  The data is in good shape now.  "}
	got := Summary(context.Background(), g, sampleInput())
	if got != "The data is in good shape now." {
		t.Fatalf("expected trimmed generator output, got %q", got)
	}
}

func TestFallbackIssuesNamesProblems(t *testing.T) {
	got := FallbackIssues(sampleInput())
	for _, want := range []string{
		"10 rows and 3 columns",
		"13 cells are missing",
		`Column "notes" carries no data`,
		`Column "price" mixes numeric and text`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback issues missing %q in %q", want, got)
		}
	}
}

func TestFallbackIssuesCleanDataset(t *testing.T) {
	in := Input{RowsBefore: 5, ColsBefore: 2, Profiles: []profile.ColumnProfile{
		{Name: "a", Kind: profile.KindNumeric, Rows: 5},
		{Name: "b", Kind: profile.KindText, Rows: 5},
	}}
	got := FallbackIssues(in)
	if !strings.Contains(got, "No obvious quality problems") {
		t.Fatalf("expected clean verdict, got %q", got)
	}
}

func TestFallbackSummaryDeterministic(t *testing.T) {
	in := sampleInput()
	a := FallbackSummary(in)
	b := FallbackSummary(in)
	if a != b {
		t.Fatalf("fallback summary not deterministic:\n%q\n%q", a, b)
	}
	for _, want := range []string{
		"plots.csv",
		"10 rows and 3 columns in, 8 rows and 2 columns out",
		"Removed 2 duplicate row(s).",
		`Filled 3 missing value(s) in "age".`,
		"61.5 to 93.2 (+31.7)",
	} {
		if !strings.Contains(a, want) {
			t.Errorf("fallback summary missing %q in %q", want, a)
		}
	}
}

func TestFallbackSummaryNoActions(t *testing.T) {
	in := Input{RowsBefore: 4, RowsAfter: 4, ColsBefore: 2, ColsAfter: 2, ScoreBefore: 100, ScoreAfter: 100}
	got := FallbackSummary(in)
	if !strings.Contains(got, "No cleaning actions were needed.") {
		t.Fatalf("expected no-actions sentence, got %q", got)
	}
}

func TestBuildPromptsCarrySections(t *testing.T) {
	in := sampleInput()
	issues := BuildIssuesPrompt(in)
	for _, want := range []string{"[INSTRUCTIONS]", "[DATASET]", "[TASK]", "plots.csv"} {
		if !strings.Contains(issues, want) {
			t.Errorf("issues prompt missing %q", want)
		}
	}
	summary := BuildSummaryPrompt(in)
	for _, want := range []string{"[ACTIONS]", "[SCORES]", "removed 2 duplicate row(s)", "Quality after: 93.2/100"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary prompt missing %q", want)
		}
	}
}
