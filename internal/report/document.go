package report

import (
	"fmt"
	"time"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
)

// CSS styles the report sections. Shared with the web UI.
const CSS = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f6f7f9; color: #1f2430; }
main { max-width: 920px; margin: 0 auto; padding: 2rem 1rem; }
h1 { margin: 0 0 .25rem; }
.muted { color: #6b7280; margin: 0 0 1.5rem; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 1.5rem; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem 1.25rem; flex: 1 1 160px; }
.card strong { display: block; font-size: 1.5rem; }
section { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #e5e7eb; }
th { color: #6b7280; font-weight: 600; }
.warn { color: #b45309; }
`

// Document renders the report as a standalone HTML page.
func (r *Report) Document() gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("Cleaning report: "+r.Source)),
			html.StyleEl(gomponents.Raw(CSS)),
		),
		html.Body(
			html.Main(
				html.H1(gomponents.Text("Cleaning report")),
				html.P(html.Class("muted"), gomponents.Text(fmt.Sprintf("%s, %s", r.Source, r.CreatedAt.Format(time.RFC1123)))),
				r.Sections(),
			),
		),
	)
}

// Sections renders the report body without the page shell, for
// embedding in other pages.
func (r *Report) Sections() gomponents.Node {
	return gomponents.Group([]gomponents.Node{
		r.scoreCards(),
		r.narrativeSection("What was wrong", r.Issues),
		r.actionsSection(),
		r.columnsSection(),
		r.narrativeSection("Summary", r.Summary),
	})
}

func (r *Report) scoreCards() gomponents.Node {
	card := func(label, value string) gomponents.Node {
		return html.Div(html.Class("card"),
			html.Strong(gomponents.Text(value)),
			gomponents.Text(label),
		)
	}
	return html.Div(html.Class("cards"),
		card("Score before", fmt.Sprintf("%.1f", r.ScoreBefore)),
		card("Score after", fmt.Sprintf("%.1f", r.ScoreAfter)),
		card("Improvement", fmt.Sprintf("%+.1f", r.Improvement)),
		card("Rows", fmt.Sprintf("%d -> %d", r.RowsBefore, r.RowsAfter)),
		card("Columns", fmt.Sprintf("%d -> %d", r.ColsBefore, r.ColsAfter)),
	)
}

func (r *Report) actionsSection() gomponents.Node {
	if len(r.Actions) == 0 {
		return html.Section(
			html.H2(gomponents.Text("Actions")),
			html.P(html.Class("muted"), gomponents.Text("No cleaning actions were needed.")),
		)
	}
	rows := make([]gomponents.Node, 0, len(r.Actions))
	for _, e := range r.Actions {
		col := "-"
		if e.Column != nil {
			col = *e.Column
		}
		count := fmt.Sprintf("%d", e.Count)
		if e.Warning() {
			count = e.Note
		}
		rows = append(rows, html.Tr(
			gomponents.If(e.Warning(), html.Class("warn")),
			html.Td(gomponents.Text(e.Stage)),
			html.Td(gomponents.Text(col)),
			html.Td(gomponents.Text(count)),
		))
	}
	return html.Section(
		html.H2(gomponents.Text("Actions")),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Stage")),
				html.Th(gomponents.Text("Column")),
				html.Th(gomponents.Text("Count")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

func (r *Report) columnsSection() gomponents.Node {
	if len(r.Columns) == 0 {
		return gomponents.Text("")
	}
	rows := make([]gomponents.Node, 0, len(r.Columns))
	for _, c := range r.Columns {
		stats := "-"
		if c.Kind == profile.KindNumeric {
			stats = fmt.Sprintf("min %s, median %s, max %s",
				profile.FormatNumber(c.Min), profile.FormatNumber(c.Median), profile.FormatNumber(c.Max))
		}
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(c.Name)),
			html.Td(gomponents.Text(string(c.Kind))),
			html.Td(gomponents.Text(fmt.Sprintf("%.1f%%", c.MissingFrac*100))),
			html.Td(gomponents.Text(stats)),
		))
	}
	return html.Section(
		html.H2(gomponents.Text("Columns")),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("Name")),
				html.Th(gomponents.Text("Kind")),
				html.Th(gomponents.Text("Missing")),
				html.Th(gomponents.Text("Stats")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

func (r *Report) narrativeSection(title, text string) gomponents.Node {
	if text == "" {
		return gomponents.Text("")
	}
	return html.Section(
		html.H2(gomponents.Text(title)),
		html.P(gomponents.Text(text)),
	)
}
