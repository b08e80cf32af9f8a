package web

import (
	"fmt"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/cleaner"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/report"
)

const pageCSS = report.CSS + `
form section { display: flex; flex-direction: column; gap: .5rem; }
label.toggle { display: flex; align-items: center; gap: .5rem; }
button { background: #1f6feb; color: #fff; border: 0; border-radius: 6px; padding: .6rem 1.2rem; font-size: 1rem; cursor: pointer; }
button:hover { background: #1a5dc8; }
ul.runs { list-style: none; padding: 0; }
ul.runs li { padding: .3rem 0; }
.downloads a { margin-right: 1rem; }
`

func page(title string, body ...gomponents.Node) gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | Smart Data Cleaner")),
			html.StyleEl(gomponents.Raw(pageCSS)),
		),
		html.Body(
			html.Main(
				html.H1(gomponents.Text(title)),
				gomponents.Group(body),
			),
		),
	)
}

func toggle(name, label string) gomponents.Node {
	return html.Label(html.Class("toggle"),
		html.Input(html.Type("checkbox"), html.Name(name), html.Checked()),
		gomponents.Text(label),
	)
}

func indexPage(recent []*cleaner.Result) gomponents.Node {
	body := []gomponents.Node{
		html.P(html.Class("muted"), gomponents.Text("Upload a CSV, TSV or XLSX file to score and clean it.")),
		html.Form(
			html.Method("post"), html.Action("/upload"), html.EncType("multipart/form-data"),
			html.Section(
				html.Label(gomponents.Text("Data file")),
				html.Input(html.Type("file"), html.Name("file"), html.Accept(".csv,.tsv,.xlsx"), html.Required()),
			),
			html.Section(
				toggle("drop_empty_columns", "Drop empty columns"),
				toggle("remove_duplicates", "Remove duplicate rows"),
				toggle("fill_missing", "Fill missing values"),
				toggle("handle_outliers", "Clip outliers"),
				toggle("normalize_types", "Normalize numeric text"),
				toggle("narrative_enabled", "AI narrative"),
			),
			html.Button(html.Type("submit"), gomponents.Text("Clean")),
		),
	}
	if len(recent) > 0 {
		items := make([]gomponents.Node, 0, len(recent))
		for _, res := range recent {
			rep := res.Report
			items = append(items, html.Li(
				html.A(html.Href("/runs/"+rep.ID),
					gomponents.Text(fmt.Sprintf("%s (%.1f to %.1f)", rep.Source, rep.ScoreBefore, rep.ScoreAfter))),
			))
		}
		body = append(body,
			html.Section(
				html.H2(gomponents.Text("Recent runs")),
				html.Ul(html.Class("runs"), gomponents.Group(items)),
			),
		)
	}
	return page("Smart Data Cleaner", body...)
}

func resultsPage(res *cleaner.Result) gomponents.Node {
	rep := res.Report
	base := "/runs/" + rep.ID
	return page("Cleaning report",
		html.P(html.Class("muted"), gomponents.Text(rep.Source)),
		rep.Sections(),
		html.Section(
			html.H2(gomponents.Text("Downloads")),
			html.Div(html.Class("downloads"),
				html.A(html.Href(base+"/cleaned.csv"), gomponents.Text("Cleaned CSV")),
				html.A(html.Href(base+"/cleaned.xlsx"), gomponents.Text("Cleaned XLSX")),
				html.A(html.Href(base+"/report.json"), gomponents.Text("Report JSON")),
				html.A(html.Href(base+"/report.html"), gomponents.Text("Report HTML")),
			),
		),
		html.P(html.A(html.Href("/"), gomponents.Text("Clean another file"))),
	)
}

func errorPage(title, message string) gomponents.Node {
	return page(title,
		html.P(gomponents.Text(message)),
		html.P(html.A(html.Href("/"), gomponents.Text("Back to upload"))),
	)
}
