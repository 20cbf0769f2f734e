package report

import (
	"html/template"
	"io"

	"github.com/migranta/oraudit/pkg/types"
)

// The page is self-contained: inline CSS, no external assets, safe to mail
// around or drop in a bucket. Every dynamic value flows through
// html/template so row contents cannot inject markup.
const htmlPage = `<!DOCTYPE html>
<html>
<head>
<title>DMS Readiness Check Report</title>
<style>
body { font-family: 'Arial', sans-serif; background-color: #f4f4f4; color: #333; line-height: 1.6; margin: 0; padding: 20px; }
h1 { color: #4285f4; }
h2 { color: #4285f4; margin-bottom: 1em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; background-color: #fff; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f0f0f0; font-weight: bold; }
tr:nth-child(even) { background-color: #f9f9f9; }
.severity-error { color: #c0392b; font-weight: bold; }
.severity-warning { color: #e67e22; font-weight: bold; }
</style>
</head>
<body>
<h1>DMS Readiness Check Report</h1>
{{if .Target}}<p>Target: {{.Target}}</p>
{{end}}<p>Generated on: {{.GeneratedAt}}</p>
{{range .Findings}}<h2>{{.Name}}</h2>
<p>{{.Description}}</p>
<p class="{{.SeverityClass}}">{{.Warning}}</p>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{else}}<p>No compatibility issues found.</p>
{{end}}{{if .Inconclusive}}<h2>Inconclusive checks</h2>
<p>The following checks could not be run:</p>
<ul>
{{range .Inconclusive}}<li>{{.Name}}: {{.Error}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`

var pageTemplate = template.Must(template.New("report").Parse(htmlPage))

type htmlData struct {
	Target       string
	GeneratedAt  string
	Findings     []htmlFinding
	Inconclusive []htmlInconclusive
}

type htmlFinding struct {
	Name          string
	Description   string
	Warning       string
	SeverityClass string
	Columns       []string
	Rows          [][]string
}

type htmlInconclusive struct {
	Name  string
	Error string
}

func renderHTML(w io.Writer, findings []types.Finding, meta Meta) error {
	data := htmlData{
		Target:      meta.Target,
		GeneratedAt: meta.GeneratedAt.Format("2006-01-02 15:04:05"),
	}

	for _, f := range findings {
		switch {
		case f.Inconclusive():
			data.Inconclusive = append(data.Inconclusive, htmlInconclusive{
				Name:  f.Rule.Name,
				Error: f.Err.Error(),
			})
		case f.Triggered:
			hf := htmlFinding{
				Name:          f.Rule.Name,
				Description:   f.Rule.Description,
				Warning:       f.Rule.WarningMessage,
				SeverityClass: "severity-warning",
				Columns:       f.Result.Columns,
			}
			if f.Severity() == types.Severity_ERROR {
				hf.SeverityClass = "severity-error"
			}
			for _, row := range f.Result.Rows {
				values := make([]string, len(row))
				for i, v := range row {
					values[i] = formatValue(v)
				}
				hf.Rows = append(hf.Rows, values)
			}
			data.Findings = append(data.Findings, hf)
		}
	}

	return pageTemplate.Execute(w, data)
}
