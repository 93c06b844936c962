package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/policyposse/legisnet/internal/detail"
	"github.com/policyposse/legisnet/internal/view"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("page").Parse(pageTemplate))
}

// templateData holds data for the page template.
type templateData struct {
	Title       string
	Breadcrumb  string
	Legislators int
	Connections int
	Shown       int
	Bills       int
	Sampled     bool
	Detail      *detail.NodeDetail
	SVG         template.HTML
}

// HTML renders the view as a standalone page embedding the SVG and the
// counts/detail panels.
func HTML(v View) (string, error) {
	if v.Subgraph == nil {
		return "", fmt.Errorf("view has no subgraph")
	}

	var svgBuf bytes.Buffer
	if err := SVG(&svgBuf, v); err != nil {
		return "", fmt.Errorf("rendering svg: %w", err)
	}

	data := templateData{
		Title:       v.Title,
		Breadcrumb:  breadcrumb(v.State),
		Legislators: v.Subgraph.Counts.Legislators,
		Connections: v.Subgraph.Counts.Connections,
		Shown:       len(v.Subgraph.Edges),
		Bills:       v.Subgraph.Counts.Bills,
		Sampled:     v.Subgraph.Counts.Sampled,
		Detail:      v.Detail,
		SVG:         template.HTML(svgBuf.String()),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// breadcrumb describes the navigation level for the page header.
func breadcrumb(s view.State) string {
	switch s.Level {
	case view.LevelState:
		return "Overview / " + s.State
	case view.LevelNode:
		return "Overview / " + s.ParentState + " / " + s.Node
	default:
		return "Overview"
	}
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 0; display: flex; }
  #graph { flex: 1; overflow: auto; }
  #panel { width: 300px; padding: 16px; border-left: 1px solid #ddd; }
  h1 { font-size: 18px; }
  h2 { font-size: 15px; }
  .counts { color: #555; font-size: 13px; }
  .bill { font-size: 12px; margin-bottom: 6px; }
  .policy { font-size: 13px; }
</style>
</head>
<body>
<div id="graph">{{.SVG}}</div>
<div id="panel">
  <h1>{{.Title}}</h1>
  <div class="counts">{{.Breadcrumb}}</div>
  <div class="counts">
    {{.Legislators}} legislators &middot;
    {{if .Sampled}}showing {{.Shown}} of {{.Connections}}{{else}}{{.Connections}}{{end}} connections &middot;
    {{.Bills}} bills
  </div>
{{if .Detail}}
  <h2>{{.Detail.Node.Name}} ({{.Detail.Node.Party}}, {{.Detail.Node.State}})</h2>
  <div class="counts">{{.Detail.ConnectedLegislators}} connected legislators &middot; {{.Detail.TotalBills}} bills</div>
  {{if .Detail.TopPolicies}}
  <h2>Top policy areas</h2>
  {{range .Detail.TopPolicies}}<div class="policy">{{.Name}} ({{.Count}})</div>{{end}}
  {{end}}
  <h2>Bills</h2>
  {{range .Detail.Bills}}<div class="bill"><strong>{{.BillNumber}}</strong> {{.Title}}</div>{{end}}
{{end}}
</div>
</body>
</html>
`
