package document

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"github.com/cetakin/printd/internal/job"
)

// htmlData feeds the single styled template shared by every document type.
type htmlData struct {
	Title        string
	Job          *job.PrintJob
	Items        []htmlItem
	Generic      string
	Date         string
	Deadline     string
	Totals       []totalRow
	Footer       string
	PageHeightCM float64
}

type htmlItem struct {
	Name  string
	Lines []string
}

type totalRow struct {
	Label  string
	Value  string
	Strong bool
}

func workOrderHTMLItems(items []job.LineItem, emptySelection bool) []htmlItem {
	if emptySelection {
		return []htmlItem{{Name: noItemsMessage}}
	}
	out := make([]htmlItem, 0, len(items))
	for _, item := range items {
		out = append(out, htmlItem{
			Name:  item.Name,
			Lines: []string{item.Dimension() + " @" + itoa(item.Quantity) + " " + item.FinishingLabel()},
		})
	}
	return out
}

func receiptHTMLItems(items []job.LineItem) []htmlItem {
	out := make([]htmlItem, 0, len(items))
	for _, item := range items {
		lines := make([]string, 0, 2)
		if dim := item.Dimension(); dim != "-" {
			lines = append(lines, dim)
		}
		lines = append(lines, itoa(item.Quantity)+" x "+FormatRupiah(item.UnitPrice())+" = "+FormatRupiah(item.SubTotal))
		out = append(out, htmlItem{Name: item.Name, Lines: lines})
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

var docTemplate = template.Must(template.New("document").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: 80mm {{.PageHeightCM}}cm; margin: 4mm; }
body { font-family: "Courier New", monospace; font-size: 11px; color: #000; width: 72mm; margin: 0 auto; }
h1 { font-size: 13px; text-align: center; margin: 0 0 4px 0; }
.meta { margin: 0; }
.flag { text-align: center; font-weight: bold; }
hr { border: none; border-top: 1px dashed #000; margin: 4px 0; }
.item { margin-bottom: 3px; }
.item .name { font-weight: bold; }
.totals td { padding: 0; }
.totals .value { text-align: right; }
.strong { font-weight: bold; }
.footer { text-align: center; margin-top: 6px; }
pre { font-family: inherit; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Job.Order.OrderNumber}}
<p class="meta">No. {{.Job.Order.OrderNumber}}</p>
{{- end}}
{{- range .Job.Order.Flags}}{{if .Set}}
<p class="flag">* {{.Label}} *</p>
{{- end}}{{end}}
{{- if .Job.Order.CustomerName}}
<p class="meta">Pelanggan: {{.Job.Order.CustomerName}}</p>
{{- end}}
<p class="meta">Tanggal: {{.Date}}</p>
{{- if .Deadline}}
<p class="meta">Deadline: {{.Deadline}}</p>
{{- end}}
{{- if .Job.Order.Staff}}
<p class="meta">Petugas: {{join .Job.Order.Staff ", "}}</p>
{{- end}}
{{- if .Generic}}
<hr>
<pre>{{.Generic}}</pre>
{{- else}}
<hr>
{{- range .Items}}
<div class="item">
<div class="name">{{.Name}}</div>
{{- range .Lines}}
<div>{{.}}</div>
{{- end}}
</div>
{{- end}}
{{- end}}
{{- if .Totals}}
<hr>
<table class="totals" width="100%">
{{- range .Totals}}
<tr{{if .Strong}} class="strong"{{end}}><td>{{.Label}}</td><td class="value">{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .Footer}}
<p class="footer">{{.Footer}}</p>
{{- end}}
</body>
</html>
`))

func renderHTML(data htmlData) string {
	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, data); err != nil {
		// The template is static; execution can only fail on a broken
		// writer, which bytes.Buffer is not.
		return ""
	}
	return buf.String()
}
