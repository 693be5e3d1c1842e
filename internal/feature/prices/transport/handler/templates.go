package handler

import "html/template"

const (
	// IndexTemplate is the name of the landing page template.
	IndexTemplate = "index.tmpl"
	// DataTemplate is the name of the dataset table template.
	DataTemplate = "data.tmpl"
)

const indexHTML = `<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Symbol}} analytics</title></head>
<body>
<p>Open <a href="/data">/data</a> to view the dataset as an HTML table.</p>
<ul>
<li><a href="/dividends?show=image">/dividends</a> quarterly returns</li>
<li><a href="/ma180?show=image">/ma180</a> 180-day moving average</li>
<li><a href="/vol180?show=image">/vol180</a> 180-day annualized volatility</li>
</ul>
</body></html>`

const dataHTML = `<!doctype html>
<html><head><meta charset="utf-8"><title>Dataset</title></head>
<body>
<p>{{.Source}}: showing {{len .Rows}} of {{.Total}} rows</p>
<table class="dataframe">
<thead><tr><th>Date</th><th>Open</th><th>High</th><th>Low</th><th>Close</th><th>Volume</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Open}}</td><td>{{.High}}</td><td>{{.Low}}</td><td>{{.Close}}</td><td>{{.Volume}}</td></tr>
{{- end}}
</tbody>
</table>
</body></html>`

// Templates returns the HTML templates rendered by this package.
// Register them on the engine with SetHTMLTemplate.
func Templates() *template.Template {
	t := template.Must(template.New(IndexTemplate).Parse(indexHTML))
	template.Must(t.New(DataTemplate).Parse(dataHTML))
	return t
}
