package render

import "html/template"

const pageTemplate = `<!DOCTYPE html>
<html lang="{{.View.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.View.Title}}{{with .SiteName}} | {{.}}{{end}}</title>
</head>
<body class="template-{{with .View.Template}}{{.}}{{else}}default{{end}}">
{{- with .View.Breadcrumbs}}
<nav class="breadcrumbs"><ol>
{{- range .}}
<li>{{if .Current}}<span class="current">{{.Label}}</span>{{else}}<a href="{{.Href}}">{{.Label}}</a>{{end}}</li>
{{- end}}
</ol></nav>
{{- end}}
{{- with .View.LastUpdated}}
<p class="last-updated">{{.}}</p>
{{- end}}
<div class="page-layout" data-gap-base="{{.View.Gap.Base}}px" data-gap-lg="{{.View.Gap.Large}}px">
<main>{{.Body}}</main>
{{- if .View.ShowTOC}}
<aside class="toc"><nav><ul>
{{- range .View.TOC}}
<li class="toc-level-{{.Level}}"><a href="#{{.Anchor}}">{{.Title}}</a></li>
{{- end}}
</ul></nav></aside>
{{- end}}
</div>
</body>
</html>
`

var pageLayout = template.Must(template.New("page").Parse(pageTemplate))
