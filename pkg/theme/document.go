package theme

import (
	"html"
	"strings"
	"text/template"
)

// DefaultTitle is the document title used when none is given.
const DefaultTitle = "Markdown Preview"

const stylesheetTemplate = `
.markdown-body { font-family: {{.font}}; font-size: {{.fontSize}}; line-height: {{.lineHeight}}; color: {{.text}}; background-color: {{.background}}; padding: {{.padding}}; max-width: {{.maxWidth}}; margin: 0 auto; }
body { background-color: {{.background}}; margin: 0; }
.markdown-body p { margin: 0 0 16px 0; }
.markdown-body h1, .markdown-body h2, .markdown-body h3, .markdown-body h4, .markdown-body h5, .markdown-body h6 { color: {{.heading}}; margin: 24px 0 16px 0; }
.markdown-body h1, .markdown-body h2 { border-bottom: 1px solid {{.border}}; padding-bottom: 0.3em; }
.markdown-body h1 { font-size: 2em; }
.markdown-body h2 { font-size: 1.5em; }
.markdown-body h3 { font-size: 1.25em; }
.markdown-body a { color: {{.link}}; }
.markdown-body img { max-width: 100%; }
.markdown-body code { background-color: {{.codeBg}}; color: {{.codeText}}; padding: 0.2em 0.4em; border-radius: 3px; font-family: 'Courier New', Consolas, 'Liberation Mono', Menlo, monospace; font-size: 85%; }
.markdown-body blockquote { border-left: 0.25em solid {{.border}}; padding: 0 1em; margin: 0 0 16px 0; color: {{.muted}}; }
.markdown-body ul, .markdown-body ol { padding-left: 2em; margin: 0 0 16px 0; }
.markdown-body ul ul, .markdown-body ul ol, .markdown-body ol ol, .markdown-body ol ul { margin: 0; }
.markdown-body li { margin: 0.25em 0; }
.markdown-body hr { border: none; border-top: 1px solid {{.border}}; margin: 24px 0; height: 0; }
.markdown-body table { border-collapse: collapse; margin: 0 0 16px 0; width: 100%; overflow: auto; }
.markdown-body th, .markdown-body td { border: 1px solid {{.border}}; padding: 8px 12px; text-align: left; }
.markdown-body th { background-color: {{.tableHead}}; font-weight: 600; }
.code-block-container { margin: 16px 0; border-radius: 6px; background-color: {{.blockBg}}; border: 1px solid {{.border}}; overflow-x: auto; font-family: Consolas, Monaco, 'Courier New', monospace; font-size: 14px; line-height: 1.4; }
.code-block-header { display: flex; align-items: center; gap: 8px; padding: 6px 12px; border-bottom: 1px solid {{.border}}; }
.code-block-body { padding: 12px 16px; }
.code-line { margin: 0; padding: 0; color: {{.codeText}}; white-space: pre; }
.code-block-folded { padding: 6px 16px; color: {{.muted}}; font-style: italic; }
.fold-toggle { text-decoration: none; color: {{.muted}}; cursor: pointer; }
.code-lang { font-size: 11px; font-weight: 600; padding: 1px 6px; border-radius: 3px; background-color: {{.badgeBg}}; color: {{.muted}}; }
.keyword { color: {{.keyword}}; font-weight: bold; }
.string { color: {{.str}}; }
.number { color: {{.number}}; }
.comment { color: {{.comment}}; font-style: italic; }
.tag { color: {{.tag}}; }
.attr { color: {{.attr}}; }
.placeholder { color: {{.muted}}; text-align: center; margin-top: 50px; }
.truncation-notice { color: {{.muted}}; font-style: italic; border-top: 1px dashed {{.border}}; padding-top: 8px; }
.render-error { color: {{.errorText}}; background: {{.errorBg}}; padding: 20px; border-radius: 6px; margin: 20px 0; }
`

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<div class="markdown-body">
{{.Body}}</div>
{{- if .Script}}
<script>{{.Script}}</script>
{{- end}}
</body>
</html>
`

//nolint:gochecknoglobals // Parsed once; templates are safe for concurrent execution.
var (
	stylesheetTmpl = template.Must(template.New("stylesheet").Parse(stylesheetTemplate))
	documentTmpl   = template.Must(template.New("document").Parse(documentTemplate))
)

// CSS returns the stylesheet for the theme.
func (t Theme) CSS() string {
	p := t.palette
	if p.text == "" {
		p = presets[0].palette
	}

	values := map[string]string{
		"font":       p.font,
		"fontSize":   p.fontSize,
		"lineHeight": p.lineHeight,
		"maxWidth":   p.maxWidth,
		"padding":    p.padding,
		"text":       p.text,
		"background": p.background,
		"heading":    p.heading,
		"border":     p.border,
		"muted":      p.muted,
		"link":       p.link,
		"codeBg":     p.codeBg,
		"codeText":   p.codeText,
		"blockBg":    p.blockBg,
		"tableHead":  p.tableHead,
		"badgeBg":    p.badgeBg,
		"keyword":    p.keyword,
		"str":        p.str,
		"number":     p.number,
		"comment":    p.comment,
		"tag":        p.tag,
		"attr":       p.attr,
		"errorText":  p.errorText,
		"errorBg":    p.errorBg,
	}

	var builder strings.Builder
	if err := stylesheetTmpl.Execute(&builder, values); err != nil {
		// The template is static; execution only fails on programmer error.
		panic(err)
	}
	return builder.String()
}

// Page describes a document to wrap.
type Page struct {
	// Title is placed in <title>. It is HTML-escaped.
	Title string

	// Body is the rendered HTML fragment. It is inserted verbatim.
	Body string

	// Script is optional JavaScript appended to the body.
	Script string

	// ExtraCSS is appended after the theme stylesheet.
	ExtraCSS string
}

// Wrap returns a complete HTML document containing page styled with t.
func (t Theme) Wrap(page Page) string {
	title := page.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	data := struct {
		Title  string
		CSS    string
		Body   string
		Script string
	}{
		Title:  html.EscapeString(title),
		CSS:    t.CSS() + page.ExtraCSS,
		Body:   page.Body,
		Script: page.Script,
	}

	var builder strings.Builder
	if err := documentTmpl.Execute(&builder, data); err != nil {
		panic(err)
	}
	return builder.String()
}
