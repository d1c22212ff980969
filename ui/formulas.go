package ui

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"demoqual/internal/docs"
)

// renderFormulas converts the formulas reference into a standalone HTML page
func renderFormulas() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: docs.Title(),
	})
	return markdown.ToHTML([]byte(docs.Markdown()), p, renderer)
}
