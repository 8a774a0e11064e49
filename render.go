package main

import (
	"bytes"
	"html/template"
	"log"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts trusted site copy to HTML. Raw HTML in the source
// is dropped by goldmark's default renderer.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(text), &buf); err != nil {
		log.Printf("Error rendering markdown: %v", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
