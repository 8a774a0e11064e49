package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	html := string(renderMarkdown("I'm an **aspiring** dev.\n\n- Go\n- HTMX"))
	assert.Contains(t, html, "<strong>aspiring</strong>")
	assert.Contains(t, html, "<li>Go</li>")
}

func TestRenderMarkdownEscapesRawHTML(t *testing.T) {
	html := string(renderMarkdown(`<script>alert(1)</script>`))
	assert.NotContains(t, html, "<script>")
}
