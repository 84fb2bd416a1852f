package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure MarkdownRenderer implements the interface.
var _ driven.MarkdownRenderer = (*MarkdownRenderer)(nil)

//go:embed page.html
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// MarkdownRenderer turns Markdown into a standalone styled HTML page.
// Raw HTML embedded in the Markdown is omitted.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a renderer with GitHub Flavored Markdown
// tables, strikethrough, task lists and autolinks enabled.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// RenderHTML converts markdown to an HTML fragment.
func (r *MarkdownRenderer) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderPage converts markdown and wraps it in the page template.
func (r *MarkdownRenderer) RenderPage(markdown string) (string, error) {
	fragment, err := r.RenderHTML(markdown)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	//nolint:gosec // G203: goldmark omits raw HTML from the source
	if err := pageTmpl.Execute(&buf, template.HTML(fragment)); err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return buf.String(), nil
}
