// Package text renders a parsed HTML document as plain text with links
// removed and whitespace normalised.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter adapts Convert to the driven.Converter port.
type Converter struct{}

// New creates a new plain text converter.
func New() *Converter {
	return &Converter{}
}

// Format returns the output format this converter produces.
func (c *Converter) Format() domain.OutputFormat {
	return domain.FormatText
}

// Convert renders nodes as plain text. The base URL is unused.
func (c *Converter) Convert(nodes []domain.Node, _ string) string {
	return Convert(nodes)
}

var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "tr": true, "table": true, "ul": true, "ol": true,
	"header": true, "footer": true, "nav": true, "main": true,
}

var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"noscript": true,
}

// Convert renders nodes as plain text. Block elements start on their own
// line, URLs are stripped and whitespace is collapsed.
func Convert(nodes []domain.Node) string {
	var b strings.Builder
	walk(&b, nodes)
	return NormalizeWhitespace(StripURLs(b.String()))
}

func walk(b *strings.Builder, nodes []domain.Node) {
	for i := range nodes {
		n := &nodes[i]
		if n.IsText() {
			pushText(b, n.Data)
			continue
		}

		switch {
		case skipTags[n.Tag]:
		case n.Tag == "br", n.Tag == "hr":
			b.WriteByte('\n')
		case blockTags[n.Tag]:
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			walk(b, n.Children)
			b.WriteByte('\n')
		default:
			walk(b, n.Children)
		}
	}
}

// pushText appends s, separating it from the previous word with a space
// when neither side already has whitespace.
func pushText(b *strings.Builder, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	if b.Len() > 0 {
		last, _ := utf8.DecodeLastRuneInString(b.String())
		first, _ := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(last) && !unicode.IsSpace(first) {
			b.WriteByte(' ')
		}
	}
	b.WriteString(s)
}
