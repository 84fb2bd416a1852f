package driving

import "github.com/custodia-labs/cleanfetch/internal/core/domain"

// ConversionService turns HTML into the supported output formats.
// Every method is pure and safe for concurrent use.
type ConversionService interface {
	// Parse builds the document tree for html.
	Parse(html string) []domain.Node

	// Convert renders html in format. baseURL resolves relative links for
	// FormatURLs and is ignored otherwise. FormatHTML returns html unchanged.
	// Returns domain.ErrUnsupportedFormat for unknown formats.
	Convert(html string, format domain.OutputFormat, baseURL string) (string, error)

	// HTMLToMarkdown renders html as Markdown.
	HTMLToMarkdown(html string) string

	// HTMLToText renders html as plain text.
	HTMLToText(html string) string

	// HTMLToURLs lists the links in html, resolved against baseURL.
	HTMLToURLs(html, baseURL string) string

	// CountWords counts the words in text.
	CountWords(text string) int

	// LimitItems applies the word budget to texts in order.
	LimitItems(texts []string) []domain.LimitItem
}
