package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/cleanfetch/internal/budget"
	"github.com/custodia-labs/cleanfetch/internal/converters/markdown"
	"github.com/custodia-labs/cleanfetch/internal/converters/text"
	"github.com/custodia-labs/cleanfetch/internal/converters/urls"
	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
	"github.com/custodia-labs/cleanfetch/internal/htmlparse"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService dispatches HTML conversion to registered converters.
type ConversionService struct {
	mu         sync.RWMutex
	converters map[domain.OutputFormat]driven.Converter
}

// NewConversionService creates a conversion service with the built-in
// Markdown, text and link converters registered.
func NewConversionService() *ConversionService {
	s := &ConversionService{
		converters: make(map[domain.OutputFormat]driven.Converter),
	}
	s.registerBuiltinConverters()
	return s
}

func (s *ConversionService) registerBuiltinConverters() {
	s.Register(markdown.New())
	s.Register(text.New())
	s.Register(urls.New())
}

// Register adds or replaces the converter for its format.
func (s *ConversionService) Register(c driven.Converter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.converters[c.Format()] = c
}

// Formats returns the formats Convert accepts.
func (s *ConversionService) Formats() []domain.OutputFormat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	formats := make([]domain.OutputFormat, 0, len(s.converters)+1)
	for _, f := range domain.AllOutputFormats() {
		if _, ok := s.converters[f]; ok || f == domain.FormatHTML {
			formats = append(formats, f)
		}
	}
	return formats
}

// Parse builds the document tree for html.
func (s *ConversionService) Parse(html string) []domain.Node {
	return htmlparse.Parse(html)
}

// Convert renders html in format.
func (s *ConversionService) Convert(html string, format domain.OutputFormat, baseURL string) (string, error) {
	if format == domain.FormatHTML {
		return html, nil
	}

	s.mu.RLock()
	c, ok := s.converters[format]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return c.Convert(htmlparse.Parse(html), baseURL), nil
}

// HTMLToMarkdown renders html as Markdown.
func (s *ConversionService) HTMLToMarkdown(html string) string {
	out, _ := s.Convert(html, domain.FormatMarkdown, "")
	return out
}

// HTMLToText renders html as plain text.
func (s *ConversionService) HTMLToText(html string) string {
	out, _ := s.Convert(html, domain.FormatText, "")
	return out
}

// HTMLToURLs lists the links in html, resolved against baseURL.
func (s *ConversionService) HTMLToURLs(html, baseURL string) string {
	out, _ := s.Convert(html, domain.FormatURLs, baseURL)
	return out
}

// CountWords counts the words in text.
func (s *ConversionService) CountWords(text string) int {
	return budget.CountWords(text)
}

// LimitItems applies the word budget to texts in order.
func (s *ConversionService) LimitItems(texts []string) []domain.LimitItem {
	return budget.LimitItems(texts)
}
