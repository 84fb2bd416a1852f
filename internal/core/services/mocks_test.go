package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

// --- Mock implementations ---

// mockFetcher implements driven.PageFetcher for testing.
type mockFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	errs  map[string]error
	calls []string
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.errs[url]; ok {
		return "", err
	}
	if html, ok := m.pages[url]; ok {
		return html, nil
	}
	return "", fmt.Errorf("%w: status 404", domain.ErrFetchFailed)
}

func (m *mockFetcher) Name() string {
	return "mock"
}

// mockImageRenderer implements driven.ImageRenderer for testing.
type mockImageRenderer struct {
	png       []byte
	err       error
	lastHTML  string
	lastWidth int
	block     bool
}

func (m *mockImageRenderer) Render(ctx context.Context, html string, width int) ([]byte, error) {
	m.lastHTML = html
	m.lastWidth = width
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.png, m.err
}

// mockMarkdownRenderer implements driven.MarkdownRenderer for testing.
type mockMarkdownRenderer struct {
	err error
}

func (m *mockMarkdownRenderer) RenderPage(markdown string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<html><body>" + markdown + "</body></html>", nil
}

// stubConverter implements driven.Converter for testing.
type stubConverter struct {
	format domain.OutputFormat
	out    string
}

func (s *stubConverter) Format() domain.OutputFormat {
	return s.format
}

func (s *stubConverter) Convert(_ []domain.Node, baseURL string) string {
	return s.out + baseURL
}

var errBoom = errors.New("boom")
