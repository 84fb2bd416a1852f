package mcp

import (
	"context"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

// mockFetchService is a mock implementation of driving.FetchService.
type mockFetchService struct {
	results    []domain.FetchResult
	err        error
	lastURLs   []string
	lastFormat domain.OutputFormat
	calls      int
}

func (m *mockFetchService) Fetch(
	_ context.Context,
	urls []string,
	format domain.OutputFormat,
) ([]domain.FetchResult, error) {
	m.calls++
	m.lastURLs = urls
	m.lastFormat = format
	return m.results, m.err
}

func (m *mockFetchService) FetchMarkdown(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := m.Fetch(ctx, urls, domain.FormatMarkdown)
	return results
}

func (m *mockFetchService) FetchText(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := m.Fetch(ctx, urls, domain.FormatText)
	return results
}

func (m *mockFetchService) FetchURLs(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := m.Fetch(ctx, urls, domain.FormatURLs)
	return results
}

func (m *mockFetchService) FetchHTML(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := m.Fetch(ctx, urls, domain.FormatHTML)
	return results
}

// mockRenderService is a mock implementation of driving.RenderService.
type mockRenderService struct {
	available bool
	image     string
	err       error
	lastInput string
}

func (m *mockRenderService) Available() bool {
	return m.available
}

func (m *mockRenderService) MarkdownToImage(_ context.Context, markdown string) (string, error) {
	m.lastInput = markdown
	return m.image, m.err
}

func (m *mockRenderService) HTMLToImage(_ context.Context, html string) (string, error) {
	m.lastInput = html
	return m.image, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetFetchMode(_ domain.FetchMode) error {
	return m.err
}

func (m *mockSettingsService) SetBrowserURL(_ string) error {
	return m.err
}

func (m *mockSettingsService) SetServerPort(_ int) error {
	return m.err
}

func (m *mockSettingsService) SetAuthToken(_ string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
