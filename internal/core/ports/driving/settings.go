package driving

import "github.com/custodia-labs/cleanfetch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, including environment overrides.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetFetchMode updates how pages are retrieved.
	SetFetchMode(mode domain.FetchMode) error

	// SetBrowserURL sets the Chrome DevTools endpoint. Empty means a local browser.
	SetBrowserURL(url string) error

	// SetServerPort sets the HTTP port for the MCP server.
	SetServerPort(port int) error

	// SetAuthToken sets the bearer token. Empty disables auth.
	SetAuthToken(token string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
