package domain

import "time"

const unknownDescription = "Unknown"

// FetchMode selects how pages are retrieved.
type FetchMode string

// Available fetch modes.
const (
	// FetchModeHTTP retrieves pages with a plain HTTP GET.
	FetchModeHTTP FetchMode = "http"

	// FetchModeBrowser retrieves pages through a headless browser so
	// that client-side rendering runs before the HTML is captured.
	FetchModeBrowser FetchMode = "browser"
)

// IsValid returns true if the fetch mode is recognised.
func (m FetchMode) IsValid() bool {
	switch m {
	case FetchModeHTTP, FetchModeBrowser:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m FetchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m FetchMode) Description() string {
	switch m {
	case FetchModeHTTP:
		return "HTTP (direct GET)"
	case FetchModeBrowser:
		return "Browser (headless Chrome)"
	default:
		return unknownDescription
	}
}

// AppSettings holds all runtime configuration.
type AppSettings struct {
	Browser BrowserSettings
	Fetch   FetchSettings
	Server  ServerSettings
}

// BrowserSettings configures the headless browser used for browser
// fetches and image rendering.
type BrowserSettings struct {
	// URL is a Chrome DevTools endpoint (e.g. http://127.0.0.1:9222).
	// Empty starts a local headless Chrome instead.
	URL string

	// SettleMS is how long to wait after navigation before reading the page.
	SettleMS int
}

// Settle returns the settle delay as a duration.
func (b BrowserSettings) Settle() time.Duration {
	return time.Duration(b.SettleMS) * time.Millisecond
}

// FetchSettings configures page retrieval.
type FetchSettings struct {
	Mode           FetchMode
	TimeoutSeconds int
	UserAgent      string
	RatePerSecond  float64
	Burst          int
}

// Timeout returns the per-request timeout as a duration.
func (f FetchSettings) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// ServerSettings configures the MCP HTTP transport.
type ServerSettings struct {
	Port int

	// AuthToken enables bearer-token auth when non-empty.
	AuthToken string
}

// AuthEnabled reports whether bearer-token auth is required.
func (s ServerSettings) AuthEnabled() bool {
	return s.AuthToken != ""
}

// DefaultUserAgent is sent by the HTTP fetcher unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (compatible; cleanfetch/1.0; +https://github.com/custodia-labs/cleanfetch)"

// DefaultAppSettings returns the default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Browser: BrowserSettings{
			URL:      "",
			SettleMS: 800,
		},
		Fetch: FetchSettings{
			Mode:           FetchModeHTTP,
			TimeoutSeconds: 30,
			UserAgent:      DefaultUserAgent,
			RatePerSecond:  2.0,
			Burst:          4,
		},
		Server: ServerSettings{
			Port: 3000,
		},
	}
}

// AllFetchModes returns all available fetch modes.
func AllFetchModes() []FetchMode {
	return []FetchMode{FetchModeHTTP, FetchModeBrowser}
}
