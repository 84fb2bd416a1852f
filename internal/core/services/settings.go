package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBrowserURL      = "browser.url"
	KeyBrowserSettleMS = "browser.settle_ms"
	KeyFetchMode       = "fetch.mode"
	KeyFetchTimeout    = "fetch.timeout_seconds"
	KeyFetchUserAgent  = "fetch.user_agent"
	KeyFetchRate       = "fetch.rate_per_second"
	KeyFetchBurst      = "fetch.burst"
	KeyServerPort      = "server.port"
	KeyServerAuthToken = "server.auth_token"
)

// Environment variables that override stored settings.
const (
	EnvBrowserURL = "BROWSER_URL"
	EnvPort       = "PORT"
	EnvAuthToken  = "MCP_AUTH_TOKEN"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings. Environment variables take
// precedence over stored values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	s.applyEnv(settings)
	return settings, nil
}

// stored reads the persisted settings, falling back to defaults.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Browser: domain.BrowserSettings{
			URL:      s.configStore.GetString(KeyBrowserURL), // Empty is valid: start a local browser
			SettleMS: s.getNonNegativeInt(KeyBrowserSettleMS, defaults.Browser.SettleMS),
		},
		Fetch: domain.FetchSettings{
			Mode:           s.getFetchMode(defaults.Fetch.Mode),
			TimeoutSeconds: s.getInt(KeyFetchTimeout, defaults.Fetch.TimeoutSeconds),
			UserAgent:      s.getString(KeyFetchUserAgent, defaults.Fetch.UserAgent),
			RatePerSecond:  s.getFloat(KeyFetchRate, defaults.Fetch.RatePerSecond),
			Burst:          s.getInt(KeyFetchBurst, defaults.Fetch.Burst),
		},
		Server: domain.ServerSettings{
			Port:      s.getInt(KeyServerPort, defaults.Server.Port),
			AuthToken: s.configStore.GetString(KeyServerAuthToken),
		},
	}
}

func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v := strings.TrimSpace(s.getenv(EnvBrowserURL)); v != "" {
		settings.Browser.URL = v
	}
	if v := strings.TrimSpace(s.getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			settings.Server.Port = port
		}
	}
	if v := strings.TrimSpace(s.getenv(EnvAuthToken)); v != "" {
		settings.Server.AuthToken = v
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyBrowserURL, settings.Browser.URL},
		{KeyBrowserSettleMS, settings.Browser.SettleMS},
		{KeyFetchMode, settings.Fetch.Mode.String()},
		{KeyFetchTimeout, settings.Fetch.TimeoutSeconds},
		{KeyFetchUserAgent, settings.Fetch.UserAgent},
		{KeyFetchRate, settings.Fetch.RatePerSecond},
		{KeyFetchBurst, settings.Fetch.Burst},
		{KeyServerPort, settings.Server.Port},
		{KeyServerAuthToken, settings.Server.AuthToken},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetFetchMode updates how pages are retrieved.
func (s *SettingsService) SetFetchMode(mode domain.FetchMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: invalid fetch mode: %s", domain.ErrInvalidInput, mode)
	}
	return s.configStore.Set(KeyFetchMode, mode.String())
}

// SetBrowserURL sets the Chrome DevTools endpoint.
func (s *SettingsService) SetBrowserURL(url string) error {
	return s.configStore.Set(KeyBrowserURL, strings.TrimSpace(url))
}

// SetServerPort sets the HTTP port for the MCP server.
func (s *SettingsService) SetServerPort(port int) error {
	if err := validatePort(port); err != nil {
		return err
	}
	return s.configStore.Set(KeyServerPort, port)
}

// SetAuthToken sets the bearer token. Empty disables auth.
func (s *SettingsService) SetAuthToken(token string) error {
	return s.configStore.Set(KeyServerAuthToken, strings.TrimSpace(token))
}

// Validate checks the effective settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Fetch.Mode.IsValid() {
		return fmt.Errorf("%w: invalid fetch mode: %s", domain.ErrInvalidInput, settings.Fetch.Mode)
	}
	if err := validatePort(settings.Server.Port); err != nil {
		return err
	}
	if settings.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", domain.ErrInvalidInput)
	}
	if settings.Fetch.RatePerSecond <= 0 {
		return fmt.Errorf("%w: fetch rate must be positive", domain.ErrInvalidInput)
	}
	if settings.Fetch.Burst < 1 {
		return fmt.Errorf("%w: fetch burst must be at least 1", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidInput, port)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getNonNegativeInt is like getInt but keeps an explicit zero.
func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	if val := s.configStore.GetInt(key); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFetchMode(defaultVal domain.FetchMode) domain.FetchMode {
	mode := domain.FetchMode(s.configStore.GetString(KeyFetchMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}
