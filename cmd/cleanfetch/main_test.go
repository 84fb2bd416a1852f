package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/chrome"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/services"
)

func TestReloadFetcher_FollowsFetchMode(t *testing.T) {
	t.Setenv("BROWSER_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("MCP_AUTH_TOKEN", "")

	settingsService := services.NewSettingsService(memory.NewStore())
	settings, err := settingsService.Get()
	require.NoError(t, err)

	tabs := chrome.New(chrome.Options{})
	defer tabs.Close()

	fetch := services.NewFetchService(newFetcher(settings, tabs), services.NewConversionService())

	require.NoError(t, settingsService.SetFetchMode(domain.FetchModeBrowser))
	fetcher := reloadFetcher(settingsService, fetch, tabs, "")
	require.NotNil(t, fetcher)
	assert.Equal(t, "browser", fetcher.Name())

	require.NoError(t, settingsService.SetFetchMode(domain.FetchModeHTTP))
	fetcher = reloadFetcher(settingsService, fetch, tabs, "")
	require.NotNil(t, fetcher)
	assert.Equal(t, "http", fetcher.Name())
}
