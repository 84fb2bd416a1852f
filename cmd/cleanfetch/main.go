// Command cleanfetch fetches web pages and converts them to Markdown,
// plain text or link lists, on the command line or as an MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/chrome"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/fetcher/browser"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/fetcher/httpfetch"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/render"
	"github.com/custodia-labs/cleanfetch/internal/adapters/driving/cli"
	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/core/services"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// envConfigDir overrides the config directory (default ~/.cleanfetch).
const envConfigDir = "CLEANFETCH_CONFIG_DIR"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	store := openConfigStore()
	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("reading settings: %v", err)
		return err
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	chromeBrowser := chrome.New(chrome.OptionsFrom(settings.Browser, settings.Fetch))
	defer chromeBrowser.Close()

	conversion := services.NewConversionService()
	fetch := services.NewFetchService(newFetcher(settings, chromeBrowser), conversion)
	renderer := services.NewRenderService(
		render.NewImageRenderer(chromeBrowser),
		render.NewMarkdownRenderer(),
	)

	if watcher, ok := store.(driven.ConfigWatcher); ok {
		go watchConfig(ctx, watcher, func() {
			reloadFetcher(settingsService, fetch, chromeBrowser, settings.Browser.URL)
		})
	}

	cli.SetVersion(version)
	cli.Configure(cli.Services{
		Conversion: conversion,
		Fetch:      fetch,
		Render:     renderer,
		Settings:   settingsService,
		ConfigPath: store.Path(),
	})
	return cli.Execute(ctx)
}

// openConfigStore opens the TOML store, falling back to an in-memory
// store so read-only conversions still work without a writable home.
func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore(os.Getenv(envConfigDir))
	if err != nil {
		logger.Error("config unavailable, using defaults: %v", err)
		return memory.NewStore()
	}
	return store
}

func newFetcher(settings *domain.AppSettings, tabs *chrome.Browser) driven.PageFetcher {
	if settings.Fetch.Mode == domain.FetchModeBrowser {
		return browser.New(tabs, settings.Browser, settings.Fetch)
	}
	return httpfetch.New(settings.Fetch)
}

// reloadFetcher swaps in a fetcher built from the current settings. The
// Chrome handle is shared with the renderer and keeps the DevTools URL it
// was started with.
func reloadFetcher(
	settingsService *services.SettingsService,
	fetch *services.FetchService,
	tabs *chrome.Browser,
	startURL string,
) driven.PageFetcher {
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reading reloaded settings: %v", err)
		return nil
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("reloaded settings: %v", err)
	}

	fetcher := newFetcher(settings, tabs)
	fetch.SetFetcher(fetcher)
	logger.Info("fetcher rebuilt: mode=%s timeout=%s rate=%.2f/s",
		settings.Fetch.Mode, settings.Fetch.Timeout(), settings.Fetch.RatePerSecond)
	if settings.Browser.URL != startURL {
		logger.Warn("browser url changed to %q, restart to apply", settings.Browser.URL)
	}
	return fetcher
}

func watchConfig(ctx context.Context, watcher driven.ConfigWatcher, onChange func()) {
	err := watcher.Watch(ctx, onChange)
	if err != nil {
		logger.Warn("config watch stopped: %v", err)
	}
}
