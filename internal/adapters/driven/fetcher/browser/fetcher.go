// Package browser retrieves pages through headless Chrome so that
// client-side rendering runs before the HTML is captured.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// TabOpener opens browser tabs. Satisfied by *chrome.Browser.
type TabOpener interface {
	Tab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error)
}

// Fetcher loads each URL in a fresh tab and returns the rendered document.
type Fetcher struct {
	tabs    TabOpener
	settle  time.Duration
	timeout time.Duration
	headers map[string]any
}

// New creates a browser fetcher on top of tabs.
func New(tabs TabOpener, browser domain.BrowserSettings, fetch domain.FetchSettings) *Fetcher {
	return &Fetcher{
		tabs:    tabs,
		settle:  browser.Settle(),
		timeout: fetch.Timeout(),
		headers: map[string]any{"Accept-Language": "en-US,en;q=0.9"},
	}
}

// Name returns the fetcher identifier.
func (f *Fetcher) Name() string {
	return "browser"
}

// Fetch navigates to rawURL, waits for the body plus the settle delay,
// and returns the outer HTML of the document element.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	tabCtx, cancel, err := f.tabs.Tab(ctx, f.timeout)
	if err != nil {
		return "", fmt.Errorf("%w: browser session failed: %w", domain.ErrFetchFailed, err)
	}
	defer cancel()

	if err := chromedp.Run(tabCtx, pageActions(rawURL, f.settle, f.headers)...); err != nil {
		return "", fmt.Errorf("%w: navigate failed: %w", domain.ErrFetchFailed, err)
	}

	var html, finalURL string
	if err := chromedp.Run(tabCtx,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	); err != nil {
		return "", fmt.Errorf("%w: read page source failed: %w", domain.ErrFetchFailed, err)
	}

	if finalURL != "" && finalURL != rawURL {
		logger.Debug("browser fetch %s landed on %s", rawURL, finalURL)
	}
	return html, nil
}

// pageActions navigates and waits for the page to settle.
func pageActions(rawURL string, settle time.Duration, headers map[string]any) []chromedp.Action {
	actions := []chromedp.Action{network.Enable()}
	if len(headers) > 0 {
		actions = append(actions, network.SetExtraHTTPHeaders(network.Headers(headers)))
	}
	actions = append(actions,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if settle > 0 {
		actions = append(actions, chromedp.Sleep(settle))
	}
	return actions
}
