// Package chrome manages the headless Chrome instance shared by the
// browser fetcher and the image renderer.
package chrome

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// ErrClosed is returned when a tab is requested after Close.
var ErrClosed = errors.New("browser closed")

// Default window size for local instances.
const (
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

// Options configures how the browser is reached.
type Options struct {
	// RemoteURL is a DevTools endpoint. Empty launches a local Chrome.
	RemoteURL string

	// ExecPath overrides the Chrome binary for local launches.
	ExecPath string

	// UserAgent overrides the browser user agent when non-empty.
	UserAgent string
}

// OptionsFrom builds Options from application settings.
func OptionsFrom(browser domain.BrowserSettings, fetch domain.FetchSettings) Options {
	return Options{
		RemoteURL: browser.URL,
		UserAgent: fetch.UserAgent,
	}
}

// Browser lazily starts one Chrome and hands out tabs on it.
// It is safe for concurrent use.
type Browser struct {
	opts Options

	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	closed        bool
}

// New creates a browser handle. Nothing is started until the first tab.
func New(opts Options) *Browser {
	return &Browser{opts: opts}
}

// Remote reports whether tabs open on a remote DevTools endpoint.
func (b *Browser) Remote() bool {
	return b.opts.RemoteURL != ""
}

// Tab opens a new tab bound to ctx and limited by timeout. The returned
// cancel func closes the tab and must always be called.
func (b *Browser) Tab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	parent, err := b.start()
	if err != nil {
		return nil, nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(parent)
	if timeout > 0 {
		var timeoutCancel context.CancelFunc
		tabCtx, timeoutCancel = context.WithTimeout(tabCtx, timeout)
		inner := tabCancel
		tabCancel = func() {
			timeoutCancel()
			inner()
		}
	}

	// chromedp contexts derive from the browser, so caller cancellation
	// is forwarded explicitly.
	stop := context.AfterFunc(ctx, tabCancel)
	return tabCtx, func() {
		stop()
		tabCancel()
	}, nil
}

// Close shuts down the browser or disconnects from the remote endpoint.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.browserCancel != nil {
		b.browserCancel()
		b.browserCancel = nil
	}
	if b.allocCancel != nil {
		b.allocCancel()
		b.allocCancel = nil
	}
	b.browserCtx = nil
}

func (b *Browser) start() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if b.browserCtx != nil && b.browserCtx.Err() == nil {
		return b.browserCtx, nil
	}

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if b.Remote() {
		logger.Debug("connecting to browser at %s", b.opts.RemoteURL)
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), b.opts.RemoteURL)
	} else {
		logger.Debug("launching local headless browser")
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), allocatorOptions(b.opts)...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, err
	}

	b.allocCancel = allocCancel
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	return browserCtx, nil
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("mute-audio", true),
		chromedp.WindowSize(DefaultWindowWidth, DefaultWindowHeight),
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	return allocOpts
}
