// Package render converts Markdown to HTML pages and screenshots HTML
// documents with headless Chrome.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
)

// Ensure ImageRenderer implements the interface.
var _ driven.ImageRenderer = (*ImageRenderer)(nil)

// initialHeight is the viewport height before the page is measured.
const initialHeight = 800

// TabOpener opens browser tabs. Satisfied by *chrome.Browser.
type TabOpener interface {
	Tab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error)
}

// ImageRenderer loads HTML into a blank tab and captures a full-page PNG.
type ImageRenderer struct {
	tabs TabOpener
}

// NewImageRenderer creates an image renderer on top of tabs.
func NewImageRenderer(tabs TabOpener) *ImageRenderer {
	return &ImageRenderer{tabs: tabs}
}

// Render screenshots html at the given viewport width. The deadline
// comes from ctx.
func (r *ImageRenderer) Render(ctx context.Context, html string, width int) ([]byte, error) {
	tabCtx, cancel, err := r.tabs.Tab(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("connect browser failed: %w", err)
	}
	defer cancel()

	var png []byte
	err = chromedp.Run(tabCtx,
		emulation.SetDeviceMetricsOverride(int64(width), initialHeight, 1, false),
		chromedp.Navigate("about:blank"),
		setDocument(html),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		// Report the caller's deadline rather than the tab's cancellation.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return png, nil
}

// setDocument replaces the blank document of the main frame with html.
func setDocument(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}
