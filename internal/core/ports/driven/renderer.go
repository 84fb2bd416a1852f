package driven

import "context"

// ImageRenderer rasterises an HTML document to a PNG screenshot.
type ImageRenderer interface {
	// Render returns the PNG bytes of html laid out in a page of the
	// given width in CSS pixels.
	Render(ctx context.Context, html string, width int) ([]byte, error)
}

// MarkdownRenderer turns Markdown source into a complete, styled HTML page
// suitable for passing to an ImageRenderer.
type MarkdownRenderer interface {
	RenderPage(markdown string) (string, error)
}
