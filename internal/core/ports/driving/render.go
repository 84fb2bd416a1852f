package driving

import "context"

// RenderService produces PNG screenshots of Markdown and HTML documents.
type RenderService interface {
	// Available reports whether an image renderer is configured.
	Available() bool

	// MarkdownToImage renders markdown in the page template and returns
	// the screenshot as base64-encoded PNG.
	MarkdownToImage(ctx context.Context, markdown string) (string, error)

	// HTMLToImage renders html and returns the screenshot as base64-encoded PNG.
	HTMLToImage(ctx context.Context, html string) (string, error)
}
