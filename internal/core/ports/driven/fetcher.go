package driven

import "context"

// PageFetcher retrieves the HTML of a web page.
type PageFetcher interface {
	// Fetch returns the page HTML for url.
	// Errors wrap domain.ErrFetchFailed or domain.ErrNotHTML.
	Fetch(ctx context.Context, url string) (string, error)

	// Name identifies the fetcher in logs (e.g. "http", "browser").
	Name() string
}
