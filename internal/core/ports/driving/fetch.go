package driving

import (
	"context"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

// FetchService retrieves batches of pages and converts them.
//
// Results are returned one per input URL, in input order. Per-URL failures
// are reported in FetchResult.Error rather than as a returned error.
type FetchService interface {
	// Fetch retrieves urls and converts each page to format. The only
	// returned error is domain.ErrUnsupportedFormat.
	Fetch(ctx context.Context, urls []string, format domain.OutputFormat) ([]domain.FetchResult, error)

	// FetchMarkdown retrieves urls as Markdown under the word budget.
	FetchMarkdown(ctx context.Context, urls []string) []domain.FetchResult

	// FetchText retrieves urls as plain text under the word budget.
	FetchText(ctx context.Context, urls []string) []domain.FetchResult

	// FetchURLs lists the links of each page, resolved against its URL.
	FetchURLs(ctx context.Context, urls []string) []domain.FetchResult

	// FetchHTML returns the raw HTML of each page.
	FetchHTML(ctx context.Context, urls []string) []domain.FetchResult
}
