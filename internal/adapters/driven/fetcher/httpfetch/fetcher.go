// Package httpfetch retrieves pages with plain HTTP GET requests.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 10 << 20

// Fetcher issues rate-limited GET requests and returns the decoded body.
type Fetcher struct {
	client    *http.Client
	userAgent string
	bucket    *rate.Limiter
}

// New creates a fetcher from fetch settings. A non-positive rate
// disables limiting.
func New(settings domain.FetchSettings) *Fetcher {
	limit := rate.Inf
	if settings.RatePerSecond > 0 {
		limit = rate.Limit(settings.RatePerSecond)
	}
	burst := max(settings.Burst, 1)

	userAgent := settings.UserAgent
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: settings.Timeout()},
		userAgent: userAgent,
		bucket:    rate.NewLimiter(limit, burst),
	}
}

// Name returns the fetcher identifier.
func (f *Fetcher) Name() string {
	return "http"
}

// SetClient replaces the HTTP client. Used by tests.
func (f *Fetcher) SetClient(client *http.Client) {
	f.client = client
}

// Fetch retrieves rawURL and returns its body decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.bucket.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %w", domain.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %w", domain.ErrFetchFailed, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: fetching %s: status %d", domain.ErrFetchFailed, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", domain.ErrFetchFailed, rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !declaredTextual(contentType) && !isTextual(body) {
		return "", fmt.Errorf("%w: %s is %s", domain.ErrNotHTML, rawURL, mimetype.Detect(body).String())
	}

	decoded, err := decode(body, contentType)
	if err != nil {
		logger.Warn("charset decode failed for %s: %v", rawURL, err)
		return string(body), nil
	}
	logger.Debug("fetched %s (%d bytes)", rawURL, len(body))
	return decoded, nil
}

// declaredTextual reports whether the Content-Type header names HTML,
// XHTML or a text type.
func declaredTextual(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}

// isTextual reports whether body sniffs as text. HTML and XML descend
// from text/plain in the mimetype tree. Empty bodies are accepted and
// convert to nothing.
func isTextual(body []byte) bool {
	if len(body) == 0 {
		return true
	}
	for m := mimetype.Detect(body); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
