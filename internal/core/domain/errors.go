package domain

import "errors"

// Domain errors represent failures at the edges of the system.
// The HTML core itself never fails; these come from fetching, rendering
// and configuration.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrFetchFailed indicates a page could not be retrieved.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNotHTML indicates the retrieved body is not an HTML or text document.
	ErrNotHTML = errors.New("response is not HTML")

	// ErrRendererUnavailable indicates no image renderer is configured.
	ErrRendererUnavailable = errors.New("image renderer unavailable")

	// ErrRenderTimeout indicates image rendering exceeded its deadline.
	ErrRenderTimeout = errors.New("render timed out")

	// ErrUnauthorized indicates a missing or wrong bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
