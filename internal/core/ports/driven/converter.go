package driven

import "github.com/custodia-labs/cleanfetch/internal/core/domain"

// Converter renders a parsed HTML document in one output format.
// Implementations must be pure: the same nodes and base URL always
// produce the same output.
type Converter interface {
	// Format returns the output format this converter produces.
	Format() domain.OutputFormat

	// Convert renders nodes. baseURL is used to resolve relative links
	// and may be empty; converters that do not emit links ignore it.
	Convert(nodes []domain.Node, baseURL string) string
}
