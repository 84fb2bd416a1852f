// Package domain defines the core entities for cleanfetch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: an element or text node of a parsed HTML document
//   - LimitItem: the word-budget decision for one converted output
//   - FetchResult: the per-URL outcome of a fetch-and-convert call
//   - AppSettings: browser, fetch and server configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
