// Package mcp provides an MCP (Model Context Protocol) server adapter for cleanfetch.
// It lets AI assistants fetch web pages as Markdown, text, link lists or raw HTML.
package mcp

import "errors"

// ErrMissingFetchService is returned when the fetch service is not provided.
var ErrMissingFetchService = errors.New("mcp: fetch service is required")
