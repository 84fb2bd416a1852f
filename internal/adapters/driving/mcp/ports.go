package mcp

import (
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Fetch retrieves and converts pages.
	Fetch driving.FetchService

	// Render produces screenshots. The image tools are only registered
	// when it is set and available.
	Render driving.RenderService

	// Settings backs the settings resource.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Fetch == nil {
		return ErrMissingFetchService
	}
	return nil
}

func (p *Ports) renderAvailable() bool {
	return p.Render != nil && p.Render.Available()
}
