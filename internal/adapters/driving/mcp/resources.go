package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cleanfetch/internal/budget"
	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for cleanfetch resources.
	uriScheme = "cleanfetch://"

	jsonMIMEType = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "formats",
		Name:        "formats",
		Description: "Output formats and the shared word budget",
		MIMEType:    jsonMIMEType,
	}, s.handleFormatsResource)

	if s.ports.Settings == nil {
		return
	}
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective fetch, browser and server settings (auth token redacted)",
		MIMEType:    jsonMIMEType,
	}, s.handleSettingsResource)
}

// handleFormatsResource lists the output formats.
func (s *Server) handleFormatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type formatInfo struct {
		Name     string `json:"name"`
		Budgeted bool   `json:"budgeted"`
	}
	type formatsInfo struct {
		Formats   []formatInfo `json:"formats"`
		WordLimit int          `json:"word_limit"`
	}

	all := domain.AllOutputFormats()
	info := formatsInfo{
		Formats:   make([]formatInfo, len(all)),
		WordLimit: budget.Limit,
	}
	for i, f := range all {
		info.Formats[i] = formatInfo{Name: f.String(), Budgeted: f.Budgeted()}
	}

	return jsonResource(req.Params.URI, info)
}

// handleSettingsResource returns the effective settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	type settingsInfo struct {
		FetchMode      string  `json:"fetch_mode"`
		TimeoutSeconds int     `json:"timeout_seconds"`
		UserAgent      string  `json:"user_agent"`
		RatePerSecond  float64 `json:"rate_per_second"`
		Burst          int     `json:"burst"`
		BrowserURL     string  `json:"browser_url,omitempty"`
		SettleMS       int     `json:"settle_ms"`
		Port           int     `json:"port"`
		AuthEnabled    bool    `json:"auth_enabled"`
	}

	return jsonResource(req.Params.URI, settingsInfo{
		FetchMode:      settings.Fetch.Mode.String(),
		TimeoutSeconds: settings.Fetch.TimeoutSeconds,
		UserAgent:      settings.Fetch.UserAgent,
		RatePerSecond:  settings.Fetch.RatePerSecond,
		Burst:          settings.Fetch.Burst,
		BrowserURL:     settings.Browser.URL,
		SettleMS:       settings.Browser.SettleMS,
		Port:           settings.Server.Port,
		AuthEnabled:    settings.Server.AuthEnabled(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIMEType,
			Text:     string(data),
		}},
	}, nil
}
