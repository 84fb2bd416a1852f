package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

// FetchInput is the input schema for the fetch tools.
type FetchInput struct {
	URLs []string `json:"urls" jsonschema:"the URLs to fetch, at least one"`
}

// FetchOutput is the output schema for the fetch tools.
type FetchOutput struct {
	Results []FetchResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// FetchResultOutput is the outcome for one URL. Exactly one content
// field or Error is set.
type FetchResultOutput struct {
	URL          string `json:"url"`
	Markdown     string `json:"markdown,omitempty"`
	Text         string `json:"text,omitempty"`
	URLsMarkdown string `json:"urls_markdown,omitempty"`
	HTML         string `json:"html,omitempty"`
	WordCount    int    `json:"word_count,omitempty"`
	Error        string `json:"error,omitempty"`
}

// MarkdownImageInput is the input schema for markdown_to_image.
type MarkdownImageInput struct {
	Markdown string `json:"markdown" jsonschema:"the Markdown document to render"`
}

// HTMLImageInput is the input schema for html_to_image.
type HTMLImageInput struct {
	HTML string `json:"html" jsonschema:"the HTML document to render"`
}

// ImageOutput is the output schema for the image tools.
type ImageOutput struct {
	Image    string `json:"image"`
	MIMEType string `json:"mime_type"`
}

const pngMIMEType = "image/png"

// fetchTools maps tool names to the format they produce.
var fetchTools = []struct {
	name        string
	description string
	format      domain.OutputFormat
}{
	{"fetch_markdown", "Fetch several URLs and return Markdown (limited to 128000 words in total)", domain.FormatMarkdown},
	{"fetch_txt", "Fetch several URLs and return plain text without URLs (limited to 128000 words in total)", domain.FormatText},
	{"fetch_urls", "Fetch several URLs and extract the page links as a Markdown list", domain.FormatURLs},
	{"fetch_html", "Fetch several URLs and return the raw HTML", domain.FormatHTML},
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	for _, tool := range fetchTools {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        tool.name,
			Description: tool.description,
		}, s.fetchHandler(tool.format))
	}

	if !s.ports.renderAvailable() {
		return
	}
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "markdown_to_image",
		Description: "Render a Markdown document to a PNG image",
	}, s.handleMarkdownToImage)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "html_to_image",
		Description: "Render an HTML document to a PNG image",
	}, s.handleHTMLToImage)
}

// fetchHandler returns the tool handler for one output format.
func (s *Server) fetchHandler(
	format domain.OutputFormat,
) func(context.Context, *mcp.CallToolRequest, FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
		output := FetchOutput{Results: []FetchResultOutput{}}
		if len(input.URLs) == 0 {
			return nil, output, nil
		}

		results, err := s.ports.Fetch.Fetch(ctx, input.URLs, format)
		if err != nil {
			return nil, FetchOutput{}, err
		}

		output.Results = make([]FetchResultOutput, len(results))
		output.Count = len(results)
		for i := range results {
			output.Results[i] = toResultOutput(&results[i], format)
		}
		return nil, output, nil
	}
}

func toResultOutput(r *domain.FetchResult, format domain.OutputFormat) FetchResultOutput {
	out := FetchResultOutput{
		URL:       r.URL,
		WordCount: r.WordCount,
		Error:     r.Error,
	}
	if !r.OK() {
		return out
	}
	switch format {
	case domain.FormatMarkdown:
		out.Markdown = r.Content
	case domain.FormatText:
		out.Text = r.Content
	case domain.FormatURLs:
		out.URLsMarkdown = r.Content
	case domain.FormatHTML:
		out.HTML = r.Content
	}
	return out
}

// handleMarkdownToImage handles the markdown_to_image tool invocation.
func (s *Server) handleMarkdownToImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MarkdownImageInput,
) (*mcp.CallToolResult, ImageOutput, error) {
	encoded, err := s.ports.Render.MarkdownToImage(ctx, input.Markdown)
	if err != nil {
		return nil, ImageOutput{}, err
	}
	return imageResult(encoded)
}

// handleHTMLToImage handles the html_to_image tool invocation.
func (s *Server) handleHTMLToImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HTMLImageInput,
) (*mcp.CallToolResult, ImageOutput, error) {
	encoded, err := s.ports.Render.HTMLToImage(ctx, input.HTML)
	if err != nil {
		return nil, ImageOutput{}, err
	}
	return imageResult(encoded)
}

// imageResult returns the PNG both as image content and as structured output.
func imageResult(encoded string) (*mcp.CallToolResult, ImageOutput, error) {
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ImageOutput{}, fmt.Errorf("decoding image: %w", err)
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.ImageContent{Data: png, MIMEType: pngMIMEType}},
	}
	return result, ImageOutput{Image: encoded, MIMEType: pngMIMEType}, nil
}
