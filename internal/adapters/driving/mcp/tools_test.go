package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

func TestServer_fetchHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("maps markdown results", func(t *testing.T) {
		mockFetch := &mockFetchService{
			results: []domain.FetchResult{
				{URL: "https://a.com", Format: domain.FormatMarkdown, Content: "# A", WordCount: 1},
				{URL: "https://b.com", Format: domain.FormatMarkdown, Error: "navigate failed: timeout"},
			},
		}
		server, err := NewServer(&Ports{Fetch: mockFetch})
		require.NoError(t, err)

		input := FetchInput{URLs: []string{"https://a.com", "https://b.com"}}
		_, output, err := server.fetchHandler(domain.FormatMarkdown)(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, domain.FormatMarkdown, mockFetch.lastFormat)
		assert.Equal(t, input.URLs, mockFetch.lastURLs)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, FetchResultOutput{URL: "https://a.com", Markdown: "# A", WordCount: 1}, output.Results[0])
		assert.Equal(t, FetchResultOutput{URL: "https://b.com", Error: "navigate failed: timeout"}, output.Results[1])
	})

	t.Run("each format fills its own field", func(t *testing.T) {
		tests := []struct {
			format   domain.OutputFormat
			expected FetchResultOutput
		}{
			{domain.FormatMarkdown, FetchResultOutput{URL: "u", Markdown: "c"}},
			{domain.FormatText, FetchResultOutput{URL: "u", Text: "c"}},
			{domain.FormatURLs, FetchResultOutput{URL: "u", URLsMarkdown: "c"}},
			{domain.FormatHTML, FetchResultOutput{URL: "u", HTML: "c"}},
		}
		for _, tc := range tests {
			t.Run(tc.format.String(), func(t *testing.T) {
				result := domain.FetchResult{URL: "u", Format: tc.format, Content: "c"}
				assert.Equal(t, tc.expected, toResultOutput(&result, tc.format))
			})
		}
	})

	t.Run("budget exclusion keeps only error", func(t *testing.T) {
		mockFetch := &mockFetchService{
			results: []domain.FetchResult{
				{URL: "https://big.com", Format: domain.FormatText, WordCount: 200000, Error: "exceeded 128000 word limit, dropped by input order"},
			},
		}
		server, err := NewServer(&Ports{Fetch: mockFetch})
		require.NoError(t, err)

		_, output, err := server.fetchHandler(domain.FormatText)(ctx, nil, FetchInput{URLs: []string{"https://big.com"}})

		require.NoError(t, err)
		require.Len(t, output.Results, 1)
		assert.Empty(t, output.Results[0].Text)
		assert.Equal(t, "exceeded 128000 word limit, dropped by input order", output.Results[0].Error)
	})

	t.Run("empty input returns empty results without fetching", func(t *testing.T) {
		mockFetch := &mockFetchService{}
		server, err := NewServer(&Ports{Fetch: mockFetch})
		require.NoError(t, err)

		_, output, err := server.fetchHandler(domain.FormatMarkdown)(ctx, nil, FetchInput{})

		require.NoError(t, err)
		assert.NotNil(t, output.Results)
		assert.Empty(t, output.Results)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, 0, mockFetch.calls)
	})

	t.Run("returns error on service failure", func(t *testing.T) {
		mockFetch := &mockFetchService{err: domain.ErrUnsupportedFormat}
		server, err := NewServer(&Ports{Fetch: mockFetch})
		require.NoError(t, err)

		_, _, err = server.fetchHandler("pdf")(ctx, nil, FetchInput{URLs: []string{"https://a.com"}})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})
}

func TestServer_imageHandlers(t *testing.T) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n\x1a\n")
	encoded := base64.StdEncoding.EncodeToString(png)

	t.Run("markdown to image", func(t *testing.T) {
		render := &mockRenderService{available: true, image: encoded}
		server, err := NewServer(&Ports{Fetch: &mockFetchService{}, Render: render})
		require.NoError(t, err)

		result, output, err := server.handleMarkdownToImage(ctx, nil, MarkdownImageInput{Markdown: "# hi"})

		require.NoError(t, err)
		assert.Equal(t, "# hi", render.lastInput)
		assert.Equal(t, ImageOutput{Image: encoded, MIMEType: "image/png"}, output)
		require.NotNil(t, result)
		require.Len(t, result.Content, 1)
		image, ok := result.Content[0].(*mcp.ImageContent)
		require.True(t, ok)
		assert.Equal(t, png, image.Data)
		assert.Equal(t, "image/png", image.MIMEType)
	})

	t.Run("html to image", func(t *testing.T) {
		render := &mockRenderService{available: true, image: encoded}
		server, err := NewServer(&Ports{Fetch: &mockFetchService{}, Render: render})
		require.NoError(t, err)

		_, output, err := server.handleHTMLToImage(ctx, nil, HTMLImageInput{HTML: "<p>x</p>"})

		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", render.lastInput)
		assert.Equal(t, encoded, output.Image)
	})

	t.Run("render error propagated", func(t *testing.T) {
		render := &mockRenderService{available: true, err: domain.ErrRenderTimeout}
		server, err := NewServer(&Ports{Fetch: &mockFetchService{}, Render: render})
		require.NoError(t, err)

		_, _, err = server.handleHTMLToImage(ctx, nil, HTMLImageInput{HTML: "<p>x</p>"})

		assert.ErrorIs(t, err, domain.ErrRenderTimeout)
	})

	t.Run("invalid base64 rejected", func(t *testing.T) {
		_, _, err := imageResult("not base64!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding image")
	})

	t.Run("generic error message", func(t *testing.T) {
		render := &mockRenderService{available: true, err: errors.New("screenshot failed")}
		server, err := NewServer(&Ports{Fetch: &mockFetchService{}, Render: render})
		require.NoError(t, err)

		_, _, err = server.handleMarkdownToImage(ctx, nil, MarkdownImageInput{Markdown: "x"})

		assert.EqualError(t, err, "screenshot failed")
	})
}
