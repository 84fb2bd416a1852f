package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Ensure RenderService implements the interface.
var _ driving.RenderService = (*RenderService)(nil)

// Rendering defaults.
const (
	DefaultRenderWidth   = 1080
	DefaultRenderTimeout = 30 * time.Second
)

// RenderService screenshots Markdown and HTML documents.
type RenderService struct {
	images   driven.ImageRenderer
	markdown driven.MarkdownRenderer
	width    int
	timeout  time.Duration
}

// NewRenderService creates a new render service.
// Either renderer may be nil; the matching methods then return
// domain.ErrRendererUnavailable.
func NewRenderService(images driven.ImageRenderer, markdown driven.MarkdownRenderer) *RenderService {
	return &RenderService{
		images:   images,
		markdown: markdown,
		width:    DefaultRenderWidth,
		timeout:  DefaultRenderTimeout,
	}
}

// SetTimeout overrides the per-render deadline.
func (s *RenderService) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Available reports whether an image renderer is configured.
func (s *RenderService) Available() bool {
	return s.images != nil
}

// MarkdownToImage renders markdown in the page template and screenshots it.
func (s *RenderService) MarkdownToImage(ctx context.Context, markdown string) (string, error) {
	if s.markdown == nil {
		return "", domain.ErrRendererUnavailable
	}
	page, err := s.markdown.RenderPage(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return s.HTMLToImage(ctx, page)
}

// HTMLToImage screenshots html and returns base64-encoded PNG.
func (s *RenderService) HTMLToImage(ctx context.Context, html string) (string, error) {
	if s.images == nil {
		return "", domain.ErrRendererUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	png, err := s.images.Render(ctx, html, s.width)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", domain.ErrRenderTimeout, s.timeout)
		}
		return "", fmt.Errorf("render image: %w", err)
	}
	logger.Debug("rendered %d bytes of html to %d bytes png in %s",
		len(html), len(png), time.Since(started).Round(time.Millisecond))

	return base64.StdEncoding.EncodeToString(png), nil
}
