package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driven"
	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// Ensure FetchService implements the interface.
var _ driving.FetchService = (*FetchService)(nil)

// FetchService fetches pages one at a time and converts them.
type FetchService struct {
	mu         sync.RWMutex
	fetcher    driven.PageFetcher
	conversion driving.ConversionService
}

// NewFetchService creates a new fetch service.
func NewFetchService(fetcher driven.PageFetcher, conversion driving.ConversionService) *FetchService {
	return &FetchService{
		fetcher:    fetcher,
		conversion: conversion,
	}
}

// SetFetcher replaces the page fetcher. Batches already running finish
// with the fetcher they started with.
func (s *FetchService) SetFetcher(fetcher driven.PageFetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetcher = fetcher
}

func (s *FetchService) currentFetcher() driven.PageFetcher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetcher
}

// Fetch retrieves urls in order and converts each page to format.
// Markdown and text results are limited by the word budget; only pages
// that were fetched successfully count against it.
func (s *FetchService) Fetch(
	ctx context.Context, urls []string, format domain.OutputFormat,
) ([]domain.FetchResult, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	results := make([]domain.FetchResult, 0, len(urls))
	if len(urls) == 0 {
		return results, nil
	}

	fetcher := s.currentFetcher()
	batch := uuid.NewString()
	logger.Section("Fetch Batch")
	logger.Debug("batch=%s format=%s fetcher=%s urls=%d", batch, format, fetcher.Name(), len(urls))

	started := time.Now()
	for _, u := range urls {
		results = append(results, s.fetchOne(ctx, fetcher, u, format))
	}

	if format.Budgeted() {
		s.applyBudget(results)
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	logger.Debug("batch=%s done in %s, %d/%d without content",
		batch, time.Since(started).Round(time.Millisecond), failed, len(results))

	return results, nil
}

func (s *FetchService) fetchOne(
	ctx context.Context, fetcher driven.PageFetcher, url string, format domain.OutputFormat,
) domain.FetchResult {
	result := domain.FetchResult{URL: url, Format: format}

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		logger.Warn("fetch %s: %v", url, err)
		result.Error = err.Error()
		return result
	}

	content, err := s.conversion.Convert(html, format, url)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Content = content
	logger.Debug("fetched %s (%d bytes html, %d bytes %s)", url, len(html), len(content), format)
	return result
}

// applyBudget runs the word budget over the successful results in order and
// replaces the content of every dropped result with the budget error.
func (s *FetchService) applyBudget(results []domain.FetchResult) {
	var (
		texts   []string
		indices []int
	)
	for i := range results {
		if results[i].OK() {
			texts = append(texts, results[i].Content)
			indices = append(indices, i)
		}
	}

	for pos, item := range s.conversion.LimitItems(texts) {
		r := &results[indices[pos]]
		r.WordCount = item.WordCount
		if !item.Include {
			logger.Debug("dropping %s: %d words over budget", r.URL, item.WordCount)
			r.Content = ""
			r.Error = item.Error
		}
	}
}

// FetchMarkdown retrieves urls as Markdown under the word budget.
func (s *FetchService) FetchMarkdown(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := s.Fetch(ctx, urls, domain.FormatMarkdown)
	return results
}

// FetchText retrieves urls as plain text under the word budget.
func (s *FetchService) FetchText(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := s.Fetch(ctx, urls, domain.FormatText)
	return results
}

// FetchURLs lists the links of each page, resolved against its URL.
func (s *FetchService) FetchURLs(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := s.Fetch(ctx, urls, domain.FormatURLs)
	return results
}

// FetchHTML returns the raw HTML of each page.
func (s *FetchService) FetchHTML(ctx context.Context, urls []string) []domain.FetchResult {
	results, _ := s.Fetch(ctx, urls, domain.FormatHTML)
	return results
}
