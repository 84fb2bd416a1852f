package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cleanfetch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/cleanfetch/internal/core/domain"
	"github.com/custodia-labs/cleanfetch/internal/core/services"
)

// stubFetcher serves canned pages keyed by URL.
type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("navigate failed: not found")
	}
	return page, nil
}

func (f *stubFetcher) Name() string {
	return "stub"
}

// stubRenderService returns a fixed base64 image.
type stubRenderService struct {
	image     string
	lastInput string
	lastHTML  bool
}

func (s *stubRenderService) Available() bool { return true }

func (s *stubRenderService) MarkdownToImage(_ context.Context, markdown string) (string, error) {
	s.lastInput, s.lastHTML = markdown, false
	return s.image, nil
}

func (s *stubRenderService) HTMLToImage(_ context.Context, html string) (string, error) {
	s.lastInput, s.lastHTML = html, true
	return s.image, nil
}

// withServices installs real services over in-memory adapters and
// restores the previous wiring when the test ends.
func withServices(t *testing.T, pages map[string]string) *services.SettingsService {
	t.Helper()
	t.Setenv("BROWSER_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("MCP_AUTH_TOKEN", "")

	prev := Services{
		Conversion: conversionService,
		Fetch:      fetchService,
		Render:     renderService,
		Settings:   settingsService,
		ConfigPath: configPath,
	}
	t.Cleanup(func() { Configure(prev) })

	conversion := services.NewConversionService()
	settings := services.NewSettingsService(memory.NewStore())
	Configure(Services{
		Conversion: conversion,
		Fetch:      services.NewFetchService(&stubFetcher{pages: pages}, conversion),
		Settings:   settings,
		ConfigPath: "/tmp/cleanfetch/config.toml",
	})
	return settings
}

// runCommand executes rootCmd with args and stdin, returning what the
// command wrote to stdout.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCommandStreams(t, stdin, args...)
	return stdout, err
}

// runCommandStreams executes rootCmd and returns stdout and stderr
// separately. The command's out writer is left unset and the process
// stdout is captured through a pipe, so output sent through cmd.Print
// lands in stderr and shows up in the wrong stream.
func runCommandStreams(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStdout := os.Stdout
	os.Stdout = w

	captured := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		captured <- buf.String()
	}()

	stderr := new(bytes.Buffer)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	runErr := rootCmd.Execute()

	os.Stdout = origStdout
	require.NoError(t, w.Close())
	stdout := <-captured
	require.NoError(t, r.Close())

	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetErr(nil)
	resetFlags()

	return stdout, stderr.String(), runErr
}

func resetFlags() {
	verbose = false
	convertFormat = string(domain.FormatMarkdown)
	convertBaseURL = ""
	fetchFormat = string(domain.FormatMarkdown)
	fetchJSON = false
	renderHTML = false
	renderOutput = "page.png"
	settingsTokenClear = false
}

func mustGetSettings(t *testing.T, s *services.SettingsService) *domain.AppSettings {
	t.Helper()
	settings, err := s.Get()
	require.NoError(t, err)
	return settings
}
