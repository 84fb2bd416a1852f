// Package cli provides the cobra command tree for cleanfetch.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleanfetch/internal/core/ports/driving"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main before Execute.
var (
	conversionService driving.ConversionService
	fetchService      driving.FetchService
	renderService     driving.RenderService
	settingsService   driving.SettingsService
	configPath        string
)

// Services groups the driving ports the commands need.
type Services struct {
	Conversion driving.ConversionService
	Fetch      driving.FetchService
	Render     driving.RenderService
	Settings   driving.SettingsService

	// ConfigPath is shown by "settings path".
	ConfigPath string
}

var rootCmd = &cobra.Command{
	Use:   "cleanfetch",
	Short: "Fetch web pages as clean Markdown, text or link lists",
	Long: `cleanfetch converts HTML into Markdown, reading-order plain text or a
Markdown list of links, and serves the same conversions to AI assistants
over the Model Context Protocol.

Markdown and text results of one batch share a 128000 word budget.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Configure installs the services used by the commands.
func Configure(s Services) {
	conversionService = s.Conversion
	fetchService = s.Fetch
	renderService = s.Render
	settingsService = s.Settings
	configPath = s.ConfigPath
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
