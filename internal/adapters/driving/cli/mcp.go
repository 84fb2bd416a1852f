package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleanfetch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/cleanfetch/internal/core/services"
	"github.com/custodia-labs/cleanfetch/internal/logger"
)

// autoPortRange is how many ports above the chosen one --auto-port tries.
const autoPortRange = 100

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

const serveLong = `Start the Model Context Protocol server for AI assistant integration.

By default, the server listens on HTTP at /mcp on the configured port
(server.port, or the PORT environment variable). When server.auth_token
or MCP_AUTH_TOKEN is set, every request must carry
"Authorization: Bearer <token>". The token is re-read when the config
file changes.

Use --stdio to communicate over stdin/stdout instead, for assistants that
launch the server as a subprocess.

Examples:
  # HTTP mode on the configured port
  cleanfetch mcp serve

  # HTTP mode on a specific port
  cleanfetch mcp serve --port 8080

  # Stdio mode
  cleanfetch mcp serve --stdio

Desktop assistant configuration:
  {
    "mcpServers": {
      "cleanfetch": {
        "command": "/path/to/cleanfetch",
        "args": ["mcp", "serve", "--stdio"]
      }
    }
  }`

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long:  serveLong,
	RunE:  runMCPServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (same as \"mcp serve\")",
	Long:  serveLong,
	RunE:  runMCPServe,
}

func init() {
	for _, cmd := range []*cobra.Command{mcpServeCmd, serveCmd} {
		cmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use configured port)")
		cmd.Flags().Bool("stdio", false, "serve over stdin/stdout instead of HTTP")
		cmd.Flags().Bool("auto-port", false, "use the next free port if the chosen one is busy")
	}
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	stdio, err := cmd.Flags().GetBool("stdio")
	if err != nil {
		return fmt.Errorf("getting stdio flag: %w", err)
	}

	ports := &mcp.Ports{
		Fetch:    fetchService,
		Render:   renderService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if stdio {
		logger.Info("MCP server running on stdio")
		return server.Run(cmd.Context())
	}

	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if port <= 0 {
		port = settings.Server.Port
	}
	autoPort, err := cmd.Flags().GetBool("auto-port")
	if err != nil {
		return fmt.Errorf("getting auto-port flag: %w", err)
	}
	if autoPort {
		free, err := services.FindAvailablePort(port, port+autoPortRange)
		if err != nil {
			return err
		}
		if free != port {
			logger.Warn("port %d is busy, using %d", port, free)
		}
		port = free
	}

	logger.SetTimestamps(true)
	addr := fmt.Sprintf(":%d", port)
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s%s\n", addr, mcp.Endpoint)
	return server.RunHTTP(cmd.Context(), addr, currentToken(settings.Server.AuthToken))
}

// currentToken reads the auth token from settings on every call, falling
// back to the token seen at start-up if settings cannot be read.
func currentToken(fallback string) mcp.TokenSource {
	return func() string {
		if settingsService == nil {
			return fallback
		}
		settings, err := settingsService.Get()
		if err != nil {
			logger.Warn("reading auth token: %v", err)
			return fallback
		}
		return settings.Server.AuthToken
	}
}
