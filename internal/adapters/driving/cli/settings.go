package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure fetching, the headless browser and the MCP server.

Settings are stored in ~/.cleanfetch/config.toml. The BROWSER_URL, PORT
and MCP_AUTH_TOKEN environment variables override the stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode [http|browser]",
	Short: "Set fetch mode",
	Long: `Set how pages are retrieved.

Available modes:
  http    - plain HTTP GET (fast, no JavaScript)
  browser - headless Chrome, waits for client-side rendering`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsMode,
}

var settingsBrowserCmd = &cobra.Command{
	Use:   "browser [devtools-url]",
	Short: "Set the Chrome DevTools endpoint",
	Long: `Set the Chrome DevTools endpoint used for browser fetches and image
rendering, e.g. http://127.0.0.1:9222. Without an argument a local
headless Chrome is launched instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBrowser,
}

var settingsPortCmd = &cobra.Command{
	Use:   "port <port>",
	Short: "Set the MCP HTTP port",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsPort,
}

var settingsTokenClear bool

var settingsTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Set the MCP bearer token",
	Long: `Set the bearer token required by the MCP HTTP server. The token is
read without echo. Use --clear to disable auth.`,
	Args: cobra.NoArgs,
	RunE: runSettingsToken,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath)
	},
}

func init() {
	settingsTokenCmd.Flags().BoolVar(&settingsTokenClear, "clear", false, "remove the token and disable auth")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	settingsCmd.AddCommand(settingsBrowserCmd)
	settingsCmd.AddCommand(settingsPortCmd)
	settingsCmd.AddCommand(settingsTokenCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Current Settings")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Fetch]")
	fmt.Fprintf(w, "  Mode: %s\n", settings.Fetch.Mode.Description())
	fmt.Fprintf(w, "  Timeout: %s\n", settings.Fetch.Timeout())
	fmt.Fprintf(w, "  User Agent: %s\n", settings.Fetch.UserAgent)
	fmt.Fprintf(w, "  Rate: %.2f/s (burst %d)\n", settings.Fetch.RatePerSecond, settings.Fetch.Burst)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Browser]")
	if settings.Browser.URL != "" {
		fmt.Fprintf(w, "  DevTools URL: %s\n", settings.Browser.URL)
	} else {
		fmt.Fprintln(w, "  DevTools URL: (local headless Chrome)")
	}
	fmt.Fprintf(w, "  Settle: %s\n", settings.Browser.Settle())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[Server]")
	fmt.Fprintf(w, "  Port: %d\n", settings.Server.Port)
	if settings.Server.AuthEnabled() {
		fmt.Fprintf(w, "  Auth Token: %s\n", maskToken(settings.Server.AuthToken))
	} else {
		fmt.Fprintln(w, "  Auth Token: (not set, auth disabled)")
	}

	return nil
}

func runSettingsMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var mode domain.FetchMode
	if len(args) > 0 {
		mode = domain.FetchMode(strings.ToLower(args[0]))
	} else {
		// Prompts go to stderr so stdout carries only the result.
		prompt := cmd.ErrOrStderr()
		modes := domain.AllFetchModes()
		fmt.Fprintln(prompt, "Select fetch mode:")
		for i, m := range modes {
			fmt.Fprintf(prompt, "  %d. %s\n", i+1, m.Description())
		}
		fmt.Fprint(prompt, "Choice [1]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		mode = modes[parseChoice(readLine(reader), len(modes), 1)-1]
	}

	if err := settingsService.SetFetchMode(mode); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fetch mode set to: %s\n", mode.Description())
	return nil
}

func runSettingsBrowser(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	url := ""
	if len(args) > 0 {
		url = strings.TrimSpace(args[0])
	}
	if err := settingsService.SetBrowserURL(url); err != nil {
		return fmt.Errorf("failed to set browser URL: %w", err)
	}

	if url == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Browser set to local headless Chrome")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Browser DevTools URL set to: %s\n", url)
	}
	return nil
}

func runSettingsPort(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	port, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", args[0], err)
	}
	if err := settingsService.SetServerPort(port); err != nil {
		return fmt.Errorf("failed to set port: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server port set to: %d\n", port)
	return nil
}

func runSettingsToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	token := ""
	if !settingsTokenClear {
		fmt.Fprint(cmd.ErrOrStderr(), "Bearer token: ")
		token = readPassword(cmd.InOrStdin())
		fmt.Fprintln(cmd.ErrOrStderr())
		if token == "" {
			return errors.New("empty token: use --clear to disable auth")
		}
	}

	if err := settingsService.SetAuthToken(token); err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	if token == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Auth token cleared, auth disabled")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Auth token set: %s\n", maskToken(token))
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(bufio.NewReader(in))
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
