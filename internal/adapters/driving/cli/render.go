package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	renderHTML   bool
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render Markdown or HTML to a PNG screenshot",
	Long: `Render a Markdown document (or HTML with --html) from a file or stdin
to a full-page PNG using headless Chrome.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "treat the input as HTML instead of Markdown")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "page.png", "PNG file to write")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderService == nil || !renderService.Available() {
		return errors.New("render service not configured")
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var encoded string
	if renderHTML {
		encoded, err = renderService.HTMLToImage(cmd.Context(), input)
	} else {
		encoded, err = renderService.MarkdownToImage(cmd.Context(), input)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	if err := os.WriteFile(renderOutput, png, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", renderOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", renderOutput, len(png))
	return nil
}
