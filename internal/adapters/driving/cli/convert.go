package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

var (
	convertFormat  string
	convertBaseURL string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an HTML document",
	Long: `Convert an HTML file, or HTML piped on stdin, to another format.

Formats:
  markdown - Markdown with headings, lists, tables and code blocks
  text     - reading-order plain text with URLs removed
  urls     - Markdown list of links resolved against --base-url
  html     - the input unchanged`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", string(domain.FormatMarkdown),
		"output format (markdown, text, urls, html)")
	convertCmd.Flags().StringVar(&convertBaseURL, "base-url", "", "base URL for resolving relative links")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	html, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	out, err := conversionService.Convert(html, domain.OutputFormat(convertFormat), convertBaseURL)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	if out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}
