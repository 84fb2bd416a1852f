package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleanfetch/internal/core/domain"
)

var (
	fetchFormat string
	fetchJSON   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>...",
	Short: "Fetch pages and convert them",
	Long: `Fetch one or more URLs in order and convert each page.

Markdown and text results share a 128000 word budget: pages that would
push the total over the limit are reported as errors instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchFormat, "format", "f", string(domain.FormatMarkdown),
		"output format (markdown, text, urls, html)")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(fetchCmd)
}

// fetchResultJSON is the JSON shape of one fetched page.
type fetchResultJSON struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	Content   string `json:"content,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	if fetchService == nil {
		return errors.New("fetch service not configured")
	}

	results, err := fetchService.Fetch(cmd.Context(), args, domain.OutputFormat(fetchFormat))
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if fetchJSON {
		return outputFetchJSON(cmd, results)
	}
	outputFetchText(cmd, results)
	return nil
}

func outputFetchJSON(cmd *cobra.Command, results []domain.FetchResult) error {
	out := make([]fetchResultJSON, len(results))
	for i := range results {
		out[i] = fetchResultJSON{
			URL:       results[i].URL,
			Format:    results[i].Format.String(),
			Content:   results[i].Content,
			WordCount: results[i].WordCount,
			Error:     results[i].Error,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputFetchText(cmd *cobra.Command, results []domain.FetchResult) {
	w := cmd.OutOrStdout()
	for i := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "==> %s <==\n", results[i].URL)
		if !results[i].OK() {
			fmt.Fprintf(w, "error: %s\n", results[i].Error)
			continue
		}
		fmt.Fprintln(w, results[i].Content)
	}
}
