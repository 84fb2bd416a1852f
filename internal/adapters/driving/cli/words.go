package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words [files...]",
	Short: "Count words and apply the word budget",
	Long: `Count the words in each file (or stdin) and show which would fit in
the 128000 word budget when taken in the given order.

CJK characters count as one word each; other words are runs of letters
and digits.`,
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	names := args
	if len(names) == 0 {
		names = []string{"-"}
	}

	texts := make([]string, len(names))
	for i, name := range names {
		text, err := readInput(cmd, name)
		if err != nil {
			return err
		}
		texts[i] = text
	}

	items := conversionService.LimitItems(texts)
	w := cmd.OutOrStdout()
	total := 0
	for i, item := range items {
		label := names[i]
		if label == "-" {
			label = "(stdin)"
		}
		status := "included"
		if !item.Include {
			status = "excluded: " + item.Error
		} else {
			total += item.WordCount
		}
		fmt.Fprintf(w, "%8d  %s  %s\n", item.WordCount, label, status)
	}
	if len(items) > 1 {
		fmt.Fprintf(w, "%8d  total included\n", total)
	}
	return nil
}
