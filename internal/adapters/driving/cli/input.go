package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNoInput is returned when neither a file nor piped stdin was given.
var errNoInput = errors.New("no input: pass a file or pipe HTML on stdin")

// readInput returns the contents of path, or of stdin when path is empty
// or "-". Interactive terminals are refused so the command never blocks
// waiting for typed input.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if isTerminal(in) {
		return "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
