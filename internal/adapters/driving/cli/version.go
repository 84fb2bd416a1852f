package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cleanfetch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/cleanfetch/internal/budget"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "cleanfetch version %s\n", version)
		fmt.Fprintf(w, "mcp server %s, word budget %d\n", mcp.Version, budget.Limit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
