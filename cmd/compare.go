package cmd

import (
	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/spf13/cobra"
)

// compareCmd scores two properties side by side.
var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Score two properties and compare them category by category.",
	Long: `Score exactly two properties and show where they differ.

Useful when choosing between two candidates at the same auction:
- Per-category deltas show which property wins on location, risk,
  financial, market, and profit
- The summary names the category driving the gap

The input must contain exactly two records.

Examples:
  # Compare two candidates
  deedscore compare finalists.json

  # Machine-readable comparison
  deedscore compare finalists.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, propstore.Manager.GetStore()); err != nil {
			contract.LogFatal("Cannot compare properties", err)
		}
	},
}
