package cmd

import (
	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/spf13/cobra"
)

// edgecasesCmd runs the edge case screen without the full scorer.
var edgecasesCmd = &cobra.Command{
	Use:   "edgecases [input-file]",
	Short: "Screen a property against the edge case catalog.",
	Long: `Check a property against the edge case catalog without computing a
score. The screen covers unbuildable lots, environmental hazards, title
problems, liens, unusual values, and unsellable property classes.

Each hit reports a severity and the handling strategy it forces, from
manual review up to automatic rejection.

Examples:
  # Screen a single property
  deedscore edgecases property.json

  # Pick one record from an export
  deedscore edgecases duval-export.csv --id 12-34-56

  # JSON output for pipelines
  deedscore edgecases property.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEdgeCases(rootCtx, cfg, propstore.Manager.GetStore()); err != nil {
			contract.LogFatal("Cannot screen property", err)
		}
	},
}
