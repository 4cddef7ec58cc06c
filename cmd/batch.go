package cmd

import (
	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/spf13/cobra"
)

// batchCmd scores a whole auction list and ranks the results.
var batchCmd = &cobra.Command{
	Use:   "batch [input-file]",
	Short: "Score a county export and rank properties best-first.",
	Long: `Score every property in an auction export concurrently and print a
ranked table, best candidates first.

Ideal for:
- Triaging an upcoming auction list down to a short list
- Spotting auto-rejected parcels (cemeteries, slivers, utility strips)
  before wasting research time on them
- Exporting scored lists to CSV or JSON for spreadsheets and dashboards

Records that fail to score are skipped with a warning; the rest still rank.
The --limit flag caps how many records are scored in one run.

Examples:
  # Rank an auction list
  deedscore batch duval-2026-03.csv

  # Top candidates only, with category columns
  deedscore batch duval-2026-03.csv --limit 50 --detail

  # Save every scored property for peer estimation
  deedscore batch duval-2026-03.csv --save

  # Export rankings for tracking
  deedscore batch list.json --output csv --output-file ranked.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, propstore.Manager.GetStore()); err != nil {
			contract.LogFatal("Cannot score batch", err)
		}
	},
}
