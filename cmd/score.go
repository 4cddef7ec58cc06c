package cmd

import (
	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/spf13/cobra"
)

// scoreCmd scores a single property.
var scoreCmd = &cobra.Command{
	Use:   "score [input-file]",
	Short: "Score a single tax deed property on the 0-125 scale.",
	Long: `Score one property across five categories: location, risk, financial,
market, and profit. Each category is worth up to 25 points.

The scorer also:
- Screens the property against the edge case catalog (cemeteries, sliver
  lots, IRS liens, contamination, and more)
- Applies regional adjustments for known county-level patterns
- Calibrates the raw score for property type and market condition
- Reports a confidence meta-score describing how trustworthy the number is

Input can be a .json, .csv, or .parquet file, or JSON on stdin when the
argument is omitted or '-'. When the input holds several records, pick one
with --id.

Examples:
  # Score a property from a JSON file
  deedscore score property.json

  # Score from stdin
  cat property.json | deedscore score

  # Pick one record out of a county export
  deedscore score duval-export.csv --id 12-34-56

  # Full breakdown with per-component scores
  deedscore score property.json --detail

  # Persist the result so future runs can use it as a peer
  deedscore score property.json --save

  # Machine-readable output
  deedscore score property.json --output json --output-file result.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, propstore.Manager.GetStore()); err != nil {
			contract.LogFatal("Cannot score property", err)
		}
	},
}
