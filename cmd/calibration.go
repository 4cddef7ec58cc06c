package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/taxdeedflow/deedscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// calibrationCmd focused on prediction accuracy tracking.
var calibrationCmd = &cobra.Command{
	Use:   "calibration",
	Short: "Track how well predicted scores match realized outcomes",
	Long: `Track prediction accuracy over time by pairing predicted scores with
realized outcomes.

Scores are only useful if they correlate with real returns. Record the
outcome of each purchase and deedscore computes accuracy statistics over
the accumulated history:
- Pearson correlation between predicted score and realized ROI
- RMSE and MAE between predicted and realized outcome
- Share of predictions within tolerance

Statistics need at least 30 recorded predictions to be meaningful.

Subcommands:
  stats  - Show accuracy statistics over the recorded history
  record - Record a prediction outcome

Examples:
  # Record how a purchase turned out
  deedscore calibration record --property-id FL-001 --predicted-score 92 --actual-outcome 85 --actual-roi 0.31

  # Review accuracy so far
  deedscore calibration stats`,
}

// calibrationStatsCmd shows calibration statistics.
var calibrationStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show prediction accuracy statistics",
	Long: `Compute accuracy statistics over the recorded prediction history.

Requires at least 30 recorded predictions; below that the sample is too
small to report anything trustworthy.

Examples:
  # Review accuracy so far
  deedscore calibration stats`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := propstore.Manager.GetStore().ListPredictions(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to load prediction history", err)
		}
		stats := core.CalculateCalibrationStats(records)
		propstore.PrintCalibrationStats(stats)
	},
}

// calibrationRecordCmd records a prediction outcome.
var calibrationRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a predicted score and its realized outcome",
	Long: `Store one prediction record: the score deedscore predicted and what
actually happened.

Record outcomes as they realize; once 30 or more exist, the stats command
reports accuracy over the full history.

Examples:
  # A purchase that worked out
  deedscore calibration record --property-id FL-001 --predicted-score 92 --actual-outcome 85 --actual-roi 0.31

  # One that did not
  deedscore calibration record --property-id MI-044 --predicted-score 71 --actual-outcome 30 --actual-roi -0.4`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		propertyID := viper.GetString("property-id")
		if propertyID == "" {
			contract.LogFatal("Cannot record prediction", errors.New("--property-id is required"))
		}
		predicted := viper.GetFloat64("predicted-score")
		if predicted < 0 || predicted > schema.MaxTotalScore {
			contract.LogFatal("Cannot record prediction", fmt.Errorf("--predicted-score must be between 0 and %.0f", schema.MaxTotalScore))
		}

		rec := schema.PredictionRecord{
			PropertyID:     propertyID,
			PredictedScore: predicted,
			ActualOutcome:  viper.GetFloat64("actual-outcome"),
			ActualROI:      viper.GetFloat64("actual-roi"),
			RecordedAt:     time.Now().UTC(),
		}
		if err := propstore.Manager.GetStore().RecordPrediction(rootCtx, rec); err != nil {
			contract.LogFatal("Failed to record prediction", err)
		}
		fmt.Printf("Recorded prediction for %s.\n", propertyID)
	},
}
