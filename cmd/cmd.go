// Package cmd defines the command-line interface for deedscore.
package cmd

import (
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(edgecasesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(calibrationCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Add the calibration subcommands to the parent calibration command
	calibrationCmd.AddCommand(calibrationStatsCmd)
	calibrationCmd.AddCommand(calibrationRecordCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-component breakdowns for each category")
	rootCmd.PersistentFlags().StringP("id", "i", "", "Score only the record with this property or parcel id")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultBatchLimit, "Maximum number of records to score in one batch")
	rootCmd.PersistentFlags().String("market-condition", string(schema.StableMarket), "Market condition for calibration: hot, stable, cooling, declining, distressed")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Property store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scoreCmd to Viper
	scoreCmd.Flags().Bool("skip-edge-cases", false, "Skip the edge case screen")
	scoreCmd.Flags().Bool("skip-regional", false, "Skip regional score adjustments")
	scoreCmd.Flags().Bool("skip-calibration", false, "Skip score calibration")
	scoreCmd.Flags().Bool("fallback-log", false, "Include missing-data fallback notes in warnings")
	scoreCmd.Flags().Bool("save", false, "Persist the scored property and prediction to the store")
	if err := viper.BindPFlags(scoreCmd.Flags()); err != nil {
		contract.LogFatal("Error binding score flags", err)
	}

	// Bind all flags of batchCmd to Viper
	batchCmd.Flags().Bool("skip-edge-cases", false, "Skip the edge case screen")
	batchCmd.Flags().Bool("skip-regional", false, "Skip regional score adjustments")
	batchCmd.Flags().Bool("skip-calibration", false, "Skip score calibration")
	batchCmd.Flags().Bool("fallback-log", false, "Include missing-data fallback notes in warnings")
	batchCmd.Flags().Bool("save", false, "Persist every scored property and prediction to the store")
	if err := viper.BindPFlags(batchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding batch flags", err)
	}

	// Bind all flags of calibrationRecordCmd to Viper
	calibrationRecordCmd.Flags().String("property-id", "", "Property id the prediction belongs to")
	calibrationRecordCmd.Flags().Float64("predicted-score", 0, "Score predicted at purchase time (0-125)")
	calibrationRecordCmd.Flags().Float64("actual-outcome", 0, "Realized outcome on the same 0-125 scale")
	calibrationRecordCmd.Flags().Float64("actual-roi", 0, "Realized return on investment as a fraction (0.25 = 25%)")
	if err := viper.BindPFlags(calibrationRecordCmd.Flags()); err != nil {
		contract.LogFatal("Error binding calibration record flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
