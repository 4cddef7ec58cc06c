package cmd

import (
	"fmt"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/propstore"
	"github.com/taxdeedflow/deedscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := propstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.StoreBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.StoreBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on property store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by scoring commands. This avoids input file
// validation and scoring config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the property store and prediction history",
	Long: `Manage the persistent property store used for peer estimation and
calibration tracking.

When enabled, deedscore stores:
- Scored property rows (county, sale type, value fields) used as peer
  cohorts when later runs hit missing data
- Prediction history (predicted score vs realized outcome) used by the
  calibration command

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored rows
  migrate - Run database schema migrations

Examples:
  # Check store status
  deedscore store status

  # Export for analysis in pandas/DuckDB
  deedscore store export --output-file store-data.parquet`,
}

// storeClearCmd clears the store data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored properties and prediction history",
	Long: `Delete all stored property rows and prediction records.

This removes:
- Every peer property row used for missing-data estimation
- The full prediction history used by calibration

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  deedscore store export --output-file backup.parquet
  deedscore store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// For SQLite the connection string is the database file path.
		dbFilePath := cfg.StoreDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		if err := propstore.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store data", err)
		}
		fmt.Println("Store data cleared successfully.")
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the property store.

Displays:
- Backend type and connection status
- Total stored properties and predictions
- Timestamp of the most recent prediction

Use this to:
- Verify persistence is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check store status
  deedscore store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := propstore.Manager.GetStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		propstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored data to Parquet for BI tools and analytics",
	Long: `Export all stored data to Parquet format for use with analytics tools.

Exports two datasets:
- Properties - peer property rows with value fields
- Predictions - prediction history with realized outcomes

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  deedscore store export --output-file deedscore-data.parquet

  # Use with DuckDB for analysis
  deedscore store export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.properties.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := propstore.ExecuteStoreExport(rootCtx, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the property store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the property store.

Migrations allow:
- Upgrading to new schema versions when deedscore is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  deedscore store migrate

  # Migrate to specific version
  deedscore store migrate --target-version 1

  # Rollback to initial state
  deedscore store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := propstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
