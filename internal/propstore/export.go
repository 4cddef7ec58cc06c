package propstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxdeedflow/deedscore/internal/parquet"
)

// ExecuteStoreExport performs the actual export of store data to Parquet files.
func ExecuteStoreExport(ctx context.Context, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetStore()
	if store == nil {
		return errors.New("property store is not initialized")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalProperties == 0 && status.TotalPredictions == 0 {
		return errors.New("no store data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total properties: %d\n", status.TotalProperties)
	fmt.Printf("Total predictions: %d\n", status.TotalPredictions)

	properties, err := store.ListProperties(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve properties: %w", err)
	}

	propertyRows := parquet.ConvertPropertyRows(properties)
	propertiesFile := outputFile + ".properties.parquet"
	if err := parquet.WritePropertiesParquet(propertyRows, propertiesFile); err != nil {
		return fmt.Errorf("failed to write properties: %w", err)
	}
	fmt.Printf("Exported %d properties to: %s\n", len(propertyRows), propertiesFile)

	predictions, err := store.ListPredictions(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve predictions: %w", err)
	}

	predictionRows := parquet.ConvertPredictionRows(predictions)
	predictionsFile := outputFile + ".predictions.parquet"
	if err := parquet.WritePredictionsParquet(predictionRows, predictionsFile); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	fmt.Printf("Exported %d predictions to: %s\n", len(predictionRows), predictionsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
