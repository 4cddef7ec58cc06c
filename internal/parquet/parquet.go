// Package parquet provides data structures and functions for exporting
// property store data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/taxdeedflow/deedscore/schema"
)

// PropertyRow represents a stored peer property.
// This struct maps to the deedscore_properties database table.
type PropertyRow struct {
	// PropertyID is the unique identifier for the property
	PropertyID string `parquet:"property_id,snappy"`

	// County is the county the parcel sits in (nullable)
	County *string `parquet:"county,optional,snappy"`

	// SaleType is the auction mechanism the property sold through (nullable)
	SaleType *string `parquet:"sale_type,optional,snappy"`

	// AssessedValue is the county-assessed value in dollars (nullable)
	AssessedValue *float64 `parquet:"assessed_value,optional,snappy"`

	// MarketValue is the estimated market value in dollars (nullable)
	MarketValue *float64 `parquet:"market_value,optional,snappy"`

	// LotSizeSqft is the lot size in square feet (nullable)
	LotSizeSqft *float64 `parquet:"lot_size_sqft,optional,snappy"`

	// BuildingSqft is the building footprint in square feet (nullable)
	BuildingSqft *float64 `parquet:"building_sqft,optional,snappy"`

	// AmountDue is the delinquent tax amount in dollars (nullable)
	AmountDue *float64 `parquet:"amount_due,optional,snappy"`
}

// PredictionRow represents one recorded score prediction.
// This struct maps to the deedscore_predictions database table.
type PredictionRow struct {
	// PropertyID references the scored property
	PropertyID string `parquet:"property_id,snappy"`

	// PredictedScore is the score on the 0-125 scale at prediction time
	PredictedScore float64 `parquet:"predicted_score,snappy"`

	// ActualOutcome is the realized score on the same scale
	ActualOutcome float64 `parquet:"actual_outcome,snappy"`

	// ActualROI is the realized return on investment as a fraction
	ActualROI float64 `parquet:"actual_roi,snappy"`

	// RecordedAt is when the prediction was recorded
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// ConvertPropertyRows converts store rows into their Parquet representation.
func ConvertPropertyRows(peers []schema.PeerProperty) []PropertyRow {
	out := make([]PropertyRow, 0, len(peers))
	for _, p := range peers {
		row := PropertyRow{
			PropertyID:    p.ID,
			AssessedValue: p.AssessedValue,
			MarketValue:   p.MarketValue,
			LotSizeSqft:   p.LotSizeSqft,
			BuildingSqft:  p.BuildingSqft,
			AmountDue:     p.AmountDue,
		}
		if p.County != "" {
			county := p.County
			row.County = &county
		}
		if p.SaleType != "" {
			saleType := p.SaleType
			row.SaleType = &saleType
		}
		out = append(out, row)
	}
	return out
}

// ConvertPredictionRows converts prediction records into their Parquet representation.
func ConvertPredictionRows(recs []schema.PredictionRecord) []PredictionRow {
	out := make([]PredictionRow, 0, len(recs))
	for _, r := range recs {
		out = append(out, PredictionRow{
			PropertyID:     r.PropertyID,
			PredictedScore: r.PredictedScore,
			ActualOutcome:  r.ActualOutcome,
			ActualROI:      r.ActualROI,
			RecordedAt:     r.RecordedAt,
		})
	}
	return out
}

// WritePropertiesParquet writes a slice of PropertyRow structs to a Parquet file.
func WritePropertiesParquet(data []PropertyRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the PropertyRow struct tags
	writer := parquet.NewGenericWriter[PropertyRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePredictionsParquet writes a slice of PredictionRow structs to a Parquet file.
func WritePredictionsParquet(data []PredictionRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the PredictionRow struct tags
	writer := parquet.NewGenericWriter[PredictionRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
