package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdeedflow/deedscore/schema"
)

func floatPtr(v float64) *float64 { return &v }

func samplePeers() []schema.PeerProperty {
	return []schema.PeerProperty{
		{
			ID:            "FL-DUVAL-001",
			County:        "Duval",
			SaleType:      "tax_deed",
			AssessedValue: floatPtr(85000),
			MarketValue:   floatPtr(110000),
			LotSizeSqft:   floatPtr(7200),
			BuildingSqft:  floatPtr(1450),
			AmountDue:     floatPtr(4200),
		},
		{
			// Sparse row: only the id and one value, everything else nullable
			ID:            "PA-ALLEGHENY-002",
			AssessedValue: floatPtr(32000),
		},
	}
}

func samplePredictions() []schema.PredictionRecord {
	now := time.Now().Truncate(time.Millisecond)
	return []schema.PredictionRecord{
		{PropertyID: "FL-DUVAL-001", PredictedScore: 88.5, ActualOutcome: 92.0, ActualROI: 0.34, RecordedAt: now.Add(-48 * time.Hour)},
		{PropertyID: "PA-ALLEGHENY-002", PredictedScore: 45.0, ActualOutcome: 38.5, ActualROI: -0.05, RecordedAt: now},
	}
}

func TestPropertyRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(PropertyRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"property_id",
		"county",
		"sale_type",
		"assessed_value",
		"market_value",
		"lot_size_sqft",
		"building_sqft",
		"amount_due",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestPredictionRowStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(PredictionRow))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"property_id",
		"predicted_score",
		"actual_outcome",
		"actual_roi",
		"recorded_at",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertPropertyRows(t *testing.T) {
	rows := ConvertPropertyRows(samplePeers())
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].County)
	assert.Equal(t, "Duval", *rows[0].County)
	require.NotNil(t, rows[0].SaleType)
	assert.Equal(t, "tax_deed", *rows[0].SaleType)

	// Empty strings become nulls, not empty optionals
	assert.Nil(t, rows[1].County)
	assert.Nil(t, rows[1].SaleType)
	assert.Nil(t, rows[1].AmountDue)
}

func TestWritePropertiesParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "properties.parquet")

	data := ConvertPropertyRows(samplePeers())
	require.NotEmpty(t, data)

	err := WritePropertiesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[PropertyRow](file)
	defer reader.Close()

	readData := make([]PropertyRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].PropertyID, readData[i].PropertyID)
		if data[i].AssessedValue == nil {
			assert.Nil(t, readData[i].AssessedValue)
		} else {
			require.NotNil(t, readData[i].AssessedValue)
			assert.InDelta(t, *data[i].AssessedValue, *readData[i].AssessedValue, 0.01)
		}
		if data[i].County == nil {
			assert.Nil(t, readData[i].County)
		} else {
			require.NotNil(t, readData[i].County)
			assert.Equal(t, *data[i].County, *readData[i].County)
		}
	}
}

func TestWritePredictionsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "predictions.parquet")

	data := ConvertPredictionRows(samplePredictions())
	require.NotEmpty(t, data)

	err := WritePredictionsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[PredictionRow](file)
	defer reader.Close()

	readData := make([]PredictionRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].PropertyID, readData[i].PropertyID)
		assert.InDelta(t, data[i].PredictedScore, readData[i].PredictedScore, 0.01)
		assert.InDelta(t, data[i].ActualROI, readData[i].ActualROI, 0.001)
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Millisecond)
	}
}
