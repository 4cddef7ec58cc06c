package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(id string, total float64) schema.PropertyScoreResult {
	category := func(catID schema.CategoryID, name string, score float64) schema.CategoryScore {
		return schema.CategoryScore{
			ID:               catID,
			Name:             name,
			Score:            score,
			MaxScore:         schema.MaxCategoryScore,
			Confidence:       70,
			DataCompleteness: 80,
			Components: []schema.ComponentScore{
				{ID: "first", Name: "First", Score: score / 5, MaxScore: 5, NormalizedValue: 60, Confidence: 70, DataSource: "county_records"},
			},
		}
	}
	return schema.PropertyScoreResult{
		PropertyID: id,
		TotalScore: total,
		Grade:      schema.GradeResult{Letter: "B", Modifier: "+", Grade: "B+", Percentage: total / 125 * 100},
		Location:   category(schema.LocationCategory, "Location", 18),
		Risk:       category(schema.RiskCategory, "Risk", 16),
		Financial:  category(schema.FinancialCategory, "Financial", 20),
		Market:     schema.CategoryScore{ID: schema.MarketCategory, Name: "Market", Score: 12.5, MaxScore: 25, Confidence: 30, Placeholder: true},
		Profit:     schema.CategoryScore{ID: schema.ProfitCategory, Name: "Profit", Score: 12.5, MaxScore: 25, Confidence: 30, Placeholder: true},
		PropertyType: schema.SingleFamily,
		Calibration: schema.ScoreValidationResult{
			OriginalScore:         total,
			CalibratedScore:       total,
			CalibrationConfidence: 90,
		},
		ConfidenceLevel: schema.ConfidenceResult{Overall: 72.5, Label: schema.ModerateConfidence},
		EdgeCases:       schema.EdgeCaseResult{Handling: schema.StandardHandling, CombinedSeverity: schema.LowSeverity},
		ScoringVersion:  "1.0.0",
		CalculatedAt:    time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteJSONResultsForBatch(t *testing.T) {
	results := []schema.PropertyScoreResult{sampleResult("FL-001", 79)}

	var buf bytes.Buffer
	err := writeJSONResultsForBatch(&buf, results)
	require.NoError(t, err)

	// Parse the JSON to verify structure
	var parsed []map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Len(t, parsed, 1)

	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "FL-001", parsed[0]["property_id"])
	assert.Equal(t, 79.0, parsed[0]["total_score"])
	assert.Equal(t, "Buy", parsed[0]["verdict"])
}

func TestWriteBatchCSVRow(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	result := sampleResult("FL-001", 79)
	result.EdgeCases.EdgeCaseTypes = []schema.EdgeCaseType{schema.Landlocked}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(batchCSVHeader()))
	require.NoError(t, writeBatchCSVRow(w, 1, &result, fmtFloat))
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // header + 1 row

	assert.Contains(t, lines[0], "property_id")
	assert.Contains(t, lines[0], "grade")
	assert.Contains(t, lines[1], "FL-001")
	assert.Contains(t, lines[1], "79.00")
	assert.Contains(t, lines[1], "B+")
	assert.Contains(t, lines[1], "landlocked")
}

func TestWriteBatchTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120, Workers: 4, StoreBackend: schema.SQLiteBackend}
	results := []schema.PropertyScoreResult{
		sampleResult("FL-001", 79),
		sampleResult("FL-002", 45),
	}
	results[1].EdgeCases = schema.EdgeCaseResult{
		IsEdgeCase: true,
		Handling:   schema.AutoReject,
	}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeBatchTable(results, cfg, fmtFloat, 250*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FL-001")
	assert.Contains(t, out, "FL-002")
	assert.Contains(t, out, "Scored 2 properties (0 flagged, 1 rejected)")
	assert.Contains(t, out, "4 workers")
}

func TestWriteBatchTableDetailColumns(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 200, Detail: true}
	results := []schema.PropertyScoreResult{sampleResult("FL-001", 79)}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeBatchTable(results, cfg, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "LOCATION")
	assert.Contains(t, out, "PROFIT")
}

func TestWriteScoreReport(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120}
	result := sampleResult("FL-001", 79)
	result.Warnings = []string{"using placeholder scores for market and profit"}
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeScoreReport(&result, cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Property: FL-001 (single_family)")
	assert.Contains(t, out, "Grade: B+")
	assert.Contains(t, out, "Verdict: Buy")
	assert.Contains(t, out, "placeholder category")
	assert.Contains(t, out, "Warning: using placeholder scores")
	assert.NotContains(t, out, "components:") // detail off
}

func TestWriteScoreReportDetail(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Width: 120, Detail: true}
	result := sampleResult("FL-001", 79)
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeScoreReport(&result, cfg, fmtFloat, 5*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Location components:")
	assert.Contains(t, out, "county_records")
}

func TestWriteCompareTable(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	cmp := &schema.ScoreComparison{
		PropertyA:  "FL-001",
		PropertyB:  "FL-002",
		ScoreDelta: -12.5,
		Winner:     "FL-001",
		Categories: []schema.CategoryDelta{
			{Category: schema.LocationCategory, Delta: 3.0, Winner: "FL-002"},
			{Category: schema.RiskCategory, Delta: -5.5, Winner: "FL-001"},
		},
		Summary: "FL-001 leads by 12.5 points.",
	}

	var buf bytes.Buffer
	err := writeCompareTable(cmp, fmtFloat, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Comparing FL-001 vs FL-002")
	assert.Contains(t, out, "+3.0")
	assert.Contains(t, out, "-5.5")
	assert.Contains(t, out, "FL-001 leads by 12.5 points.")
}

func TestWriteEdgeCaseText(t *testing.T) {
	cfg := &contract.Config{}
	result := &schema.EdgeCaseResult{
		IsEdgeCase:       true,
		EdgeCaseTypes:    []schema.EdgeCaseType{schema.Cemetery},
		Detections:       []schema.EdgeCaseDetection{{Type: schema.Cemetery, Severity: schema.HighSeverity, Reason: "land use indicates cemetery"}},
		Handling:         schema.AutoReject,
		CombinedSeverity: schema.HighSeverity,
		RejectReason:     "cemetery property",
	}

	var buf bytes.Buffer
	err := writeEdgeCaseText("FL-009", result, cfg, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Property FL-009: 1 edge case(s)")
	assert.Contains(t, out, "land use indicates cemetery")
	assert.Contains(t, out, "Rejected: cemetery property")
}

func TestWriteEdgeCaseTextClean(t *testing.T) {
	var buf bytes.Buffer
	err := writeEdgeCaseText("FL-010", &schema.EdgeCaseResult{Handling: schema.StandardHandling}, &contract.Config{}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no edge cases detected")
}

func TestSignedFloat(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "+2.5", signedFloat(2.5, fmtFloat))
	assert.Equal(t, "-2.5", signedFloat(-2.5, fmtFloat))
	assert.Equal(t, "0.0", signedFloat(0, fmtFloat))
}

func TestGetMaxTableIDWidth(t *testing.T) {
	// Narrow override clamps to the minimum
	narrow := &contract.Config{Width: 40}
	assert.Equal(t, 12, getMaxTableIDWidth(narrow))

	// Very wide override clamps to the maximum
	wide := &contract.Config{Width: 500}
	assert.Equal(t, 50, getMaxTableIDWidth(wide))

	// Detail columns shrink the available space
	detail := &contract.Config{Width: 120, Detail: true}
	plain := &contract.Config{Width: 120}
	assert.Less(t, getMaxTableIDWidth(detail), getMaxTableIDWidth(plain))
}
