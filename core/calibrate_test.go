package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdeedflow/deedscore/schema"
)

// TestCalibrateScoreNoFactors verifies the identity path: a single-family
// property in a stable market calibrates untouched.
func TestCalibrateScoreNoFactors(t *testing.T) {
	res := CalibrateScore(100, schema.SingleFamily, "PA", schema.StableMarket, nil, time.Now())

	assert.Equal(t, 100.0, res.OriginalScore)
	assert.Equal(t, 100.0, res.CalibratedScore)
	assert.Equal(t, 100.0, res.CalibrationConfidence)
	assert.Empty(t, res.AdjustmentsApplied)
	assert.Empty(t, res.Warnings)
}

// TestCalibrateScoreFactors tests property-type and market-condition factors.
func TestCalibrateScoreFactors(t *testing.T) {
	res := CalibrateScore(100, schema.VacantLand, "FL", schema.HotMarket, nil, time.Now())

	// 100 * 0.85 * 1.05
	assert.InDelta(t, 89.25, res.CalibratedScore, 0.001)
	require.Len(t, res.AdjustmentsApplied, 2)
	assert.Equal(t, "property_type", res.AdjustmentsApplied[0].Type)
	assert.Equal(t, 0.85, res.AdjustmentsApplied[0].Factor)
	assert.Contains(t, res.AdjustmentsApplied[0].Reason, "FL")
	assert.Equal(t, "market_condition", res.AdjustmentsApplied[1].Type)
	assert.Equal(t, 1.05, res.AdjustmentsApplied[1].Factor)
	// Each applied factor costs five confidence points
	assert.Equal(t, 90.0, res.CalibrationConfidence)
}

// TestCalibrateScoreClampsOutOfRange tests the bounds warning.
func TestCalibrateScoreClampsOutOfRange(t *testing.T) {
	res := CalibrateScore(140, schema.SingleFamily, "", schema.StableMarket, nil, time.Now())
	assert.Equal(t, 140.0, res.OriginalScore)
	assert.Equal(t, 125.0, res.CalibratedScore)
	assert.Equal(t, 90.0, res.CalibrationConfidence)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "clamped")

	res = CalibrateScore(-10, schema.SingleFamily, "", schema.StableMarket, nil, time.Now())
	assert.Equal(t, 0.0, res.CalibratedScore)
}

// TestCalibrateScoreCustomAdjustments tests caller factors including expiry.
func TestCalibrateScoreCustomAdjustments(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	custom := []schema.CalibrationAdjustment{
		{Type: "county_discount", Factor: 0.9, ExpiresAt: &future},
		{Type: "stale_rule", Factor: 0.5, ExpiresAt: &past},
		{Factor: 1.1}, // no type, no expiry
	}
	res := CalibrateScore(100, schema.SingleFamily, "", schema.StableMarket, custom, now)

	// 100 * 0.9 * 1.1; the expired rule is skipped with a warning
	assert.InDelta(t, 99.0, res.CalibratedScore, 0.001)
	require.Len(t, res.AdjustmentsApplied, 2)
	assert.Equal(t, "county_discount", res.AdjustmentsApplied[0].Type)
	assert.Equal(t, "custom", res.AdjustmentsApplied[1].Type)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "stale_rule")
	assert.Contains(t, res.Warnings[0], "expired")
}

// TestCalibrateScoreConfidenceFloor verifies confidence never drops below 50.
func TestCalibrateScoreConfidenceFloor(t *testing.T) {
	var custom []schema.CalibrationAdjustment
	for i := 0; i < 15; i++ {
		custom = append(custom, schema.CalibrationAdjustment{Type: "stack", Factor: 1.0})
	}
	res := CalibrateScore(100, schema.SingleFamily, "", schema.StableMarket, custom, time.Now())
	assert.Equal(t, 50.0, res.CalibrationConfidence)
}

// TestCalculateCalibrationStatsInsufficientSample verifies the nil signal
// below the minimum sample size.
func TestCalculateCalibrationStatsInsufficientSample(t *testing.T) {
	recs := make([]schema.PredictionRecord, MinCalibrationSample-1)
	assert.Nil(t, CalculateCalibrationStats(recs))
	assert.Nil(t, CalculateCalibrationStats(nil))
}

// TestCalculateCalibrationStatsPerfectPredictions tests the accuracy metrics
// over an error-free sample.
func TestCalculateCalibrationStatsPerfectPredictions(t *testing.T) {
	recs := make([]schema.PredictionRecord, 0, 30)
	for i := 0; i < 30; i++ {
		score := float64(i * 4)
		recs = append(recs, schema.PredictionRecord{
			PropertyID:     "P",
			PredictedScore: score,
			ActualOutcome:  score,
			ActualROI:      score/100 - 0.3,
		})
	}

	stats := CalculateCalibrationStats(recs)
	require.NotNil(t, stats)
	assert.Equal(t, 30, stats.SampleSize)
	assert.Equal(t, 0.0, stats.RMSE)
	assert.Equal(t, 0.0, stats.MAE)
	assert.Equal(t, 100.0, stats.AccuracyWithinTol)
	// ROI is a linear function of the predicted score
	assert.InDelta(t, 1.0, stats.PearsonCorrelation, 0.01)
}

// TestCalculateCalibrationStatsBiasedPredictions tests error metrics with a
// constant +20 bias.
func TestCalculateCalibrationStatsBiasedPredictions(t *testing.T) {
	recs := make([]schema.PredictionRecord, 0, 30)
	for i := 0; i < 30; i++ {
		actual := float64(i * 3)
		recs = append(recs, schema.PredictionRecord{
			PropertyID:     "P",
			PredictedScore: actual + 20,
			ActualOutcome:  actual,
			ActualROI:      0.1,
		})
	}

	stats := CalculateCalibrationStats(recs)
	require.NotNil(t, stats)
	assert.InDelta(t, 20.0, stats.RMSE, 0.001)
	assert.InDelta(t, 20.0, stats.MAE, 0.001)
	assert.Equal(t, 0.0, stats.AccuracyWithinTol)
	// Constant ROI has zero variance, so correlation is undefined and reported as zero
	assert.Equal(t, 0.0, stats.PearsonCorrelation)
}

// TestCalculateCalibrationStatsProfitCalls tests the profitable-call accuracy.
func TestCalculateCalibrationStatsProfitCalls(t *testing.T) {
	recs := make([]schema.PredictionRecord, 0, 30)
	for i := 0; i < 30; i++ {
		// High scores with positive ROI, low scores with negative ROI:
		// every profit call is correct.
		if i%2 == 0 {
			recs = append(recs, schema.PredictionRecord{PredictedScore: 90, ActualOutcome: 90, ActualROI: 0.3})
		} else {
			recs = append(recs, schema.PredictionRecord{PredictedScore: 30, ActualOutcome: 30, ActualROI: -0.2})
		}
	}

	stats := CalculateCalibrationStats(recs)
	require.NotNil(t, stats)
	assert.Equal(t, 100.0, stats.ProfitableAccuracy)
}
