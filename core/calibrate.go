package core

import (
	"fmt"
	"math"
	"time"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// MinCalibrationSample is the smallest historical sample that yields
// meaningful accuracy statistics. Below it CalculateCalibrationStats returns
// nil instead of a misleading number.
const MinCalibrationSample = 30

// scoreTolerance is the band, in score points, within which a prediction
// counts as accurate.
const scoreTolerance = 15.0

// profitableScoreCutoff is the predicted score at or above which a property
// is called profitable (50% of the maximum).
const profitableScoreCutoff = schema.MaxTotalScore / 2

// propertyTypeFactors corrects systematic bias per detected property type.
// Types not listed calibrate at 1.0.
var propertyTypeFactors = map[schema.PropertyType]float64{
	schema.SingleFamily: 1.0,
	schema.MultiFamily:  0.95,
	schema.Commercial:   0.90,
	schema.Industrial:   0.88,
	schema.VacantLand:   0.85,
	schema.Agricultural: 0.92,
	schema.MobileHome:   0.80,
	schema.MixedUse:     0.93,
}

// marketConditionFactors corrects for the local market climate.
var marketConditionFactors = map[schema.MarketCondition]float64{
	schema.HotMarket:        1.05,
	schema.StableMarket:     1.00,
	schema.CoolingMarket:    0.92,
	schema.DecliningMkt:     0.85,
	schema.DistressedMarket: 0.75,
}

// CalibrateScore bounds a raw score to [0, 125], applies the property-type
// and market-condition factors plus any unexpired caller adjustments, and
// reports every applied factor for audit. It never fails; out-of-range input
// is clamped and warned about.
func CalibrateScore(rawScore float64, propertyType schema.PropertyType, state string, condition schema.MarketCondition, custom []schema.CalibrationAdjustment, now time.Time) schema.ScoreValidationResult {
	res := schema.ScoreValidationResult{
		OriginalScore:         rawScore,
		CalibrationConfidence: 100,
	}

	score := rawScore
	if score < 0 || score > schema.MaxTotalScore {
		score = algo.Clamp(score, 0, schema.MaxTotalScore)
		res.Warnings = append(res.Warnings, fmt.Sprintf("raw score %.2f outside [0, %.0f]; clamped", rawScore, schema.MaxTotalScore))
		res.CalibrationConfidence -= 10
	}

	apply := func(adj schema.CalibrationAdjustment) {
		score *= adj.Factor
		res.AdjustmentsApplied = append(res.AdjustmentsApplied, adj)
		res.CalibrationConfidence -= 5
	}

	if factor, ok := propertyTypeFactors[propertyType]; ok && factor != 1.0 {
		reason := fmt.Sprintf("%s properties calibrate at %.2f", propertyType, factor)
		if state != "" {
			reason += " in " + state
		}
		apply(schema.CalibrationAdjustment{Type: "property_type", Factor: factor, Reason: reason})
	}

	if condition != "" {
		if factor, ok := marketConditionFactors[condition]; ok && factor != 1.0 {
			apply(schema.CalibrationAdjustment{
				Type:   "market_condition",
				Factor: factor,
				Reason: fmt.Sprintf("%s market calibrates at %.2f", condition, factor),
			})
		}
	}

	for _, adj := range custom {
		if adj.ExpiresAt != nil && adj.ExpiresAt.Before(now) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("custom adjustment %q expired %s; skipped", adj.Type, adj.ExpiresAt.Format("2006-01-02")))
			continue
		}
		a := adj
		if a.Type == "" {
			a.Type = "custom"
		}
		apply(a)
	}

	res.CalibratedScore = algo.Round2(algo.Clamp(score, 0, schema.MaxTotalScore))
	res.CalibrationConfidence = algo.Clamp(res.CalibrationConfidence, 50, 100)
	return res
}

// CalculateCalibrationStats computes prediction-accuracy statistics over a
// historical sample. It returns nil when the sample is smaller than
// MinCalibrationSample; an explicit "insufficient data" signal beats an
// unreliable statistic.
func CalculateCalibrationStats(records []schema.PredictionRecord) *schema.CalibrationStats {
	if len(records) < MinCalibrationSample {
		return nil
	}

	n := float64(len(records))
	var sumErr2, sumAbsErr float64
	var withinTol, profitCalls int
	var sumX, sumY, sumXY, sumX2, sumY2 float64

	for _, r := range records {
		err := r.PredictedScore - r.ActualOutcome
		sumErr2 += err * err
		sumAbsErr += math.Abs(err)
		if math.Abs(err) <= scoreTolerance {
			withinTol++
		}

		predictedProfit := r.PredictedScore >= profitableScoreCutoff
		actualProfit := r.ActualROI > 0
		if predictedProfit == actualProfit {
			profitCalls++
		}

		sumX += r.PredictedScore
		sumY += r.ActualROI
		sumXY += r.PredictedScore * r.ActualROI
		sumX2 += r.PredictedScore * r.PredictedScore
		sumY2 += r.ActualROI * r.ActualROI
	}

	var pearson float64
	denom := math.Sqrt(n*sumX2-sumX*sumX) * math.Sqrt(n*sumY2-sumY*sumY)
	if denom != 0 {
		pearson = (n*sumXY - sumX*sumY) / denom
	}

	return &schema.CalibrationStats{
		SampleSize:         len(records),
		PearsonCorrelation: algo.Round2(pearson),
		RMSE:               algo.Round2(math.Sqrt(sumErr2 / n)),
		MAE:                algo.Round2(sumAbsErr / n),
		AccuracyWithinTol:  algo.Round2(float64(withinTol) / n * 100),
		ProfitableAccuracy: algo.Round2(float64(profitCalls) / n * 100),
	}
}
