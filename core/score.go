package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
)

// ErrNilProperty is returned when a scoring request carries no property data.
var ErrNilProperty = errors.New("property data is nil")

// lowConfidenceWarning threshold for the result-level warning.
const lowConfidenceThreshold = 50.0

// Scorer runs the full scoring pipeline: edge-case screening, category
// scoring, regional adjustment, calibration, grading and confidence. A Scorer
// is safe for concurrent use.
type Scorer struct {
	peers      *PeerEstimator
	regional   RegionalAdjuster
	edgeConfig schema.EdgeCaseConfig
	now        func() time.Time
}

// NewScorer builds a Scorer. The store may be nil, in which case peer
// estimation degrades to neutral fallbacks.
func NewScorer(store contract.PropertyStore, edgeConfig schema.EdgeCaseConfig) *Scorer {
	var peers *PeerEstimator
	if store != nil {
		peers = NewPeerEstimator(store)
	}
	return &Scorer{
		peers:      peers,
		regional:   NewStaticRegionalAdjuster(),
		edgeConfig: edgeConfig,
		now:        time.Now,
	}
}

// WithRegionalAdjuster swaps the regional rule source. Mostly for tests.
func (s *Scorer) WithRegionalAdjuster(ra RegionalAdjuster) *Scorer {
	s.regional = ra
	return s
}

// Score runs the pipeline on one property record. The same input always
// yields the same output apart from CalculatedAt.
func (s *Scorer) Score(ctx context.Context, rec *schema.PropertyRecord, opts schema.CalculationOptions) (*schema.PropertyScoreResult, error) {
	if rec == nil || rec.Property == nil {
		return nil, ErrNilProperty
	}
	p := rec.Property
	ext := rec.External
	now := s.now()

	propertyID := p.ID
	if propertyID == "" {
		propertyID = p.ParcelID
	}
	if propertyID == "" {
		propertyID = "unknown"
	}

	ptype := DetectPropertyType(p)

	edge := schema.EdgeCaseResult{Handling: schema.StandardHandling, CombinedSeverity: schema.LowSeverity}
	if !opts.SkipEdgeCases {
		edge = DetectEdgeCases(p, ext, s.edgeConfig)
	}
	if edge.Handling == schema.AutoReject || edge.Handling == schema.RejectUnbuildable {
		return s.rejectedResult(propertyID, ptype, edge, now), nil
	}

	location := ScoreLocation(ctx, p, ext, s.peers)
	risk := ScoreRisk(ctx, p, ext, s.peers)
	financial := ScoreFinancial(ctx, p, ext, s.peers)
	market := ScoreMarket()
	profit := ScoreProfit()
	byID := map[schema.CategoryID]*schema.CategoryScore{
		schema.LocationCategory:  &location,
		schema.RiskCategory:      &risk,
		schema.FinancialCategory: &financial,
		schema.MarketCategory:    &market,
		schema.ProfitCategory:    &profit,
	}

	var regionAdjustments []schema.ScoreAdjustment
	if !opts.SkipRegionalAdjustments && s.regional != nil {
		for _, adj := range s.regional.Adjustments(p.State, p.County) {
			cat, ok := byID[schema.CategoryID(adj.AppliedTo)]
			if !ok {
				continue
			}
			applyCategoryAdjustment(cat, adj.Type, adj.Factor, adj.Reason)
			regionAdjustments = append(regionAdjustments, adj)
		}
	}

	rawTotal := location.Score + risk.Score + financial.Score + market.Score + profit.Score

	condition := opts.MarketCondition
	if condition == "" {
		condition = schema.StableMarket
	}
	var calibration schema.ScoreValidationResult
	if opts.SkipCalibration {
		bounded := algo.Round2(algo.Clamp(rawTotal, 0, schema.MaxTotalScore))
		calibration = schema.ScoreValidationResult{
			OriginalScore:         algo.Round2(rawTotal),
			CalibratedScore:       bounded,
			CalibrationConfidence: 100,
		}
	} else {
		calibration = CalibrateScore(rawTotal, ptype, p.State, condition, opts.CustomAdjustments, now)
	}
	total := calibration.CalibratedScore

	confidence := CalculateConfidence(ConfidenceInput{
		Property: p,
		External: ext,
		CategoryConfidences: []float64{
			location.Confidence, risk.Confidence, financial.Confidence,
			market.Confidence, profit.Confidence,
		},
		PropertyType: ptype,
		Now:          now,
	})

	result := &schema.PropertyScoreResult{
		PropertyID:        propertyID,
		TotalScore:        total,
		Grade:             CalculateGrade(total),
		Location:          location,
		Risk:              risk,
		Financial:         financial,
		Market:            market,
		Profit:            profit,
		PropertyType:      ptype,
		RegionAdjustments: regionAdjustments,
		Calibration:       calibration,
		ConfidenceLevel:   confidence,
		EdgeCases:         edge,
		ScoringVersion:    ScoringVersion,
		CalculatedAt:      now,
	}
	result.Warnings = collectWarnings(result, opts)
	return result, nil
}

// ScoreBatch scores records in input order. A nil record yields an error for
// that slot without failing the batch; context cancellation aborts the run.
func (s *Scorer) ScoreBatch(ctx context.Context, recs []schema.PropertyRecord, opts schema.CalculationOptions) ([]schema.PropertyScoreResult, []error) {
	results := make([]schema.PropertyScoreResult, 0, len(recs))
	var errs []error
	for i := range recs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			return results, errs
		}
		r, err := s.Score(ctx, &recs[i], opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		results = append(results, *r)
	}
	return results, errs
}

// rejectedResult is the terminal output for auto-reject and unbuildable
// properties: zero everywhere, graded F, and fully confident about it. The
// rejection itself is certain even when the data is thin.
func (s *Scorer) rejectedResult(propertyID string, ptype schema.PropertyType, edge schema.EdgeCaseResult, now time.Time) *schema.PropertyScoreResult {
	zero := func(id schema.CategoryID, name string) schema.CategoryScore {
		return schema.CategoryScore{
			ID:               id,
			Name:             name,
			MaxScore:         schema.MaxCategoryScore,
			Confidence:       100,
			DataCompleteness: 100,
			Notes:            []string{"zeroed: property rejected before scoring"},
		}
	}
	warnings := append([]string{}, edge.Warnings...)
	if edge.RejectReason != "" {
		warnings = append(warnings, "rejected: "+edge.RejectReason)
	}
	return &schema.PropertyScoreResult{
		PropertyID:   propertyID,
		TotalScore:   0,
		Grade:        CalculateGrade(0),
		Location:     zero(schema.LocationCategory, "Location"),
		Risk:         zero(schema.RiskCategory, "Risk"),
		Financial:    zero(schema.FinancialCategory, "Financial"),
		Market:       zero(schema.MarketCategory, "Market"),
		Profit:       zero(schema.ProfitCategory, "Profit"),
		PropertyType: ptype,
		Calibration: schema.ScoreValidationResult{
			OriginalScore:         0,
			CalibratedScore:       0,
			CalibrationConfidence: 100,
		},
		ConfidenceLevel: schema.ConfidenceResult{
			Overall: 100,
			Label:   schema.VeryHighConfidence,
		},
		EdgeCases:      edge,
		Warnings:       warnings,
		ScoringVersion: ScoringVersion,
		CalculatedAt:   now,
	}
}

// collectWarnings aggregates result-level warnings from every pipeline stage.
func collectWarnings(r *schema.PropertyScoreResult, opts schema.CalculationOptions) []string {
	var out []string

	out = append(out, "market and profit categories use placeholder scores pending model rollout")

	for _, cat := range r.Categories() {
		for _, c := range cat.Components {
			if c.IsRequired {
				out = append(out, fmt.Sprintf("%s: required input missing, scored neutral at zero confidence", c.ID))
			}
		}
	}

	out = append(out, r.Calibration.Warnings...)
	out = append(out, r.EdgeCases.Warnings...)

	if r.ConfidenceLevel.Overall < lowConfidenceThreshold {
		out = append(out, "low confidence: verify inputs before acting on this score")
	}

	if opts.IncludeFallbackLog {
		for _, cat := range r.Categories() {
			for _, c := range cat.Components {
				if c.MissingDataStrategy != "" && c.Note != "" {
					out = append(out, fmt.Sprintf("%s: %s", c.ID, c.Note))
				}
			}
		}
	}
	return out
}
