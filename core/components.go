package core

import (
	"context"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// normConfig is the linear normalization range for a component.
type normConfig struct {
	Min    float64
	Max    float64
	Invert bool
}

// componentDef is the static configuration for one scoring component.
type componentDef struct {
	ID     string
	Name   string
	Norm   normConfig
	Source string

	// Extract returns the raw value when the inputs carry it. Categorical
	// components encode their lookup inside Extract and return a value
	// already on the component's Norm scale.
	Extract func(p *schema.PropertyData, ext *schema.ExternalData) (float64, bool)

	// PeerField enables peer estimation for this component's raw value.
	// Only consulted when the missing-data strategy is estimate_from_peers.
	PeerField PeerField
}

// scoreComponent evaluates one component: extract, normalize, convert to the
// 0-5 scale, or delegate to the missing-data handler when the raw value is
// absent. It never fails.
func scoreComponent(ctx context.Context, def componentDef, p *schema.PropertyData, ext *schema.ExternalData, peers *PeerEstimator) schema.ComponentScore {
	cs := schema.ComponentScore{
		ID:       def.ID,
		Name:     def.Name,
		MaxScore: schema.MaxComponentScore,
	}

	if raw, ok := def.Extract(p, ext); ok {
		normalized := algo.Linear(raw, def.Norm.Min, def.Norm.Max, def.Norm.Invert)
		rawCopy := raw
		cs.RawValue = &rawCopy
		cs.NormalizedValue = normalized
		cs.Score = algo.ScoreFromNormalized(normalized, schema.MaxComponentScore)
		cs.Confidence = 100
		cs.DataSource = def.Source
		return cs
	}

	var est *PeerEstimate
	if MissingStrategyFor(def.ID) == schema.EstimateFromPeers && peers != nil && def.PeerField != nil {
		raw := peers.Estimate(ctx, p, def.PeerField)
		if raw.PeerCount > 0 {
			est = &PeerEstimate{
				Value:       algo.Linear(raw.Value, def.Norm.Min, def.Norm.Max, def.Norm.Invert),
				Confidence:  raw.Confidence,
				PeerCount:   raw.PeerCount,
				CohortsUsed: raw.CohortsUsed,
			}
		}
	}

	md := HandleMissingData(def.ID, false, est)
	cs.Score = md.Score
	cs.NormalizedValue = md.Score / schema.MaxComponentScore * 100
	cs.Confidence = md.Confidence
	cs.DataSource = string(md.Strategy)
	cs.MissingDataStrategy = md.Strategy
	cs.IsRequired = md.IsRequired
	cs.Skipped = md.Skipped
	cs.Note = md.Explanation
	return cs
}

// scoreComponents evaluates a full component set.
func scoreComponents(ctx context.Context, defs []componentDef, p *schema.PropertyData, ext *schema.ExternalData, peers *PeerEstimator) []schema.ComponentScore {
	out := make([]schema.ComponentScore, 0, len(defs))
	for _, def := range defs {
		out = append(out, scoreComponent(ctx, def, p, ext, peers))
	}
	return out
}

// buildCategory aggregates component scores onto the 0-25 category scale.
// Skipped components are excluded from the sum and the remainder is rescaled
// (mean of scored components times the component count) so the category stays
// on its full scale.
func buildCategory(id schema.CategoryID, name string, comps []schema.ComponentScore) schema.CategoryScore {
	cat := schema.CategoryScore{
		ID:         id,
		Name:       name,
		MaxScore:   schema.MaxCategoryScore,
		Components: comps,
	}

	var sum float64
	var scored int
	var confSum, complSum float64
	for _, c := range comps {
		confSum += c.Confidence
		if c.MissingDataStrategy == "" {
			complSum += 100
		} else {
			complSum += c.Confidence * 0.5
		}
		if c.Skipped {
			continue
		}
		sum += c.Score
		scored++
	}

	switch {
	case scored == len(comps):
		cat.Score = sum
	case scored > 0:
		cat.Score = sum / float64(scored) * schema.ComponentsPerCategory
		cat.Notes = append(cat.Notes, "category rescaled after skipping components with no data")
	default:
		cat.Score = neutralComponentScore * schema.ComponentsPerCategory
		cat.Notes = append(cat.Notes, "no scorable components; neutral category score applied")
	}

	if n := len(comps); n > 0 {
		cat.Confidence = algo.Round2(confSum / float64(n))
		cat.DataCompleteness = algo.Round2(complSum / float64(n))
	}
	cat.Score = algo.Round2(algo.Clamp(cat.Score, 0, schema.MaxCategoryScore))
	return cat
}

// applyCategoryAdjustment layers a post-hoc delta onto a category total,
// floors the result at zero and records the audit entry.
func applyCategoryAdjustment(cat *schema.CategoryScore, adjType string, delta float64, reason string) {
	cat.Adjustments = append(cat.Adjustments, schema.ScoreAdjustment{
		Type:      adjType,
		Factor:    delta,
		Reason:    reason,
		AppliedTo: string(cat.ID),
	})
	cat.Score = algo.Round2(algo.Clamp(cat.Score+delta, 0, schema.MaxCategoryScore))
}
