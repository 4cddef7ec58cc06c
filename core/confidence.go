package core

import (
	"time"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// Confidence factor weights. They sum to 1.0.
const (
	coreCompletenessWeight     = 0.25
	externalCompletenessWeight = 0.20
	freshnessWeight            = 0.15
	reliabilityWeight          = 0.15
	consistencyWeight          = 0.10
	categoryConfidenceWeight   = 0.10
	propertyTypeWeight         = 0.05
)

// Freshness windows for enrichment data.
const (
	freshWindow  = 30 * 24 * time.Hour
	recentWindow = 180 * 24 * time.Hour
)

// confidenceBase is the starting point before weighted impacts.
const confidenceBase = 50.0

// propertyTypeConfidence adjusts for how well the scoring model understands
// each property type. Single-family is the best calibrated class.
var propertyTypeConfidence = map[schema.PropertyType]float64{
	schema.SingleFamily: 5,
	schema.MultiFamily:  3,
	schema.MixedUse:     0,
	schema.Agricultural: -2,
	schema.Commercial:   -3,
	schema.VacantLand:   -5,
	schema.Industrial:   -5,
	schema.MobileHome:   -7,
	schema.UnknownType:  -10,
}

// ConfidenceInput is the derived availability snapshot the orchestrator
// builds from its two inputs.
type ConfidenceInput struct {
	Property            *schema.PropertyData
	External            *schema.ExternalData
	CategoryConfidences []float64
	PropertyType        schema.PropertyType
	Now                 time.Time
}

// coreDataCompleteness scores presence of the nine core property fields with
// tiered importance: the valuation and location fields dominate, sale
// metadata barely moves the needle.
func coreDataCompleteness(p *schema.PropertyData) float64 {
	if p == nil {
		return 0
	}
	flags := []struct {
		present bool
		weight  float64
	}{
		{p.Address != "", 20},
		{p.AssessedValue != nil, 20},
		{p.LotSizeSqft != nil, 20},
		{p.YearBuilt != nil, 15},
		{p.BuildingSqft != nil, 15},
		{p.County != "", 3.3},
		{p.SaleType != "", 3.3},
		{p.SaleDate != nil, 3.3},
		{p.AmountDue != nil, 3.3},
	}
	var have, total float64
	for _, f := range flags {
		total += f.weight
		if f.present {
			have += f.weight
		}
	}
	return have / total * 100
}

// externalDataCompleteness scores presence of the five enrichment bundles.
func externalDataCompleteness(ext *schema.ExternalData) float64 {
	if ext == nil {
		return 0
	}
	flags := []struct {
		present bool
		weight  float64
	}{
		{ext.Walkability != nil, 25},
		{ext.Crime != nil, 25},
		{ext.Schools != nil, 25},
		{ext.Flood != nil, 15},
		{ext.Market != nil, 10},
	}
	var have, total float64
	for _, f := range flags {
		total += f.weight
		if f.present {
			have += f.weight
		}
	}
	return have / total * 100
}

// CalculateConfidence combines seven weighted signals into one 0-100
// confidence score with a label and at most five recommendations.
func CalculateConfidence(in ConfidenceInput) schema.ConfidenceResult {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var factors []schema.ConfidenceFactor
	add := func(name string, weight, impact float64, detail string) {
		status := "neutral"
		if impact > 0 {
			status = "positive"
		} else if impact < 0 {
			status = "negative"
		}
		factors = append(factors, schema.ConfidenceFactor{
			Name: name, Weight: weight, Impact: algo.Round2(impact), Status: status, Detail: detail,
		})
	}

	core := coreDataCompleteness(in.Property)
	add("core_data_completeness", coreCompletenessWeight, (core-50)*0.4, "presence of county record fields")

	external := externalDataCompleteness(in.External)
	add("external_data_completeness", externalCompletenessWeight, (external-50)*0.4, "presence of enrichment bundles")

	var freshImpact float64
	var freshDetail string
	switch {
	case in.External == nil || in.External.RetrievedAt == nil:
		freshImpact, freshDetail = -5, "enrichment age unknown"
	case now.Sub(*in.External.RetrievedAt) <= freshWindow:
		freshImpact, freshDetail = 10, "enrichment retrieved within 30 days"
	case now.Sub(*in.External.RetrievedAt) <= recentWindow:
		freshImpact, freshDetail = 5, "enrichment retrieved within 6 months"
	default:
		freshImpact, freshDetail = -10, "enrichment data is stale"
	}
	add("data_freshness", freshnessWeight, freshImpact, freshDetail)

	var reliabilityImpact float64
	var reliability string
	if in.External != nil {
		reliability = in.External.SourceReliability
	}
	switch reliability {
	case "high":
		reliabilityImpact = 10
	case "medium":
		reliabilityImpact = 3
	case "low":
		reliabilityImpact = -10
	default:
		reliabilityImpact = -5
		reliability = "unknown"
	}
	add("source_reliability", reliabilityWeight, reliabilityImpact, "provider reliability rated "+reliability)

	consistencyImpact := 5.0
	consistencyDetail := "no cross-source conflicts"
	if in.External != nil && in.External.HasConflicts != nil && *in.External.HasConflicts {
		consistencyImpact = -20
		consistencyDetail = "providers disagree on overlapping fields"
	}
	add("cross_source_consistency", consistencyWeight, consistencyImpact, consistencyDetail)

	var avgCat float64
	if n := len(in.CategoryConfidences); n > 0 {
		var sum float64
		for _, c := range in.CategoryConfidences {
			sum += c
		}
		avgCat = sum / float64(n)
	}
	add("category_confidence", categoryConfidenceWeight, (avgCat-50)*0.3, "mean confidence across scoring categories")

	typeImpact, ok := propertyTypeConfidence[in.PropertyType]
	if !ok {
		typeImpact = propertyTypeConfidence[schema.UnknownType]
	}
	add("property_type", propertyTypeWeight, typeImpact, "model familiarity with "+string(in.PropertyType))

	overall := confidenceBase
	for _, f := range factors {
		overall += f.Impact * f.Weight
	}
	overall = algo.Round2(algo.Clamp(overall, 0, 100))

	return schema.ConfidenceResult{
		Overall:         overall,
		Label:           ConfidenceLabelFor(overall),
		Factors:         factors,
		Recommendations: confidenceRecommendations(factors),
	}
}

// ConfidenceLabelFor maps an overall confidence score to its band.
func ConfidenceLabelFor(overall float64) schema.ConfidenceLabel {
	switch {
	case overall >= 90:
		return schema.VeryHighConfidence
	case overall >= 75:
		return schema.HighConfidence
	case overall >= 50:
		return schema.ModerateConfidence
	case overall >= 25:
		return schema.LowConfidence
	default:
		return schema.VeryLowConfidence
	}
}

// recommendationsByFactor maps each factor to the advice shown when the
// factor lands negative.
var recommendationsByFactor = map[string]string{
	"core_data_completeness":     "pull the full county record; core property fields are missing",
	"external_data_completeness": "run the enrichment pipeline; third-party data is missing",
	"data_freshness":             "refresh enrichment data before relying on this score",
	"source_reliability":         "corroborate low-reliability sources with a second provider",
	"cross_source_consistency":   "resolve conflicting provider data before bidding",
	"category_confidence":        "treat category scores as directional; inputs were heavily defaulted",
	"property_type":              "verify the property classification manually",
}

// confidenceRecommendations collects advice for negative factors, deduplicated
// and capped at five, preserving factor order.
func confidenceRecommendations(factors []schema.ConfidenceFactor) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range factors {
		if f.Status != "negative" {
			continue
		}
		rec, ok := recommendationsByFactor[f.Name]
		if !ok || seen[rec] {
			continue
		}
		seen[rec] = true
		out = append(out, rec)
		if len(out) == 5 {
			break
		}
	}
	return out
}
