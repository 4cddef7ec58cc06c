package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/taxdeedflow/deedscore/schema"
)

// Keyword lists for the auto-reject classifications. Matching is
// case-insensitive substring search over land use, zoning, owner name and the
// county's property type hint.
var (
	cemeteryKeywords = []string{"cemetery", "graveyard", "burial", "mausoleum"}
	utilityKeywords  = []string{"utility", "substation", "transmission", "pipeline", "water authority", "sewer authority", "power company"}
)

// edgeCaseDef fixes severity, handling and detection for one edge case type.
type edgeCaseDef struct {
	Type           schema.EdgeCaseType
	Severity       schema.Severity
	Handling       schema.HandlingStrategy
	Recommendation string
	Detect         func(p *schema.PropertyData, ext *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string)
}

// classificationText joins the fields scanned for keyword classification.
func classificationText(p *schema.PropertyData) string {
	return strings.ToLower(strings.Join([]string{p.LandUse, p.Zoning, p.OwnerName, p.PropertyType}, " | "))
}

func matchesAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// autoRejectDefs are evaluated first and short-circuit all other detection.
var autoRejectDefs = []edgeCaseDef{
	{
		Type:           schema.Cemetery,
		Severity:       schema.HighSeverity,
		Handling:       schema.AutoReject,
		Recommendation: "do not bid; cemetery parcels cannot be developed or resold",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if kw, ok := matchesAny(classificationText(p), cemeteryKeywords); ok {
				return true, fmt.Sprintf("classification matches cemetery keyword %q", kw)
			}
			return false, ""
		},
	},
	{
		Type:           schema.UtilityProperty,
		Severity:       schema.HighSeverity,
		Handling:       schema.AutoReject,
		Recommendation: "do not bid; utility parcels carry easements that defeat private use",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if kw, ok := matchesAny(classificationText(p), utilityKeywords); ok {
				return true, fmt.Sprintf("classification matches utility keyword %q", kw)
			}
			return false, ""
		},
	},
}

// edgeCaseDefs is the catalog of non-rejecting edge cases.
var edgeCaseDefs = []edgeCaseDef{
	{
		Type:           schema.VeryOldProperty,
		Severity:       schema.MediumSeverity,
		Handling:       schema.SpecializedAnalysis,
		Recommendation: "budget for a structural inspection; pre-1920 construction often hides foundation and wiring issues",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			d := DetectVeryOldProperty(p, cfg)
			if !d.Detected {
				return false, ""
			}
			return true, fmt.Sprintf("structure built %d (%d years old)", d.YearBuilt, d.Age)
		},
	},
	{
		Type:           schema.NoStructure,
		Severity:       schema.LowSeverity,
		Handling:       schema.SpecializedAnalysis,
		Recommendation: "value as raw land; improvement-based comparables do not apply",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if p.BuildingSqft != nil && *p.BuildingSqft <= 0 {
				return true, "county records show no building square footage"
			}
			if strings.Contains(strings.ToLower(p.LandUse), "vacant") {
				return true, "land use is classified vacant"
			}
			return false, ""
		},
	},
	{
		Type:           schema.HighValue,
		Severity:       schema.MediumSeverity,
		Handling:       schema.ManualReview,
		Recommendation: "verify the valuation and title before committing outsized capital",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			v := p.AssessedValue
			if v == nil {
				v = p.MarketValue
			}
			if v != nil && *v >= cfg.HighValueThreshold {
				return true, fmt.Sprintf("valuation $%.0f at or above $%.0f threshold", *v, cfg.HighValueThreshold)
			}
			return false, ""
		},
	},
	{
		Type:           schema.ExtremelyLowValue,
		Severity:       schema.MediumSeverity,
		Handling:       schema.ManualReview,
		Recommendation: "confirm the record is not a data error or an unbuildable remnant",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			if p.AssessedValue != nil && *p.AssessedValue > 0 && *p.AssessedValue < cfg.ExtremelyLowValueThreshold {
				return true, fmt.Sprintf("assessed value $%.0f below $%.0f threshold", *p.AssessedValue, cfg.ExtremelyLowValueThreshold)
			}
			return false, ""
		},
	},
	{
		Type:           schema.Landlocked,
		Severity:       schema.MediumSeverity,
		Handling:       schema.ManualReview,
		Recommendation: "research easement options; landlocked parcels need negotiated access",
		Detect: func(_ *schema.PropertyData, ext *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if ext != nil && ext.Access != nil && ext.Access.Landlocked != nil && *ext.Access.Landlocked {
				return true, "no public road within search radius"
			}
			return false, ""
		},
	},
	{
		Type:           schema.NoRoadAccess,
		Severity:       schema.MediumSeverity,
		Handling:       schema.ManualReview,
		Recommendation: "confirm legal access; physical access without a recorded easement is not enough",
		Detect: func(_ *schema.PropertyData, ext *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if ext != nil && ext.Access != nil && strings.EqualFold(ext.Access.RoadAccessType, "none") {
				return true, "access analysis found no usable road"
			}
			return false, ""
		},
	},
	{
		// Stub awaiting title search integration.
		Type:           schema.TitleCloud,
		Severity:       schema.MediumSeverity,
		Handling:       schema.TitleResearchRequired,
		Recommendation: "order a title search before bidding",
		Detect: func(_ *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			return false, ""
		},
	},
	{
		// Stub awaiting title search integration.
		Type:           schema.IRSLien,
		Severity:       schema.HighSeverity,
		Handling:       schema.LienAnalysisRequired,
		Recommendation: "IRS liens survive tax sales for 120 days; price in the redemption window",
		Detect: func(_ *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			return false, ""
		},
	},
	{
		// Stub awaiting title search integration.
		Type:           schema.HOASuperLien,
		Severity:       schema.MediumSeverity,
		Handling:       schema.LienAnalysisRequired,
		Recommendation: "check association dues; super-lien states let HOA claims survive the sale",
		Detect: func(_ *schema.PropertyData, _ *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			return false, ""
		},
	},
	{
		Type:           schema.Contamination,
		Severity:       schema.HighSeverity,
		Handling:       schema.EnvironmentalRequired,
		Recommendation: "commission a Phase I environmental assessment before taking title",
		Detect: func(_ *schema.PropertyData, ext *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if ext == nil || ext.Environmental == nil {
				return false, ""
			}
			env := ext.Environmental
			if env.SuperfundWithinMile != nil && *env.SuperfundWithinMile {
				return true, "superfund site within one mile"
			}
			if env.BrownfieldWithinMile != nil && *env.BrownfieldWithinMile {
				return true, "brownfield site within one mile"
			}
			if env.RiskScore != nil && *env.RiskScore >= 70 {
				return true, fmt.Sprintf("environmental risk score %.0f at or above 70", *env.RiskScore)
			}
			return false, ""
		},
	},
	{
		Type:           schema.Wetlands,
		Severity:       schema.MediumSeverity,
		Handling:       schema.EnvironmentalRequired,
		Recommendation: "check wetland delineation; fill permits are slow and frequently denied",
		Detect: func(p *schema.PropertyData, ext *schema.ExternalData, _ schema.EdgeCaseConfig) (bool, string) {
			if ext != nil && ext.Environmental != nil && ext.Environmental.Wetlands != nil && *ext.Environmental.Wetlands {
				return true, "parcel intersects mapped wetlands"
			}
			lu := strings.ToLower(p.LandUse)
			for _, kw := range []string{"wetland", "marsh", "swamp"} {
				if strings.Contains(lu, kw) {
					return true, fmt.Sprintf("land use mentions %q", kw)
				}
			}
			if ext != nil && ext.Flood != nil {
				zone := strings.ToUpper(strings.TrimSpace(ext.Flood.Zone))
				if zone == "V" || zone == "VE" {
					return true, "coastal high-hazard flood zone correlates with wetland coverage"
				}
			}
			return false, ""
		},
	},
	{
		Type:           schema.HighCompetition,
		Severity:       schema.LowSeverity,
		Handling:       schema.EnhancedMarketAnalysis,
		Recommendation: "expect bidding above assessed value; set a hard maximum before the sale",
		Detect: func(_ *schema.PropertyData, ext *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			if ext == nil || ext.Market == nil {
				return false, ""
			}
			m := ext.Market
			if m.DaysOnMarket != nil && *m.DaysOnMarket > 0 && *m.DaysOnMarket <= cfg.HighCompetitionDOM {
				return true, fmt.Sprintf("%.0f days on market at or below %.0f", *m.DaysOnMarket, cfg.HighCompetitionDOM)
			}
			if m.AbsorptionRate != nil && *m.AbsorptionRate > 0 && *m.AbsorptionRate <= cfg.HighCompetitionAbsorption {
				return true, fmt.Sprintf("%.1f months of inventory at or below %.1f", *m.AbsorptionRate, cfg.HighCompetitionAbsorption)
			}
			return false, ""
		},
	},
	{
		Type:           schema.DecliningMarket,
		Severity:       schema.MediumSeverity,
		Handling:       schema.EnhancedMarketAnalysis,
		Recommendation: "discount exit pricing; the local market is losing value year over year",
		Detect: func(_ *schema.PropertyData, ext *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			if ext == nil || ext.Market == nil || ext.Market.PriceChangeYoY == nil {
				return false, ""
			}
			if *ext.Market.PriceChangeYoY <= cfg.DecliningMarketThreshold {
				return true, fmt.Sprintf("prices down %.1f%% year over year", -*ext.Market.PriceChangeYoY)
			}
			return false, ""
		},
	},
	{
		Type:           schema.VerySmallLot,
		Severity:       schema.MediumSeverity,
		Handling:       schema.SpecializedAnalysis,
		Recommendation: "check minimum lot size in the zoning code before assuming buildability",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			if p.LotSizeSqft != nil && *p.LotSizeSqft > 0 && *p.LotSizeSqft < cfg.VerySmallLotSqft {
				return true, fmt.Sprintf("lot is %.0f sqft, below %.0f sqft", *p.LotSizeSqft, cfg.VerySmallLotSqft)
			}
			return false, ""
		},
	},
	{
		Type:           schema.SliverLot,
		Severity:       schema.HighSeverity,
		Handling:       schema.RejectUnbuildable,
		Recommendation: "do not bid to build; sliver lots only have value to adjoining owners",
		Detect: func(p *schema.PropertyData, _ *schema.ExternalData, cfg schema.EdgeCaseConfig) (bool, string) {
			if p.LotWidthFt != nil && *p.LotWidthFt > 0 && *p.LotWidthFt < cfg.SliverLotMinWidthFt {
				return true, fmt.Sprintf("lot width %.0f ft below %.0f ft minimum", *p.LotWidthFt, cfg.SliverLotMinWidthFt)
			}
			return false, ""
		},
	},
}

// VeryOldDetection is the detailed result for the very-old-property predicate.
type VeryOldDetection struct {
	Detected  bool
	YearBuilt int
	Age       int
}

// DetectVeryOldProperty reports whether the structure predates the configured
// cutoff year, and its age when it does.
func DetectVeryOldProperty(p *schema.PropertyData, cfg schema.EdgeCaseConfig) VeryOldDetection {
	if p == nil || p.YearBuilt == nil {
		return VeryOldDetection{}
	}
	cutoff := cfg.VeryOldPropertyYear
	if cutoff == 0 {
		cutoff = schema.DefaultVeryOldPropertyYear
	}
	if *p.YearBuilt >= cutoff {
		return VeryOldDetection{}
	}
	return VeryOldDetection{
		Detected:  true,
		YearBuilt: *p.YearBuilt,
		Age:       time.Now().Year() - *p.YearBuilt,
	}
}

// DetectEdgeCases classifies a property against the edge case catalog and
// resolves all matches to one handling strategy. It is a pure function of its
// inputs: nothing is mutated and nothing fails.
//
// Resolution order:
//  1. Auto-reject predicates short-circuit everything else.
//  2. All remaining predicates are evaluated; a property may match several.
//  3. Combined severity: any high detection is high; two or more mediums
//     escalate to high; exactly one medium stays medium; otherwise low.
//  4. The strongest handling strategy among the detections wins, except that
//     a sliver lot always forces reject_unbuildable.
func DetectEdgeCases(p *schema.PropertyData, ext *schema.ExternalData, cfg schema.EdgeCaseConfig) schema.EdgeCaseResult {
	res := schema.EdgeCaseResult{
		Handling:         schema.StandardHandling,
		CombinedSeverity: schema.LowSeverity,
	}
	if p == nil {
		return res
	}

	for _, def := range autoRejectDefs {
		if ok, reason := def.Detect(p, ext, cfg); ok {
			res.IsEdgeCase = true
			res.EdgeCaseTypes = []schema.EdgeCaseType{def.Type}
			res.Detections = []schema.EdgeCaseDetection{{Type: def.Type, Severity: def.Severity, Reason: reason}}
			res.Handling = schema.AutoReject
			res.CombinedSeverity = schema.HighSeverity
			res.RejectReason = reason
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", def.Type, reason))
			res.Recommendations = append(res.Recommendations, def.Recommendation)
			return res
		}
	}

	var detected []edgeCaseDef
	for _, def := range edgeCaseDefs {
		ok, reason := def.Detect(p, ext, cfg)
		if !ok {
			continue
		}
		detected = append(detected, def)
		res.EdgeCaseTypes = append(res.EdgeCaseTypes, def.Type)
		res.Detections = append(res.Detections, schema.EdgeCaseDetection{Type: def.Type, Severity: def.Severity, Reason: reason})
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", def.Type, reason))
		res.Recommendations = append(res.Recommendations, def.Recommendation)
	}
	if len(detected) == 0 {
		return res
	}
	res.IsEdgeCase = true

	var highs, mediums int
	for _, def := range detected {
		switch def.Severity {
		case schema.HighSeverity:
			highs++
		case schema.MediumSeverity:
			mediums++
		}
	}
	switch {
	case highs > 0 || mediums >= 2:
		res.CombinedSeverity = schema.HighSeverity
	case mediums == 1:
		res.CombinedSeverity = schema.MediumSeverity
	default:
		res.CombinedSeverity = schema.LowSeverity
	}

	res.Handling = strongestHandling(detected)
	for _, def := range detected {
		if def.Type == schema.SliverLot {
			res.Handling = schema.RejectUnbuildable
			res.RejectReason = "lot too narrow to build on"
			break
		}
	}
	if res.Handling == schema.RejectUnbuildable && res.RejectReason == "" {
		res.RejectReason = "parcel is unbuildable"
	}
	return res
}

// strongestHandling picks the highest-priority strategy among the detections.
func strongestHandling(detected []edgeCaseDef) schema.HandlingStrategy {
	present := make(map[schema.HandlingStrategy]bool, len(detected))
	for _, def := range detected {
		present[def.Handling] = true
	}
	for _, h := range schema.HandlingPriority {
		if present[h] {
			return h
		}
	}
	return schema.StandardHandling
}
