package core

import (
	"context"
	"math"
	"strings"

	"github.com/taxdeedflow/deedscore/schema"
)

// floodZoneScores maps FEMA zone codes to a 0-100 safety value (higher is
// safer). Unlisted zones score through the InFloodplain flag instead.
var floodZoneScores = map[string]float64{
	"X":    95,
	"X500": 80,
	"C":    95,
	"B":    60,
	"A":    25,
	"AE":   25,
	"AH":   30,
	"AO":   30,
	"V":    5,
	"VE":   5,
}

// roadAccessScores maps OSM access classifications to a 0-100 value.
var roadAccessScores = map[string]float64{
	"public":   95,
	"service":  70,
	"easement": 55,
	"private":  50,
	"none":     5,
}

// riskComponents defines the five risk components. All are oriented so that
// a higher score means lower risk.
var riskComponents = []componentDef{
	{
		ID:     "flood_zone",
		Name:   "Flood exposure",
		Norm:   normConfig{Min: 0, Max: 100},
		Source: "fema_nfhl",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Flood == nil {
				return 0, false
			}
			if zone := strings.ToUpper(strings.TrimSpace(ext.Flood.Zone)); zone != "" {
				if v, ok := floodZoneScores[zone]; ok {
					return v, true
				}
			}
			if ext.Flood.InFloodplain != nil {
				if *ext.Flood.InFloodplain {
					return 15, true
				}
				return 90, true
			}
			return 0, false
		},
	},
	{
		ID:     "environmental_hazard",
		Name:   "Environmental hazard",
		Norm:   normConfig{Min: 0, Max: 100},
		Source: "epa_envirofacts",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Environmental == nil {
				return 0, false
			}
			env := ext.Environmental
			if env.RiskScore != nil {
				return 100 - *env.RiskScore, true
			}
			switch {
			case env.SuperfundWithinMile != nil && *env.SuperfundWithinMile:
				return 10, true
			case env.BrownfieldWithinMile != nil && *env.BrownfieldWithinMile:
				return 30, true
			case env.SuperfundWithinMile != nil || env.BrownfieldWithinMile != nil:
				return 85, true
			}
			return 0, false
		},
	},
	{
		ID:     "road_access",
		Name:   "Road access",
		Norm:   normConfig{Min: 0, Max: 100},
		Source: "osm_access",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Access == nil {
				return 0, false
			}
			if ext.Access.Landlocked != nil && *ext.Access.Landlocked {
				return 5, true
			}
			if t := strings.ToLower(ext.Access.RoadAccessType); t != "" && t != "unknown" {
				if v, ok := roadAccessScores[t]; ok {
					return v, true
				}
			}
			return 0, false
		},
	},
	{
		ID:     "structure_age_risk",
		Name:   "Structure age",
		Norm:   normConfig{Min: 1900, Max: 2020},
		Source: "county_records",
		Extract: func(p *schema.PropertyData, _ *schema.ExternalData) (float64, bool) {
			if p == nil || p.YearBuilt == nil {
				return 0, false
			}
			return float64(*p.YearBuilt), true
		},
	},
	{
		ID:     "market_volatility",
		Name:   "Market volatility",
		Norm:   normConfig{Min: 0, Max: 20, Invert: true},
		Source: "market_trends",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Market == nil || ext.Market.PriceChangeYoY == nil {
				return 0, false
			}
			// Swing magnitude in either direction reads as volatility.
			return math.Abs(*ext.Market.PriceChangeYoY), true
		},
	},
}

// ScoreRisk computes the 0-25 risk category score.
func ScoreRisk(ctx context.Context, p *schema.PropertyData, ext *schema.ExternalData, peers *PeerEstimator) schema.CategoryScore {
	comps := scoreComponents(ctx, riskComponents, p, ext, peers)
	return buildCategory(schema.RiskCategory, "Risk", comps)
}
