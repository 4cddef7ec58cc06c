package core

import (
	"context"

	"github.com/taxdeedflow/deedscore/schema"
)

// Location category adjustments. The landlocked penalty subsumes the private
// road penalty; they never stack.
const (
	landlockedPenalty  = -2.0
	privateRoadPenalty = -1.0
)

// locationComponents defines the five location components.
var locationComponents = []componentDef{
	{
		ID:     "walkability_score",
		Name:   "Walkability",
		Norm:   normConfig{Min: 0, Max: 100},
		Source: "walkscore",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Walkability == nil || ext.Walkability.WalkScore == nil {
				return 0, false
			}
			return *ext.Walkability.WalkScore, true
		},
	},
	{
		ID:     "crime_rate",
		Name:   "Safety",
		Norm:   normConfig{Min: 0, Max: 10},
		Source: "fbi_cde",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Crime == nil {
				return 0, false
			}
			if ext.Crime.SafetyScore != nil {
				return *ext.Crime.SafetyScore, true
			}
			// Derive a 0-10 safety score from the violent crime rate when the
			// provider did not pre-compute one. 380 per 100k is the national
			// average; double that bottoms out the scale.
			if ext.Crime.ViolentCrimeRate != nil {
				ratio := *ext.Crime.ViolentCrimeRate / 760.0
				if ratio > 1 {
					ratio = 1
				}
				return (1 - ratio) * 10, true
			}
			return 0, false
		},
	},
	{
		ID:     "school_quality",
		Name:   "School quality",
		Norm:   normConfig{Min: 0, Max: 10},
		Source: "school_ratings",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Schools == nil || ext.Schools.DistrictRating == nil {
				return 0, false
			}
			return *ext.Schools.DistrictRating, true
		},
	},
	{
		ID:     "amenity_count",
		Name:   "Nearby amenities",
		Norm:   normConfig{Min: 0, Max: 20},
		Source: "osm_overpass",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Amenities == nil {
				return 0, false
			}
			a := ext.Amenities
			if a.TotalCount != nil {
				return float64(*a.TotalCount), true
			}
			// Fall back to summing the individual counts when the aggregate
			// was not pre-computed.
			var sum int
			var any bool
			for _, c := range []*int{a.GroceryCount, a.HospitalCount, a.ParkCount, a.SchoolCount, a.RestaurantCount} {
				if c != nil {
					sum += *c
					any = true
				}
			}
			if !any {
				return 0, false
			}
			return float64(sum), true
		},
	},
	{
		ID:     "transit_access",
		Name:   "Transit access",
		Norm:   normConfig{Min: 0, Max: 100},
		Source: "walkscore",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Walkability == nil || ext.Walkability.TransitScore == nil {
				return 0, false
			}
			return *ext.Walkability.TransitScore, true
		},
	},
}

// ScoreLocation computes the 0-25 location category score. Access penalties
// are layered after aggregation and logged as adjustments: a landlocked
// parcel loses 2 points flat, a private-road-only parcel loses 1. The
// penalties are mutually exclusive, landlocked winning.
func ScoreLocation(ctx context.Context, p *schema.PropertyData, ext *schema.ExternalData, peers *PeerEstimator) schema.CategoryScore {
	comps := scoreComponents(ctx, locationComponents, p, ext, peers)
	cat := buildCategory(schema.LocationCategory, "Location", comps)

	if ext != nil && ext.Access != nil {
		switch {
		case ext.Access.Landlocked != nil && *ext.Access.Landlocked:
			applyCategoryAdjustment(&cat, "access_penalty", landlockedPenalty, "parcel has no legal road access (landlocked)")
		case ext.Access.RoadAccessType == "private":
			applyCategoryAdjustment(&cat, "access_penalty", privateRoadPenalty, "parcel is reachable only by private road")
		}
	}
	return cat
}
