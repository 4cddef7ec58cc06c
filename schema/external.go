package schema

import "time"

// ExternalData bundles third-party enrichment for a property. Each sub-record
// is independently nullable: providers fail or rate-limit one at a time, and
// the engine degrades per component rather than per bundle.
type ExternalData struct {
	Walkability   *WalkabilityScores `json:"walkability,omitempty"`
	Crime         *CrimeStats        `json:"crime,omitempty"`
	Schools       *SchoolData        `json:"schools,omitempty"`
	Flood         *FloodData         `json:"flood,omitempty"`
	Environmental *EnvironmentalData `json:"environmental,omitempty"`
	Amenities     *AmenitiesData     `json:"amenities,omitempty"`
	Market        *MarketData        `json:"market,omitempty"`
	Comparables   []ComparableSale   `json:"comparables,omitempty"`
	Access        *AccessData        `json:"access,omitempty"`

	RetrievedAt       *time.Time `json:"retrieved_at,omitempty"`       // When the enrichment bundle was assembled
	SourceReliability string     `json:"source_reliability,omitempty"` // "high", "medium", "low" or empty for unknown
	HasConflicts      *bool      `json:"has_conflicts,omitempty"`      // Providers disagree on overlapping fields
}

// WalkabilityScores holds Walk Score style ratings, each on a 0-100 scale.
type WalkabilityScores struct {
	WalkScore    *float64 `json:"walk_score,omitempty"`
	TransitScore *float64 `json:"transit_score,omitempty"`
	BikeScore    *float64 `json:"bike_score,omitempty"`
}

// CrimeStats holds state or county level crime figures. Rates are per
// 100,000 population; SafetyScore is a derived 0-10 rating (higher is safer).
type CrimeStats struct {
	ViolentCrimeRate  *float64 `json:"violent_crime_rate,omitempty"`
	PropertyCrimeRate *float64 `json:"property_crime_rate,omitempty"`
	SafetyScore       *float64 `json:"safety_score,omitempty"`
}

// SchoolData holds school quality signals near the property.
type SchoolData struct {
	DistrictRating     *float64 `json:"district_rating,omitempty"` // 0-10 scale
	NearestSchoolMiles *float64 `json:"nearest_school_miles,omitempty"`
}

// FloodData holds FEMA flood designation for the parcel.
type FloodData struct {
	Zone          string `json:"zone,omitempty"` // FEMA zone code, e.g. "X", "AE", "VE"
	InFloodplain  *bool  `json:"in_floodplain,omitempty"`
	BaseElevation *float64 `json:"base_elevation,omitempty"`
}

// EnvironmentalData holds EPA hazard proximity signals.
type EnvironmentalData struct {
	SuperfundWithinMile  *bool    `json:"superfund_within_mile,omitempty"`
	BrownfieldWithinMile *bool    `json:"brownfield_within_mile,omitempty"`
	RiskScore            *float64 `json:"risk_score,omitempty"` // 0-100, higher is worse
	Wetlands             *bool    `json:"wetlands,omitempty"`
}

// AmenitiesData holds nearby amenity counts from OSM queries. TotalCount is a
// pre-computed aggregate; the individual counts allow a fallback sum when the
// aggregate is absent.
type AmenitiesData struct {
	TotalCount      *int `json:"total_count,omitempty"`
	GroceryCount    *int `json:"grocery_count,omitempty"`
	HospitalCount   *int `json:"hospital_count,omitempty"`
	ParkCount       *int `json:"park_count,omitempty"`
	SchoolCount     *int `json:"school_count,omitempty"`
	RestaurantCount *int `json:"restaurant_count,omitempty"`
}

// MarketData holds local market trend statistics.
type MarketData struct {
	MedianSalePrice    *float64 `json:"median_sale_price,omitempty"`
	MedianPricePerSqft *float64 `json:"median_price_per_sqft,omitempty"`
	DaysOnMarket       *float64 `json:"days_on_market,omitempty"`
	AbsorptionRate     *float64 `json:"absorption_rate,omitempty"` // Months of inventory
	PriceChangeYoY     *float64 `json:"price_change_yoy,omitempty"` // Percent, negative in declining markets
}

// ComparableSale is a single nearby sale used for financial scoring.
type ComparableSale struct {
	Address       string     `json:"address,omitempty"`
	SalePrice     float64    `json:"sale_price"`
	SaleDate      *time.Time `json:"sale_date,omitempty"`
	DistanceMiles float64    `json:"distance_miles"`
	BuildingSqft  *float64   `json:"building_sqft,omitempty"`
}

// AccessData holds road access analysis derived from OSM data.
type AccessData struct {
	Landlocked            *bool    `json:"landlocked,omitempty"`
	RoadAccessType        string   `json:"road_access_type,omitempty"` // "public", "private", "service", "easement", "none"
	DistanceToPublicRoadM *float64 `json:"distance_to_public_road_m,omitempty"`
	NearestRoadName       string   `json:"nearest_road_name,omitempty"`
}
