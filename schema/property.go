// Package schema has configs, models and global tables for all parts of deedscore.
package schema

import "time"

// PropertyData represents a partially-populated county property record.
// Every field may be absent: scalar fields use pointers so that "missing"
// is distinguishable from a legitimate zero. No scorer may assume presence.
type PropertyData struct {
	ID       string `json:"id,omitempty"`
	ParcelID string `json:"parcel_id,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	County   string `json:"county,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`

	AssessedValue *float64 `json:"assessed_value,omitempty"` // County assessed value in USD
	MarketValue   *float64 `json:"market_value,omitempty"`   // Estimated market value in USD

	LotSizeSqft  *float64 `json:"lot_size_sqft,omitempty"`
	LotWidthFt   *float64 `json:"lot_width_ft,omitempty"` // Narrowest street-facing dimension
	BuildingSqft *float64 `json:"building_sqft,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`

	SaleType  string     `json:"sale_type,omitempty"` // e.g. "judicial", "upset", "repository"
	SaleDate  *time.Time `json:"sale_date,omitempty"`
	AmountDue *float64   `json:"amount_due,omitempty"` // Delinquent taxes plus costs in USD

	Zoning       string `json:"zoning,omitempty"`
	LandUse      string `json:"land_use,omitempty"`
	PropertyType string `json:"property_type,omitempty"` // Classification hint from the county export
	OwnerName    string `json:"owner_name,omitempty"`
}

// PropertyRecord pairs a property with its optional enrichment bundle.
// It is the unit of batch intake.
type PropertyRecord struct {
	Property *PropertyData `json:"property"`
	External *ExternalData `json:"external,omitempty"`
}
