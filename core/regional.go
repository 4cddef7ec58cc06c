package core

import (
	"strings"

	"github.com/taxdeedflow/deedscore/schema"
)

// RegionalAdjuster supplies additive per-category deltas for a property's
// state and county. Adjustments are applied after category aggregation and
// recorded on the affected category.
type RegionalAdjuster interface {
	Adjustments(state, county string) []schema.ScoreAdjustment
}

// regionalRule is one state- or county-level adjustment.
type regionalRule struct {
	state    string // Two-letter code, upper case
	county   string // Empty matches the whole state
	category schema.CategoryID
	delta    float64
	reason   string
}

// staticRegionalRules encodes the adjustments our acquisition team has
// validated against closed deals. Deliberately small: a rule only earns a
// place here after it survives a calibration review.
var staticRegionalRules = []regionalRule{
	{"FL", "", schema.RiskCategory, -1.5, "statewide hurricane and flood exposure"},
	{"FL", "MIAMI-DADE", schema.LocationCategory, 1.0, "sustained in-migration demand"},
	{"TX", "", schema.FinancialCategory, 0.5, "redemption premium favors certificate holders"},
	{"NJ", "", schema.FinancialCategory, 1.0, "18% statutory interest ceiling"},
	{"MI", "WAYNE", schema.LocationCategory, -2.0, "chronic vacancy in auction inventory"},
	{"OH", "CUYAHOGA", schema.LocationCategory, -1.0, "weak resale velocity outside inner-ring suburbs"},
	{"AZ", "MARICOPA", schema.RiskCategory, 0.5, "minimal flood and freeze exposure"},
}

// StaticRegionalAdjuster matches against the built-in rule table.
type StaticRegionalAdjuster struct {
	rules []regionalRule
}

// NewStaticRegionalAdjuster returns the default adjuster backed by the
// built-in rule table.
func NewStaticRegionalAdjuster() *StaticRegionalAdjuster {
	return &StaticRegionalAdjuster{rules: staticRegionalRules}
}

// Adjustments returns all rules matching the given state, including
// county-level rules when the county matches. Matching is case-insensitive.
func (a *StaticRegionalAdjuster) Adjustments(state, county string) []schema.ScoreAdjustment {
	st := strings.ToUpper(strings.TrimSpace(state))
	co := strings.ToUpper(strings.TrimSpace(county))
	var out []schema.ScoreAdjustment
	for _, r := range a.rules {
		if r.state != st {
			continue
		}
		if r.county != "" && r.county != co {
			continue
		}
		out = append(out, schema.ScoreAdjustment{
			Type:      "regional",
			Factor:    r.delta,
			Reason:    r.reason,
			AppliedTo: string(r.category),
		})
	}
	return out
}

// NopRegionalAdjuster returns no adjustments. Used when regional tuning is
// disabled via options.
type NopRegionalAdjuster struct{}

func (NopRegionalAdjuster) Adjustments(string, string) []schema.ScoreAdjustment { return nil }
