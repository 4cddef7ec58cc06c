package core

import (
	"fmt"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// Neutral fallback points on the 0-5 component scale.
const (
	neutralComponentScore      = 2.5
	conservativeComponentScore = 1.5
	optimisticComponentScore   = 3.5

	// Peer estimates below this confidence are discarded for the neutral default.
	minPeerConfidence = 30.0
)

// MissingDataResult is the fully-populated outcome of applying a fallback
// strategy to an absent component input. HandleMissingData never fails.
type MissingDataResult struct {
	ComponentID string
	Strategy    schema.MissingDataStrategy
	Score       float64 // 0-5
	Confidence  float64 // 0-100
	IsRequired  bool
	Skipped     bool
	Explanation string
}

// missingDataRule fixes the strategy, confidence penalty and explanation for
// one component identifier.
type missingDataRule struct {
	Strategy          schema.MissingDataStrategy
	ConfidencePenalty float64
	Explanation       string
}

// missingDataRules is the static fallback table, keyed by component id.
// Kept as data so the policy is testable and swappable in one place.
var missingDataRules = map[string]missingDataRule{
	// Location
	"walkability_score": {schema.DefaultNeutral, 20, "walk score unavailable; assuming average walkability"},
	"crime_rate":        {schema.DefaultConservative, 25, "crime data unavailable; assuming below-average safety"},
	"school_quality":    {schema.DefaultNeutral, 20, "school ratings unavailable; assuming average district"},
	"amenity_count":     {schema.SkipComponent, 15, "amenity data unavailable; component excluded from location score"},
	"transit_access":    {schema.SkipComponent, 15, "transit score unavailable; component excluded from location score"},

	// Risk
	"flood_zone":           {schema.DefaultConservative, 30, "flood designation unknown; assuming elevated flood exposure"},
	"environmental_hazard": {schema.DefaultConservative, 30, "EPA hazard data unavailable; assuming elevated exposure"},
	"road_access":          {schema.DefaultNeutral, 25, "road access analysis unavailable; assuming typical access"},
	"structure_age_risk":   {schema.DefaultNeutral, 15, "year built unknown; assuming mid-age structure"},
	"market_volatility":    {schema.SkipComponent, 20, "market trend data unavailable; component excluded from risk score"},

	// Financial
	"assessed_market_ratio": {schema.EstimateFromPeers, 30, "market value missing; estimating upside from peer properties"},
	"amount_due_ratio":      {schema.RequireData, 40, "amount due is required for tax-deed economics and is missing"},
	"price_per_sqft":        {schema.EstimateFromPeers, 30, "no comparable sales; estimating price per square foot from peers"},
	"comparable_value":      {schema.SkipComponent, 25, "no comparable sales; component excluded from financial score"},
	"value_trend":           {schema.DefaultNeutral, 20, "price trend unavailable; assuming flat values"},

	// Market (category not yet implemented; table entries reserved)
	"days_on_market":  {schema.DefaultNeutral, 20, "days on market unavailable; assuming balanced demand"},
	"absorption_rate": {schema.DefaultNeutral, 20, "absorption rate unavailable; assuming balanced inventory"},
	"price_momentum":  {schema.DefaultNeutral, 20, "price momentum unavailable; assuming flat market"},
	"sale_velocity":   {schema.SkipComponent, 20, "sale velocity unavailable; component excluded"},
	"listing_supply":  {schema.SkipComponent, 20, "listing supply unavailable; component excluded"},

	// Profit (category not yet implemented; table entries reserved)
	"resale_margin":  {schema.RequireData, 40, "resale margin requires valuation data that is missing"},
	"rehab_cost":     {schema.DefaultConservative, 30, "rehab estimate unavailable; assuming above-average cost"},
	"holding_cost":   {schema.DefaultNeutral, 20, "holding cost unavailable; assuming typical carry"},
	"roi_estimate":   {schema.RequireData, 40, "ROI estimate requires valuation data that is missing"},
	"exit_liquidity": {schema.DefaultOptimistic, 25, "exit liquidity unavailable; tax-deed exits skew liquid at low price points"},
}

// defaultMissingRule covers component ids not in the table.
var defaultMissingRule = missingDataRule{
	Strategy:          schema.DefaultNeutral,
	ConfidencePenalty: 25,
	Explanation:       "no fallback policy for component; assuming neutral value",
}

// MissingStrategyFor exposes the configured strategy for a component id.
func MissingStrategyFor(componentID string) schema.MissingDataStrategy {
	if rule, ok := missingDataRules[componentID]; ok {
		return rule.Strategy
	}
	return defaultMissingRule.Strategy
}

// HandleMissingData is the single entry point of the missing-data handler.
// When hasData is true it reports full confidence and no strategy. Otherwise
// it applies the configured fallback. estimate may be nil; it is consulted
// only by the estimate_from_peers strategy.
func HandleMissingData(componentID string, hasData bool, estimate *PeerEstimate) MissingDataResult {
	if hasData {
		return MissingDataResult{
			ComponentID: componentID,
			Confidence:  100,
			Explanation: "data present",
		}
	}

	rule, ok := missingDataRules[componentID]
	if !ok {
		rule = defaultMissingRule
	}

	res := MissingDataResult{
		ComponentID: componentID,
		Strategy:    rule.Strategy,
		Confidence:  algo.Clamp(100-rule.ConfidencePenalty, 0, 100),
		Explanation: rule.Explanation,
	}

	switch rule.Strategy {
	case schema.DefaultNeutral:
		res.Score = neutralComponentScore
	case schema.DefaultConservative:
		res.Score = conservativeComponentScore
	case schema.DefaultOptimistic:
		res.Score = optimisticComponentScore
	case schema.SkipComponent:
		res.Skipped = true
	case schema.RequireData:
		// Required data never hard-stops scoring; the component scores
		// neutral at zero confidence and the orchestrator warns.
		res.Score = neutralComponentScore
		res.Confidence = 0
		res.IsRequired = true
	case schema.EstimateFromPeers:
		if estimate != nil && estimate.Confidence >= minPeerConfidence {
			res.Score = algo.ScoreFromNormalized(estimate.Value, schema.MaxComponentScore)
			res.Confidence = algo.Clamp(estimate.Confidence, 0, 100)
			res.Explanation = fmt.Sprintf("estimated from %d peer properties across %d cohorts", estimate.PeerCount, estimate.CohortsUsed)
		} else {
			res.Strategy = schema.DefaultNeutral
			res.Score = neutralComponentScore
			res.Explanation = "peer estimate unavailable or low confidence; assuming neutral value"
		}
	default:
		res.Score = neutralComponentScore
	}

	return res
}
