package schema

// Default edge-case thresholds.
//
// Two of these defaults are contested in the county playbooks: the very-old
// cutoff appears as both 1900 and 1920, and the high-value threshold as both
// $50,000 and $500,000. Until product settles the discrepancy we default to
// the values below and keep both overridable via config.
const (
	DefaultVeryOldPropertyYear        = 1920
	DefaultHighValueThreshold         = 500000.0
	DefaultExtremelyLowValueThreshold = 1000.0
	DefaultVerySmallLotSqft           = 2000.0
	DefaultSliverLotMinWidthFt        = 20.0
	DefaultDecliningMarketThreshold   = -5.0 // Percent YoY price change
	DefaultHighCompetitionDOM         = 25.0 // Days on market at or below this is a hot market
	DefaultHighCompetitionAbsorption  = 2.0  // Months of inventory at or below this is a hot market
)

// EdgeCaseConfig holds the tunable thresholds for the edge case detector.
type EdgeCaseConfig struct {
	VeryOldPropertyYear        int     `json:"very_old_property_year" mapstructure:"very-old-property-year"`
	HighValueThreshold         float64 `json:"high_value_threshold" mapstructure:"high-value-threshold"`
	ExtremelyLowValueThreshold float64 `json:"extremely_low_value_threshold" mapstructure:"extremely-low-value-threshold"`
	VerySmallLotSqft           float64 `json:"very_small_lot_sqft" mapstructure:"very-small-lot-sqft"`
	SliverLotMinWidthFt        float64 `json:"sliver_lot_min_width_ft" mapstructure:"sliver-lot-min-width"`
	DecliningMarketThreshold   float64 `json:"declining_market_threshold" mapstructure:"declining-market-threshold"`
	HighCompetitionDOM         float64 `json:"high_competition_dom" mapstructure:"high-competition-dom"`
	HighCompetitionAbsorption  float64 `json:"high_competition_absorption" mapstructure:"high-competition-absorption"`
}

// DefaultEdgeCaseConfig returns the documented defaults.
func DefaultEdgeCaseConfig() EdgeCaseConfig {
	return EdgeCaseConfig{
		VeryOldPropertyYear:        DefaultVeryOldPropertyYear,
		HighValueThreshold:         DefaultHighValueThreshold,
		ExtremelyLowValueThreshold: DefaultExtremelyLowValueThreshold,
		VerySmallLotSqft:           DefaultVerySmallLotSqft,
		SliverLotMinWidthFt:        DefaultSliverLotMinWidthFt,
		DecliningMarketThreshold:   DefaultDecliningMarketThreshold,
		HighCompetitionDOM:         DefaultHighCompetitionDOM,
		HighCompetitionAbsorption:  DefaultHighCompetitionAbsorption,
	}
}

// CalculationOptions controls which optional pipeline stages run.
type CalculationOptions struct {
	SkipEdgeCases           bool            `json:"skip_edge_cases"`
	SkipRegionalAdjustments bool            `json:"skip_regional_adjustments"`
	SkipCalibration         bool            `json:"skip_calibration"`
	MarketCondition         MarketCondition `json:"market_condition,omitempty"`
	IncludeFallbackLog      bool            `json:"include_fallback_log"`

	// CustomAdjustments are caller-supplied multiplicative factors, applied
	// during calibration unless expired.
	CustomAdjustments []CalibrationAdjustment `json:"custom_adjustments,omitempty"`
}
