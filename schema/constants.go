package schema

// Custom string types for type safety.
type (
	// CategoryID identifies one of the five scoring categories.
	CategoryID string

	// MissingDataStrategy is the policy applied when a component input is absent.
	MissingDataStrategy string

	// EdgeCaseType identifies a property characteristic requiring special handling.
	EdgeCaseType string

	// Severity grades an edge case or a combination of edge cases.
	Severity string

	// HandlingStrategy is the resolved course of action for a property's edge cases.
	HandlingStrategy string

	// PropertyType is the detected classification of a property.
	PropertyType string

	// MarketCondition describes the local market used for calibration.
	MarketCondition string

	// ConfidenceLabel is the human-readable band for a confidence score.
	ConfidenceLabel string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for the property store.
	StoreBackend string
)

// Scoring categories. Each is worth 25 points of the 125 total.
const (
	LocationCategory  CategoryID = "location"
	RiskCategory      CategoryID = "risk"
	FinancialCategory CategoryID = "financial"
	MarketCategory    CategoryID = "market"
	ProfitCategory    CategoryID = "profit"
)

// AllCategories lists the categories in presentation order.
var AllCategories = []CategoryID{
	LocationCategory, RiskCategory, FinancialCategory, MarketCategory, ProfitCategory,
}

// Missing-data strategies.
const (
	DefaultNeutral      MissingDataStrategy = "default_neutral"      // 2.5 of 5
	DefaultConservative MissingDataStrategy = "default_conservative" // 1.5 of 5
	DefaultOptimistic   MissingDataStrategy = "default_optimistic"   // 3.5 of 5
	SkipComponent       MissingDataStrategy = "skip_component"       // Excluded; category rescaled
	RequireData         MissingDataStrategy = "require_data"         // Confidence 0, flagged required
	EstimateFromPeers   MissingDataStrategy = "estimate_from_peers"  // Peer cohorts, neutral fallback
)

// Edge case types.
const (
	VeryOldProperty    EdgeCaseType = "very_old_property"
	NoStructure        EdgeCaseType = "no_structure"
	HighValue          EdgeCaseType = "high_value"
	ExtremelyLowValue  EdgeCaseType = "extremely_low_value"
	Landlocked         EdgeCaseType = "landlocked"
	NoRoadAccess       EdgeCaseType = "no_road_access"
	TitleCloud         EdgeCaseType = "title_cloud"
	IRSLien            EdgeCaseType = "irs_lien"
	HOASuperLien       EdgeCaseType = "hoa_super_lien"
	Contamination      EdgeCaseType = "contamination"
	Wetlands           EdgeCaseType = "wetlands"
	HighCompetition    EdgeCaseType = "high_competition"
	DecliningMarket    EdgeCaseType = "declining_market"
	VerySmallLot       EdgeCaseType = "very_small_lot"
	SliverLot          EdgeCaseType = "sliver_lot"
	Cemetery           EdgeCaseType = "cemetery"
	UtilityProperty    EdgeCaseType = "utility_property"
)

// Severity levels.
const (
	LowSeverity    Severity = "low"
	MediumSeverity Severity = "medium"
	HighSeverity   Severity = "high"
)

// Handling strategies, strongest first. HandlingPriority below is the
// authoritative total order used for conflict resolution.
const (
	AutoReject             HandlingStrategy = "auto_reject"
	RejectUnbuildable      HandlingStrategy = "reject_unbuildable"
	EnvironmentalRequired  HandlingStrategy = "environmental_assessment_required"
	TitleResearchRequired  HandlingStrategy = "title_research_required"
	LienAnalysisRequired   HandlingStrategy = "lien_analysis_required"
	ManualReview           HandlingStrategy = "manual_review"
	SpecializedAnalysis    HandlingStrategy = "specialized_analysis"
	EnhancedMarketAnalysis HandlingStrategy = "enhanced_market_analysis"
	StandardHandling       HandlingStrategy = "standard"
)

// HandlingPriority orders handling strategies from strongest to weakest.
// When a property matches several edge cases, the strongest strategy wins.
var HandlingPriority = []HandlingStrategy{
	AutoReject,
	RejectUnbuildable,
	EnvironmentalRequired,
	TitleResearchRequired,
	LienAnalysisRequired,
	ManualReview,
	SpecializedAnalysis,
	EnhancedMarketAnalysis,
	StandardHandling,
}

// Property types.
const (
	SingleFamily PropertyType = "single_family"
	MultiFamily  PropertyType = "multi_family"
	Commercial   PropertyType = "commercial"
	Industrial   PropertyType = "industrial"
	VacantLand   PropertyType = "vacant_land"
	Agricultural PropertyType = "agricultural"
	MobileHome   PropertyType = "mobile_home"
	MixedUse     PropertyType = "mixed_use"
	UnknownType  PropertyType = "unknown"
)

// Market conditions recognized by calibration.
const (
	HotMarket        MarketCondition = "hot"
	StableMarket     MarketCondition = "stable"
	CoolingMarket    MarketCondition = "cooling"
	DecliningMkt     MarketCondition = "declining"
	DistressedMarket MarketCondition = "distressed"
)

// Confidence labels.
const (
	VeryHighConfidence ConfidenceLabel = "Very High"
	HighConfidence     ConfidenceLabel = "High"
	ModerateConfidence ConfidenceLabel = "Moderate"
	LowConfidence      ConfidenceLabel = "Low"
	VeryLowConfidence  ConfidenceLabel = "Very Low"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidPropertyTypes lists all property types the scoring model recognizes.
var ValidPropertyTypes = map[PropertyType]struct{}{
	SingleFamily: {},
	MultiFamily:  {},
	Commercial:   {},
	Industrial:   {},
	VacantLand:   {},
	Agricultural: {},
	MobileHome:   {},
	MixedUse:     {},
}

// ValidMarketConditions lists all market conditions calibration understands.
var ValidMarketConditions = map[MarketCondition]struct{}{
	HotMarket:        {},
	StableMarket:     {},
	CoolingMarket:    {},
	DecliningMkt:     {},
	DistressedMarket: {},
}

// Score scale constants.
const (
	MaxComponentScore = 5.0   // Each component is worth 0-5
	MaxCategoryScore  = 25.0  // Each category sums 5 components
	MaxTotalScore     = 125.0 // Five categories
	ComponentsPerCategory = 5
)
