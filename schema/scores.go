package schema

import "time"

// ComponentScore is one atomic measurement within a category, worth 0-5 points.
type ComponentScore struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Score           float64 `json:"score"`            // 0-5
	MaxScore        float64 `json:"max_score"`        // Always 5
	RawValue        *float64 `json:"raw_value,omitempty"`
	NormalizedValue float64 `json:"normalized_value"` // 0-100
	Confidence      float64 `json:"confidence"`       // 0-100
	DataSource      string  `json:"data_source"`

	// Populated only when the raw value was absent.
	MissingDataStrategy MissingDataStrategy `json:"missing_data_strategy,omitempty"`
	IsRequired          bool                `json:"is_required,omitempty"`
	Skipped             bool                `json:"skipped,omitempty"`
	Note                string              `json:"note,omitempty"`
}

// ScoreAdjustment is an audit record for any post-aggregation delta applied
// to a category or total score.
type ScoreAdjustment struct {
	Type      string  `json:"type"`
	Factor    float64 `json:"factor"` // Additive delta in points
	Reason    string  `json:"reason"`
	AppliedTo string  `json:"applied_to"` // Category id or "total"
}

// CategoryScore is one of the five top-level scoring dimensions, worth 0-25.
type CategoryScore struct {
	ID               CategoryID       `json:"id"`
	Name             string           `json:"name"`
	Score            float64          `json:"score"`     // 0-25
	MaxScore         float64          `json:"max_score"` // Always 25
	Confidence       float64          `json:"confidence"`
	DataCompleteness float64          `json:"data_completeness"`
	Components       []ComponentScore `json:"components"`
	Notes            []string         `json:"notes,omitempty"`
	Adjustments      []ScoreAdjustment `json:"adjustments,omitempty"`

	// Placeholder marks a category that is not yet implemented and returns a
	// fixed neutral value. Callers must never mistake it for a measurement.
	Placeholder bool `json:"placeholder,omitempty"`
}

// CalibrationAdjustment is an audit record for one multiplicative factor
// applied during score calibration.
type CalibrationAdjustment struct {
	Type      string     `json:"type"` // "property_type", "market_condition", "custom"
	Factor    float64    `json:"factor"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ScoreValidationResult reports the outcome of bounding and calibrating a raw score.
type ScoreValidationResult struct {
	OriginalScore         float64                 `json:"original_score"`
	CalibratedScore       float64                 `json:"calibrated_score"`
	AdjustmentsApplied    []CalibrationAdjustment `json:"adjustments_applied"`
	Warnings              []string                `json:"warnings,omitempty"`
	CalibrationConfidence float64                 `json:"calibration_confidence"`
}

// ConfidenceFactor is one weighted signal feeding the overall confidence score.
type ConfidenceFactor struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // Fraction of the overall blend
	Impact float64 `json:"impact"` // Signed contribution before weighting
	Status string  `json:"status"` // "positive", "negative", "neutral"
	Detail string  `json:"detail,omitempty"`
}

// ConfidenceResult is the 0-100 meta-score describing how trustworthy the
// numeric score is, independent of the score's magnitude.
type ConfidenceResult struct {
	Overall         float64            `json:"overall"` // 0-100
	Label           ConfidenceLabel    `json:"label"`
	Factors         []ConfidenceFactor `json:"factors"`
	Recommendations []string           `json:"recommendations,omitempty"`
}

// GradeResult maps a total score onto a letter grade with modifier.
type GradeResult struct {
	Letter     string  `json:"letter"`   // "A" through "F"
	Modifier   string  `json:"modifier"` // "+", "-" or empty
	Grade      string  `json:"grade"`    // Letter plus modifier, e.g. "B+"
	Percentage float64 `json:"percentage"`
}

// EdgeCaseDetection records a single predicate that fired.
type EdgeCaseDetection struct {
	Type     EdgeCaseType `json:"type"`
	Severity Severity     `json:"severity"`
	Reason   string       `json:"reason"`
}

// EdgeCaseResult classifies a property against the edge case catalog and
// resolves all matches to one handling strategy.
type EdgeCaseResult struct {
	IsEdgeCase       bool                `json:"is_edge_case"`
	EdgeCaseTypes    []EdgeCaseType      `json:"edge_case_types,omitempty"`
	Detections       []EdgeCaseDetection `json:"detections,omitempty"`
	Handling         HandlingStrategy    `json:"handling"`
	CombinedSeverity Severity            `json:"combined_severity"`
	Warnings         []string            `json:"warnings,omitempty"`
	Recommendations  []string            `json:"recommendations,omitempty"`
	RejectReason     string              `json:"reject_reason,omitempty"`
}

// PropertyScoreResult is the immutable output of a scoring run.
type PropertyScoreResult struct {
	PropertyID string  `json:"property_id"`
	TotalScore float64 `json:"total_score"` // 0-125
	Grade      GradeResult `json:"grade"`

	Location  CategoryScore `json:"location"`
	Risk      CategoryScore `json:"risk"`
	Financial CategoryScore `json:"financial"`
	Market    CategoryScore `json:"market"`
	Profit    CategoryScore `json:"profit"`

	PropertyType      PropertyType          `json:"property_type"`
	RegionAdjustments []ScoreAdjustment     `json:"region_adjustments,omitempty"`
	Calibration       ScoreValidationResult `json:"calibration"`
	ConfidenceLevel   ConfidenceResult      `json:"confidence_level"`
	EdgeCases         EdgeCaseResult        `json:"edge_cases"`
	Warnings          []string              `json:"warnings,omitempty"`

	ScoringVersion string    `json:"scoring_version"`
	CalculatedAt   time.Time `json:"calculated_at"`
}

// Categories returns the five category scores in presentation order.
func (r *PropertyScoreResult) Categories() []CategoryScore {
	return []CategoryScore{r.Location, r.Risk, r.Financial, r.Market, r.Profit}
}

// CategoryByID returns the named category score.
func (r *PropertyScoreResult) CategoryByID(id CategoryID) CategoryScore {
	switch id {
	case LocationCategory:
		return r.Location
	case RiskCategory:
		return r.Risk
	case FinancialCategory:
		return r.Financial
	case MarketCategory:
		return r.Market
	default:
		return r.Profit
	}
}

// CategoryDelta is the per-category difference between two scored properties.
type CategoryDelta struct {
	Category CategoryID `json:"category"`
	Delta    float64    `json:"delta"`  // B minus A
	Winner   string     `json:"winner"` // Property id of the higher score, or "tie"
}

// ScoreComparison summarizes two already-computed results.
type ScoreComparison struct {
	PropertyA  string          `json:"property_a"`
	PropertyB  string          `json:"property_b"`
	ScoreDelta float64         `json:"score_delta"` // B minus A
	Winner     string          `json:"winner"`      // Overall winner id, or "tie"
	Categories []CategoryDelta `json:"categories"`
	Summary    string          `json:"summary"`
}
