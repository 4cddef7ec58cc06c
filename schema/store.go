package schema

import "time"

// PeerProperty is a row read from the property store for peer estimation.
// It carries only the fields peer cohorts aggregate over.
type PeerProperty struct {
	ID            string   `json:"id"`
	County        string   `json:"county,omitempty"`
	SaleType      string   `json:"sale_type,omitempty"`
	AssessedValue *float64 `json:"assessed_value,omitempty"`
	MarketValue   *float64 `json:"market_value,omitempty"`
	LotSizeSqft   *float64 `json:"lot_size_sqft,omitempty"`
	BuildingSqft  *float64 `json:"building_sqft,omitempty"`
	AmountDue     *float64 `json:"amount_due,omitempty"`
}

// PredictionRecord is an operator-recorded historical prediction used by
// calibration analytics. ActualOutcome is the realized score on the same
// 0-125 scale; ActualROI is the realized return on investment as a fraction.
type PredictionRecord struct {
	PropertyID     string    `json:"property_id"`
	PredictedScore float64   `json:"predicted_score"`
	ActualOutcome  float64   `json:"actual_outcome"`
	ActualROI      float64   `json:"actual_roi"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// CalibrationStats summarizes prediction accuracy over a historical sample.
type CalibrationStats struct {
	SampleSize          int     `json:"sample_size"`
	PearsonCorrelation  float64 `json:"pearson_correlation"` // Predicted score vs actual ROI
	RMSE                float64 `json:"rmse"`                // Predicted vs actual outcome
	MAE                 float64 `json:"mae"`
	AccuracyWithinTol   float64 `json:"accuracy_within_tolerance"` // Percent within tolerance band
	ProfitableAccuracy  float64 `json:"profitable_accuracy"`       // Percent of correct profit calls
}

// StoreStatus reports property store health and row counts.
type StoreStatus struct {
	Backend          StoreBackend `json:"backend"`
	Connected        bool         `json:"connected"`
	TotalProperties  int64        `json:"total_properties"`
	TotalPredictions int64        `json:"total_predictions"`
	LastRecordedAt   time.Time    `json:"last_recorded_at"`
}
