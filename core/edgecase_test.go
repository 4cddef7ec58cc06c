package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdeedflow/deedscore/schema"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrB(v bool) *bool       { return &v }

// TestDetectEdgeCasesClean verifies a normal property yields no detections.
func TestDetectEdgeCasesClean(t *testing.T) {
	p := &schema.PropertyData{
		ID:            "PA-001",
		LandUse:       "residential",
		YearBuilt:     ptrI(1995),
		AssessedValue: ptrF(85000),
		LotSizeSqft:   ptrF(9000),
	}
	res := DetectEdgeCases(p, nil, schema.DefaultEdgeCaseConfig())

	assert.False(t, res.IsEdgeCase)
	assert.Equal(t, schema.StandardHandling, res.Handling)
	assert.Equal(t, schema.LowSeverity, res.CombinedSeverity)
	assert.Empty(t, res.Detections)
}

// TestDetectEdgeCasesNilProperty verifies the nil guard.
func TestDetectEdgeCasesNilProperty(t *testing.T) {
	res := DetectEdgeCases(nil, nil, schema.DefaultEdgeCaseConfig())
	assert.False(t, res.IsEdgeCase)
	assert.Equal(t, schema.StandardHandling, res.Handling)
}

// TestDetectEdgeCasesAutoReject tests cemetery and utility short-circuits.
func TestDetectEdgeCasesAutoReject(t *testing.T) {
	tests := []struct {
		name     string
		property schema.PropertyData
		caseType schema.EdgeCaseType
	}{
		{"cemetery land use", schema.PropertyData{LandUse: "Cemetery"}, schema.Cemetery},
		{"graveyard in zoning", schema.PropertyData{Zoning: "graveyard parcel"}, schema.Cemetery},
		{"utility owner", schema.PropertyData{OwnerName: "Lakeview Water Authority"}, schema.UtilityProperty},
		{"substation land use", schema.PropertyData{LandUse: "electric substation"}, schema.UtilityProperty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DetectEdgeCases(&tt.property, nil, schema.DefaultEdgeCaseConfig())

			assert.True(t, res.IsEdgeCase)
			assert.Equal(t, schema.AutoReject, res.Handling)
			assert.Equal(t, schema.HighSeverity, res.CombinedSeverity)
			assert.Equal(t, []schema.EdgeCaseType{tt.caseType}, res.EdgeCaseTypes)
			assert.NotEmpty(t, res.RejectReason)
		})
	}
}

// TestDetectEdgeCasesAutoRejectShortCircuits ensures no other detections run
// once an auto-reject predicate fires.
func TestDetectEdgeCasesAutoRejectShortCircuits(t *testing.T) {
	// Cemetery property that is also very old, tiny, and cheap.
	p := &schema.PropertyData{
		LandUse:       "cemetery",
		YearBuilt:     ptrI(1885),
		AssessedValue: ptrF(500),
		LotSizeSqft:   ptrF(800),
	}
	res := DetectEdgeCases(p, nil, schema.DefaultEdgeCaseConfig())

	require.Len(t, res.Detections, 1)
	assert.Equal(t, schema.Cemetery, res.Detections[0].Type)
}

// TestDetectVeryOldProperty tests the cutoff year predicate.
func TestDetectVeryOldProperty(t *testing.T) {
	cfg := schema.DefaultEdgeCaseConfig()

	d := DetectVeryOldProperty(&schema.PropertyData{YearBuilt: ptrI(1885)}, cfg)
	assert.True(t, d.Detected)
	assert.Equal(t, 1885, d.YearBuilt)
	assert.Greater(t, d.Age, 100)

	// At the cutoff is not old
	d = DetectVeryOldProperty(&schema.PropertyData{YearBuilt: ptrI(1920)}, cfg)
	assert.False(t, d.Detected)

	// Missing year detects nothing
	d = DetectVeryOldProperty(&schema.PropertyData{}, cfg)
	assert.False(t, d.Detected)

	// Zero config falls back to the default cutoff
	d = DetectVeryOldProperty(&schema.PropertyData{YearBuilt: ptrI(1910)}, schema.EdgeCaseConfig{})
	assert.True(t, d.Detected)
}

// TestDetectEdgeCasesSliverLot verifies sliver lots always reject as
// unbuildable regardless of other matches.
func TestDetectEdgeCasesSliverLot(t *testing.T) {
	p := &schema.PropertyData{
		LotWidthFt:    ptrF(12),
		LotSizeSqft:   ptrF(900), // also a very small lot
		AssessedValue: ptrF(40000),
	}
	res := DetectEdgeCases(p, nil, schema.DefaultEdgeCaseConfig())

	assert.True(t, res.IsEdgeCase)
	assert.Equal(t, schema.RejectUnbuildable, res.Handling)
	assert.Contains(t, res.EdgeCaseTypes, schema.SliverLot)
	assert.Contains(t, res.EdgeCaseTypes, schema.VerySmallLot)
	assert.Equal(t, "lot too narrow to build on", res.RejectReason)
}

// TestDetectEdgeCasesValueThresholds tests high and extremely low value.
func TestDetectEdgeCasesValueThresholds(t *testing.T) {
	cfg := schema.DefaultEdgeCaseConfig()

	high := DetectEdgeCases(&schema.PropertyData{AssessedValue: ptrF(600000)}, nil, cfg)
	assert.Contains(t, high.EdgeCaseTypes, schema.HighValue)
	assert.Equal(t, schema.ManualReview, high.Handling)

	// Market value substitutes when assessed value is absent
	highMkt := DetectEdgeCases(&schema.PropertyData{MarketValue: ptrF(750000)}, nil, cfg)
	assert.Contains(t, highMkt.EdgeCaseTypes, schema.HighValue)

	low := DetectEdgeCases(&schema.PropertyData{AssessedValue: ptrF(400)}, nil, cfg)
	assert.Contains(t, low.EdgeCaseTypes, schema.ExtremelyLowValue)

	// Zero assessed value is treated as missing, not extremely low
	zero := DetectEdgeCases(&schema.PropertyData{AssessedValue: ptrF(0)}, nil, cfg)
	assert.NotContains(t, zero.EdgeCaseTypes, schema.ExtremelyLowValue)
}

// TestDetectEdgeCasesAccess tests landlocked and no-road-access detection.
func TestDetectEdgeCasesAccess(t *testing.T) {
	ext := &schema.ExternalData{
		Access: &schema.AccessData{Landlocked: ptrB(true), RoadAccessType: "none"},
	}
	res := DetectEdgeCases(&schema.PropertyData{ID: "X"}, ext, schema.DefaultEdgeCaseConfig())

	assert.Contains(t, res.EdgeCaseTypes, schema.Landlocked)
	assert.Contains(t, res.EdgeCaseTypes, schema.NoRoadAccess)
	// Two medium detections escalate to high
	assert.Equal(t, schema.HighSeverity, res.CombinedSeverity)
	assert.Equal(t, schema.ManualReview, res.Handling)
}

// TestDetectEdgeCasesEnvironmental tests contamination and wetlands.
func TestDetectEdgeCasesEnvironmental(t *testing.T) {
	superfund := &schema.ExternalData{
		Environmental: &schema.EnvironmentalData{SuperfundWithinMile: ptrB(true)},
	}
	res := DetectEdgeCases(&schema.PropertyData{ID: "X"}, superfund, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, res.EdgeCaseTypes, schema.Contamination)
	assert.Equal(t, schema.EnvironmentalRequired, res.Handling)
	assert.Equal(t, schema.HighSeverity, res.CombinedSeverity)

	wet := &schema.ExternalData{
		Environmental: &schema.EnvironmentalData{Wetlands: ptrB(true)},
	}
	res = DetectEdgeCases(&schema.PropertyData{ID: "X"}, wet, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, res.EdgeCaseTypes, schema.Wetlands)

	// Coastal high-hazard flood zones read as wetland coverage
	vzone := &schema.ExternalData{Flood: &schema.FloodData{Zone: "VE"}}
	res = DetectEdgeCases(&schema.PropertyData{ID: "X"}, vzone, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, res.EdgeCaseTypes, schema.Wetlands)
}

// TestDetectEdgeCasesMarket tests competition and declining market predicates.
func TestDetectEdgeCasesMarket(t *testing.T) {
	hot := &schema.ExternalData{
		Market: &schema.MarketData{DaysOnMarket: ptrF(12)},
	}
	res := DetectEdgeCases(&schema.PropertyData{ID: "X"}, hot, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, res.EdgeCaseTypes, schema.HighCompetition)
	assert.Equal(t, schema.EnhancedMarketAnalysis, res.Handling)
	assert.Equal(t, schema.LowSeverity, res.CombinedSeverity)

	declining := &schema.ExternalData{
		Market: &schema.MarketData{PriceChangeYoY: ptrF(-8.5)},
	}
	res = DetectEdgeCases(&schema.PropertyData{ID: "X"}, declining, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, res.EdgeCaseTypes, schema.DecliningMarket)
	assert.Equal(t, schema.MediumSeverity, res.CombinedSeverity)
}

// TestDetectEdgeCasesNoStructure tests the vacant and zero-footprint paths.
func TestDetectEdgeCasesNoStructure(t *testing.T) {
	byFootprint := DetectEdgeCases(&schema.PropertyData{BuildingSqft: ptrF(0)}, nil, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, byFootprint.EdgeCaseTypes, schema.NoStructure)
	assert.Equal(t, schema.LowSeverity, byFootprint.CombinedSeverity)

	byLandUse := DetectEdgeCases(&schema.PropertyData{LandUse: "Vacant Residential"}, nil, schema.DefaultEdgeCaseConfig())
	assert.Contains(t, byLandUse.EdgeCaseTypes, schema.NoStructure)
}

// TestDetectEdgeCasesSeverityEscalation tests the combined-severity ladder.
func TestDetectEdgeCasesSeverityEscalation(t *testing.T) {
	cfg := schema.DefaultEdgeCaseConfig()

	// One medium detection stays medium
	one := DetectEdgeCases(&schema.PropertyData{YearBuilt: ptrI(1900)}, nil, cfg)
	assert.Equal(t, schema.MediumSeverity, one.CombinedSeverity)

	// Two mediums escalate to high
	two := DetectEdgeCases(&schema.PropertyData{YearBuilt: ptrI(1900), AssessedValue: ptrF(900)}, nil, cfg)
	assert.Equal(t, schema.HighSeverity, two.CombinedSeverity)
}

// TestStrongestHandling tests the priority resolution across strategies.
func TestStrongestHandling(t *testing.T) {
	defs := []edgeCaseDef{
		{Handling: schema.EnhancedMarketAnalysis},
		{Handling: schema.EnvironmentalRequired},
		{Handling: schema.ManualReview},
	}
	assert.Equal(t, schema.EnvironmentalRequired, strongestHandling(defs))

	assert.Equal(t, schema.StandardHandling, strongestHandling(nil))
}
