package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdeedflow/deedscore/schema"
)

// TestBuildCategoryFullSet tests aggregation with every component scored.
func TestBuildCategoryFullSet(t *testing.T) {
	comps := []schema.ComponentScore{
		{ID: "a", Score: 4, Confidence: 100},
		{ID: "b", Score: 3, Confidence: 100},
		{ID: "c", Score: 5, Confidence: 100},
		{ID: "d", Score: 2, Confidence: 100},
		{ID: "e", Score: 4.5, Confidence: 100},
	}
	cat := buildCategory(schema.LocationCategory, "Location", comps)

	assert.InDelta(t, 18.5, cat.Score, 0.001)
	assert.Equal(t, 100.0, cat.Confidence)
	assert.Equal(t, 100.0, cat.DataCompleteness)
	assert.Empty(t, cat.Notes)
}

// TestBuildCategoryRescalesSkipped tests the rescale when components skip.
func TestBuildCategoryRescalesSkipped(t *testing.T) {
	comps := []schema.ComponentScore{
		{ID: "a", Score: 4, Confidence: 100},
		{ID: "b", Score: 4, Confidence: 100},
		{ID: "c", Score: 4, Confidence: 100},
		{ID: "d", Skipped: true, Confidence: 85, MissingDataStrategy: schema.SkipComponent},
		{ID: "e", Skipped: true, Confidence: 85, MissingDataStrategy: schema.SkipComponent},
	}
	cat := buildCategory(schema.RiskCategory, "Risk", comps)

	// Mean of the three scored components times five
	assert.InDelta(t, 20.0, cat.Score, 0.001)
	require.Len(t, cat.Notes, 1)
	assert.Contains(t, cat.Notes[0], "rescaled")
}

// TestBuildCategoryAllSkipped tests the neutral fallback.
func TestBuildCategoryAllSkipped(t *testing.T) {
	comps := []schema.ComponentScore{
		{ID: "a", Skipped: true, MissingDataStrategy: schema.SkipComponent},
		{ID: "b", Skipped: true, MissingDataStrategy: schema.SkipComponent},
	}
	cat := buildCategory(schema.FinancialCategory, "Financial", comps)

	assert.InDelta(t, 12.5, cat.Score, 0.001)
	require.Len(t, cat.Notes, 1)
	assert.Contains(t, cat.Notes[0], "neutral category score")
}

// TestApplyCategoryAdjustment tests delta application and flooring.
func TestApplyCategoryAdjustment(t *testing.T) {
	cat := schema.CategoryScore{ID: schema.LocationCategory, Score: 10, MaxScore: schema.MaxCategoryScore}

	applyCategoryAdjustment(&cat, "access_penalty", -2, "landlocked")
	assert.Equal(t, 8.0, cat.Score)
	require.Len(t, cat.Adjustments, 1)
	assert.Equal(t, -2.0, cat.Adjustments[0].Factor)

	applyCategoryAdjustment(&cat, "access_penalty", -20, "stacked")
	assert.Equal(t, 0.0, cat.Score)

	applyCategoryAdjustment(&cat, "boost", 99, "over the top")
	assert.Equal(t, schema.MaxCategoryScore, cat.Score)
}

// TestScoreLocationPenalties tests the landlocked and private-road penalties.
func TestScoreLocationPenalties(t *testing.T) {
	ctx := context.Background()
	p := &schema.PropertyData{ID: "X"}

	plain := ScoreLocation(ctx, p, nil, nil)
	assert.Empty(t, plain.Adjustments)

	landlocked := ScoreLocation(ctx, p, &schema.ExternalData{
		Access: &schema.AccessData{Landlocked: ptrB(true), RoadAccessType: "private"},
	}, nil)
	require.Len(t, landlocked.Adjustments, 1)
	assert.Equal(t, -2.0, landlocked.Adjustments[0].Factor)
	assert.InDelta(t, plain.Score-2, landlocked.Score, 0.5)

	private := ScoreLocation(ctx, p, &schema.ExternalData{
		Access: &schema.AccessData{RoadAccessType: "private"},
	}, nil)
	require.Len(t, private.Adjustments, 1)
	assert.Equal(t, -1.0, private.Adjustments[0].Factor)
}

// TestScoreRiskFloodZones tests the FEMA zone table.
func TestScoreRiskFloodZones(t *testing.T) {
	ctx := context.Background()
	p := &schema.PropertyData{ID: "X"}

	scoreFor := func(ext *schema.ExternalData) float64 {
		cat := ScoreRisk(ctx, p, ext, nil)
		for _, c := range cat.Components {
			if c.ID == "flood_zone" {
				return c.Score
			}
		}
		t.Fatal("flood_zone component not found")
		return 0
	}

	safe := scoreFor(&schema.ExternalData{Flood: &schema.FloodData{Zone: "X"}})
	hazard := scoreFor(&schema.ExternalData{Flood: &schema.FloodData{Zone: "VE"}})
	assert.Greater(t, safe, hazard)
	assert.InDelta(t, 4.75, safe, 0.001)
	assert.InDelta(t, 0.25, hazard, 0.001)

	// The floodplain flag carries the component when the zone is unlisted
	inPlain := scoreFor(&schema.ExternalData{Flood: &schema.FloodData{Zone: "Z9", InFloodplain: ptrB(true)}})
	assert.InDelta(t, 0.75, inPlain, 0.001)
}

// TestScoreRiskStructureAge tests the year-built normalization.
func TestScoreRiskStructureAge(t *testing.T) {
	ctx := context.Background()

	cat := ScoreRisk(ctx, &schema.PropertyData{YearBuilt: ptrI(2020)}, nil, nil)
	var found bool
	for _, c := range cat.Components {
		if c.ID == "structure_age_risk" {
			found = true
			assert.InDelta(t, 5.0, c.Score, 0.001)
			assert.Equal(t, 100.0, c.Confidence)
		}
	}
	require.True(t, found)
}

// TestScoreFinancialRatios tests ratio extraction from county fields.
func TestScoreFinancialRatios(t *testing.T) {
	ctx := context.Background()
	p := &schema.PropertyData{
		AssessedValue: ptrF(100000),
		MarketValue:   ptrF(150000),
		AmountDue:     ptrF(5000),
	}

	cat := ScoreFinancial(ctx, p, nil, nil)
	byID := make(map[string]schema.ComponentScore)
	for _, c := range cat.Components {
		byID[c.ID] = c
	}

	// 1.5 ratio on the 0.5-2.0 scale normalizes to two thirds
	ratio := byID["assessed_market_ratio"]
	require.NotNil(t, ratio.RawValue)
	assert.InDelta(t, 1.5, *ratio.RawValue, 0.001)
	assert.InDelta(t, 66.67, ratio.NormalizedValue, 0.01)

	// 5% burden on the inverted 0-0.5 scale scores near the top
	burden := byID["amount_due_ratio"]
	require.NotNil(t, burden.RawValue)
	assert.InDelta(t, 0.05, *burden.RawValue, 0.001)
	assert.InDelta(t, 4.5, burden.Score, 0.001)
}

// TestMedianCompPrice tests the comparable median helpers.
func TestMedianCompPrice(t *testing.T) {
	comps := []schema.ComparableSale{
		{SalePrice: 100000},
		{SalePrice: 300000},
		{SalePrice: 200000},
	}
	v, ok := medianCompPrice(comps)
	assert.True(t, ok)
	assert.Equal(t, 200000.0, v)

	even := append(comps, schema.ComparableSale{SalePrice: 400000})
	v, ok = medianCompPrice(even)
	assert.True(t, ok)
	assert.Equal(t, 250000.0, v)

	_, ok = medianCompPrice(nil)
	assert.False(t, ok)
	_, ok = medianCompPrice([]schema.ComparableSale{{SalePrice: 0}})
	assert.False(t, ok)
}

// TestMedianCompPricePerSqft tests the per-square-foot median.
func TestMedianCompPricePerSqft(t *testing.T) {
	comps := []schema.ComparableSale{
		{SalePrice: 100000, BuildingSqft: ptrF(1000)}, // 100
		{SalePrice: 300000, BuildingSqft: ptrF(1500)}, // 200
		{SalePrice: 150000},                           // no sqft, excluded
	}
	v, ok := medianCompPricePerSqft(comps)
	assert.True(t, ok)
	assert.Equal(t, 150.0, v)

	_, ok = medianCompPricePerSqft([]schema.ComparableSale{{SalePrice: 150000}})
	assert.False(t, ok)
}

// TestScoreComponentMissing tests the component-level fallback wiring.
func TestScoreComponentMissing(t *testing.T) {
	cat := ScoreLocation(context.Background(), &schema.PropertyData{ID: "X"}, nil, nil)

	byID := make(map[string]schema.ComponentScore)
	for _, c := range cat.Components {
		byID[c.ID] = c
	}

	walk := byID["walkability_score"]
	assert.Equal(t, schema.DefaultNeutral, walk.MissingDataStrategy)
	assert.InDelta(t, 2.5, walk.Score, 0.001)
	assert.Equal(t, string(schema.DefaultNeutral), walk.DataSource)
	assert.NotEmpty(t, walk.Note)

	transit := byID["transit_access"]
	assert.True(t, transit.Skipped)
}
