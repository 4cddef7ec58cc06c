package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxdeedflow/deedscore/schema"
)

// resultWithScores builds a minimal score result for comparison tests.
func resultWithScores(id string, location, risk, financial, market, profit float64) *schema.PropertyScoreResult {
	total := location + risk + financial + market + profit
	return &schema.PropertyScoreResult{
		PropertyID: id,
		TotalScore: total,
		Grade:      CalculateGrade(total),
		Location:   schema.CategoryScore{ID: schema.LocationCategory, Score: location},
		Risk:       schema.CategoryScore{ID: schema.RiskCategory, Score: risk},
		Financial:  schema.CategoryScore{ID: schema.FinancialCategory, Score: financial},
		Market:     schema.CategoryScore{ID: schema.MarketCategory, Score: market},
		Profit:     schema.CategoryScore{ID: schema.ProfitCategory, Score: profit},
	}
}

// TestCompareScores tests deltas, winners and the summary.
func TestCompareScores(t *testing.T) {
	a := resultWithScores("A", 20, 15, 18, 12.5, 12.5) // 78
	b := resultWithScores("B", 15, 18, 22, 12.5, 12.5) // 80

	cmp, err := CompareScores(a, b)
	require.NoError(t, err)

	assert.Equal(t, "A", cmp.PropertyA)
	assert.Equal(t, "B", cmp.PropertyB)
	assert.InDelta(t, 2.0, cmp.ScoreDelta, 0.001)
	assert.Equal(t, "B", cmp.Winner)

	require.Len(t, cmp.Categories, 5)
	byCategory := make(map[schema.CategoryID]schema.CategoryDelta)
	for _, d := range cmp.Categories {
		byCategory[d.Category] = d
	}
	assert.Equal(t, -5.0, byCategory[schema.LocationCategory].Delta)
	assert.Equal(t, "A", byCategory[schema.LocationCategory].Winner)
	assert.Equal(t, 4.0, byCategory[schema.FinancialCategory].Delta)
	assert.Equal(t, "B", byCategory[schema.FinancialCategory].Winner)
	assert.Equal(t, "tie", byCategory[schema.MarketCategory].Winner)

	// The largest gap is in location
	assert.Contains(t, cmp.Summary, "B leads A by 2.00 points")
	assert.Contains(t, cmp.Summary, string(schema.LocationCategory))
}

// TestCompareScoresTie tests the equivalence band.
func TestCompareScoresTie(t *testing.T) {
	a := resultWithScores("A", 20, 15, 18, 12.5, 12.5)
	b := resultWithScores("B", 20, 15, 18, 12.5, 12.5)

	cmp, err := CompareScores(a, b)
	require.NoError(t, err)

	assert.Equal(t, "tie", cmp.Winner)
	assert.Contains(t, cmp.Summary, "within")
}

// TestCompareScoresNil tests the nil guards.
func TestCompareScoresNil(t *testing.T) {
	a := resultWithScores("A", 20, 15, 18, 12.5, 12.5)

	_, err := CompareScores(nil, a)
	assert.ErrorIs(t, err, ErrNilProperty)
	_, err = CompareScores(a, nil)
	assert.ErrorIs(t, err, ErrNilProperty)
}

// TestPickWinner tests the delta sign handling.
func TestPickWinner(t *testing.T) {
	assert.Equal(t, "B", pickWinner("A", "B", 0.5))
	assert.Equal(t, "A", pickWinner("A", "B", -0.5))
	assert.Equal(t, "tie", pickWinner("A", "B", 0.005))
	assert.Equal(t, "tie", pickWinner("A", "B", -0.005))
}
