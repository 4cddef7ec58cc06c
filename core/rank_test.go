package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxdeedflow/deedscore/schema"
)

// TestRankResults tests descending score order with id tiebreak.
func TestRankResults(t *testing.T) {
	results := []schema.PropertyScoreResult{
		{PropertyID: "C", TotalScore: 55},
		{PropertyID: "B", TotalScore: 90},
		{PropertyID: "A", TotalScore: 55},
		{PropertyID: "D", TotalScore: 101.5},
	}

	RankResults(results)

	var ids []string
	for _, r := range results {
		ids = append(ids, r.PropertyID)
	}
	assert.Equal(t, []string{"D", "B", "A", "C"}, ids)
}

// TestRankResultsEmpty verifies empty and single inputs are safe.
func TestRankResultsEmpty(t *testing.T) {
	RankResults(nil)

	one := []schema.PropertyScoreResult{{PropertyID: "X", TotalScore: 10}}
	RankResults(one)
	assert.Equal(t, "X", one[0].PropertyID)
}
