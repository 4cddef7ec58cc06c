package core

import (
	"sort"

	"github.com/taxdeedflow/deedscore/schema"
)

// RankResults sorts scored properties best-first. Ties break on property id
// so batch output stays stable across runs.
func RankResults(results []schema.PropertyScoreResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].PropertyID < results[j].PropertyID
	})
}
