package core

import (
	"fmt"
	"math"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// comparisonTie is the delta below which two scores read as equivalent.
const comparisonTie = 0.01

// CompareScores diffs two already-computed results side by side. Deltas are
// B minus A throughout.
func CompareScores(a, b *schema.PropertyScoreResult) (*schema.ScoreComparison, error) {
	if a == nil || b == nil {
		return nil, ErrNilProperty
	}

	cmp := &schema.ScoreComparison{
		PropertyA:  a.PropertyID,
		PropertyB:  b.PropertyID,
		ScoreDelta: algo.Round2(b.TotalScore - a.TotalScore),
	}
	cmp.Winner = pickWinner(a.PropertyID, b.PropertyID, cmp.ScoreDelta)

	ids := []schema.CategoryID{
		schema.LocationCategory, schema.RiskCategory, schema.FinancialCategory,
		schema.MarketCategory, schema.ProfitCategory,
	}
	var bestID schema.CategoryID
	var bestAbs float64
	for _, id := range ids {
		delta := algo.Round2(b.CategoryByID(id).Score - a.CategoryByID(id).Score)
		cmp.Categories = append(cmp.Categories, schema.CategoryDelta{
			Category: id,
			Delta:    delta,
			Winner:   pickWinner(a.PropertyID, b.PropertyID, delta),
		})
		if math.Abs(delta) > bestAbs {
			bestAbs = math.Abs(delta)
			bestID = id
		}
	}

	switch {
	case cmp.Winner == "tie":
		cmp.Summary = fmt.Sprintf("%s and %s score within %.2f points of each other (%s %s vs %s %s)",
			a.PropertyID, b.PropertyID, math.Abs(cmp.ScoreDelta), a.PropertyID, a.Grade.Grade, b.PropertyID, b.Grade.Grade)
	case bestID != "":
		winner, loser := b, a
		if cmp.Winner == a.PropertyID {
			winner, loser = a, b
		}
		cmp.Summary = fmt.Sprintf("%s leads %s by %.2f points (%s vs %s), with the largest gap in %s",
			winner.PropertyID, loser.PropertyID, math.Abs(cmp.ScoreDelta),
			winner.Grade.Grade, loser.Grade.Grade, bestID)
	default:
		cmp.Summary = fmt.Sprintf("%s leads %s by %.2f points",
			cmp.Winner, otherOf(cmp.Winner, a.PropertyID, b.PropertyID), math.Abs(cmp.ScoreDelta))
	}
	return cmp, nil
}

func pickWinner(idA, idB string, delta float64) string {
	switch {
	case delta > comparisonTie:
		return idB
	case delta < -comparisonTie:
		return idA
	default:
		return "tie"
	}
}

func otherOf(winner, idA, idB string) string {
	if winner == idA {
		return idB
	}
	return idA
}
