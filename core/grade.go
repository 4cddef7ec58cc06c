package core

import (
	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/schema"
)

// gradeBand is one letter's percentage range, lower bound inclusive.
type gradeBand struct {
	letter string
	lower  float64
	upper  float64
}

var gradeBands = []gradeBand{
	{"A", 80, 100},
	{"B", 60, 80},
	{"C", 40, 60},
	{"D", 20, 40},
}

// Modifier cutoffs within a band: the top quarter earns a plus, the bottom
// third a minus.
const (
	plusCutoff  = 0.75
	minusCutoff = 0.35
)

// CalculateGrade maps a total score to a letter grade with modifier. Scores
// outside the 0-125 range are clamped first, so any input yields a grade.
func CalculateGrade(totalScore float64) schema.GradeResult {
	pct := algo.Round1(algo.Clamp(totalScore, 0, schema.MaxTotalScore) / schema.MaxTotalScore * 100)

	for _, b := range gradeBands {
		if pct < b.lower {
			continue
		}
		pos := (pct - b.lower) / (b.upper - b.lower)
		if pos > 1 {
			pos = 1
		}
		modifier := ""
		switch {
		case pos >= plusCutoff:
			modifier = "+"
		case pos >= minusCutoff:
			// Mid-band carries the bare letter.
		default:
			modifier = "-"
		}
		return schema.GradeResult{
			Letter:     b.letter,
			Modifier:   modifier,
			Grade:      b.letter + modifier,
			Percentage: pct,
		}
	}

	// F carries no modifier.
	return schema.GradeResult{Letter: "F", Grade: "F", Percentage: pct}
}
