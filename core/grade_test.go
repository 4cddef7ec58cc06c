package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCalculateGrade tests the letter band boundaries and modifiers.
func TestCalculateGrade(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		grade      string
		percentage float64
	}{
		{"perfect score", 125, "A+", 100},
		{"bottom of A band", 100, "A-", 80},
		{"top of B band", 99, "B+", 79.2},
		{"mid A band", 112, "A", 89.6},
		{"bottom of B band", 75, "B-", 60},
		{"top of C band", 74, "C+", 59.2},
		{"mid C band", 62.5, "C", 50},
		{"bottom of C band", 50, "C-", 40},
		{"top of D band", 49, "D+", 39.2},
		{"bottom of D band", 25, "D-", 20},
		{"failing", 24, "F", 19.2},
		{"zero", 0, "F", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := CalculateGrade(tt.score)
			assert.Equal(t, tt.grade, g.Grade)
			assert.InDelta(t, tt.percentage, g.Percentage, 0.001)
			assert.Equal(t, tt.grade, g.Letter+g.Modifier)
		})
	}
}

// TestCalculateGradeClampsOutOfRange ensures out-of-range totals still grade.
func TestCalculateGradeClampsOutOfRange(t *testing.T) {
	low := CalculateGrade(-10)
	assert.Equal(t, "F", low.Grade)
	assert.Equal(t, 0.0, low.Percentage)

	high := CalculateGrade(150)
	assert.Equal(t, "A+", high.Grade)
	assert.Equal(t, 100.0, high.Percentage)
}

// TestGradeFHasNoModifier verifies F never carries a plus or minus.
func TestGradeFHasNoModifier(t *testing.T) {
	for _, score := range []float64{0, 5, 12, 20, 24.9} {
		g := CalculateGrade(score)
		assert.Equal(t, "F", g.Letter)
		assert.Empty(t, g.Modifier)
	}
}
