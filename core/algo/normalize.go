// Package algo provides the pure normalization primitives used by scoring.
// Every function is total: out-of-range input is clamped, never rejected.
package algo

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Linear maps v from [min, max] onto [0, 100]. When invert is true the scale
// is flipped so that min maps to 100. A degenerate range (max <= min) maps
// everything to the neutral midpoint.
func Linear(v, min, max float64, invert bool) float64 {
	if max <= min {
		return 50
	}
	n := (Clamp(v, min, max) - min) / (max - min) * 100
	if invert {
		n = 100 - n
	}
	return n
}

// Threshold maps v against an excellent/poor pair: at or beyond excellent the
// result is 100, at or beyond poor it is 0, and in between it interpolates
// linearly. The scale direction follows the ordering of the two thresholds,
// so Threshold(v, 10, 90) treats low values as excellent.
func Threshold(v, excellent, poor float64) float64 {
	if excellent == poor {
		return 50
	}
	if excellent > poor {
		// Higher is better.
		if v >= excellent {
			return 100
		}
		if v <= poor {
			return 0
		}
		return (v - poor) / (excellent - poor) * 100
	}
	// Lower is better.
	if v <= excellent {
		return 100
	}
	if v >= poor {
		return 0
	}
	return (poor - v) / (poor - excellent) * 100
}

// Categorical maps v through a lookup table of normalized values. Unknown
// categories fall back to the supplied default.
func Categorical(v string, table map[string]float64, fallback float64) float64 {
	if n, ok := table[v]; ok {
		return Clamp(n, 0, 100)
	}
	return Clamp(fallback, 0, 100)
}

// Boolean maps a flag to one of two normalized values.
func Boolean(v bool, whenTrue, whenFalse float64) float64 {
	if v {
		return Clamp(whenTrue, 0, 100)
	}
	return Clamp(whenFalse, 0, 100)
}

// WeightedValue is a single observation with its weight.
type WeightedValue struct {
	Value  float64
	Weight float64
}

// WeightedAverage computes the weighted mean of the given pairs. Pairs with
// non-positive weight are ignored; an empty or fully-ignored input returns 0
// with ok=false so callers can distinguish "no data" from a true zero.
func WeightedAverage(pairs []WeightedValue) (float64, bool) {
	var sum, wsum float64
	for _, p := range pairs {
		if p.Weight <= 0 {
			continue
		}
		sum += p.Value * p.Weight
		wsum += p.Weight
	}
	if wsum == 0 {
		return 0, false
	}
	return sum / wsum, true
}

// ScoreFromNormalized converts a normalized 0-100 value onto a 0-maxScore
// component scale.
func ScoreFromNormalized(normalized, maxScore float64) float64 {
	return Clamp(normalized, 0, 100) / 100 * maxScore
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
