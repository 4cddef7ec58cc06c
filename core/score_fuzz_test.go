package core

import (
	"context"
	"errors"
	"testing"

	"github.com/taxdeedflow/deedscore/schema"
)

// FuzzScore fuzzes the full scoring pipeline with random property inputs.
func FuzzScore(f *testing.F) {
	seeds := []struct {
		id            string
		state         string
		county        string
		propertyType  string
		landUse       string
		zoning        string
		assessedValue float64
		marketValue   float64
		amountDue     float64
		yearBuilt     int
		lotSqft       float64
		buildingSqft  float64
	}{
		{
			id: "FL-001", state: "FL", county: "Lake",
			propertyType: "single_family", landUse: "Single Family Residential", zoning: "R-1",
			assessedValue: 120000, marketValue: 150000, amountDue: 4800,
			yearBuilt: 1995, lotSqft: 10890, buildingSqft: 1600,
		},
		{
			// Zero-value edge case.
			id: "", state: "", county: "",
			propertyType: "", landUse: "", zoning: "",
			assessedValue: 0, marketValue: 0, amountDue: 0,
			yearBuilt: 0, lotSqft: 0, buildingSqft: 0,
		},
		{
			id: "TX-CEM", state: "TX", county: "Harris",
			propertyType: "", landUse: "Cemetery", zoning: "",
			assessedValue: 500, marketValue: -1, amountDue: 900000,
			yearBuilt: 1850, lotSqft: 40, buildingSqft: 0,
		},
	}
	for _, seed := range seeds {
		f.Add(seed.id, seed.state, seed.county, seed.propertyType, seed.landUse,
			seed.zoning, seed.assessedValue, seed.marketValue, seed.amountDue,
			seed.yearBuilt, seed.lotSqft, seed.buildingSqft)
	}

	s := NewScorer(nil, schema.DefaultEdgeCaseConfig())

	f.Fuzz(func(t *testing.T,
		id string,
		state string,
		county string,
		propertyType string,
		landUse string,
		zoning string,
		assessedValue float64,
		marketValue float64,
		amountDue float64,
		yearBuilt int,
		lotSqft float64,
		buildingSqft float64,
	) {
		rec := &schema.PropertyRecord{
			Property: &schema.PropertyData{
				ID:            id,
				State:         state,
				County:        county,
				PropertyType:  propertyType,
				LandUse:       landUse,
				Zoning:        zoning,
				AssessedValue: &assessedValue,
				MarketValue:   &marketValue,
				AmountDue:     &amountDue,
				YearBuilt:     &yearBuilt,
				LotSizeSqft:   &lotSqft,
				BuildingSqft:  &buildingSqft,
			},
		}

		result, err := s.Score(context.Background(), rec, schema.CalculationOptions{})
		if err != nil {
			if errors.Is(err, ErrNilProperty) {
				return
			}
			t.Fatalf("unexpected error: %v", err)
		}

		if result.TotalScore < 0 || result.TotalScore > schema.MaxTotalScore {
			t.Errorf("total score %v outside [0, %v]", result.TotalScore, schema.MaxTotalScore)
		}
		if result.Grade.Percentage < 0 || result.Grade.Percentage > 100 {
			t.Errorf("percentage %v outside [0, 100]", result.Grade.Percentage)
		}
		for _, cat := range result.Categories() {
			if cat.Score < 0 || cat.Score > schema.MaxCategoryScore {
				t.Errorf("category %s score %v outside [0, %v]", cat.ID, cat.Score, schema.MaxCategoryScore)
			}
		}
		if result.ConfidenceLevel.Overall < 0 || result.ConfidenceLevel.Overall > 100 {
			t.Errorf("confidence %v outside [0, 100]", result.ConfidenceLevel.Overall)
		}
		if result.Grade.Grade == "" {
			t.Error("grade is empty")
		}
	})
}

// FuzzCalculateGrade fuzzes the grade mapping across the score line.
func FuzzCalculateGrade(f *testing.F) {
	seeds := []float64{0, 24, 25, 62.5, 100, 112, 125, -10, 500, 99.999}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, score float64) {
		grade := CalculateGrade(score)
		if grade.Percentage < 0 || grade.Percentage > 100 {
			t.Errorf("percentage %v outside [0, 100]", grade.Percentage)
		}
		switch grade.Letter {
		case "A", "B", "C", "D", "F":
		default:
			t.Errorf("unexpected letter %q", grade.Letter)
		}
		if grade.Letter+grade.Modifier != grade.Grade {
			t.Errorf("grade %q does not compose from %q and %q", grade.Grade, grade.Letter, grade.Modifier)
		}
	})
}
