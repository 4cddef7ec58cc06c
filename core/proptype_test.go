package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxdeedflow/deedscore/schema"
)

// TestDetectPropertyType tests classification from county records.
func TestDetectPropertyType(t *testing.T) {
	tests := []struct {
		name     string
		property schema.PropertyData
		expected schema.PropertyType
	}{
		{"stated type trusted", schema.PropertyData{PropertyType: "multi_family"}, schema.MultiFamily},
		{"stated type case-insensitive", schema.PropertyData{PropertyType: " Single_Family "}, schema.SingleFamily},
		{"mobile home keyword", schema.PropertyData{LandUse: "Mobile Home Park"}, schema.MobileHome},
		{"duplex keyword", schema.PropertyData{LandUse: "duplex"}, schema.MultiFamily},
		{"mixed use keyword", schema.PropertyData{Zoning: "mixed-use downtown"}, schema.MixedUse},
		{"warehouse keyword", schema.PropertyData{LandUse: "warehouse"}, schema.Industrial},
		{"retail keyword", schema.PropertyData{LandUse: "retail strip"}, schema.Commercial},
		{"farm keyword", schema.PropertyData{LandUse: "farm"}, schema.Agricultural},
		{"vacant keyword", schema.PropertyData{LandUse: "vacant residential"}, schema.VacantLand},
		{"residential keyword", schema.PropertyData{LandUse: "residential dwelling"}, schema.SingleFamily},
		{"zoning R code", schema.PropertyData{Zoning: "R-1"}, schema.SingleFamily},
		{"zoning C code", schema.PropertyData{Zoning: "C2"}, schema.Commercial},
		{"zoning M code", schema.PropertyData{Zoning: "M-1"}, schema.Industrial},
		{"zoning A code", schema.PropertyData{Zoning: "AG-2"}, schema.Agricultural},
		{"footprint present", schema.PropertyData{BuildingSqft: ptrF(1200)}, schema.SingleFamily},
		{"zero footprint", schema.PropertyData{BuildingSqft: ptrF(0)}, schema.VacantLand},
		{"nothing to go on", schema.PropertyData{ID: "X"}, schema.UnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPropertyType(&tt.property))
		})
	}
}

// TestDetectPropertyTypeNil tests the nil guard.
func TestDetectPropertyTypeNil(t *testing.T) {
	assert.Equal(t, schema.UnknownType, DetectPropertyType(nil))
}

// TestDetectPropertyTypeKeywordBeatsZoningCode ensures keyword matches win
// over the single-letter zoning heuristic.
func TestDetectPropertyTypeKeywordBeatsZoningCode(t *testing.T) {
	p := &schema.PropertyData{LandUse: "vacant", Zoning: "C-1"}
	assert.Equal(t, schema.VacantLand, DetectPropertyType(p))
}
