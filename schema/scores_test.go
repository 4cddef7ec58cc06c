package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrder(t *testing.T) {
	r := &PropertyScoreResult{
		Location:  CategoryScore{ID: LocationCategory, Score: 20},
		Risk:      CategoryScore{ID: RiskCategory, Score: 18},
		Financial: CategoryScore{ID: FinancialCategory, Score: 15},
		Market:    CategoryScore{ID: MarketCategory, Score: 12.5},
		Profit:    CategoryScore{ID: ProfitCategory, Score: 12.5},
	}

	cats := r.Categories()
	assert.Len(t, cats, 5)
	want := []CategoryID{LocationCategory, RiskCategory, FinancialCategory, MarketCategory, ProfitCategory}
	for i, cat := range cats {
		assert.Equal(t, want[i], cat.ID)
	}
}

func TestCategoryByID(t *testing.T) {
	r := &PropertyScoreResult{
		Location: CategoryScore{ID: LocationCategory, Score: 21},
		Profit:   CategoryScore{ID: ProfitCategory, Score: 7},
	}

	assert.Equal(t, 21.0, r.CategoryByID(LocationCategory).Score)
	assert.Equal(t, 7.0, r.CategoryByID(ProfitCategory).Score)
	// Unknown ids fall through to profit
	assert.Equal(t, 7.0, r.CategoryByID(CategoryID("bogus")).Score)
}
