package core

import "github.com/taxdeedflow/deedscore/schema"

// Placeholder categories return a fixed neutral value until their scorers
// land. The Placeholder flag keeps callers from mistaking them for real
// measurements.
const (
	placeholderCategoryScore      = 12.5
	placeholderCategoryConfidence = 30.0
)

func placeholderCategory(id schema.CategoryID, name string) schema.CategoryScore {
	return schema.CategoryScore{
		ID:          id,
		Name:        name,
		Score:       placeholderCategoryScore,
		MaxScore:    schema.MaxCategoryScore,
		Confidence:  placeholderCategoryConfidence,
		Placeholder: true,
		Notes:       []string{name + " scoring is not yet implemented; neutral placeholder applied"},
	}
}

// ScoreMarket returns the market category placeholder.
func ScoreMarket() schema.CategoryScore {
	return placeholderCategory(schema.MarketCategory, "Market")
}

// ScoreProfit returns the profit category placeholder.
func ScoreProfit() schema.CategoryScore {
	return placeholderCategory(schema.ProfitCategory, "Profit")
}
