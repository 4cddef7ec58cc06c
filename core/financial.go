package core

import (
	"context"
	"sort"

	"github.com/taxdeedflow/deedscore/schema"
)

// medianCompPrice returns the median sale price of the comparables.
func medianCompPrice(comps []schema.ComparableSale) (float64, bool) {
	if len(comps) == 0 {
		return 0, false
	}
	prices := make([]float64, 0, len(comps))
	for _, c := range comps {
		if c.SalePrice > 0 {
			prices = append(prices, c.SalePrice)
		}
	}
	if len(prices) == 0 {
		return 0, false
	}
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		return (prices[mid-1] + prices[mid]) / 2, true
	}
	return prices[mid], true
}

// medianCompPricePerSqft returns the median price per square foot across
// comparables that carry building size.
func medianCompPricePerSqft(comps []schema.ComparableSale) (float64, bool) {
	var ppsf []float64
	for _, c := range comps {
		if c.SalePrice > 0 && c.BuildingSqft != nil && *c.BuildingSqft > 0 {
			ppsf = append(ppsf, c.SalePrice / *c.BuildingSqft)
		}
	}
	if len(ppsf) == 0 {
		return 0, false
	}
	sort.Float64s(ppsf)
	mid := len(ppsf) / 2
	if len(ppsf)%2 == 0 {
		return (ppsf[mid-1] + ppsf[mid]) / 2, true
	}
	return ppsf[mid], true
}

// financialComponents defines the five financial components. All are oriented
// so that a higher score means a better deal.
var financialComponents = []componentDef{
	{
		ID:     "assessed_market_ratio",
		Name:   "Market to assessed ratio",
		Norm:   normConfig{Min: 0.5, Max: 2.0},
		Source: "county_records",
		Extract: func(p *schema.PropertyData, _ *schema.ExternalData) (float64, bool) {
			if p == nil || p.MarketValue == nil || p.AssessedValue == nil || *p.AssessedValue <= 0 {
				return 0, false
			}
			return *p.MarketValue / *p.AssessedValue, true
		},
		PeerField: func(peer schema.PeerProperty) (float64, bool) {
			if peer.MarketValue == nil || peer.AssessedValue == nil || *peer.AssessedValue <= 0 {
				return 0, false
			}
			return *peer.MarketValue / *peer.AssessedValue, true
		},
	},
	{
		ID:     "amount_due_ratio",
		Name:   "Amount due burden",
		Norm:   normConfig{Min: 0, Max: 0.5, Invert: true},
		Source: "county_records",
		Extract: func(p *schema.PropertyData, _ *schema.ExternalData) (float64, bool) {
			if p == nil || p.AmountDue == nil || p.AssessedValue == nil || *p.AssessedValue <= 0 {
				return 0, false
			}
			return *p.AmountDue / *p.AssessedValue, true
		},
	},
	{
		ID:     "price_per_sqft",
		Name:   "Area price per sqft",
		Norm:   normConfig{Min: 20, Max: 200},
		Source: "comparable_sales",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil {
				return 0, false
			}
			if v, ok := medianCompPricePerSqft(ext.Comparables); ok {
				return v, true
			}
			if ext.Market != nil && ext.Market.MedianPricePerSqft != nil {
				return *ext.Market.MedianPricePerSqft, true
			}
			return 0, false
		},
		PeerField: func(peer schema.PeerProperty) (float64, bool) {
			if peer.MarketValue == nil || peer.BuildingSqft == nil || *peer.BuildingSqft <= 0 {
				return 0, false
			}
			return *peer.MarketValue / *peer.BuildingSqft, true
		},
	},
	{
		ID:     "comparable_value",
		Name:   "Comparable value upside",
		Norm:   normConfig{Min: 0.5, Max: 3.0},
		Source: "comparable_sales",
		Extract: func(p *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if p == nil || ext == nil || p.AssessedValue == nil || *p.AssessedValue <= 0 {
				return 0, false
			}
			median, ok := medianCompPrice(ext.Comparables)
			if !ok {
				return 0, false
			}
			return median / *p.AssessedValue, true
		},
	},
	{
		ID:     "value_trend",
		Name:   "Value trend",
		Norm:   normConfig{Min: -10, Max: 10},
		Source: "market_trends",
		Extract: func(_ *schema.PropertyData, ext *schema.ExternalData) (float64, bool) {
			if ext == nil || ext.Market == nil || ext.Market.PriceChangeYoY == nil {
				return 0, false
			}
			return *ext.Market.PriceChangeYoY, true
		},
	},
}

// ScoreFinancial computes the 0-25 financial category score.
func ScoreFinancial(ctx context.Context, p *schema.PropertyData, ext *schema.ExternalData, peers *PeerEstimator) schema.CategoryScore {
	comps := scoreComponents(ctx, financialComponents, p, ext, peers)
	return buildCategory(schema.FinancialCategory, "Financial", comps)
}
