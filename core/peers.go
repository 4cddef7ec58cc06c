package core

import (
	"context"

	"github.com/taxdeedflow/deedscore/core/algo"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
)

// Peer cohort weights. The value-range cohort is the strongest signal since
// similarly priced parcels behave most alike at auction.
const (
	countyCohortWeight   = 1.0
	saleTypeCohortWeight = 1.5
	valueCohortWeight    = 2.0

	// Value-range cohort spans +/-25% of the subject's assessed value.
	valueRangeSpread = 0.25

	peerBaseConfidence    = 30.0
	perPeerConfidence     = 3.0
	countyCohortBonus     = 5.0
	saleTypeCohortBonus   = 5.0
	valueCohortBonus      = 10.0
	maxPeerConfidence     = 85.0
	zeroPeerConfidence    = 25.0
	neutralNormalizedPeer = 50.0
)

// PeerEstimate is the result of inferring a missing value from similar
// properties. Estimate returns Value on the raw field's own scale; component
// scorers normalize it to 0-100 before handing the estimate to
// HandleMissingData, which expects a normalized Value.
type PeerEstimate struct {
	Value       float64
	Confidence  float64
	PeerCount   int
	CohortsUsed int
}

// PeerField extracts the raw field under estimation from a peer row,
// reporting false when the peer lacks it.
type PeerField func(schema.PeerProperty) (float64, bool)

// PeerEstimator infers missing component values from the property store.
// It only reads; the scoring path never writes to the store.
type PeerEstimator struct {
	store contract.PropertyStore
}

// NewPeerEstimator creates a PeerEstimator backed by the given store.
func NewPeerEstimator(store contract.PropertyStore) *PeerEstimator {
	return &PeerEstimator{store: store}
}

// Estimate combines three weighted peer cohorts into one raw-value estimate:
// same county, same sale type, and similar assessed value. With zero matching
// peers it returns a neutral estimate at low confidence rather than failing.
// The returned Value is the raw field mean; callers normalize it with the
// component's own scale before scoring.
func (e *PeerEstimator) Estimate(ctx context.Context, subject *schema.PropertyData, field PeerField) PeerEstimate {
	if e == nil || e.store == nil || subject == nil {
		return PeerEstimate{Value: neutralNormalizedPeer, Confidence: zeroPeerConfidence}
	}

	type cohort struct {
		weight float64
		bonus  float64
		rows   []schema.PeerProperty
	}
	var cohorts []cohort

	if subject.County != "" {
		rows, err := e.store.FindPeersByCounty(ctx, subject.County)
		if err == nil && len(rows) > 0 {
			cohorts = append(cohorts, cohort{countyCohortWeight, countyCohortBonus, rows})
		}
	}
	if subject.SaleType != "" {
		rows, err := e.store.FindPeersBySaleType(ctx, subject.SaleType)
		if err == nil && len(rows) > 0 {
			cohorts = append(cohorts, cohort{saleTypeCohortWeight, saleTypeCohortBonus, rows})
		}
	}
	if subject.AssessedValue != nil && *subject.AssessedValue > 0 {
		lo := *subject.AssessedValue * (1 - valueRangeSpread)
		hi := *subject.AssessedValue * (1 + valueRangeSpread)
		rows, err := e.store.FindPeersByValueRange(ctx, lo, hi)
		if err == nil && len(rows) > 0 {
			cohorts = append(cohorts, cohort{valueCohortWeight, valueCohortBonus, rows})
		}
	}

	var pairs []algo.WeightedValue
	var totalPeers int
	var bonus float64
	var used int
	for _, c := range cohorts {
		var sum float64
		var n int
		for _, row := range c.rows {
			if v, ok := field(row); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		pairs = append(pairs, algo.WeightedValue{Value: sum / float64(n), Weight: c.weight})
		totalPeers += n
		bonus += c.bonus
		used++
	}

	mean, ok := algo.WeightedAverage(pairs)
	if !ok {
		return PeerEstimate{Value: neutralNormalizedPeer, Confidence: zeroPeerConfidence}
	}

	conf := peerBaseConfidence + perPeerConfidence*float64(totalPeers) + bonus
	return PeerEstimate{
		Value:       mean,
		Confidence:  algo.Clamp(conf, 0, maxPeerConfidence),
		PeerCount:   totalPeers,
		CohortsUsed: used,
	}
}
