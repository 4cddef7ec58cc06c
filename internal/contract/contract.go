// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/taxdeedflow/deedscore/schema"
)

// PropertyStore defines the persistence operations the scoring engine and CLI
// depend on. The scoring path only ever reads; writes happen from explicit
// CLI commands. This allows the peer-estimation logic to be tested without a
// real database.
type PropertyStore interface {
	// --- Peer cohorts (read-only, consumed by peer estimation) ---

	// FindPeersByCounty returns scored properties in the same county.
	FindPeersByCounty(ctx context.Context, county string) ([]schema.PeerProperty, error)

	// FindPeersBySaleType returns scored properties sold through the same
	// auction mechanism (tax deed, tax lien, sheriff sale).
	FindPeersBySaleType(ctx context.Context, saleType string) ([]schema.PeerProperty, error)

	// FindPeersByValueRange returns scored properties whose assessed value
	// falls within [lo, hi].
	FindPeersByValueRange(ctx context.Context, lo, hi float64) ([]schema.PeerProperty, error)

	// SavePeerProperty upserts a property row so future runs can use it as a
	// peer. Called from batch scoring when persistence is enabled.
	SavePeerProperty(ctx context.Context, peer schema.PeerProperty) error

	// ListProperties returns all stored property rows.
	ListProperties(ctx context.Context) ([]schema.PeerProperty, error)

	// --- Calibration history ---

	// RecordPrediction stores a score prediction, optionally with its
	// realized outcome, for later calibration analysis.
	RecordPrediction(ctx context.Context, rec schema.PredictionRecord) error

	// ListPredictions returns all stored prediction records.
	ListPredictions(ctx context.Context) ([]schema.PredictionRecord, error)

	// --- Maintenance ---

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Clear removes all stored rows, keeping the schema in place.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
