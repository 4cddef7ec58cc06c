package propstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
)

// MockPropertyStore is a mock implementation of PropertyStore for testing.
type MockPropertyStore struct {
	mock.Mock
}

var _ contract.PropertyStore = &MockPropertyStore{} // Compile-time check

// FindPeersByCounty implements the PropertyStore interface.
func (m *MockPropertyStore) FindPeersByCounty(ctx context.Context, county string) ([]schema.PeerProperty, error) {
	args := m.Called(ctx, county)
	peers, _ := args.Get(0).([]schema.PeerProperty)
	return peers, args.Error(1)
}

// FindPeersBySaleType implements the PropertyStore interface.
func (m *MockPropertyStore) FindPeersBySaleType(ctx context.Context, saleType string) ([]schema.PeerProperty, error) {
	args := m.Called(ctx, saleType)
	peers, _ := args.Get(0).([]schema.PeerProperty)
	return peers, args.Error(1)
}

// FindPeersByValueRange implements the PropertyStore interface.
func (m *MockPropertyStore) FindPeersByValueRange(ctx context.Context, lo, hi float64) ([]schema.PeerProperty, error) {
	args := m.Called(ctx, lo, hi)
	peers, _ := args.Get(0).([]schema.PeerProperty)
	return peers, args.Error(1)
}

// SavePeerProperty implements the PropertyStore interface.
func (m *MockPropertyStore) SavePeerProperty(ctx context.Context, peer schema.PeerProperty) error {
	args := m.Called(ctx, peer)
	return args.Error(0)
}

// ListProperties implements the PropertyStore interface.
func (m *MockPropertyStore) ListProperties(ctx context.Context) ([]schema.PeerProperty, error) {
	args := m.Called(ctx)
	peers, _ := args.Get(0).([]schema.PeerProperty)
	return peers, args.Error(1)
}

// RecordPrediction implements the PropertyStore interface.
func (m *MockPropertyStore) RecordPrediction(ctx context.Context, rec schema.PredictionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// ListPredictions implements the PropertyStore interface.
func (m *MockPropertyStore) ListPredictions(ctx context.Context) ([]schema.PredictionRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]schema.PredictionRecord)
	return recs, args.Error(1)
}

// GetStatus implements the PropertyStore interface.
func (m *MockPropertyStore) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the PropertyStore interface.
func (m *MockPropertyStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the PropertyStore interface.
func (m *MockPropertyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
