// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteScore prints a single scoring result using the configured output format.
func (ow *OutWriter) WriteScore(result *schema.PropertyScoreResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScoreResult(result, cfg, duration)
}

// WriteBatch prints batch scoring results using the configured output format.
func (ow *OutWriter) WriteBatch(results []schema.PropertyScoreResult, cfg *contract.Config, duration time.Duration) error {
	return WriteBatchResults(results, cfg, duration)
}

// WriteComparison prints a two-property comparison using the configured output format.
func (ow *OutWriter) WriteComparison(cmp *schema.ScoreComparison, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(cmp, cfg, duration)
}

// WriteEdgeCases prints a standalone edge case screen using the configured output format.
func (ow *OutWriter) WriteEdgeCases(propertyID string, result *schema.EdgeCaseResult, cfg *contract.Config) error {
	return WriteEdgeCaseResults(propertyID, result, cfg)
}
