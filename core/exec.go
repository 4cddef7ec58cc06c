package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/intake"
	"github.com/taxdeedflow/deedscore/internal/outwriter"
	"github.com/taxdeedflow/deedscore/schema"
)

// ExecutorFunc defines the function signature for executing different scoring modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.PropertyStore) error

// logScoreHeader prints a concise, 2-line header before a scoring run.
func logScoreHeader(cfg *contract.Config, recordCount int) {
	inputName := filepath.Base(cfg.InputFile)
	if inputName == "" || inputName == "." || inputName == "-" {
		inputName = "stdin"
	}

	prefix1, prefix2 := "", ""
	if cfg.UseEmojis {
		prefix1, prefix2 = "🔎 ", "🏛️  "
	}
	fmt.Printf("%sInput: %s (%d records, market: %s)\n", prefix1, inputName, recordCount, cfg.MarketCondition)
	fmt.Printf("%sStore: %s (workers: %d)\n", prefix2, cfg.StoreBackend, cfg.Workers)
}

// selectRecord picks the record to score from a loaded input. With --id set it
// searches by property or parcel id; otherwise the input must hold one record.
func selectRecord(records []schema.PropertyRecord, id string) (*schema.PropertyRecord, error) {
	if len(records) == 0 {
		return nil, errors.New("input contains no property records")
	}
	if id == "" {
		if len(records) > 1 {
			return nil, fmt.Errorf("input contains %d records; pass --id or use the batch command", len(records))
		}
		return &records[0], nil
	}
	for i := range records {
		p := records[i].Property
		if p == nil {
			continue
		}
		if p.ID == id || p.ParcelID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("no record with id %q in input", id)
}

// ExecuteScore scores a single property and prints the result.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, store contract.PropertyStore) error {
	start := time.Now()
	records, err := intake.LoadRecords(cfg.InputFile)
	if err != nil {
		return err
	}
	record, err := selectRecord(records, cfg.InputID)
	if err != nil {
		return err
	}
	if !isHeaderSuppressed(ctx) {
		logScoreHeader(cfg, 1)
	}

	scorer := NewScorer(store, cfg.EdgeCases).WithRegionalAdjuster(regionalAdjusterFor(cfg))
	result, err := scorer.Score(ctx, record, cfg.CalculationOptions())
	if err != nil {
		return err
	}

	if cfg.SaveToStore {
		if err := persistResult(ctx, store, record, result); err != nil {
			contract.LogWarn("Could not save result to store", err)
		}
	}

	duration := time.Since(start)
	return outwriter.WriteScoreResult(result, cfg, duration)
}

// ExecuteBatch scores every record in the input concurrently and prints a
// ranked table. It serves as the main entry point for the 'batch' command.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, store contract.PropertyStore) error {
	start := time.Now()
	records, err := intake.LoadRecords(cfg.InputFile)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("input contains no property records")
	}
	if len(records) > cfg.BatchLimit {
		contract.LogWarn("Batch limit reached", fmt.Errorf("scoring first %d of %d records", cfg.BatchLimit, len(records)))
		records = records[:cfg.BatchLimit]
	}
	if !isHeaderSuppressed(ctx) {
		logScoreHeader(cfg, len(records))
	}

	scorer := NewScorer(store, cfg.EdgeCases).WithRegionalAdjuster(regionalAdjusterFor(cfg))
	results, errs := scoreRecordsParallel(ctx, scorer, records, cfg)

	// Drop failed slots after reporting them so ranking sees only real scores.
	kept := results[:0]
	for i := range results {
		if errs[i] != nil {
			contract.LogWarn("Skipping record", errs[i])
			continue
		}
		kept = append(kept, results[i])
	}
	if len(kept) == 0 {
		return errors.New("no records could be scored")
	}

	if cfg.SaveToStore {
		for i := range kept {
			if err := persistResult(ctx, store, recordByID(records, kept[i].PropertyID), &kept[i]); err != nil {
				contract.LogWarn("Could not save result to store", err)
			}
		}
	}

	RankResults(kept)
	duration := time.Since(start)
	return outwriter.WriteBatchResults(kept, cfg, duration)
}

// scoreRecordsParallel fans records out to cfg.Workers goroutines. Each worker
// writes to a unique index, so the slices need no locking.
func scoreRecordsParallel(ctx context.Context, scorer *Scorer, records []schema.PropertyRecord, cfg *contract.Config) ([]schema.PropertyScoreResult, []error) {
	results := make([]schema.PropertyScoreResult, len(records))
	errs := make([]error, len(records))
	opts := cfg.CalculationOptions()

	idxCh := make(chan int, len(records))
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				result, err := scorer.Score(ctx, &records[i], opts)
				if err != nil {
					errs[i] = fmt.Errorf("record %d: %w", i, err)
					continue
				}
				results[i] = *result
			}
		})
	}

	for i := range records {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return results, errs
}

// ExecuteCompare scores two properties from the input and compares them.
// The input must contain exactly two records.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, store contract.PropertyStore) error {
	start := time.Now()
	records, err := intake.LoadRecords(cfg.InputFile)
	if err != nil {
		return err
	}
	if len(records) != 2 {
		return fmt.Errorf("compare needs exactly two records, input has %d", len(records))
	}
	if !isHeaderSuppressed(ctx) {
		logScoreHeader(cfg, 2)
	}

	scorer := NewScorer(store, cfg.EdgeCases).WithRegionalAdjuster(regionalAdjusterFor(cfg))
	opts := cfg.CalculationOptions()

	resultA, err := scorer.Score(ctx, &records[0], opts)
	if err != nil {
		return fmt.Errorf("scoring first record: %w", err)
	}
	resultB, err := scorer.Score(ctx, &records[1], opts)
	if err != nil {
		return fmt.Errorf("scoring second record: %w", err)
	}

	comparison, err := CompareScores(resultA, resultB)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.WriteComparisonResults(comparison, cfg, duration)
}

// ExecuteEdgeCases runs the edge case screen alone, without scoring.
func ExecuteEdgeCases(_ context.Context, cfg *contract.Config, _ contract.PropertyStore) error {
	records, err := intake.LoadRecords(cfg.InputFile)
	if err != nil {
		return err
	}
	record, err := selectRecord(records, cfg.InputID)
	if err != nil {
		return err
	}

	propertyID := record.Property.ID
	if propertyID == "" {
		propertyID = "unknown"
	}
	result := DetectEdgeCases(record.Property, record.External, cfg.EdgeCases)
	return outwriter.WriteEdgeCaseResults(propertyID, &result, cfg)
}

// regionalAdjusterFor returns the adjuster matching the config.
func regionalAdjusterFor(cfg *contract.Config) RegionalAdjuster {
	if cfg.SkipRegionalAdjustments {
		return NopRegionalAdjuster{}
	}
	return NewStaticRegionalAdjuster()
}

// persistResult writes the scored property and its prediction to the store.
func persistResult(ctx context.Context, store contract.PropertyStore, record *schema.PropertyRecord, result *schema.PropertyScoreResult) error {
	if store == nil || record == nil || record.Property == nil {
		return nil
	}
	p := record.Property
	peer := schema.PeerProperty{
		ID:            result.PropertyID,
		County:        p.County,
		SaleType:      p.SaleType,
		AssessedValue: p.AssessedValue,
		MarketValue:   p.MarketValue,
		LotSizeSqft:   p.LotSizeSqft,
		BuildingSqft:  p.BuildingSqft,
		AmountDue:     p.AmountDue,
	}
	if err := store.SavePeerProperty(ctx, peer); err != nil {
		return err
	}
	return store.RecordPrediction(ctx, schema.PredictionRecord{
		PropertyID:     result.PropertyID,
		PredictedScore: result.TotalScore,
		RecordedAt:     result.CalculatedAt,
	})
}

// recordByID finds the source record for a scored result.
func recordByID(records []schema.PropertyRecord, id string) *schema.PropertyRecord {
	for i := range records {
		p := records[i].Property
		if p != nil && (p.ID == id || p.ParcelID == id) {
			return &records[i]
		}
	}
	return nil
}
