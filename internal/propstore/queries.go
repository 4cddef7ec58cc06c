package propstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taxdeedflow/deedscore/schema"
)

// peerColumns is the column list every peer query selects.
const peerColumns = "property_id, county, sale_type, assessed_value, market_value, lot_size_sqft, building_sqft, amount_due"

// FindPeersByCounty returns stored properties in the same county.
func (ps *PropertyStoreImpl) FindPeersByCounty(ctx context.Context, county string) ([]schema.PeerProperty, error) {
	if ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(propertiesTable, ps.backend)
	var query string
	switch ps.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE county = $1`, peerColumns, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE county = ?`, peerColumns, quotedTableName)
	}

	rows, err := ps.db.QueryContext(ctx, query, county)
	if err != nil {
		return nil, fmt.Errorf("failed to query peers by county: %w", err)
	}
	return scanPeerRows(rows)
}

// FindPeersBySaleType returns stored properties with the same sale type.
func (ps *PropertyStoreImpl) FindPeersBySaleType(ctx context.Context, saleType string) ([]schema.PeerProperty, error) {
	if ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(propertiesTable, ps.backend)
	var query string
	switch ps.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE sale_type = $1`, peerColumns, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE sale_type = ?`, peerColumns, quotedTableName)
	}

	rows, err := ps.db.QueryContext(ctx, query, saleType)
	if err != nil {
		return nil, fmt.Errorf("failed to query peers by sale type: %w", err)
	}
	return scanPeerRows(rows)
}

// FindPeersByValueRange returns stored properties with assessed values in [lo, hi].
func (ps *PropertyStoreImpl) FindPeersByValueRange(ctx context.Context, lo, hi float64) ([]schema.PeerProperty, error) {
	if ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(propertiesTable, ps.backend)
	var query string
	switch ps.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE assessed_value BETWEEN $1 AND $2`, peerColumns, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE assessed_value BETWEEN ? AND ?`, peerColumns, quotedTableName)
	}

	rows, err := ps.db.QueryContext(ctx, query, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("failed to query peers by value range: %w", err)
	}
	return scanPeerRows(rows)
}

// ListProperties returns all stored property rows ordered by id.
func (ps *PropertyStoreImpl) ListProperties(ctx context.Context) ([]schema.PeerProperty, error) {
	if ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(propertiesTable, ps.backend)
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY property_id`, peerColumns, quotedTableName)

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	return scanPeerRows(rows)
}

// scanPeerRows converts result rows into PeerProperty values.
func scanPeerRows(rows *sql.Rows) ([]schema.PeerProperty, error) {
	defer func() { _ = rows.Close() }()

	var out []schema.PeerProperty
	for rows.Next() {
		var peer schema.PeerProperty
		var county, saleType sql.NullString
		var assessed, market, lotSize, building, amountDue sql.NullFloat64

		if err := rows.Scan(&peer.ID, &county, &saleType, &assessed, &market, &lotSize, &building, &amountDue); err != nil {
			return nil, fmt.Errorf("failed to scan peer row: %w", err)
		}
		peer.County = county.String
		peer.SaleType = saleType.String
		peer.AssessedValue = nullableFloat(assessed)
		peer.MarketValue = nullableFloat(market)
		peer.LotSizeSqft = nullableFloat(lotSize)
		peer.BuildingSqft = nullableFloat(building)
		peer.AmountDue = nullableFloat(amountDue)
		out = append(out, peer)
	}
	return out, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// SavePeerProperty upserts a property row keyed by its id.
func (ps *PropertyStoreImpl) SavePeerProperty(ctx context.Context, peer schema.PeerProperty) error {
	if ps.db == nil {
		return nil
	}
	if peer.ID == "" {
		return fmt.Errorf("peer property id cannot be empty")
	}

	quotedTableName := quoteTableName(propertiesTable, ps.backend)
	args := []any{
		peer.ID, peer.County, peer.SaleType,
		peer.AssessedValue, peer.MarketValue, peer.LotSizeSqft, peer.BuildingSqft, peer.AmountDue,
	}

	var query string
	switch ps.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (property_id, county, sale_type, assessed_value, market_value, lot_size_sqft, building_sqft, amount_due)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				county = VALUES(county), sale_type = VALUES(sale_type),
				assessed_value = VALUES(assessed_value), market_value = VALUES(market_value),
				lot_size_sqft = VALUES(lot_size_sqft), building_sqft = VALUES(building_sqft),
				amount_due = VALUES(amount_due)
		`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (property_id, county, sale_type, assessed_value, market_value, lot_size_sqft, building_sqft, amount_due)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (property_id) DO UPDATE SET
				county = EXCLUDED.county, sale_type = EXCLUDED.sale_type,
				assessed_value = EXCLUDED.assessed_value, market_value = EXCLUDED.market_value,
				lot_size_sqft = EXCLUDED.lot_size_sqft, building_sqft = EXCLUDED.building_sqft,
				amount_due = EXCLUDED.amount_due
		`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT INTO %s (property_id, county, sale_type, assessed_value, market_value, lot_size_sqft, building_sqft, amount_due)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (property_id) DO UPDATE SET
				county = excluded.county, sale_type = excluded.sale_type,
				assessed_value = excluded.assessed_value, market_value = excluded.market_value,
				lot_size_sqft = excluded.lot_size_sqft, building_sqft = excluded.building_sqft,
				amount_due = excluded.amount_due
		`, quotedTableName)
	}

	if _, err := ps.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert property %s: %w", peer.ID, err)
	}
	return nil
}

// RecordPrediction stores one prediction record.
func (ps *PropertyStoreImpl) RecordPrediction(ctx context.Context, rec schema.PredictionRecord) error {
	if ps.db == nil {
		return nil
	}
	if rec.PropertyID == "" {
		return fmt.Errorf("prediction property id cannot be empty")
	}
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	quotedTableName := quoteTableName(predictionsTable, ps.backend)
	var query string
	switch ps.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (property_id, predicted_score, actual_outcome, actual_roi, recorded_at)
			VALUES ($1, $2, $3, $4, $5)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (property_id, predicted_score, actual_outcome, actual_roi, recorded_at)
			VALUES (?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err := ps.db.ExecContext(ctx, query,
		rec.PropertyID, rec.PredictedScore, rec.ActualOutcome, rec.ActualROI, formatTime(recordedAt, ps.backend))
	if err != nil {
		return fmt.Errorf("failed to insert prediction for %s: %w", rec.PropertyID, err)
	}
	return nil
}

// ListPredictions returns all stored prediction records, oldest first.
func (ps *PropertyStoreImpl) ListPredictions(ctx context.Context) ([]schema.PredictionRecord, error) {
	if ps.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(predictionsTable, ps.backend)
	query := fmt.Sprintf(`
		SELECT property_id, predicted_score, actual_outcome, actual_roi, recorded_at
		FROM %s ORDER BY prediction_id
	`, quotedTableName)

	rows, err := ps.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.PredictionRecord
	for rows.Next() {
		var rec schema.PredictionRecord
		switch ps.backend {
		case schema.SQLiteBackend:
			var recordedAt string
			if err := rows.Scan(&rec.PropertyID, &rec.PredictedScore, &rec.ActualOutcome, &rec.ActualROI, &recordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan prediction row: %w", err)
			}
			rec.RecordedAt, err = parseStoredTime(recordedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
		default: // MySQL and PostgreSQL store native datetimes
			if err := rows.Scan(&rec.PropertyID, &rec.PredictedScore, &rec.ActualOutcome, &rec.ActualROI, &rec.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan prediction row: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetStatus returns store health and row counts.
func (ps *PropertyStoreImpl) GetStatus(ctx context.Context) (schema.StoreStatus, error) {
	status := schema.StoreStatus{Backend: ps.backend}
	if ps.db == nil {
		return status, nil
	}
	if err := ps.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	propQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteTableName(propertiesTable, ps.backend))
	if err := ps.db.QueryRowContext(ctx, propQuery).Scan(&status.TotalProperties); err != nil {
		return status, fmt.Errorf("failed to count properties: %w", err)
	}

	predQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, quoteTableName(predictionsTable, ps.backend))
	if err := ps.db.QueryRowContext(ctx, predQuery).Scan(&status.TotalPredictions); err != nil {
		return status, fmt.Errorf("failed to count predictions: %w", err)
	}

	if status.TotalPredictions > 0 {
		lastQuery := fmt.Sprintf(`SELECT MAX(recorded_at) FROM %s`, quoteTableName(predictionsTable, ps.backend))
		switch ps.backend {
		case schema.SQLiteBackend:
			var last sql.NullString
			if err := ps.db.QueryRowContext(ctx, lastQuery).Scan(&last); err != nil {
				return status, fmt.Errorf("failed to read last prediction time: %w", err)
			}
			if last.Valid {
				if t, err := parseStoredTime(last.String); err == nil {
					status.LastRecordedAt = t
				}
			}
		default:
			var last sql.NullTime
			if err := ps.db.QueryRowContext(ctx, lastQuery).Scan(&last); err != nil {
				return status, fmt.Errorf("failed to read last prediction time: %w", err)
			}
			if last.Valid {
				status.LastRecordedAt = last.Time
			}
		}
	}

	return status, nil
}

// Clear removes all rows from both tables, keeping the schema in place.
func (ps *PropertyStoreImpl) Clear(ctx context.Context) error {
	if ps.db == nil {
		return nil
	}
	for _, table := range []string{propertiesTable, predictionsTable} {
		query := fmt.Sprintf(`DELETE FROM %s`, quoteTableName(table, ps.backend))
		if _, err := ps.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (ps *PropertyStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
