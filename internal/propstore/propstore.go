// Package propstore persists scored properties and prediction history.
package propstore

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/schema"
)

// Table names for the property store.
const (
	propertiesTable  = "deedscore_properties"
	predictionsTable = "deedscore_predictions"
)

// PropertyStoreImpl implements the PropertyStore interface over database/sql.
type PropertyStoreImpl struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
	connStr    string
}

var _ contract.PropertyStore = &PropertyStoreImpl{} // Compile-time check

// NewPropertyStore initializes and returns a new PropertyStore based on the
// backend type. NoneBackend yields a no-op store where every read returns
// empty results.
func NewPropertyStore(backend schema.StoreBackend, connStr string) (contract.PropertyStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return &PropertyStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if err := createStoreTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create store tables: %w", err)
	}

	return &PropertyStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// createStoreTables creates the store tables when they do not yet exist.
func createStoreTables(db *sql.DB, backend schema.StoreBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{propertiesTable, getCreatePropertiesQuery(backend)},
		{predictionsTable, getCreatePredictionsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreatePropertiesQuery returns the CREATE TABLE query for deedscore_properties.
func getCreatePropertiesQuery(backend schema.StoreBackend) string {
	quotedTableName := quoteTableName(propertiesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				property_id VARCHAR(255) PRIMARY KEY,
				county VARCHAR(255),
				sale_type VARCHAR(100),
				assessed_value DOUBLE,
				market_value DOUBLE,
				lot_size_sqft DOUBLE,
				building_sqft DOUBLE,
				amount_due DOUBLE
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				property_id TEXT PRIMARY KEY,
				county TEXT,
				sale_type TEXT,
				assessed_value DOUBLE PRECISION,
				market_value DOUBLE PRECISION,
				lot_size_sqft DOUBLE PRECISION,
				building_sqft DOUBLE PRECISION,
				amount_due DOUBLE PRECISION
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				property_id TEXT PRIMARY KEY,
				county TEXT,
				sale_type TEXT,
				assessed_value REAL,
				market_value REAL,
				lot_size_sqft REAL,
				building_sqft REAL,
				amount_due REAL
			);
		`, quotedTableName)
	}
}

// getCreatePredictionsQuery returns the CREATE TABLE query for deedscore_predictions.
func getCreatePredictionsQuery(backend schema.StoreBackend) string {
	quotedTableName := quoteTableName(predictionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				property_id VARCHAR(255) NOT NULL,
				predicted_score DOUBLE NOT NULL,
				actual_outcome DOUBLE NOT NULL,
				actual_roi DOUBLE NOT NULL,
				recorded_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id BIGSERIAL PRIMARY KEY,
				property_id TEXT NOT NULL,
				predicted_score DOUBLE PRECISION NOT NULL,
				actual_outcome DOUBLE PRECISION NOT NULL,
				actual_roi DOUBLE PRECISION NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				prediction_id INTEGER PRIMARY KEY AUTOINCREMENT,
				property_id TEXT NOT NULL,
				predicted_score REAL NOT NULL,
				actual_outcome REAL NOT NULL,
				actual_roi REAL NOT NULL,
				recorded_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}
