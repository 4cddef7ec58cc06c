package propstore

import (
	"fmt"
	"time"

	"github.com/taxdeedflow/deedscore/schema"
)

// quoteTableName quotes a table identifier for the given backend.
func quoteTableName(name string, backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // PostgreSQL and SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// formatTime converts a time value into the representation each backend
// stores. SQLite keeps RFC3339Nano strings; the others use native datetimes.
func formatTime(t time.Time, backend schema.StoreBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseStoredTime reverses formatTime for SQLite-stored values.
func parseStoredTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
