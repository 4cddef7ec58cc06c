// Package intake loads property records from JSON, CSV and Parquet files.
package intake

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taxdeedflow/deedscore/schema"
)

// LoadRecords reads property records from the given path, dispatching on the
// file extension. A path of "-" reads JSON from stdin.
func LoadRecords(path string) ([]schema.PropertyRecord, error) {
	if path == "" {
		return nil, fmt.Errorf("no input file specified")
	}
	if path == "-" {
		return decodeJSONRecords(os.Stdin)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return decodeJSONRecords(f)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return decodeCSVRecords(f)
	case ".parquet":
		return readParquetRecords(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q: expected .json, .csv, or .parquet", filepath.Ext(path))
	}
}

// DecodeJSON reads property records from an in-memory JSON payload. It accepts
// the same shapes as a .json input file.
func DecodeJSON(r io.Reader) ([]schema.PropertyRecord, error) {
	return decodeJSONRecords(r)
}

// decodeJSONRecords accepts either a JSON array of records or a single record
// object. A bare property object without the record envelope also works,
// since county exports often skip it.
func decodeJSONRecords(r io.Reader) ([]schema.PropertyRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("input is empty")
	}

	if strings.HasPrefix(trimmed, "[") {
		var records []schema.PropertyRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return normalizeRecords(records), nil
	}

	var record schema.PropertyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse JSON object: %w", err)
	}
	if record.Property == nil {
		// Bare property object without the {"property": ...} envelope.
		var prop schema.PropertyData
		if err := json.Unmarshal(data, &prop); err != nil {
			return nil, fmt.Errorf("failed to parse property object: %w", err)
		}
		record = schema.PropertyRecord{Property: &prop}
	}
	return normalizeRecords([]schema.PropertyRecord{record}), nil
}

// normalizeRecords fills each property's ID from its parcel id when the
// export carries only one of the two.
func normalizeRecords(records []schema.PropertyRecord) []schema.PropertyRecord {
	for i := range records {
		p := records[i].Property
		if p == nil {
			continue
		}
		if p.ID == "" && p.ParcelID != "" {
			p.ID = p.ParcelID
		}
	}
	return records
}
