package intake

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/taxdeedflow/deedscore/schema"
)

// parquetProperty is the Parquet row layout for property intake. It mirrors
// the columns the acquisition pipeline writes; every column except the id is
// optional.
type parquetProperty struct {
	ID            string   `parquet:"id,snappy"`
	ParcelID      *string  `parquet:"parcel_id,optional,snappy"`
	Address       *string  `parquet:"address,optional,snappy"`
	City          *string  `parquet:"city,optional,snappy"`
	County        *string  `parquet:"county,optional,snappy"`
	State         *string  `parquet:"state,optional,snappy"`
	ZipCode       *string  `parquet:"zip_code,optional,snappy"`
	AssessedValue *float64 `parquet:"assessed_value,optional,snappy"`
	MarketValue   *float64 `parquet:"market_value,optional,snappy"`
	LotSizeSqft   *float64 `parquet:"lot_size_sqft,optional,snappy"`
	LotWidthFt    *float64 `parquet:"lot_width_ft,optional,snappy"`
	BuildingSqft  *float64 `parquet:"building_sqft,optional,snappy"`
	YearBuilt     *int32   `parquet:"year_built,optional,snappy"`
	SaleType      *string  `parquet:"sale_type,optional,snappy"`
	AmountDue     *float64 `parquet:"amount_due,optional,snappy"`
	Zoning        *string  `parquet:"zoning,optional,snappy"`
	LandUse       *string  `parquet:"land_use,optional,snappy"`
	PropertyType  *string  `parquet:"property_type,optional,snappy"`
	OwnerName     *string  `parquet:"owner_name,optional,snappy"`
}

// readParquetRecords loads property rows from a Parquet file.
func readParquetRecords(path string) ([]schema.PropertyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := parquet.NewGenericReader[parquetProperty](f)
	defer func() { _ = reader.Close() }()

	rows := make([]parquetProperty, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	rows = rows[:n]

	records := make([]schema.PropertyRecord, 0, len(rows))
	for _, row := range rows {
		prop := &schema.PropertyData{
			ID:            row.ID,
			ParcelID:      deref(row.ParcelID),
			Address:       deref(row.Address),
			City:          deref(row.City),
			County:        deref(row.County),
			State:         deref(row.State),
			ZipCode:       deref(row.ZipCode),
			AssessedValue: row.AssessedValue,
			MarketValue:   row.MarketValue,
			LotSizeSqft:   row.LotSizeSqft,
			LotWidthFt:    row.LotWidthFt,
			BuildingSqft:  row.BuildingSqft,
			SaleType:      deref(row.SaleType),
			AmountDue:     row.AmountDue,
			Zoning:        deref(row.Zoning),
			LandUse:       deref(row.LandUse),
			PropertyType:  deref(row.PropertyType),
			OwnerName:     deref(row.OwnerName),
		}
		if row.YearBuilt != nil {
			year := int(*row.YearBuilt)
			prop.YearBuilt = &year
		}
		records = append(records, schema.PropertyRecord{Property: prop})
	}
	return normalizeRecords(records), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
