package intake

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/taxdeedflow/deedscore/schema"
)

// csvDateFormats lists the date layouts county exports actually use.
var csvDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	time.RFC3339,
}

// columnAliases maps the header vocabulary seen across county exports onto
// canonical column names. Headers are matched after lowercasing and
// replacing spaces and dashes with underscores.
var columnAliases = map[string]string{
	"id":              "id",
	"property_id":     "id",
	"parcel":          "parcel_id",
	"parcel_id":       "parcel_id",
	"parcel_number":   "parcel_id",
	"apn":             "parcel_id",
	"address":         "address",
	"situs_address":   "address",
	"city":            "city",
	"county":          "county",
	"state":           "state",
	"zip":             "zip_code",
	"zip_code":        "zip_code",
	"assessed_value":  "assessed_value",
	"assessed":        "assessed_value",
	"market_value":    "market_value",
	"lot_size_sqft":   "lot_size_sqft",
	"lot_sqft":        "lot_size_sqft",
	"lot_size":        "lot_size_sqft",
	"lot_width_ft":    "lot_width_ft",
	"lot_width":       "lot_width_ft",
	"building_sqft":   "building_sqft",
	"bldg_sqft":       "building_sqft",
	"year_built":      "year_built",
	"bedrooms":        "bedrooms",
	"bathrooms":       "bathrooms",
	"sale_type":       "sale_type",
	"sale_date":       "sale_date",
	"auction_date":    "sale_date",
	"amount_due":      "amount_due",
	"taxes_due":       "amount_due",
	"opening_bid":     "amount_due",
	"zoning":          "zoning",
	"land_use":        "land_use",
	"property_type":   "property_type",
	"property_class":  "property_type",
	"owner":           "owner_name",
	"owner_name":      "owner_name",
}

// decodeCSVRecords reads a header-driven CSV export. Unknown columns are
// ignored; missing or blank cells leave the field absent.
func decodeCSVRecords(r io.Reader) ([]schema.PropertyRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Map column index -> canonical field name
	fields := make(map[int]string, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		if canonical, ok := columnAliases[key]; ok {
			fields[i] = canonical
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("CSV header has no recognized columns")
	}

	var records []schema.PropertyRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		prop := &schema.PropertyData{}
		for i, field := range fields {
			if i >= len(row) {
				continue
			}
			if err := setField(prop, field, strings.TrimSpace(row[i])); err != nil {
				return nil, fmt.Errorf("CSV line %d, column %s: %w", line, field, err)
			}
		}
		records = append(records, schema.PropertyRecord{Property: prop})
	}
	return normalizeRecords(records), nil
}

// setField assigns one CSV cell onto the property. Blank cells are skipped so
// the field stays absent rather than zero.
func setField(p *schema.PropertyData, field, value string) error {
	if value == "" {
		return nil
	}

	switch field {
	case "id":
		p.ID = value
	case "parcel_id":
		p.ParcelID = value
	case "address":
		p.Address = value
	case "city":
		p.City = value
	case "county":
		p.County = value
	case "state":
		p.State = value
	case "zip_code":
		p.ZipCode = value
	case "sale_type":
		p.SaleType = value
	case "zoning":
		p.Zoning = value
	case "land_use":
		p.LandUse = value
	case "property_type":
		p.PropertyType = value
	case "owner_name":
		p.OwnerName = value

	case "assessed_value":
		return setFloat(&p.AssessedValue, value)
	case "market_value":
		return setFloat(&p.MarketValue, value)
	case "lot_size_sqft":
		return setFloat(&p.LotSizeSqft, value)
	case "lot_width_ft":
		return setFloat(&p.LotWidthFt, value)
	case "building_sqft":
		return setFloat(&p.BuildingSqft, value)
	case "bathrooms":
		return setFloat(&p.Bathrooms, value)
	case "amount_due":
		return setFloat(&p.AmountDue, value)

	case "year_built":
		return setInt(&p.YearBuilt, value)
	case "bedrooms":
		return setInt(&p.Bedrooms, value)

	case "sale_date":
		for _, layout := range csvDateFormats {
			if t, err := time.Parse(layout, value); err == nil {
				p.SaleDate = &t
				return nil
			}
		}
		return fmt.Errorf("unrecognized date %q", value)
	}
	return nil
}

func setFloat(dst **float64, value string) error {
	// Currency formatting shows up in county exports
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(value)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", value)
	}
	*dst = &f
	return nil
}

func setInt(dst **int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer %q", value)
	}
	*dst = &n
	return nil
}
