// Package sink writes the consolidated dataset to its output formats.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"foreclosed/internal/models"
)

// Write writes the dataset records to path in the given format.
func Write(ds *models.ConsolidatedDataset, path, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch format {
	case "json":
		return WriteJSON(ds, path)
	case "csv":
		return WriteCSV(ds, path)
	case "xlsx":
		return WriteXLSX(ds, path)
	case "sqlite":
		return WriteSQLite(ds, path)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// columnNames is the flat column layout used by the CSV, XLSX and SQLite
// sinks: the canonical field set with price and areas unpacked.
var columnNames = []string{
	"property_id",
	"property_type",
	"title",
	"location",
	"province",
	"address",
	"price",
	"currency",
	"price_is_range",
	"lot_area_sqm",
	"floor_area_sqm",
	"bedrooms",
	"bathrooms",
	"detail_url",
	"source",
}

// recordStrings flattens one record into the column layout. Null values
// become empty strings.
func recordStrings(rec *models.CanonicalRecord) []string {
	price, currency, isRange := "", "", ""
	if rec.Price != nil {
		price = strconv.FormatFloat(rec.Price.Amount, 'f', -1, 64)
		currency = rec.Price.Currency
		isRange = strconv.FormatBool(rec.PriceIsRange)
	}

	return []string{
		rec.PropertyID,
		deref(rec.PropertyType),
		deref(rec.Title),
		deref(rec.Location),
		deref(rec.Province),
		deref(rec.Address),
		price,
		currency,
		isRange,
		areaString(rec.LotArea),
		areaString(rec.FloorArea),
		intString(rec.Bedrooms),
		intString(rec.Bathrooms),
		deref(rec.DetailURL),
		rec.Source,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func intString(v *int) string {
	if v == nil {
		return ""
	}

	return strconv.Itoa(*v)
}

func areaString(a *models.Area) string {
	if a == nil {
		return ""
	}

	if a.UnitUnrecognized {
		return a.Raw
	}

	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}
