package sink

import (
	"database/sql"
	"fmt"
	"strings"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"

	"foreclosed/internal/models"
)

const createPropertiesTable = `
CREATE TABLE IF NOT EXISTS properties (
	property_id    TEXT NOT NULL,
	property_type  TEXT,
	title          TEXT,
	location       TEXT,
	province       TEXT,
	address        TEXT,
	price          REAL,
	currency       TEXT,
	price_is_range INTEGER NOT NULL DEFAULT 0,
	lot_area_sqm   REAL,
	floor_area_sqm REAL,
	bedrooms       INTEGER,
	bathrooms      INTEGER,
	detail_url     TEXT,
	source         TEXT NOT NULL
);
DELETE FROM properties;

CREATE TABLE IF NOT EXISTS source_stats (
	source          TEXT PRIMARY KEY,
	raw_count       INTEGER NOT NULL,
	unique_count    INTEGER NOT NULL,
	duplicate_ratio REAL NOT NULL,
	skipped_blobs   INTEGER NOT NULL,
	warnings        INTEGER NOT NULL,
	failed          INTEGER NOT NULL
);
DELETE FROM source_stats;
`

// WriteSQLite writes the dataset into a SQLite database for downstream
// analysis. Existing rows are replaced; the run is a batch snapshot, not an
// incremental update.
func WriteSQLite(ds *models.ConsolidatedDataset, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createPropertiesTable); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := "?" + strings.Repeat(", ?", len(columnNames)-1)

	stmt, err := tx.Prepare("INSERT INTO properties (" + strings.Join(columnNames, ", ") + ") VALUES (" + placeholders + ")")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range ds.Records {
		rec := &ds.Records[i]
		if _, err := stmt.Exec(propertyArgs(rec)...); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.PropertyID, err)
		}
	}

	for _, s := range ds.Sources {
		_, err := tx.Exec(
			"INSERT INTO source_stats (source, raw_count, unique_count, duplicate_ratio, skipped_blobs, warnings, failed) VALUES (?, ?, ?, ?, ?, ?, ?)",
			s.Source, s.RawCount, s.UniqueCount, s.DuplicateRatio, s.SkippedBlobs, len(s.Warnings), s.Failed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stats for %s: %w", s.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

func propertyArgs(rec *models.CanonicalRecord) []any {
	var price, currency any
	if rec.Price != nil {
		price = rec.Price.Amount
		currency = rec.Price.Currency
	}

	return []any{
		rec.PropertyID,
		nullString(rec.PropertyType),
		nullString(rec.Title),
		nullString(rec.Location),
		nullString(rec.Province),
		nullString(rec.Address),
		price,
		currency,
		rec.PriceIsRange,
		areaArg(rec.LotArea),
		areaArg(rec.FloorArea),
		nullInt(rec.Bedrooms),
		nullInt(rec.Bathrooms),
		nullString(rec.DetailURL),
		rec.Source,
	}
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}

	return *v
}

func areaArg(a *models.Area) any {
	if a == nil || a.UnitUnrecognized {
		return nil
	}

	return a.Value
}
