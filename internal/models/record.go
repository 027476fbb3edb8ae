// Package models defines data structures shared by the extraction, mapping,
// normalization and consolidation stages.
package models

// Known bank source identifiers.
const (
	SourceBDO          = "bdo"
	SourceBPI          = "bpi"
	SourceSecurityBank = "security_bank"
	SourceMetrobank    = "metrobank"
	SourceEastWest     = "eastwest_bank"
	SourcePNB          = "pnb"
)

// KnownSources lists every supported bank identifier in canonical order.
var KnownSources = []string{
	SourceBDO,
	SourceBPI,
	SourceSecurityBank,
	SourceMetrobank,
	SourceEastWest,
	SourcePNB,
}

// IsKnownSource reports whether id is one of the six bank identifiers.
func IsKnownSource(id string) bool {
	for _, s := range KnownSources {
		if s == id {
			return true
		}
	}

	return false
}

// RawRecord is one property listing as delivered by a source, before any
// schema mapping. Fields holds raw field name -> value (string, number,
// nil, or a nested map). Immutable once produced by the reader.
type RawRecord struct {
	Fields   map[string]any
	SourceID string
	Origin   string
}

// MappedRecord is the output of the schema mapper: canonical field name ->
// raw (still unnormalized) value. HasExplicitID records whether property_id
// came from the source itself, which the deduplicator needs to pick its
// grouping strategy.
type MappedRecord struct {
	Fields        map[string]any
	SourceID      string
	Origin        string
	HasExplicitID bool
}

// Money is a normalized price: decimal amount plus ISO-ish currency code.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Area is a normalized surface measurement. When the unit could not be
// recognized the original text is preserved in Raw and UnitUnrecognized is
// set instead of discarding the value.
type Area struct {
	Value            float64 `json:"value,omitempty"`
	Unit             string  `json:"unit,omitempty"`
	Raw              string  `json:"raw,omitempty"`
	UnitUnrecognized bool    `json:"unit_unrecognized,omitempty"`
}

// UnitSquareMeters is the single unit all recognized areas normalize to.
const UnitSquareMeters = "sqm"

// CurrencyPHP is the default currency for prices without an explicit code.
const CurrencyPHP = "PHP"

// CanonicalRecord is one property in the unified schema. Every canonical
// field is always present in the JSON encoding; absent values encode as null.
type CanonicalRecord struct {
	PropertyID   string  `json:"property_id"`
	PropertyType *string `json:"property_type"`
	Title        *string `json:"title"`
	Location     *string `json:"location"`
	Province     *string `json:"province"`
	Address      *string `json:"address"`
	Price        *Money  `json:"price"`
	LotArea      *Area   `json:"lot_area"`
	FloorArea    *Area   `json:"floor_area"`
	Bedrooms     *int    `json:"bedrooms"`
	Bathrooms    *int    `json:"bathrooms"`
	DetailURL    *string `json:"detail_url"`
	Source       string  `json:"source"`
	PriceIsRange bool    `json:"price_is_range,omitempty"`

	// Not part of the canonical schema; carried for dedup and diagnostics.
	IDSynthesized bool   `json:"-"`
	Origin        string `json:"-"`
}

// CanonicalFields is the fixed canonical field set, in output column order.
// Source is set by the engine and therefore not part of the mappable set.
var CanonicalFields = []string{
	"property_id",
	"property_type",
	"title",
	"location",
	"province",
	"address",
	"price",
	"lot_area",
	"floor_area",
	"bedrooms",
	"bathrooms",
	"detail_url",
}

// Field returns the value of a canonical field by name and whether it is
// null. Unknown names report null.
func (r *CanonicalRecord) Field(name string) (any, bool) {
	switch name {
	case "property_id":
		return r.PropertyID, r.PropertyID == ""
	case "property_type":
		return strVal(r.PropertyType), r.PropertyType == nil
	case "title":
		return strVal(r.Title), r.Title == nil
	case "location":
		return strVal(r.Location), r.Location == nil
	case "province":
		return strVal(r.Province), r.Province == nil
	case "address":
		return strVal(r.Address), r.Address == nil
	case "price":
		if r.Price == nil {
			return nil, true
		}

		return *r.Price, false
	case "lot_area":
		if r.LotArea == nil {
			return nil, true
		}

		return *r.LotArea, false
	case "floor_area":
		if r.FloorArea == nil {
			return nil, true
		}

		return *r.FloorArea, false
	case "bedrooms":
		if r.Bedrooms == nil {
			return nil, true
		}

		return *r.Bedrooms, false
	case "bathrooms":
		if r.Bathrooms == nil {
			return nil, true
		}

		return *r.Bathrooms, false
	case "detail_url":
		return strVal(r.DetailURL), r.DetailURL == nil
	default:
		return nil, true
	}
}

// NonNullCount counts populated canonical fields; the deduplicator uses it
// to pick the most complete record in a duplicate group.
func (r *CanonicalRecord) NonNullCount() int {
	count := 0

	for _, name := range CanonicalFields {
		if _, isNull := r.Field(name); !isNull {
			count++
		}
	}

	return count
}

func strVal(p *string) any {
	if p == nil {
		return nil
	}

	return *p
}
