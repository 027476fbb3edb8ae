// Package normalizer applies per-field value transforms to mapped records:
// currency parsing, area unit harmonization, province resolution and
// identifier synthesis. Every transform is total; unparseable input becomes
// null plus a recorded warning, never an error.
package normalizer

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"

	"foreclosed/internal/models"
	"foreclosed/pkg/utils"
)

var firstIntPattern = regexp.MustCompile(`\d+`)

// Normalizer converts mapped records into canonical records.
type Normalizer struct{}

// New creates a normalizer instance.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize produces a CanonicalRecord from a mapped record. All twelve
// canonical fields are always populated (possibly null); warnings carry
// every value that had to be dropped or flagged.
func (n *Normalizer) Normalize(rec models.MappedRecord) (models.CanonicalRecord, []models.Warning) {
	var warnings []models.Warning

	warn := func(kind models.WarningKind, field, detail string) {
		warnings = append(warnings, models.Warning{
			Source: rec.SourceID,
			Kind:   kind,
			Field:  field,
			Detail: fmt.Sprintf("%s: %s", rec.Origin, detail),
		})
	}

	out := models.CanonicalRecord{
		Source:        rec.SourceID,
		Origin:        rec.Origin,
		IDSynthesized: !rec.HasExplicitID,
	}

	out.Title = cleanString(rec.Fields["title"])
	out.Location = cleanString(rec.Fields["location"])
	out.Address = cleanString(rec.Fields["address"])
	out.DetailURL = cleanString(rec.Fields["detail_url"])

	// Price.
	if raw, s := stringValue(rec.Fields["price"]); raw {
		amount, currency, isRange, ok := ParsePrice(s)
		if ok {
			out.Price = &models.Money{Amount: amount, Currency: currency}
			out.PriceIsRange = isRange
		} else {
			warn(models.WarnNormalization, "price", fmt.Sprintf("unparseable price %q", s))
		}
	}

	// Areas.
	out.LotArea = n.normalizeArea(rec, "lot_area", warn)
	out.FloorArea = n.normalizeArea(rec, "floor_area", warn)

	// Province: an explicit source value wins; otherwise resolve from the
	// location via the static city table, never guessed.
	if p := cleanString(rec.Fields["province"]); p != nil {
		out.Province = p
	} else if out.Location != nil {
		if province, ok := ResolveProvince(*out.Location); ok {
			out.Province = &province
		}
	}

	// Property type: explicit value, else classified from the title.
	if t := cleanString(rec.Fields["property_type"]); t != nil {
		out.PropertyType = t
	} else if out.Title != nil {
		if class, ok := ClassifyTitle(*out.Title); ok {
			out.PropertyType = &class
		}
	}

	out.Bedrooms = n.normalizeCount(rec, "bedrooms", warn)
	out.Bathrooms = n.normalizeCount(rec, "bathrooms", warn)

	// Identifier: keep the source's own id when present, otherwise
	// synthesize a stable one from the record's identity tuple.
	if id := cleanString(rec.Fields["property_id"]); id != nil {
		out.PropertyID = *id
	} else {
		out.PropertyID = SynthesizeID(&out)
		out.IDSynthesized = true
	}

	return out, warnings
}

func (n *Normalizer) normalizeArea(rec models.MappedRecord, field string, warn func(models.WarningKind, string, string)) *models.Area {
	raw, s := stringValue(rec.Fields[field])
	if !raw {
		return nil
	}

	value, recognized, ok := ParseArea(s)
	if !ok {
		warn(models.WarnNormalization, field, fmt.Sprintf("unparseable area %q", s))

		return nil
	}

	if !recognized {
		warn(models.WarnUnitUnrecognized, field, fmt.Sprintf("unrecognized unit in %q", s))

		return &models.Area{Raw: s, UnitUnrecognized: true}
	}

	return &models.Area{Value: value, Unit: models.UnitSquareMeters}
}

func (n *Normalizer) normalizeCount(rec models.MappedRecord, field string, warn func(models.WarningKind, string, string)) *int {
	raw, s := stringValue(rec.Fields[field])
	if !raw {
		return nil
	}

	m := firstIntPattern.FindString(s)
	if m == "" {
		warn(models.WarnNormalization, field, fmt.Sprintf("no numeric content in %q", s))

		return nil
	}

	value, err := strconv.Atoi(m)
	if err != nil {
		warn(models.WarnNormalization, field, fmt.Sprintf("unparseable count %q", s))

		return nil
	}

	return &value
}

// SynthesizeID derives a stable identifier from (source, address, price,
// detail_url). Two records with identical inputs synthesize the same id,
// which is what lets re-scraped duplicates collapse.
func SynthesizeID(rec *models.CanonicalRecord) string {
	h := fnv.New64a()

	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}

	write(rec.Source)

	if rec.Address != nil {
		write(*rec.Address)
	} else {
		write("")
	}

	if rec.Price != nil {
		write(strconv.FormatFloat(rec.Price.Amount, 'f', -1, 64) + rec.Price.Currency)
	} else {
		write("")
	}

	if rec.DetailURL != nil {
		write(*rec.DetailURL)
	} else {
		write("")
	}

	return fmt.Sprintf("%s-%016x", rec.Source, h.Sum64())
}

// stringValue renders a raw mapped value as a string for parsing. JSON
// numbers arrive as float64.
func stringValue(v any) (bool, string) {
	switch t := v.(type) {
	case nil:
		return false, ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return false, ""
		}

		return true, s
	case float64:
		return true, strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return true, strconv.Itoa(t)
	default:
		return true, fmt.Sprintf("%v", t)
	}
}

func cleanString(v any) *string {
	ok, s := stringValue(v)
	if !ok {
		return nil
	}

	cleaned := utils.CleanCell(s)
	if cleaned == "" {
		return nil
	}

	return &cleaned
}
