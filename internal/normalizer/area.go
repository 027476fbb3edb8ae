package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var areaNumberPattern = regexp.MustCompile(`^([\d,]+(?:\.\d+)?)\s*(.*)$`)

// squareMetersPerHectare converts hectare listings (rural lots) to sqm.
const squareMetersPerHectare = 10000

// ParseArea normalizes an area measurement to square meters. Recognized
// unit spellings: the sqm family (sqm, sq.m., sqms, square meters, any
// casing) and hectares. A bare number is taken as square meters, the
// dominant convention across the sources. An unrecognized unit reports
// recognized=false so the caller can pass the text through flagged instead
// of discarding it; ok=false means no numeric content at all.
func ParseArea(raw string) (value float64, recognized, ok bool) {
	s := strings.TrimSpace(raw)

	m := areaNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false, false
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false, false
	}

	unit := normalizeUnit(m[2])

	switch unit {
	case "", "sqm", "squaremeter", "squaremeters":
		return num, true, true
	case "ha", "hectare", "hectares":
		return num * squareMetersPerHectare, true, true
	default:
		return num, false, true
	}
}

func normalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	u = strings.ReplaceAll(u, ".", "")
	u = strings.ReplaceAll(u, " ", "")

	// Collapse the sqm spelling family: sqm, sqms, sq m, sq.m., sqm.
	switch u {
	case "sqm", "sqms", "sqmtr", "sqmtrs", "sqmeter", "sqmeters":
		return "sqm"
	}

	return u
}
