package normalizer

import "strings"

// ClassifyTitle derives a property classification from free-form title
// text for sources that carry no explicit type column.
func ClassifyTitle(title string) (string, bool) {
	lower := strings.ToLower(title)

	switch {
	case strings.Contains(lower, "condo"):
		return "Condominium", true
	case strings.Contains(lower, "house"), strings.Contains(lower, "residential"):
		return "Residential", true
	case strings.Contains(lower, "commercial"):
		return "Commercial", true
	case strings.Contains(lower, "industrial"):
		return "Industrial", true
	case strings.Contains(lower, "agricultural"), strings.Contains(lower, "farm"):
		return "Agricultural", true
	case strings.Contains(lower, "beach"):
		return "Beach Property", true
	case strings.Contains(lower, "lot"):
		return "Lot Only", true
	default:
		return "", false
	}
}
