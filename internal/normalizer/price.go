package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Currency tokens the sources emit: "₱102,000", "PHP 102,000",
	// "102000.00 PHP", "1,500,000 pesos".
	currencyTokenPattern = regexp.MustCompile(`(?i)(₱|php|pesos?)`)
	numberPattern        = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	rangePattern         = regexp.MustCompile(`^\s*(\d[\d,]*(?:\.\d+)?)\s*[-–]\s*(\d[\d,]*(?:\.\d+)?)\s*$`)
)

// ParsePrice normalizes a raw price into a decimal amount plus currency
// code. Ranges ("1,000,000 - 1,200,000") yield the lower bound with
// isRange set. Unparseable input reports ok=false; the caller records a
// warning and stores null.
func ParsePrice(raw string) (amount float64, currency string, isRange, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, "", false, false
	}

	s = currencyTokenPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// A bare "P" prefix ("P102,000.00") survives the token pass because it
	// has no boundary of its own.
	if len(s) > 1 && (s[0] == 'P' || s[0] == 'p') {
		rest := strings.TrimSpace(s[1:])
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			s = rest
		}
	}

	if m := rangePattern.FindStringSubmatch(s); m != nil {
		lower, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			return 0, "", false, false
		}

		return lower, "PHP", true, true
	}

	num := numberPattern.FindString(s)
	if num == "" {
		return 0, "", false, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0, "", false, false
	}

	return value, "PHP", false, true
}
