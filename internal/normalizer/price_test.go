package normalizer

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		amount   float64
		currency string
		isRange  bool
		ok       bool
	}{
		{"p prefix with decimals", "P102,000.00", 102000, "PHP", false, true},
		{"peso sign", "₱102,000", 102000, "PHP", false, true},
		{"trailing currency code", "102000.00 PHP", 102000, "PHP", false, true},
		{"leading currency code", "PHP 1,500,000", 1500000, "PHP", false, true},
		{"pesos word", "1,500,000 pesos", 1500000, "PHP", false, true},
		{"bare number", "850000", 850000, "PHP", false, true},
		{"range takes lower bound", "1,000,000 - 1,200,000", 1000000, "PHP", true, true},
		{"range with p prefix", "P1,000,000 - 1,200,000", 1000000, "PHP", true, true},
		{"no numeric content", "Price upon request", 0, "", false, false},
		{"empty", "", 0, "", false, false},
		{"whitespace only", "   ", 0, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, currency, isRange, ok := ParsePrice(tt.raw)

			if ok != tt.ok {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}

			if !ok {
				return
			}

			if amount != tt.amount {
				t.Errorf("ParsePrice(%q) amount = %v, want %v", tt.raw, amount, tt.amount)
			}

			if currency != tt.currency {
				t.Errorf("ParsePrice(%q) currency = %q, want %q", tt.raw, currency, tt.currency)
			}

			if isRange != tt.isRange {
				t.Errorf("ParsePrice(%q) isRange = %v, want %v", tt.raw, isRange, tt.isRange)
			}
		})
	}
}

func TestParsePrice_EquivalentSpellingsAgree(t *testing.T) {
	spellings := []string{"P102,000.00", "₱102,000", "102000.00 PHP"}

	for _, raw := range spellings {
		amount, currency, _, ok := ParsePrice(raw)
		if !ok {
			t.Fatalf("ParsePrice(%q) failed", raw)
		}

		if amount != 102000 || currency != "PHP" {
			t.Errorf("ParsePrice(%q) = %v %s, want 102000 PHP", raw, amount, currency)
		}
	}
}
