package normalizer

import "strings"

// cityProvince pairs a known Philippine city token with its province.
// Matching is containment-based and ordered, with multi-word city names
// ahead of shorter tokens so "Quezon City" never falls through to a
// partial match.
type cityProvince struct {
	city     string
	province string
}

const metroManila = "Metro Manila"

var cityProvinces = []cityProvince{
	// Metro Manila cities.
	{"quezon city", metroManila},
	{"las piñas", metroManila},
	{"las pinas", metroManila},
	{"parañaque", metroManila},
	{"paranaque", metroManila},
	{"san juan", metroManila},
	{"mandaluyong", metroManila},
	{"muntinlupa", metroManila},
	{"valenzuela", metroManila},
	{"caloocan", metroManila},
	{"marikina", metroManila},
	{"malabon", metroManila},
	{"navotas", metroManila},
	{"pateros", metroManila},
	{"makati", metroManila},
	{"taguig", metroManila},
	{"manila", metroManila},
	{"pasig", metroManila},
	{"pasay", metroManila},

	// Frequently listed provincial cities.
	{"cagayan de oro", "Misamis Oriental"},
	{"santa rosa", "Laguna"},
	{"dasmariñas", "Cavite"},
	{"dasmarinas", "Cavite"},
	{"calatagan", "Batangas"},
	{"meycauayan", "Bulacan"},
	{"calamba", "Laguna"},
	{"antipolo", "Rizal"},
	{"angeles", "Pampanga"},
	{"bacolod", "Negros Occidental"},
	{"batangas", "Batangas"},
	{"malolos", "Bulacan"},
	{"bulacan", "Bulacan"},
	{"pampanga", "Pampanga"},
	{"bacoor", "Cavite"},
	{"cavite", "Cavite"},
	{"baguio", "Benguet"},
	{"iloilo", "Iloilo"},
	{"biñan", "Laguna"},
	{"binan", "Laguna"},
	{"laguna", "Laguna"},
	{"davao", "Davao del Sur"},
	{"rizal", "Rizal"},
	{"lipa", "Batangas"},
	{"cebu", "Cebu"},
	{"imus", "Cavite"},
}

// ResolveProvince maps a location string to its province via the static
// city table. Unknown cities return ok=false; the caller keeps the
// original location text and leaves province null rather than guessing.
func ResolveProvince(location string) (string, bool) {
	lower := strings.ToLower(location)

	for _, entry := range cityProvinces {
		if strings.Contains(lower, entry.city) {
			return entry.province, true
		}
	}

	return "", false
}
