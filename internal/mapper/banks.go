package mapper

import (
	"sort"

	"foreclosed/internal/models"
)

// registry holds the declarative mapping for each of the six banks. Raw
// path lists carry every spelling a source has been observed to emit, in
// precedence order.
var registry = map[string]*FieldMapping{
	models.SourceBDO: {
		Source: models.SourceBDO,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"Property_id", "property_id"}},
			{Canonical: "property_type", Paths: []string{"Classification", "classification", "type"}},
			{Canonical: "title", Paths: []string{"Property_name", "property_name", "title"}},
			{Canonical: "location", Paths: []string{"Location", "location"}},
			{Canonical: "province", Paths: []string{"Province", "province"}},
			{Canonical: "address", Paths: []string{"Address", "address"}},
			{Canonical: "price", Paths: []string{"Advertised_price", "Price", "price"}},
			{Canonical: "lot_area", Paths: []string{"Lot_area", "lot_area", "area"}},
			{Canonical: "floor_area", Paths: []string{"Floor_area", "floor_area"}},
			{Canonical: "bedrooms", Paths: []string{"Bedrooms", "bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"Bathrooms", "bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"Additional_information", "detail_url", "url"}},
		},
	},
	models.SourceBPI: {
		Source: models.SourceBPI,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"property_id", "ref_no"}},
			{Canonical: "property_type", Paths: []string{"classification", "property_type"}},
			{Canonical: "title", Paths: []string{"title"}},
			{Canonical: "location", Paths: []string{"location"}},
			{Canonical: "province", Paths: []string{"province"}},
			{Canonical: "address", Paths: []string{"address"}},
			{Canonical: "price", Paths: []string{"price_php", "price", "Price"}},
			{Canonical: "lot_area", Paths: []string{"lot_area_sqm", "lot_area", "area"}},
			{Canonical: "floor_area", Paths: []string{"floor_area_sqm", "floor_area"}},
			{Canonical: "bedrooms", Paths: []string{"bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"detail_url", "url"}},
		},
	},
	models.SourceSecurityBank: {
		Source: models.SourceSecurityBank,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"property_id"}},
			{Canonical: "property_type", Paths: []string{"Property_type", "property_type"}},
			{Canonical: "title", Paths: []string{"Property_description", "property_description", "title"}},
			{Canonical: "location", Paths: []string{"Location", "location"}},
			{Canonical: "province", Paths: []string{"province"}},
			{Canonical: "address", Paths: []string{"address"}},
			{Canonical: "price", Paths: []string{"suggested_price", "sale_price", "price"}},
			{Canonical: "lot_area", Paths: []string{"Lot_area", "lot_area"}},
			{Canonical: "floor_area", Paths: []string{"Floor_area", "floor_area"}},
			{Canonical: "bedrooms", Paths: []string{"bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"detail_url"}},
		},
	},
	models.SourceMetrobank: {
		Source: models.SourceMetrobank,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"Property No.", "Property No"}},
			{Canonical: "property_type", Paths: []string{"Classification", "Type", "Property Type"}},
			{Canonical: "title", Paths: []string{"Property Description", "Description", "Property"}},
			{Canonical: "location", Paths: []string{"Location"}},
			{Canonical: "province", Paths: []string{"Province"}},
			{Canonical: "address", Paths: []string{"Address", "Location"}},
			{Canonical: "price", Paths: []string{"Price", "Selling Price", "Minimum Price"}},
			{Canonical: "lot_area", Paths: []string{"Lot Area", "Area"}},
			{Canonical: "floor_area", Paths: []string{"Floor Area"}},
			{Canonical: "bedrooms", Paths: []string{"Bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"Bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"detail_url"}},
		},
	},
	models.SourceEastWest: {
		Source: models.SourceEastWest,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"property_no"}},
			{Canonical: "property_type", Paths: []string{"type"}},
			{Canonical: "title", Paths: []string{"property_name"}},
			{Canonical: "location", Paths: []string{"city", "location"}},
			{Canonical: "province", Paths: []string{"province"}},
			{Canonical: "address", Paths: []string{"location"}},
			{Canonical: "price", Paths: []string{"price"}},
			{Canonical: "lot_area", Paths: []string{"lot_area"}},
			{Canonical: "floor_area", Paths: []string{"floor_area"}},
			{Canonical: "bedrooms", Paths: []string{"bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"url", "detail_url"}},
		},
	},
	models.SourcePNB: {
		Source: models.SourcePNB,
		Rules: []Rule{
			{Canonical: "property_id", Paths: []string{"Title_ID", "Title/CR No."}},
			{Canonical: "property_type", Paths: []string{"Property use"}},
			{Canonical: "title", Paths: []string{"Location/Description"}},
			{Canonical: "location", Paths: []string{"City/Municipality"}},
			{Canonical: "province", Paths: []string{"Province"}},
			{Canonical: "address", Paths: []string{"Location/Description"}},
			{Canonical: "price", Paths: []string{"Minimum Price"}},
			{Canonical: "lot_area", Paths: []string{"Area"}},
			{Canonical: "floor_area", Paths: []string{"Floor Area"}},
			{Canonical: "bedrooms", Paths: []string{"bedrooms"}},
			{Canonical: "bathrooms", Paths: []string{"bathrooms"}},
			{Canonical: "detail_url", Paths: []string{"detail_url"}},
		},
	},
}

// ForSource returns the registered mapping for a bank identifier.
func ForSource(id string) (*FieldMapping, error) {
	m, ok := registry[id]
	if !ok {
		return nil, ErrUnknownSource
	}

	return m, nil
}

// Sources lists every registered source identifier, sorted.
func Sources() []string {
	out := make([]string, 0, len(registry))
	for id := range registry {
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}

// ValidateAll checks every registered mapping for canonical-set
// completeness. Run at startup so a defective mapping aborts before any
// record is read.
func ValidateAll() error {
	for _, id := range Sources() {
		if err := registry[id].Validate(); err != nil {
			return err
		}
	}

	return nil
}
