package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const listingPageHTML = `<html><body>
<div class="item">
  <h4><a href="https://www.buenamano.ph/property/12345">Affordable House and Lot in Cavite</a></h4>
  <p>Location: Imus, Cavite</p>
  <p>Price (Php) : 1,500,000.00</p>
  <p>Lot Area (sqm) : 120</p>
  <p>Floor Area (sqm) : 80</p>
</div>
<div class="item">
  <h4><a href="https://www.buenamano.ph/property/67890">Vacant Lot in Batangas</a></h4>
  <p>Location: Lipa, Batangas</p>
  <p>Price (Php) : 900,000.00</p>
</div>
<div class="nav">
  <h4><a href="https://www.buenamano.ph/about">About Us</a></h4>
</div>
</body></html>`

const tablePageHTML = `<html><body>
<table>
  <tr><th>Property Description</th><th>Location</th><th>Lot Area</th><th>Selling Price</th></tr>
  <tr><td>House and Lot</td><td>Imus, Cavite</td><td>120 sqm</td><td>P2,500,000</td></tr>
  <tr><td>Vacant Lot</td><td>Lipa, Batangas</td><td>300 sqm</td><td>P900,000</td></tr>
</table>
</body></html>`

func TestParseListingCards(t *testing.T) {
	blobs, err := ParseListingCards(strings.NewReader(listingPageHTML))
	if err != nil {
		t.Fatalf("ParseListingCards failed: %v", err)
	}

	// The /about link is not a property card.
	if len(blobs) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(blobs))
	}

	first, ok := blobs[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected map blob, got %T", blobs[0])
	}

	if first["title"] != "Affordable House and Lot in Cavite" {
		t.Errorf("Unexpected title: %v", first["title"])
	}

	if first["detail_url"] != "https://www.buenamano.ph/property/12345" {
		t.Errorf("Unexpected detail_url: %v", first["detail_url"])
	}

	if first["price_php"] != "1,500,000.00" {
		t.Errorf("Unexpected price: %v", first["price_php"])
	}

	if first["lot_area_sqm"] != "120" {
		t.Errorf("Unexpected lot area: %v", first["lot_area_sqm"])
	}

	second := blobs[1].(map[string]any)
	if _, ok := second["lot_area_sqm"]; ok {
		t.Error("Second card has no lot area paragraph")
	}
}

func TestParseHTMLTables(t *testing.T) {
	grids, err := ParseHTMLTables(strings.NewReader(tablePageHTML))
	if err != nil {
		t.Fatalf("ParseHTMLTables failed: %v", err)
	}

	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}

	if grids[0].Page != 1 {
		t.Errorf("Expected page 1, got %d", grids[0].Page)
	}

	if len(grids[0].Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(grids[0].Rows))
	}

	if grids[0].Rows[0][0] != "Property Description" {
		t.Errorf("Unexpected header cell: %q", grids[0].Rows[0][0])
	}
}

func TestLoadHTMLBlobs_CardsPreferred(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.html")
	if err := os.WriteFile(path, []byte(listingPageHTML), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	blobs, warnings, err := LoadHTMLBlobs("bpi", path)
	if err != nil {
		t.Fatalf("LoadHTMLBlobs failed: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}

	if len(blobs) != 2 {
		t.Errorf("Expected 2 card blobs, got %d", len(blobs))
	}
}

func TestLoadHTMLBlobs_FallsBackToTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.html")
	if err := os.WriteFile(path, []byte(tablePageHTML), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	blobs, warnings, err := LoadHTMLBlobs("bpi", path)
	if err != nil {
		t.Fatalf("LoadHTMLBlobs failed: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}

	if len(blobs) != 2 {
		t.Fatalf("Expected 2 table-derived blobs, got %d", len(blobs))
	}

	first := blobs[0].(map[string]any)
	if first["Location"] != "Imus, Cavite" {
		t.Errorf("Expected header-mapped field, got %v", first["Location"])
	}
}
