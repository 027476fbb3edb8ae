package report

import (
	"strings"
	"testing"

	"foreclosed/internal/models"
	"foreclosed/pkg/metadata"
)

func sampleDataset() *models.ConsolidatedDataset {
	price := &models.Money{Amount: 1200000, Currency: "PHP"}
	title := "House and Lot"

	return &models.ConsolidatedDataset{
		Run: metadata.NewRun(),
		Records: []models.CanonicalRecord{
			{PropertyID: "BDO-001", Title: &title, Price: price, Source: models.SourceBDO},
		},
		Sources: []models.SourceStats{
			{
				Source:         models.SourceBDO,
				RawCount:       18,
				UniqueCount:    1,
				DuplicateRatio: 0.944,
				Warnings: []models.Warning{
					{Source: models.SourceBDO, Kind: models.WarnDuplicateRatio, Detail: "17 of 18 records were duplicates"},
				},
			},
			{
				Source: models.SourcePNB,
				Failed: true,
				Error:  "failed to read grids file",
			},
		},
		PriceRange: &models.PriceRange{Min: 1200000, Max: 1200000, Currency: "PHP"},
		NullCounts: map[string]int{"bedrooms": 1, "bathrooms": 1},
		Total:      1,
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleDataset())

	for _, want := range []string{
		"Consolidation Summary",
		"| Source ",
		"| bdo ",
		"94.4%",
		"failed: failed to read grids file",
		"Total records: 1",
		"Price range: PHP 1200000.00 - 1200000.00",
		"| bedrooms ",
		"[bdo] duplicate_ratio: 17 of 18 records were duplicates",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q\n--- report ---\n%s", want, out)
		}
	}
}

func TestRender_NoPriceRange(t *testing.T) {
	ds := sampleDataset()
	ds.PriceRange = nil

	out := Render(ds)

	if strings.Contains(out, "Price range:") {
		t.Error("Price range line must be omitted when no record has a price")
	}
}

func TestRenderTable_Alignment(t *testing.T) {
	out := renderTable(
		[]string{"Field", "Value"},
		[][]string{
			{"province", "Metro Manila"},
			{"price", "₱1,200,000"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines (header, separator, 2 rows), got %d", len(lines))
	}

	// Every line ends at the same display column despite the wide peso rune.
	if !strings.HasPrefix(lines[1], "| ---") {
		t.Errorf("Expected a dashed separator, got %q", lines[1])
	}
}
