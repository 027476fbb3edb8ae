package consolidate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"foreclosed/internal/config"
	"foreclosed/internal/logger"
	"foreclosed/internal/models"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	return path
}

const bdoJSON = `[
  {"Property_id": "BDO-001", "Property_name": "House and Lot in Imus", "Location": "Imus, Cavite", "Advertised_price": "P2,500,000.00", "Lot_area": "120 sqm"},
  {"Property_id": "BDO-001", "Property_name": "House and Lot in Imus", "Location": "Imus, Cavite", "Advertised_price": "P2,500,000.00", "Lot_area": "120 sqm"},
  {"Property_id": "BDO-002", "Property_name": "Vacant Lot in Lipa", "Location": "Lipa, Batangas", "Advertised_price": "P900,000.00", "Lot_area": "300 sqm"}
]`

const metrobankGrids = `[
  {"page": 1, "rows": [
    ["Property Description", "Location", "Lot Area", "Selling Price"],
    ["Townhouse", "Quezon City", "80 sqm", "P3,100,000"]
  ]}
]`

func testConfig(sources ...config.SourceConfig) *config.Config {
	return &config.Config{
		Consolidator: config.ConsolidatorConfig{
			Sources: sources,
			Output:  config.OutputConfig{Path: "out.json", Format: "json"},
			Dedupe:  config.DedupeConfig{CollapseWarnRatio: 0.9},
			Logging: config.LoggingConfig{Level: "error"},
		},
	}
}

func TestRunner_Run_MergesSourcesInConfigOrder(t *testing.T) {
	dir := t.TempDir()
	bdoPath := writeFixture(t, dir, "bdo.json", bdoJSON)
	mbPath := writeFixture(t, dir, "metrobank.json", metrobankGrids)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: bdoPath, Enabled: true},
		{ID: models.SourceMetrobank, Kind: config.KindPDFGrids, Input: mbPath, Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	ds, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ds.Total != 3 {
		t.Fatalf("Expected 3 records (2 unique bdo + 1 metrobank), got %d", ds.Total)
	}

	// Merge order follows the source order, not goroutine completion order.
	if ds.Records[0].Source != models.SourceBDO {
		t.Errorf("Expected bdo records first, got %s", ds.Records[0].Source)
	}

	if ds.Records[2].Source != models.SourceMetrobank {
		t.Errorf("Expected metrobank records last, got %s", ds.Records[2].Source)
	}

	if len(ds.Sources) != 2 {
		t.Fatalf("Expected stats for 2 sources, got %d", len(ds.Sources))
	}

	if ds.Sources[0].RawCount != 3 || ds.Sources[0].UniqueCount != 2 {
		t.Errorf("Unexpected bdo stats: %+v", ds.Sources[0])
	}

	if ds.Run == nil || ds.Run.RunID == "" {
		t.Error("Expected run metadata to be populated")
	}
}

func TestRunner_Run_Idempotent(t *testing.T) {
	dir := t.TempDir()
	bdoPath := writeFixture(t, dir, "bdo.json", bdoJSON)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: bdoPath, Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	first, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	second, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	a, _ := json.Marshal(first.Records)
	b, _ := json.Marshal(second.Records)

	if string(a) != string(b) {
		t.Error("Identical inputs must produce byte-identical records")
	}
}

func TestRunner_Run_EveryFieldKeyPresent(t *testing.T) {
	dir := t.TempDir()
	bdoPath := writeFixture(t, dir, "bdo.json", bdoJSON)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: bdoPath, Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	ds, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := json.Marshal(ds.Records[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, field := range models.CanonicalFields {
		if _, ok := asMap[field]; !ok {
			t.Errorf("Encoded record missing canonical key %q", field)
		}
	}

	if _, ok := asMap["source"]; !ok {
		t.Error("Encoded record missing source")
	}
}

func TestRunner_Run_FailedSourceDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	bdoPath := writeFixture(t, dir, "bdo.json", bdoJSON)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: bdoPath, Enabled: true},
		{ID: models.SourcePNB, Kind: config.KindPDFGrids, Input: filepath.Join(dir, "missing.json"), Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	ds, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ds.Total != 2 {
		t.Errorf("Expected the healthy source's records, got %d", ds.Total)
	}

	if !ds.Sources[1].Failed {
		t.Error("Expected the missing-input source to be marked failed")
	}

	if ds.Sources[1].Error == "" {
		t.Error("Expected the failure reason to be recorded")
	}
}

func TestRunner_Run_PriceRange(t *testing.T) {
	dir := t.TempDir()
	bdoPath := writeFixture(t, dir, "bdo.json", bdoJSON)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: bdoPath, Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	ds, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ds.PriceRange == nil {
		t.Fatal("Expected a price range")
	}

	if ds.PriceRange.Min != 900000 || ds.PriceRange.Max != 2500000 {
		t.Errorf("Unexpected price range: %+v", ds.PriceRange)
	}
}

func TestRunner_Run_NoSources(t *testing.T) {
	runner := NewRunner(testConfig(), logger.NewNop())

	if _, err := runner.Run(nil); err == nil {
		t.Error("Expected an error for an empty source list")
	}
}

func TestRunner_Run_MalformedBlobsCounted(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bdo.json",
		`[{"Property_id": "BDO-001", "Property_name": "House"}, "not an object"]`)

	sources := []config.SourceConfig{
		{ID: models.SourceBDO, Kind: config.KindJSON, Input: path, Enabled: true},
	}

	runner := NewRunner(testConfig(sources...), logger.NewNop())

	ds, err := runner.Run(sources)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if ds.Sources[0].SkippedBlobs != 1 {
		t.Errorf("Expected 1 skipped blob, got %d", ds.Sources[0].SkippedBlobs)
	}

	if ds.Sources[0].RawCount != 1 {
		t.Errorf("Expected 1 raw record, got %d", ds.Sources[0].RawCount)
	}
}
