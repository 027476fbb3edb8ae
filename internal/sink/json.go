package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"foreclosed/internal/models"
)

// WriteJSON writes the canonical record array. Field order and record order
// are deterministic, so identical inputs produce byte-identical files.
func WriteJSON(ds *models.ConsolidatedDataset, path string) error {
	data, err := json.MarshalIndent(ds.Records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// WriteSummaryJSON writes the structured summary report: run provenance,
// per-source statistics with every warning, and aggregate counts.
func WriteSummaryJSON(ds *models.ConsolidatedDataset, path string) error {
	summary := struct {
		Run        any                  `json:"run"`
		Sources    []models.SourceStats `json:"sources"`
		PriceRange *models.PriceRange   `json:"price_range"`
		NullCounts map[string]int       `json:"null_counts"`
		Total      int                  `json:"total"`
	}{
		Run:        ds.Run,
		Sources:    ds.Sources,
		PriceRange: ds.PriceRange,
		NullCounts: ds.NullCounts,
		Total:      ds.Total,
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}
