package models

import "foreclosed/pkg/metadata"

// SourceStats summarizes one source's run through the pipeline.
type SourceStats struct {
	Source         string         `json:"source"`
	RawCount       int            `json:"raw_count"`
	SkippedBlobs   int            `json:"skipped_blobs"`
	UniqueCount    int            `json:"unique_count"`
	DuplicateRatio float64        `json:"duplicate_ratio"`
	NullCounts     map[string]int `json:"null_counts"`
	Warnings       []Warning      `json:"warnings,omitempty"`
	Failed         bool           `json:"failed,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// PriceRange is the observed min/max normalized price across the dataset.
type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ConsolidatedDataset is the final merged output: every unique canonical
// record in source-registry order plus aggregate statistics. Built fresh on
// each run; never incrementally updated.
type ConsolidatedDataset struct {
	Run        *metadata.RunInfo `json:"run"`
	Records    []CanonicalRecord `json:"records"`
	Sources    []SourceStats     `json:"sources"`
	PriceRange *PriceRange       `json:"price_range"`
	NullCounts map[string]int    `json:"null_counts"`
	Total      int               `json:"total"`
}

// AllWarnings flattens every source's warnings in source order.
func (d *ConsolidatedDataset) AllWarnings() []Warning {
	var out []Warning
	for _, s := range d.Sources {
		out = append(out, s.Warnings...)
	}

	return out
}
