// Package consolidate orchestrates the per-source pipeline (extract, map,
// normalize, dedup) and merges every source's records into one dataset with
// aggregate statistics.
package consolidate

import (
	"fmt"
	"sync"

	"foreclosed/internal/config"
	"foreclosed/internal/dedup"
	"foreclosed/internal/extract"
	"foreclosed/internal/logger"
	"foreclosed/internal/mapper"
	"foreclosed/internal/models"
	"foreclosed/internal/normalizer"
	"foreclosed/pkg/metadata"
)

// Runner executes consolidation runs.
type Runner struct {
	cfg  *config.Config
	log  *logger.Logger
	norm *normalizer.Normalizer
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg *config.Config, log *logger.Logger) *Runner {
	return &Runner{
		cfg:  cfg,
		log:  log,
		norm: normalizer.New(),
	}
}

// Run processes the given sources in parallel (sources share no state) and
// merges the results in the order sources were passed, so output ordering
// is deterministic for identical inputs. One source's failure never aborts
// the run; it is recorded in that source's stats and processing continues.
func (r *Runner) Run(sources []config.SourceConfig) (*models.ConsolidatedDataset, error) {
	if len(sources) == 0 {
		return nil, config.ErrNoEnabledSources
	}

	type sourceResult struct {
		records []models.CanonicalRecord
		stats   models.SourceStats
	}

	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)

		go func(i int, src config.SourceConfig) {
			defer wg.Done()

			records, stats := r.runSource(src)
			results[i] = sourceResult{records: records, stats: stats}
		}(i, src)
	}

	wg.Wait()

	dataset := &models.ConsolidatedDataset{
		Run:        metadata.NewRun(),
		NullCounts: make(map[string]int, len(models.CanonicalFields)),
	}

	for _, res := range results {
		dataset.Records = append(dataset.Records, res.records...)
		dataset.Sources = append(dataset.Sources, res.stats)
	}

	dataset.Total = len(dataset.Records)

	for i := range dataset.Records {
		rec := &dataset.Records[i]

		for _, field := range models.CanonicalFields {
			if _, isNull := rec.Field(field); isNull {
				dataset.NullCounts[field]++
			}
		}

		if rec.Price != nil {
			if dataset.PriceRange == nil {
				dataset.PriceRange = &models.PriceRange{
					Min:      rec.Price.Amount,
					Max:      rec.Price.Amount,
					Currency: rec.Price.Currency,
				}
			} else {
				if rec.Price.Amount < dataset.PriceRange.Min {
					dataset.PriceRange.Min = rec.Price.Amount
				}

				if rec.Price.Amount > dataset.PriceRange.Max {
					dataset.PriceRange.Max = rec.Price.Amount
				}
			}
		}
	}

	return dataset, nil
}

// runSource executes the full pipeline for one source. All errors past
// loading are per-record and non-fatal.
func (r *Runner) runSource(src config.SourceConfig) ([]models.CanonicalRecord, models.SourceStats) {
	log := r.log.With("source", src.ID)
	stats := models.SourceStats{
		Source:     src.ID,
		NullCounts: make(map[string]int, len(models.CanonicalFields)),
	}

	rawRecords, warnings, err := r.loadSource(src)
	stats.Warnings = append(stats.Warnings, warnings...)

	if err != nil {
		log.Error("source load failed", "error", err)

		stats.Failed = true
		stats.Error = err.Error()

		return nil, stats
	}

	stats.RawCount = len(rawRecords)
	stats.SkippedBlobs = countSkipped(warnings)

	if len(rawRecords) == 0 {
		// Zero records is reported, never papered over with sample data.
		log.Warn("source produced zero records", "input", src.Input)

		return nil, stats
	}

	m, err := mapper.ForSource(src.ID)
	if err != nil {
		// Unreachable after config validation; kept as a guard.
		stats.Failed = true
		stats.Error = err.Error()

		return nil, stats
	}

	normalized := make([]models.CanonicalRecord, 0, len(rawRecords))

	for _, raw := range rawRecords {
		mapped := m.Map(raw)

		rec, warns := r.norm.Normalize(mapped)
		stats.Warnings = append(stats.Warnings, warns...)
		normalized = append(normalized, rec)
	}

	res := dedup.Deduplicate(src.ID, normalized, r.cfg.Consolidator.Dedupe.CollapseWarnRatio)
	stats.Warnings = append(stats.Warnings, res.Warnings...)
	stats.UniqueCount = res.UniqueCount
	stats.DuplicateRatio = res.DuplicateRatio

	for i := range res.Records {
		for _, field := range models.CanonicalFields {
			if _, isNull := res.Records[i].Field(field); isNull {
				stats.NullCounts[field]++
			}
		}
	}

	log.Info("source consolidated",
		"raw", stats.RawCount,
		"unique", stats.UniqueCount,
		"duplicate_ratio", fmt.Sprintf("%.2f", stats.DuplicateRatio),
		"warnings", len(stats.Warnings))

	return res.Records, stats
}

func (r *Runner) loadSource(src config.SourceConfig) ([]models.RawRecord, []models.Warning, error) {
	switch src.Kind {
	case config.KindJSON:
		blobs, err := extract.LoadJSONBlobs(src.Input)
		if err != nil {
			return nil, nil, err
		}

		records, warnings := extract.ReadRecords(src.ID, src.Input, blobs)

		return records, warnings, nil

	case config.KindPDFGrids:
		grids, err := extract.LoadGrids(src.Input)
		if err != nil {
			return nil, nil, err
		}

		extractor := extract.NewTableExtractor(src.ID, extract.TableExtractorOptions{
			SectionFields: src.SectionFields,
		})
		records, warnings := extractor.Extract(grids)

		return records, warnings, nil

	case config.KindHTML:
		blobs, warnings, err := extract.LoadHTMLBlobs(src.ID, src.Input)
		if err != nil {
			return nil, nil, err
		}

		records, readWarnings := extract.ReadRecords(src.ID, src.Input, blobs)

		return records, append(warnings, readWarnings...), nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidSourceKind, src.Kind)
	}
}

func countSkipped(warnings []models.Warning) int {
	count := 0

	for _, w := range warnings {
		if w.Kind == models.WarnMalformedBlob {
			count++
		}
	}

	return count
}
