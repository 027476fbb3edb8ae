// Package main provides a debugging tool that dumps one source's records at
// each pipeline stage (raw, mapped, normalized) as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"foreclosed/internal/config"
	"foreclosed/internal/extract"
	"foreclosed/internal/mapper"
	"foreclosed/internal/models"
	"foreclosed/internal/normalizer"
)

func main() {
	sourceID := flag.String("source", "", "Bank source id (bdo, bpi, security_bank, metrobank, eastwest_bank, pnb)")
	kind := flag.String("kind", config.KindJSON, "Input kind: json, pdf_grids or html")
	input := flag.String("input", "", "Path to the source input file")
	stage := flag.String("stage", "normalized", "Stage to dump: raw, mapped or normalized")
	flag.Parse()

	if *sourceID == "" || *input == "" {
		fmt.Println("Usage: inspect -source <bank> -input <file> [-kind json|pdf_grids|html] [-stage raw|mapped|normalized]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if !models.IsKnownSource(*sourceID) {
		log.Fatalf("unknown source %q", *sourceID)
	}

	records, warnings := loadRecords(*sourceID, *kind, *input)

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: [%s] %s: %s\n", w.Source, w.Kind, w.Detail)
	}

	switch *stage {
	case "raw":
		dump(records)
	case "mapped":
		dump(mapRecords(*sourceID, records))
	case "normalized":
		mapped := mapRecords(*sourceID, records)
		norm := normalizer.New()

		var out []models.CanonicalRecord

		for _, m := range mapped {
			rec, warns := norm.Normalize(m)
			for _, w := range warns {
				fmt.Fprintf(os.Stderr, "warning: [%s] %s %s: %s\n", w.Source, w.Kind, w.Field, w.Detail)
			}

			out = append(out, rec)
		}

		dump(out)
	default:
		log.Fatalf("unknown stage %q", *stage)
	}
}

func loadRecords(sourceID, kind, input string) ([]models.RawRecord, []models.Warning) {
	switch kind {
	case config.KindJSON:
		blobs, err := extract.LoadJSONBlobs(input)
		if err != nil {
			log.Fatalf("load failed: %v", err)
		}

		records, warnings := extract.ReadRecords(sourceID, input, blobs)

		return records, warnings

	case config.KindPDFGrids:
		grids, err := extract.LoadGrids(input)
		if err != nil {
			log.Fatalf("load failed: %v", err)
		}

		extractor := extract.NewTableExtractor(sourceID, extract.TableExtractorOptions{})

		return extractor.Extract(grids)

	case config.KindHTML:
		blobs, warnings, err := extract.LoadHTMLBlobs(sourceID, input)
		if err != nil {
			log.Fatalf("load failed: %v", err)
		}

		records, readWarnings := extract.ReadRecords(sourceID, input, blobs)

		return records, append(warnings, readWarnings...)

	default:
		log.Fatalf("unknown kind %q", kind)

		return nil, nil
	}
}

func mapRecords(sourceID string, records []models.RawRecord) []models.MappedRecord {
	m, err := mapper.ForSource(sourceID)
	if err != nil {
		log.Fatalf("mapping lookup failed: %v", err)
	}

	if err := m.Validate(); err != nil {
		log.Fatalf("mapping invalid: %v", err)
	}

	out := make([]models.MappedRecord, 0, len(records))
	for _, raw := range records {
		out = append(out, m.Map(raw))
	}

	return out
}

func dump(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode failed: %v", err)
	}
}
