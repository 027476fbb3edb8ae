// Package main provides the consolidation command: it selects bank sources,
// runs the consolidation pipeline, and writes the dataset plus summary
// report.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"foreclosed/internal/config"
	"foreclosed/internal/consolidate"
	"foreclosed/internal/logger"
	"foreclosed/internal/report"
	"foreclosed/internal/sink"
)

func main() {
	// Environment overrides are optional; a missing .env is fine.
	_ = godotenv.Load()

	defaultConfig := os.Getenv("CONSOLIDATOR_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}

	configPath := flag.String("config", defaultConfig, "Path to YAML configuration")
	banks := flag.String("bank", "", "Comma-separated bank ids to consolidate (default: all enabled)")
	all := flag.Bool("all", false, "Consolidate all enabled sources")
	list := flag.Bool("list", false, "List configured bank sources and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Consolidator.Logging.Level)

	if *list {
		listSources(cfg)

		return
	}

	sources := cfg.GetEnabledSources()

	if *banks != "" && !*all {
		ids := splitIDs(*banks)

		sources, err = cfg.SelectSources(ids)
		if err != nil {
			fmt.Fprintf(os.Stderr, "source selection error: %v\n", err)
			os.Exit(1)
		}
	}

	log.Info("starting consolidation", "sources", len(sources))

	startTime := time.Now()

	runner := consolidate.NewRunner(cfg, log)

	dataset, err := runner.Run(sources)
	if err != nil {
		log.Error("consolidation failed", "error", err)
		os.Exit(1)
	}

	out := cfg.Consolidator.Output

	if err := sink.Write(dataset, out.Path, out.Format); err != nil {
		log.Error("failed to write dataset", "error", err)
		os.Exit(1)
	}

	summaryPath := strings.TrimSuffix(out.Path, filepath.Ext(out.Path)) + "_summary.json"
	if err := sink.WriteSummaryJSON(dataset, summaryPath); err != nil {
		log.Error("failed to write summary", "error", err)
		os.Exit(1)
	}

	text := report.Render(dataset)

	if out.ReportPath != "" {
		if err := os.WriteFile(out.ReportPath, []byte(text), 0o644); err != nil {
			log.Error("failed to write report", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println(text)

	failed := 0

	for _, s := range dataset.Sources {
		if s.Failed {
			failed++
		}
	}

	log.Info("consolidation complete",
		"records", dataset.Total,
		"sources", len(dataset.Sources),
		"failed_sources", failed,
		"duration", time.Since(startTime).Round(time.Millisecond).String(),
		"output", out.Path)

	if failed == len(dataset.Sources) {
		os.Exit(1)
	}
}

func listSources(cfg *config.Config) {
	fmt.Println("Configured bank sources:")

	for _, src := range cfg.Consolidator.Sources {
		status := "disabled"
		if src.Enabled {
			status = "enabled"
		}

		fmt.Printf("  %-14s %-22s kind=%-9s %s\n", src.ID, src.DisplayName(), src.Kind, status)
	}
}

func splitIDs(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}

		found := false

		for _, existing := range out {
			if existing == id {
				found = true

				break
			}
		}

		if !found {
			out = append(out, id)
		}
	}

	return out
}
