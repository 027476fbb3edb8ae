// Package config provides run configuration for the consolidation engine.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"foreclosed/internal/mapper"
	"foreclosed/internal/models"
)

// Configuration validation errors.
var (
	ErrNoSources           = errors.New("at least one source is required")
	ErrNoEnabledSources    = errors.New("at least one source must be enabled")
	ErrUnknownSourceID     = errors.New("source id is not a known bank identifier")
	ErrDuplicateSourceID   = errors.New("source id appears more than once")
	ErrSourceMissingInput  = errors.New("source input path is required")
	ErrInvalidSourceKind   = errors.New("source kind must be 'json', 'pdf_grids' or 'html'")
	ErrMissingOutputPath   = errors.New("output.path is required")
	ErrInvalidOutputFormat = errors.New("output.format must be one of: json, csv, xlsx, sqlite")
	ErrInvalidCollapse     = errors.New("dedupe.collapse_warn_ratio must be in (0, 1]")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Source input kinds.
const (
	KindJSON     = "json"
	KindPDFGrids = "pdf_grids"
	KindHTML     = "html"
)

// Config represents the complete consolidation run configuration.
type Config struct {
	Consolidator ConsolidatorConfig `yaml:"consolidator"`
}

// ConsolidatorConfig contains engine-specific settings.
type ConsolidatorConfig struct {
	Sources []SourceConfig `yaml:"sources"`
	Output  OutputConfig   `yaml:"output"`
	Dedupe  DedupeConfig   `yaml:"dedupe"`
	Logging LoggingConfig  `yaml:"logging"`
}

// SourceConfig describes one bank's acquired input.
type SourceConfig struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Kind          string   `yaml:"kind"`
	Input         string   `yaml:"input"`
	SectionFields []string `yaml:"section_fields"`
	Enabled       bool     `yaml:"enabled"`
}

// DisplayName returns the configured bank name, falling back to the id.
func (s *SourceConfig) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}

	return s.ID
}

// OutputConfig defines where and how the consolidated dataset is written.
type OutputConfig struct {
	Path       string `yaml:"path"`
	Format     string `yaml:"format"`
	ReportPath string `yaml:"report_path"`
}

// DedupeConfig tunes duplicate-collapse reporting.
type DedupeConfig struct {
	CollapseWarnRatio float64 `yaml:"collapse_warn_ratio"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads and validates configuration from a YAML file. Mapping
// completeness is checked here too: a defective FieldMapping aborts the run
// before any record is read.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Consolidator.Output.Format == "" {
		c.Consolidator.Output.Format = "json"
	}

	if c.Consolidator.Dedupe.CollapseWarnRatio == 0 {
		c.Consolidator.Dedupe.CollapseWarnRatio = 0.9
	}

	if c.Consolidator.Logging.Level == "" {
		c.Consolidator.Logging.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	cons := &c.Consolidator

	if len(cons.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]bool, len(cons.Sources))
	enabledCount := 0

	for i, src := range cons.Sources {
		if !models.IsKnownSource(src.ID) {
			return fmt.Errorf("%w: source[%d] id %q", ErrUnknownSourceID, i, src.ID)
		}

		if seen[src.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateSourceID, src.ID)
		}

		seen[src.ID] = true

		if src.Input == "" {
			return fmt.Errorf("%w: source[%d]", ErrSourceMissingInput, i)
		}

		switch src.Kind {
		case KindJSON, KindPDFGrids, KindHTML:
		default:
			return fmt.Errorf("%w: source[%d] kind %q", ErrInvalidSourceKind, i, src.Kind)
		}

		if src.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if cons.Output.Path == "" {
		return ErrMissingOutputPath
	}

	switch cons.Output.Format {
	case "json", "csv", "xlsx", "sqlite":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, cons.Output.Format)
	}

	if cons.Dedupe.CollapseWarnRatio <= 0 || cons.Dedupe.CollapseWarnRatio > 1 {
		return ErrInvalidCollapse
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cons.Logging.Level] {
		return ErrInvalidLogLevel
	}

	// Every enabled source needs an exhaustive field mapping; an incomplete
	// one is a configuration defect, fatal before any record is processed.
	for _, src := range cons.Sources {
		if !src.Enabled {
			continue
		}

		m, err := mapper.ForSource(src.ID)
		if err != nil {
			return fmt.Errorf("source %q: %w", src.ID, err)
		}

		if err := m.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// GetEnabledSources returns only enabled sources, in declaration order.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Consolidator.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// SelectSources narrows the enabled set to the requested bank ids. An
// unknown or disabled id is an error so a typo cannot silently run nothing.
func (c *Config) SelectSources(ids []string) ([]SourceConfig, error) {
	byID := make(map[string]SourceConfig)
	for _, src := range c.GetEnabledSources() {
		byID[src.ID] = src
	}

	var out []SourceConfig

	for _, id := range ids {
		src, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSourceID, id)
		}

		out = append(out, src)
	}

	return out, nil
}
