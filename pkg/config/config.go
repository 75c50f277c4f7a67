// Package config provides the configuration system for scrub.
// It defines a single strongly typed Config structure consumed by the
// processing pipeline, plus loaders for YAML files and environment
// variables.
//
// Example usage:
//
//	cfg := config.NewDefaultConfig()
//	cfg.MissingValueStrategy = config.StrategyMedian
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Strategy selects how missing values are handled by the pipeline.
// An unrecognized value is carried as-is and resolved to StrategyMean
// at use time; it is never a construction-time failure.
type Strategy string

const (
	// StrategyMean replaces absent numeric values with the column mean
	StrategyMean Strategy = "mean"
	// StrategyMedian replaces absent numeric values with the column median
	StrategyMedian Strategy = "median"
	// StrategyDrop removes any row containing an absent value
	StrategyDrop Strategy = "drop"
)

// ParseStrategy normalizes a raw strategy string. Unknown values are
// preserved so the fallback decision stays observable at use time.
func ParseStrategy(s string) Strategy {
	return Strategy(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether the strategy is one of the recognized values.
func (s Strategy) Known() bool {
	switch s {
	case StrategyMean, StrategyMedian, StrategyDrop:
		return true
	default:
		return false
	}
}

// Resolve returns the strategy that will actually be applied. Unknown
// strategies fall back to StrategyMean; the second return is false in
// that case so callers can emit a warning.
func (s Strategy) Resolve() (Strategy, bool) {
	if s.Known() {
		return s, true
	}
	return StrategyMean, false
}

// Config holds the settings consumed by the processing pipeline and its
// surrounding application. A Config is constructed once per pipeline
// and is read-only thereafter.
type Config struct {
	// MissingValueStrategy selects the imputation behavior (mean, median, drop)
	MissingValueStrategy Strategy `yaml:"missing_value_strategy" json:"missing_value_strategy"`

	// ValidateSchema tells the surrounding application to validate the
	// schema around processing. It is not enforced inside Process itself.
	ValidateSchema bool `yaml:"validate_schema" json:"validate_schema"`

	// AllowUnknownColumns permits columns not declared in the schema
	AllowUnknownColumns bool `yaml:"allow_unknown_columns" json:"allow_unknown_columns"`

	// BatchSize controls how many rows callers should submit per Process call
	BatchSize int `yaml:"batch_size" json:"batch_size"`

	// Workers is the number of independent processors a batch caller may run.
	// A single Processor instance must not be shared across workers.
	Workers int `yaml:"workers" json:"workers"`

	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFile is an optional log sink path in addition to stdout
	LogFile string `yaml:"log_file" json:"log_file"`
}

// NewDefaultConfig returns a Config with production-ready defaults.
func NewDefaultConfig() *Config {
	return &Config{
		MissingValueStrategy: StrategyMean,
		ValidateSchema:       true,
		AllowUnknownColumns:  false,
		BatchSize:            1000,
		Workers:              runtime.NumCPU(),
		LogLevel:             "info",
	}
}

// Validate validates the configuration for correctness. Note that an
// unknown missing-value strategy is deliberately not an error here; the
// pipeline falls back to mean and warns at use time.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.LogLevel == "" {
		return fmt.Errorf("log_level is required")
	}
	return nil
}
