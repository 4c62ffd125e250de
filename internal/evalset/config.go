// Package evalset scores model predictions against ground-truth records
// using a field-level fuzzy-match policy.
package evalset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MatchPolicy tunes how field values are compared.
type MatchPolicy struct {
	QuantToleranceMM float64 `yaml:"quant_tolerance_mm"`
}

// Config names the fields to score and the comparison policy. Field names
// are dotted paths into the record objects.
type Config struct {
	QuantFields []string    `yaml:"quant_fields"`
	QualFields  []string    `yaml:"qual_fields"`
	MatchPolicy MatchPolicy `yaml:"match_policy"`
}

// Validate rejects configs that cannot drive a run.
func (c *Config) Validate() error {
	if len(c.QuantFields) == 0 && len(c.QualFields) == 0 {
		return fmt.Errorf("config names no fields to evaluate")
	}
	if c.MatchPolicy.QuantToleranceMM < 0 {
		return fmt.Errorf("quant tolerance cannot be negative, got %g", c.MatchPolicy.QuantToleranceMM)
	}
	return nil
}

// LoadConfig reads and validates an evaluation config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
