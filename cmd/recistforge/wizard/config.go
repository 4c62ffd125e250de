package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors State with YAML tags for serialization.
type Config struct {
	OutputDir        string   `yaml:"output_dir"`
	NumPatients      int      `yaml:"num_patients"`
	MinTimepoints    int      `yaml:"min_timepoints"`
	MaxTimepoints    int      `yaml:"max_timepoints"`
	Seed             int64    `yaml:"seed"`
	Style            string   `yaml:"style"`
	IncludeNegatives bool     `yaml:"include_negatives"`
	MetRate          float64  `yaml:"met_rate"`
	UncertaintyMix   float64  `yaml:"uncertainty_mix"`
	UnitMix          float64  `yaml:"unit_mix"`
	PrimaryMix       []string `yaml:"primary_mix"`
	ComplexityLevel  string   `yaml:"complexity_level"`
	EmitDICOM        bool     `yaml:"emit_dicom"`
	Workers          int      `yaml:"workers"`
}

// LoadFromYAML reads a wizard configuration file.
func LoadFromYAML(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	state := DefaultState()
	if cfg.OutputDir != "" {
		state.OutputDir = cfg.OutputDir
	}
	if cfg.NumPatients != 0 {
		state.NumPatients = cfg.NumPatients
	}
	if cfg.MinTimepoints != 0 {
		state.MinTimepoints = cfg.MinTimepoints
	}
	if cfg.MaxTimepoints != 0 {
		state.MaxTimepoints = cfg.MaxTimepoints
	}
	state.Seed = cfg.Seed
	if cfg.Style != "" {
		state.Style = cfg.Style
	}
	state.IncludeNegatives = cfg.IncludeNegatives
	if cfg.MetRate != 0 {
		state.MetRate = cfg.MetRate
	}
	if cfg.UncertaintyMix != 0 {
		state.UncertaintyMix = cfg.UncertaintyMix
	}
	if cfg.UnitMix != 0 {
		state.UnitMix = cfg.UnitMix
	}
	if len(cfg.PrimaryMix) > 0 {
		state.PrimaryMix = cfg.PrimaryMix
	}
	if cfg.ComplexityLevel != "" {
		state.ComplexityLevel = cfg.ComplexityLevel
	}
	state.EmitDICOM = cfg.EmitDICOM
	state.Workers = cfg.Workers
	return state, nil
}

// SaveToYAML writes the state as a wizard configuration file.
func SaveToYAML(state *State, path string) error {
	cfg := Config{
		OutputDir:        state.OutputDir,
		NumPatients:      state.NumPatients,
		MinTimepoints:    state.MinTimepoints,
		MaxTimepoints:    state.MaxTimepoints,
		Seed:             state.Seed,
		Style:            state.Style,
		IncludeNegatives: state.IncludeNegatives,
		MetRate:          state.MetRate,
		UncertaintyMix:   state.UncertaintyMix,
		UnitMix:          state.UnitMix,
		PrimaryMix:       state.PrimaryMix,
		ComplexityLevel:  state.ComplexityLevel,
		EmitDICOM:        state.EmitDICOM,
		Workers:          state.Workers,
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
