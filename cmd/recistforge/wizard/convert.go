package wizard

import (
	"fmt"

	"github.com/mrsinham/recistforge/internal/cohort"
	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/report"
)

// ToCohortOptions converts a wizard state to generation options.
func ToCohortOptions(state *State) (cohort.Options, error) {
	style, err := report.ParseStyle(state.Style)
	if err != nil {
		return cohort.Options{}, fmt.Errorf("style: %w", err)
	}

	return cohort.Options{
		OutputDir:        state.OutputDir,
		NumPatients:      state.NumPatients,
		MinTimepoints:    state.MinTimepoints,
		MaxTimepoints:    state.MaxTimepoints,
		Seed:             state.Seed,
		Style:            style,
		IncludeNegatives: state.IncludeNegatives,
		MetRate:          state.MetRate,
		UncertaintyMix:   state.UncertaintyMix,
		UnitMix:          state.UnitMix,
		PrimaryMix:       state.PrimaryMix,
		ComplexityLevel:  state.ComplexityLevel,
		ComplexityConfig: complexity.DefaultConfig(),
		EmitDICOM:        state.EmitDICOM,
		Workers:          state.Workers,
	}, nil
}

// FromCohortOptions creates a wizard state from generation options, used by
// --save-config to export CLI options as YAML.
func FromCohortOptions(opts cohort.Options) *State {
	return &State{
		OutputDir:        opts.OutputDir,
		NumPatients:      opts.NumPatients,
		MinTimepoints:    opts.MinTimepoints,
		MaxTimepoints:    opts.MaxTimepoints,
		Seed:             opts.Seed,
		Style:            opts.Style.String(),
		IncludeNegatives: opts.IncludeNegatives,
		MetRate:          opts.MetRate,
		UncertaintyMix:   opts.UncertaintyMix,
		UnitMix:          opts.UnitMix,
		PrimaryMix:       opts.PrimaryMix,
		ComplexityLevel:  opts.ComplexityLevel,
		EmitDICOM:        opts.EmitDICOM,
		Workers:          opts.Workers,
	}
}
