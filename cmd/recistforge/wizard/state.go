// Package wizard provides an interactive TUI for configuring cohort
// generation.
package wizard

// State holds the complete configuration collected by the wizard.
type State struct {
	OutputDir   string
	NumPatients int

	MinTimepoints int
	MaxTimepoints int
	Seed          int64

	Style            string
	IncludeNegatives bool
	MetRate          float64
	UncertaintyMix   float64
	UnitMix          float64
	PrimaryMix       []string
	ComplexityLevel  string

	EmitDICOM bool
	Workers   int
}

// DefaultState returns the state the wizard starts from when no config is
// loaded.
func DefaultState() *State {
	return &State{
		OutputDir:       "synth_patients",
		NumPatients:     20,
		MinTimepoints:   3,
		MaxTimepoints:   6,
		Style:           "structured",
		MetRate:         0.35,
		UncertaintyMix:  0.2,
		UnitMix:         0.7,
		PrimaryMix:      []string{"lung", "colon", "pancreas", "kidney", "liver", "ovary", "prostate", "stomach"},
		ComplexityLevel: "C2",
	}
}
