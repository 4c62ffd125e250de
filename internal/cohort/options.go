package cohort

import (
	"fmt"

	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/lexicon"
	"github.com/mrsinham/recistforge/internal/report"
)

// Options configures a cohort generation run.
type Options struct {
	OutputDir   string
	NumPatients int

	MinTimepoints int
	MaxTimepoints int

	Seed int64

	Style            report.Style
	IncludeNegatives bool

	MetRate        float64 // probability a patient has distant metastases at baseline
	UncertaintyMix float64 // probability the impression hedges the primary
	UnitMix        float64 // probability a measurement renders in mm rather than cm

	PrimaryMix []string // candidate primary sites, drawn uniformly

	ComplexityLevel  string
	ComplexityConfig *complexity.Config

	EmitDICOM bool // write a metadata-only DICOM study alongside each report

	Workers          int // parallel patient workers (0 = auto-detect based on CPU cores)
	Quiet            bool
	ProgressCallback func(current, total int)
}

// Validate rejects option combinations before any file is written.
func (o *Options) Validate() error {
	if o.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if o.NumPatients <= 0 {
		return fmt.Errorf("number of patients must be > 0, got %d", o.NumPatients)
	}
	if o.MinTimepoints < 1 {
		return fmt.Errorf("minimum timepoints must be >= 1, got %d", o.MinTimepoints)
	}
	if o.MaxTimepoints < o.MinTimepoints {
		return fmt.Errorf("maximum timepoints (%d) cannot be below minimum (%d)", o.MaxTimepoints, o.MinTimepoints)
	}
	for name, v := range map[string]float64{
		"met-rate":        o.MetRate,
		"uncertainty-mix": o.UncertaintyMix,
		"unit-mix":        o.UnitMix,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %g", name, v)
		}
	}
	if len(o.PrimaryMix) == 0 {
		return fmt.Errorf("primary mix cannot be empty")
	}
	for _, site := range o.PrimaryMix {
		if _, ok := lexicon.PrimarySiteOrgan(site); !ok {
			return fmt.Errorf("unknown primary site %q (known: %v)", site, lexicon.PrimarySites)
		}
	}
	if o.ComplexityConfig == nil {
		return fmt.Errorf("complexity config is required")
	}
	if err := o.ComplexityConfig.Validate(); err != nil {
		return fmt.Errorf("complexity config: %w", err)
	}
	if _, ok := o.ComplexityConfig.Levels[o.ComplexityLevel]; !ok {
		return fmt.Errorf("unknown complexity level %q (known: %v)", o.ComplexityLevel, o.ComplexityConfig.LevelNames())
	}
	return nil
}
