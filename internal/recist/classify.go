package recist

import "github.com/mrsinham/recistforge/internal/lesion"

// Snapshot is the immutable burden record of one timepoint, carrying
// everything classification needs.
type Snapshot struct {
	BaselineSLDMM      int
	CurrentSLDMM       int
	NadirSLDMM         int
	HasNewLesion       bool
	AllTargetsResolved bool // every non-nodal target at 0 mm
	AnyNodeGE10        bool // any nodal target still >=10 mm short axis
}

// NewSnapshot derives the classification flags from a measurement set. A
// case with no targets at all never reports AllTargetsResolved: complete
// response cannot be asserted for disease that was never measured.
func NewSnapshot(baselineSLD, nadirSLD int, ms []Measurement, hasNewLesion bool) Snapshot {
	s := Snapshot{
		BaselineSLDMM:      baselineSLD,
		CurrentSLDMM:       SumFollow(ms),
		NadirSLDMM:         nadirSLD,
		HasNewLesion:       hasNewLesion,
		AllTargetsResolved: len(ms) > 0,
	}
	for _, m := range ms {
		if m.Kind == lesion.KindNode {
			if m.FollowMM >= NodalPathologicMin {
				s.AnyNodeGE10 = true
			}
		} else if m.FollowMM != 0 {
			s.AllTargetsResolved = false
		}
	}
	return s
}

// Classify assigns the overall response category. The order of the checks
// is load-bearing: CR and new-lesion PD are qualitative overrides evaluated
// before any ratio arithmetic.
func Classify(s Snapshot) Response {
	if s.AllTargetsResolved && !s.AnyNodeGE10 && !s.HasNewLesion {
		return ResponseCR
	}
	if s.HasNewLesion {
		return ResponsePD
	}
	if s.BaselineSLDMM == 0 {
		// no growth denominator available
		return ResponseSD
	}
	if ratio(s.CurrentSLDMM, s.BaselineSLDMM) <= -0.30 {
		return ResponsePR
	}
	if s.NadirSLDMM > 0 &&
		ratio(s.CurrentSLDMM, s.NadirSLDMM) >= 0.20 &&
		s.CurrentSLDMM-s.NadirSLDMM >= 5 {
		return ResponsePD
	}
	return ResponseSD
}

func ratio(current, reference int) float64 {
	return float64(current-reference) / float64(reference)
}
