package recist

import (
	"fmt"

	"github.com/mrsinham/recistforge/internal/lesion"
	"github.com/mrsinham/recistforge/internal/lexicon"
)

// RECIST 1.1 measurability constraints.
const (
	MaxTargets          = 5  // total target lesions per case
	MaxTargetsPerOrgan  = 2  // target lesions per anatomic organ
	NonNodalTargetMinMM = 10 // longest diameter for non-nodal targets
	NodalTargetMinMM    = 15 // short axis for nodal targets
	NodalPathologicMin  = 10 // nodes below this short axis are non-pathologic
)

// Target is a lesion selected for quantitative tracking. MeasureMM is the
// baseline measurement: short axis for nodes, longest diameter otherwise.
type Target struct {
	LesionID  string
	Kind      lesion.Kind
	Key       string
	Organ     lexicon.Organ
	Label     string
	MeasureMM int
}

// NonTarget is a real lesion tracked qualitatively only.
type NonTarget struct {
	LesionID  string
	Kind      lesion.Kind
	Key       string
	Label     string
	MeasureMM int
}

func targetLabel(l lesion.Lesion) string {
	switch l.Kind {
	case lesion.KindPrimary:
		return fmt.Sprintf("primary (%s)", l.Site)
	case lesion.KindNode:
		return fmt.Sprintf("node (%s)", l.Station)
	default:
		return fmt.Sprintf("met (%s)", l.Site)
	}
}

// organKey is the bucket used for the per-organ target cap.
func organKey(l lesion.Lesion) string {
	if o, ok := l.Organ(); ok {
		return o.String()
	}
	return l.Site
}

// SelectTargets applies RECIST 1.1 measurability thresholds and the
// 5-total / 2-per-organ caps. Targets are filled in a fixed priority order
// (primary, then metastases, then nodes) so selection is deterministic and
// reproducible. Non-qualifying or excess lesions become non-targets, except
// nodes under 10 mm short axis which are non-pathologic and excluded.
func SelectTargets(primary lesion.Lesion, nodes, mets []lesion.Lesion) ([]Target, []NonTarget) {
	var targets []Target
	var nonTargets []NonTarget
	perOrgan := make(map[string]int)

	addTarget := func(l lesion.Lesion) bool {
		key := organKey(l)
		if len(targets) >= MaxTargets || perOrgan[key] >= MaxTargetsPerOrgan {
			return false
		}
		organ, _ := l.Organ()
		targets = append(targets, Target{
			LesionID:  l.ID,
			Kind:      l.Kind,
			Key:       l.Key(),
			Organ:     organ,
			Label:     targetLabel(l),
			MeasureMM: l.MeasurementMM(),
		})
		perOrgan[key]++
		return true
	}
	addNonTarget := func(l lesion.Lesion) {
		nonTargets = append(nonTargets, NonTarget{
			LesionID:  l.ID,
			Kind:      l.Kind,
			Key:       l.Key(),
			Label:     targetLabel(l),
			MeasureMM: l.MeasurementMM(),
		})
	}

	if primary.LongestDiameterMM >= NonNodalTargetMinMM {
		if !addTarget(primary) {
			addNonTarget(primary)
		}
	} else {
		addNonTarget(primary)
	}

	for _, m := range mets {
		if m.LongestDiameterMM >= NonNodalTargetMinMM && addTarget(m) {
			continue
		}
		addNonTarget(m)
	}

	for _, n := range nodes {
		switch {
		case n.ShortAxisMM >= NodalTargetMinMM:
			if !addTarget(n) {
				addNonTarget(n)
			}
		case n.ShortAxisMM >= NodalPathologicMin:
			addNonTarget(n)
		default:
			// non-pathologic by size, excluded entirely
		}
	}

	return targets, nonTargets
}

// SumOfDiameters returns the SLD of the baseline target set in whole
// millimeters. Nodal targets contribute short axis, others their longest
// diameter; measurements are already whole millimeters.
func SumOfDiameters(targets []Target) int {
	sum := 0
	for _, t := range targets {
		sum += t.MeasureMM
	}
	return sum
}
