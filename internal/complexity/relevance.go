package complexity

import (
	"math"

	"github.com/mrsinham/recistforge/internal/recist"
)

// RelevanceInput carries the signals the staging-relevance score combines.
// CurrentSLDMM/NadirSLDMM are only meaningful when HasFollowUp is true.
type RelevanceInput struct {
	HasFollowUp             bool
	Response                recist.Response
	CurrentSLDMM            int
	NadirSLDMM              int
	NewMeasurableMetastasis bool
	NodeCrossedThreshold    bool
	Artifact                *Artifact
	UsedHedging             bool
}

// ComputeStagingRelevance combines positive contributions (new measurable
// metastasis, PD versus nadir, a node crossing the target threshold, >=20%
// growth from nadir) and penalties (artifact impact tier, hedging) into a
// single score rounded to one decimal. The score is triage metadata only
// and never feeds back into classification.
func ComputeStagingRelevance(w Weights, in RelevanceInput) float64 {
	score := 0.0

	if in.NewMeasurableMetastasis {
		score += w.NewMeasurableMetastasis
	}
	if in.HasFollowUp && in.NadirSLDMM > 0 {
		if in.Response == recist.ResponsePD {
			score += w.PDVsNadir
		}
		if float64(in.CurrentSLDMM-in.NadirSLDMM)/float64(in.NadirSLDMM) >= 0.20 {
			score += w.GrowthGE20FromNadir
		}
	}
	if in.NodeCrossedThreshold {
		score += w.NodeCrossingThreshold
	}

	if in.Artifact != nil {
		switch {
		case in.Artifact.Impact >= 3:
			score -= w.ArtifactPenaltySevere
		case in.Artifact.Impact == 2:
			score -= w.ArtifactPenaltyModerate
		default:
			score -= w.ArtifactPenaltyMild
		}
	}
	if in.UsedHedging {
		score -= w.EquivocalPenalty
	}

	return math.Round(score*10) / 10
}
