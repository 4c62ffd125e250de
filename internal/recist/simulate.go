package recist

import (
	"math"
	"math/rand/v2"

	"github.com/mrsinham/recistforge/internal/lesion"
)

// Measurement pairs a baseline target with its simulated follow-up value.
type Measurement struct {
	Target
	FollowMM int
}

// SumFollow returns the follow-up SLD of a measurement set.
func SumFollow(ms []Measurement) int {
	sum := 0
	for _, m := range ms {
		sum += m.FollowMM
	}
	return sum
}

// Per-plan scaling bands. The follow-up value of each target is its
// baseline measurement times the plan factor plus per-lesion noise; the
// corrective pass then clamps the aggregate into the plan's defining band.
const (
	prFactorLo, prFactorHi = 0.45, 0.65
	pdFactorLo, pdFactorHi = 1.25, 1.45
	sdFactorLo, sdFactorHi = 0.85, 1.15
	lesionNoise            = 0.10
)

// ApplyPlannedResponse synthesizes per-lesion follow-up measurements whose
// aggregate satisfies the plan's defining inequality by construction:
//
//	PR: follow <= 70% of baseline SLD
//	PD: follow >= 120% of baseline SLD and baseline+5 mm
//	CR: non-nodal targets at 0 mm, nodal targets below 10 mm short axis
//	SD: +/-15% perturbation violating neither the PR nor the nadir PD rule
//
// nadirSLD is the smallest SLD observed so far; it bounds the SD band so a
// stable plan after a deep response does not accidentally cross the
// progression threshold. When the plan cannot be satisfied (baseline SLD of
// zero, or an empty SD window) the result degrades to the nearest
// achievable category rather than failing: this is synthetic data, and the
// stored label is always recomputed from the numbers.
func ApplyPlannedResponse(targets []Target, plan Response, nadirSLD int, rng *rand.Rand) []Measurement {
	ms := make([]Measurement, len(targets))
	for i, t := range targets {
		ms[i] = Measurement{Target: t, FollowMM: t.MeasureMM}
	}

	base := SumOfDiameters(targets)
	if base == 0 {
		return ms
	}

	if plan == ResponseCR {
		for i := range ms {
			if ms[i].Kind == lesion.KindNode {
				ms[i].FollowMM = rng.IntN(NodalPathologicMin) // 0-9 mm
			} else {
				ms[i].FollowMM = 0
			}
		}
		return ms
	}

	var factorLo, factorHi float64
	switch plan {
	case ResponsePR:
		factorLo, factorHi = prFactorLo, prFactorHi
	case ResponsePD:
		factorLo, factorHi = pdFactorLo, pdFactorHi
	default:
		factorLo, factorHi = sdFactorLo, sdFactorHi
	}
	planFactor := factorLo + rng.Float64()*(factorHi-factorLo)
	for i := range ms {
		noise := (rng.Float64()*2 - 1) * lesionNoise
		v := int(math.Round(float64(ms[i].MeasureMM) * (planFactor + noise)))
		if v < 0 {
			v = 0
		}
		ms[i].FollowMM = v
	}

	// Corrective adjustment: if noise pushed the aggregate outside the
	// plan's defining band, redistribute the difference proportionally so
	// the label recomputed from these numbers matches the intent.
	total := SumFollow(ms)
	switch plan {
	case ResponsePR:
		// (total-base)/base <= -0.30  <=>  total <= 70% of base
		maxTotal := int(math.Floor(0.70 * float64(base)))
		if total > maxTotal {
			redistribute(ms, maxTotal)
		}
	case ResponsePD:
		// >=20% over baseline and >=5 mm absolute
		minTotal := int(math.Ceil(1.20 * float64(base)))
		if minTotal < base+5 {
			minTotal = base + 5
		}
		if total < minTotal {
			redistribute(ms, minTotal)
		}
	default: // SD
		lo := int(math.Floor(0.70*float64(base))) + 1
		hi := int(math.Floor(1.15 * float64(base)))
		if nadirSLD > 0 {
			// stay below the nadir progression rule: either growth <5 mm
			// or growth ratio <20%, whichever allows the larger value
			pdBound := nadirSLD + 4
			if alt := int(math.Ceil(1.20*float64(nadirSLD))) - 1; alt > pdBound {
				pdBound = alt
			}
			if pdBound < hi {
				hi = pdBound
			}
		}
		switch {
		case hi < lo:
			// window is empty (deep prior response); degrade toward PR
			redistribute(ms, hi)
		case total < lo:
			redistribute(ms, lo)
		case total > hi:
			redistribute(ms, hi)
		}
	}

	return ms
}

// redistribute scales the follow-up values so their sum equals want,
// flooring each lesion at 0 mm and parking any rounding residual on the
// largest target.
func redistribute(ms []Measurement, want int) {
	if want < 0 {
		want = 0
	}
	cur := SumFollow(ms)
	if cur == want || len(ms) == 0 {
		return
	}
	if cur == 0 {
		ms[0].FollowMM = want
		return
	}
	scale := float64(want) / float64(cur)
	for i := range ms {
		v := int(math.Round(float64(ms[i].FollowMM) * scale))
		if v < 0 {
			v = 0
		}
		ms[i].FollowMM = v
	}
	// Rounding can leave a residual larger than any single value; walk it
	// off one largest-lesion at a time, clamping at zero, until the
	// aggregate lands exactly on want.
	for diff := want - SumFollow(ms); diff != 0; diff = want - SumFollow(ms) {
		idx := 0
		for i := range ms {
			if ms[i].FollowMM > ms[idx].FollowMM {
				idx = i
			}
		}
		v := ms[idx].FollowMM + diff
		if v < 0 {
			v = 0
		}
		if v == ms[idx].FollowMM {
			return
		}
		ms[idx].FollowMM = v
	}
}
