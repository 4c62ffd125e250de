package report

import (
	"fmt"
	"math/rand/v2"

	"github.com/mrsinham/recistforge/internal/lesion"
)

// asUnit renders a measurement in mm with probability unitMMProb, else in
// cm with one decimal. The cm rendering is exact (value/10) so the number
// in prose always round-trips to the ground-truth millimeters.
func asUnit(valMM int, unitMMProb float64, rng *rand.Rand) string {
	if rng.Float64() < unitMMProb {
		return fmt.Sprintf("%d mm", valMM)
	}
	return fmt.Sprintf("%.1f cm", float64(valMM)/10.0)
}

func primarySentence(p lesion.Lesion, unitMMProb float64, rng *rand.Rand) string {
	sz := asUnit(p.LongestDiameterMM, unitMMProb, rng)
	switch p.Site {
	case "lung":
		return fmt.Sprintf("%s %s mass in the %s (%s).", sz, p.Margin, p.Location, p.Enhancement)
	case "colon":
		return fmt.Sprintf("%s %s mass involving the %s with focal wall thickening (%s).", sz, p.Margin, p.Location, p.Enhancement)
	case "pancreas":
		return fmt.Sprintf("%s %s pancreatic mass in the %s (%s).", sz, p.Margin, p.Location, p.Enhancement)
	case "kidney":
		return fmt.Sprintf("%s %s enhancing renal mass in the %s.", sz, p.Margin, p.Location)
	case "liver":
		return fmt.Sprintf("%s %s hepatic mass in %s (%s).", sz, p.Margin, p.Location, p.Enhancement)
	case "ovary":
		return fmt.Sprintf("%s complex adnexal mass in the %s.", sz, p.Location)
	case "prostate":
		return fmt.Sprintf("%s %s mass within the %s.", sz, p.Margin, p.Location)
	case "stomach":
		return fmt.Sprintf("%s %s gastric mass at the %s (%s).", sz, p.Margin, p.Location, p.Enhancement)
	default:
		return fmt.Sprintf("%s mass at %s.", sz, p.Location)
	}
}

func nodeSentence(n lesion.Lesion, unitMMProb float64, rng *rand.Rand) string {
	sa := asUnit(n.ShortAxisMM, unitMMProb, rng)
	nec := ""
	if n.Necrosis {
		nec = " with central necrosis"
	}
	return fmt.Sprintf("Enlarged %s lymph node, short axis %s%s.", n.Station, sa, nec)
}

func metSentence(m lesion.Lesion, unitMMProb float64, rng *rand.Rand) string {
	sz := asUnit(m.LongestDiameterMM, unitMMProb, rng)
	return fmt.Sprintf("%s lesion in the %s, suspicious for metastasis.", sz, m.Site)
}
