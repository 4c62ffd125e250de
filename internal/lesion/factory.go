package lesion

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/mrsinham/recistforge/internal/lexicon"
)

// Measurement bounds. Primaries are sampled well above the measurability
// threshold so they are almost always target-eligible; nodes span the
// non-pathologic, non-target and target ranges; metastases span measurable
// and non-measurable ranges.
const (
	primaryMinMM = 15
	primaryMaxMM = 80
	nodeMinMM    = 8
	nodeMaxMM    = 30
	metMinMM     = 5
	metMaxMM     = 40
)

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}

// rngReader adapts a seeded source to io.Reader so lesion UUIDs are part of
// the deterministic sampling order rather than crypto-random.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

func newID(rng *rand.Rand) string {
	return uuid.Must(uuid.NewRandomFromReader(rngReader{rng: rng})).String()
}

// intIn samples an integer in [lo, hi] inclusive.
func intIn(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// GeneratePrimary produces the case's single primary tumor at the given
// site. Unknown sites get an unspecified narrative location; site validity
// is enforced at configuration time, not here.
func GeneratePrimary(site string, rng *rand.Rand) Lesion {
	return Lesion{
		ID:                newID(rng),
		Kind:              KindPrimary,
		Site:              site,
		Location:          primaryLocation(site, rng),
		LongestDiameterMM: intIn(rng, primaryMinMM, primaryMaxMM),
		Margin:            pick(rng, lexicon.Margins),
		Enhancement:       pick(rng, lexicon.Enhancements),
	}
}

// GenerateNode produces a lymph node in the given region with a station
// sampled from the region's catalog.
func GenerateNode(region string, rng *rand.Rand) Lesion {
	stations := lexicon.NodeRegions[region]
	return Lesion{
		ID:          newID(rng),
		Kind:        KindNode,
		Region:      region,
		Station:     pick(rng, stations),
		ShortAxisMM: intIn(rng, nodeMinMM, nodeMaxMM),
		Necrosis:    rng.Float64() < 0.2,
	}
}

// GenerateMetastasis produces a metastasis at a random distant site.
func GenerateMetastasis(rng *rand.Rand) Lesion {
	return Lesion{
		ID:                newID(rng),
		Kind:              KindMetastasis,
		Site:              pick(rng, lexicon.MetSites),
		LongestDiameterMM: intIn(rng, metMinMM, metMaxMM),
	}
}

func primaryLocation(site string, rng *rand.Rand) string {
	switch site {
	case "lung":
		return fmt.Sprintf("%s %s lobe", pick(rng, []string{"right", "left"}), pick(rng, []string{"upper", "middle", "lower"}))
	case "colon":
		return fmt.Sprintf("%s colon", pick(rng, []string{"ascending", "transverse", "descending", "sigmoid"}))
	case "pancreas":
		return fmt.Sprintf("%s of the pancreas", pick(rng, []string{"head", "neck", "body", "tail"}))
	case "kidney":
		return fmt.Sprintf("%s kidney, %s", pick(rng, []string{"right", "left"}), pick(rng, []string{"upper pole", "interpolar", "lower pole"}))
	case "liver":
		return fmt.Sprintf("segment %s of the liver", pick(rng, []string{"2", "3", "4", "5", "6", "7", "8"}))
	case "ovary":
		return fmt.Sprintf("%s adnexa", pick(rng, []string{"right", "left"}))
	case "prostate":
		return "prostate gland, peripheral zone"
	case "stomach":
		return fmt.Sprintf("%s of the stomach", pick(rng, []string{"antrum", "body", "fundus", "lesser curvature", "greater curvature"}))
	default:
		return "unspecified"
	}
}
