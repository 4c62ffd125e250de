package complexity

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/mrsinham/recistforge/internal/lexicon"
)

// Finding is a confounding item bound to the organ paragraph it belongs
// to. Carrying the organ enum (not a string key) makes unmatched merges
// impossible by construction.
type Finding struct {
	Organ lexicon.Organ `json:"-"`
	Key   string        `json:"organ"`
	Text  string        `json:"text"`
}

func newFinding(organ lexicon.Organ, text string) Finding {
	return Finding{Organ: organ, Key: organ.String(), Text: text}
}

// Artifact is the artifact drawn for a study, if any.
type Artifact struct {
	Kind     string   `json:"kind"`
	Severity Severity `json:"-"`
	Rank     int      `json:"severity_rank"`
	Impact   int      `json:"impact"`
	Phrase   string   `json:"report_phrase"`
}

// Profile is the per-timepoint complexity record composed into the report
// and the relevance score.
type Profile struct {
	Level         string    `json:"level"`
	Artifact      *Artifact `json:"artifact"`
	Incidentals   []Finding `json:"incidentals"`
	Negatives     []Finding `json:"structured_negatives"`
	PostTreatment []Finding `json:"post_treatment"`
	Hedge         string    `json:"hedge,omitempty"`
}

// Sampler draws complexity content for one level with an explicit RNG.
type Sampler struct {
	cfg       *Config
	levelName string
	level     Level
	rng       *rand.Rand
}

// NewSampler builds a sampler for the named level. Unknown level names are
// a fatal configuration error.
func NewSampler(cfg *Config, level string, rng *rand.Rand) (*Sampler, error) {
	lvl, ok := cfg.Levels[level]
	if !ok {
		return nil, fmt.Errorf("unknown complexity level: %s (valid: %v)", level, cfg.LevelNames())
	}
	return &Sampler{cfg: cfg, levelName: level, level: lvl, rng: rng}, nil
}

// LevelName returns the sampler's level.
func (s *Sampler) LevelName() string { return s.levelName }

// Level returns the level knobs.
func (s *Sampler) Level() Level { return s.level }

// Sample draws a complete profile for one timepoint.
func (s *Sampler) Sample(primarySite string) Profile {
	return Profile{
		Level:         s.levelName,
		Artifact:      s.PickArtifact(),
		Incidentals:   s.SampleIncidentals(),
		Negatives:     s.SampleStructuredNegatives(0),
		PostTreatment: s.SamplePostTreatment(primarySite),
		Hedge:         s.HedgePhrase(),
	}
}

// PickArtifact draws one artifact (or none) from the level's weight table.
// Artifacts above the level's severity cap are excluded from the draw
// entirely, not merely down-weighted.
func (s *Sampler) PickArtifact() *Artifact {
	weights := s.cfg.ArtifactWeights[s.levelName]
	cap := s.level.ArtifactMaxSeverity

	keys := make([]string, 0, len(weights))
	for key := range weights {
		if key == "none" {
			keys = append(keys, key)
			continue
		}
		if s.cfg.Artifacts[key].Severity <= cap {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys) // deterministic draw order given the seed

	total := 0.0
	for _, key := range keys {
		total += weights[key]
	}
	r := s.rng.Float64() * total
	chosen := keys[len(keys)-1]
	for _, key := range keys {
		if r < weights[key] {
			chosen = key
			break
		}
		r -= weights[key]
	}
	if chosen == "none" {
		return nil
	}
	t := s.cfg.Artifacts[chosen]
	return &Artifact{
		Kind:     chosen,
		Severity: t.Severity,
		Rank:     int(t.Severity),
		Impact:   t.Impact,
		Phrase:   t.Phrase,
	}
}

// SampleIncidentals draws organ-aware incidental findings. The count is
// uniform in the level's incidental range.
func (s *Sampler) SampleIncidentals() []Finding {
	lo, hi := s.level.IncidentalMin, s.level.IncidentalMax
	k := lo
	if hi > lo {
		k = lo + s.rng.IntN(hi-lo+1)
	}
	if k <= 0 {
		return nil
	}

	type entry struct {
		organ lexicon.Organ
		text  string
	}
	var corpus []entry
	for _, organ := range lexicon.ReportOrder() {
		for _, text := range lexicon.Incidentals[organ] {
			corpus = append(corpus, entry{organ, text})
		}
	}

	picks := make([]Finding, 0, k)
	for i := 0; i < k; i++ {
		e := corpus[s.rng.IntN(len(corpus))]
		picks = append(picks, newFinding(e.organ, e.text))
	}
	return picks
}

// SampleStructuredNegatives picks a breadth of "no X" statements, broader
// at higher levels (2 organs at C0 up to 10 at C5). maxOrgans optionally
// tightens the breadth; 0 means no extra limit.
func (s *Sampler) SampleStructuredNegatives(maxOrgans int) []Finding {
	breadth := s.level.NegativeBreadth
	if maxOrgans > 0 && maxOrgans < breadth {
		breadth = maxOrgans
	}
	organs := lexicon.ReportOrder()
	if breadth > len(organs) {
		breadth = len(organs)
	}
	if breadth <= 0 {
		return nil
	}

	// partial Fisher-Yates over a copy keeps the draw O(breadth)
	pool := make([]lexicon.Organ, len(organs))
	copy(pool, organs)
	out := make([]Finding, 0, breadth)
	for i := 0; i < breadth; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		organ := pool[i]
		templates := organ.NegativeTemplates()
		out = append(out, newFinding(organ, templates[s.rng.IntN(len(templates))]))
	}
	return out
}

// Post-treatment draw probabilities, applied only when the level enables
// post-treatment content.
const (
	radiationProb = 0.25
	surgeryProb   = 0.30
	ablationProb  = 0.15
	// prefer the primary's organ when choosing a surgical site
	surgeryPrimaryBias = 0.7
)

// SamplePostTreatment returns treatment-change findings keyed to their
// organ paragraphs. Surgical changes prefer the primary site.
func (s *Sampler) SamplePostTreatment(primarySite string) []Finding {
	if !s.level.EnablePostTreatment {
		return nil
	}
	var out []Finding

	if s.rng.Float64() < radiationProb {
		e := lexicon.RadiationEffects[s.rng.IntN(len(lexicon.RadiationEffects))]
		out = append(out, newFinding(e.Organ, e.Phrase))
	}

	if s.rng.Float64() < surgeryProb {
		site := primarySite
		if _, ok := lexicon.SurgicalEffects[site]; !ok || s.rng.Float64() >= surgeryPrimaryBias {
			sites := make([]string, 0, len(lexicon.SurgicalEffects))
			for k := range lexicon.SurgicalEffects {
				sites = append(sites, k)
			}
			sort.Strings(sites)
			site = sites[s.rng.IntN(len(sites))]
		}
		effects := lexicon.SurgicalEffects[site]
		e := effects[s.rng.IntN(len(effects))]
		out = append(out, newFinding(e.Organ, e.Phrase))
	}

	if s.rng.Float64() < ablationProb {
		e := lexicon.AblationEffects[s.rng.IntN(len(lexicon.AblationEffects))]
		out = append(out, newFinding(e.Organ, e.Phrase))
	}

	return out
}

// HedgePhrase returns a hedging sentence with the level's probability,
// otherwise the empty string.
func (s *Sampler) HedgePhrase() string {
	if s.rng.Float64() >= s.level.HedgeProbability {
		return ""
	}
	return lexicon.HedgePhrases[s.rng.IntN(len(lexicon.HedgePhrases))]
}
