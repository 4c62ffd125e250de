package complexity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level holds the per-level knobs. Level names are C0 (cleanest) through
// C5 (most confounded).
type Level struct {
	ArtifactMaxSeverity  Severity `yaml:"artifact_max_severity"`
	IncidentalMin        int      `yaml:"incidental_min"`
	IncidentalMax        int      `yaml:"incidental_max"`
	NegativeBreadth      int      `yaml:"negative_breadth"`
	EnablePostTreatment  bool     `yaml:"enable_post_treatment"`
	HedgeProbability     float64  `yaml:"hedge_probability"`
	NewLesionProbability float64  `yaml:"new_lesion_probability"`
}

// ArtifactType describes one CT artifact the sampler can draw.
type ArtifactType struct {
	Severity Severity `yaml:"severity"`
	Impact   int      `yaml:"impact"` // 1 mild, 2 moderate, 3 severe diagnostic impact
	Phrase   string   `yaml:"report_phrase"`
}

// Weights are the staging-relevance scoring weights.
type Weights struct {
	NewMeasurableMetastasis float64 `yaml:"new_measurable_metastasis"`
	PDVsNadir               float64 `yaml:"recist_pd_vs_nadir"`
	NodeCrossingThreshold   float64 `yaml:"short_axis_node_crossing_threshold"`
	GrowthGE20FromNadir     float64 `yaml:"target_growth_ge20pct_from_nadir"`
	ArtifactPenaltyMild     float64 `yaml:"artifact_penalty_mild"`
	ArtifactPenaltyModerate float64 `yaml:"artifact_penalty_moderate"`
	ArtifactPenaltySevere   float64 `yaml:"artifact_penalty_severe"`
	EquivocalPenalty        float64 `yaml:"equivocal_language_penalty"`
}

// Config is the full complexity catalog: levels, artifact types with
// per-level draw weights, and relevance weights.
type Config struct {
	Levels          map[string]Level               `yaml:"complexity_levels"`
	Artifacts       map[string]ArtifactType        `yaml:"artifacts_ct"`
	ArtifactWeights map[string]map[string]float64  `yaml:"artifact_weights_by_level"`
	Relevance       Weights                        `yaml:"staging_relevance_weights"`
}

// LevelNames returns the configured level names in rank order.
func (c *Config) LevelNames() []string {
	names := make([]string, 0, len(c.Levels))
	for i := 0; i < len(c.Levels); i++ {
		name := fmt.Sprintf("C%d", i)
		if _, ok := c.Levels[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks internal consistency: every artifact referenced by a
// weight table must exist, and every level needs a weight table.
func (c *Config) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("no complexity levels defined")
	}
	for name, lvl := range c.Levels {
		if lvl.IncidentalMin < 0 || lvl.IncidentalMax < lvl.IncidentalMin {
			return fmt.Errorf("level %s: invalid incidental range [%d,%d]", name, lvl.IncidentalMin, lvl.IncidentalMax)
		}
		if lvl.NegativeBreadth < 0 {
			return fmt.Errorf("level %s: negative breadth must be >= 0", name)
		}
		if lvl.HedgeProbability < 0 || lvl.HedgeProbability > 1 {
			return fmt.Errorf("level %s: hedge probability must be in [0,1]", name)
		}
		weights, ok := c.ArtifactWeights[name]
		if !ok {
			return fmt.Errorf("level %s: missing artifact weight table", name)
		}
		for key := range weights {
			if key == "none" {
				continue
			}
			if _, ok := c.Artifacts[key]; !ok {
				return fmt.Errorf("level %s: weight for unknown artifact %q", name, key)
			}
		}
	}
	return nil
}

// LoadConfig reads a YAML complexity catalog. A malformed file or an
// inconsistent catalog is a fatal configuration error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read complexity config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse complexity config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid complexity config: %w", err)
	}
	return &cfg, nil
}

// DefaultConfig returns the compiled-in catalog.
func DefaultConfig() *Config {
	return &Config{
		Levels: map[string]Level{
			"C0": {ArtifactMaxSeverity: SeverityNone, IncidentalMin: 0, IncidentalMax: 0, NegativeBreadth: 2, HedgeProbability: 0.0, NewLesionProbability: 0.01},
			"C1": {ArtifactMaxSeverity: SeverityPartialVolume, IncidentalMin: 0, IncidentalMax: 1, NegativeBreadth: 3, HedgeProbability: 0.05, NewLesionProbability: 0.02},
			"C2": {ArtifactMaxSeverity: SeverityMotionMild, IncidentalMin: 1, IncidentalMax: 2, NegativeBreadth: 5, HedgeProbability: 0.10, NewLesionProbability: 0.03},
			"C3": {ArtifactMaxSeverity: SeverityBeamHardening, IncidentalMin: 1, IncidentalMax: 3, NegativeBreadth: 7, EnablePostTreatment: true, HedgeProbability: 0.20, NewLesionProbability: 0.05},
			"C4": {ArtifactMaxSeverity: SeverityMetalStreak, IncidentalMin: 2, IncidentalMax: 4, NegativeBreadth: 9, EnablePostTreatment: true, HedgeProbability: 0.30, NewLesionProbability: 0.08},
			"C5": {ArtifactMaxSeverity: SeverityMotionModerate, IncidentalMin: 2, IncidentalMax: 5, NegativeBreadth: 10, EnablePostTreatment: true, HedgeProbability: 0.40, NewLesionProbability: 0.10},
		},
		Artifacts: map[string]ArtifactType{
			"partial_volume":  {Severity: SeverityPartialVolume, Impact: 1, Phrase: "Evaluation of subcentimeter structures is limited by partial volume averaging."},
			"motion_mild":     {Severity: SeverityMotionMild, Impact: 1, Phrase: "Mild respiratory motion artifact at the lung bases."},
			"beam_hardening":  {Severity: SeverityBeamHardening, Impact: 2, Phrase: "Beam hardening artifact from adjacent dense contrast limits local evaluation."},
			"metal_streak":    {Severity: SeverityMetalStreak, Impact: 3, Phrase: "Streak artifact from metallic hardware substantially limits evaluation of adjacent structures."},
			"motion_moderate": {Severity: SeverityMotionModerate, Impact: 3, Phrase: "Moderate motion artifact degrades evaluation of the lung bases and upper abdomen."},
		},
		ArtifactWeights: map[string]map[string]float64{
			"C0": {"none": 1.0},
			"C1": {"none": 0.8, "partial_volume": 0.2},
			"C2": {"none": 0.6, "partial_volume": 0.2, "motion_mild": 0.2},
			"C3": {"none": 0.45, "partial_volume": 0.2, "motion_mild": 0.2, "beam_hardening": 0.15},
			"C4": {"none": 0.3, "partial_volume": 0.2, "motion_mild": 0.2, "beam_hardening": 0.15, "metal_streak": 0.15},
			"C5": {"none": 0.2, "partial_volume": 0.15, "motion_mild": 0.2, "beam_hardening": 0.15, "metal_streak": 0.15, "motion_moderate": 0.15},
		},
		Relevance: Weights{
			NewMeasurableMetastasis: 3.0,
			PDVsNadir:               3.0,
			NodeCrossingThreshold:   2.0,
			GrowthGE20FromNadir:     2.0,
			ArtifactPenaltyMild:     0.5,
			ArtifactPenaltyModerate: 1.0,
			ArtifactPenaltySevere:   2.0,
			EquivocalPenalty:        1.0,
		},
	}
}
