package complexity

import (
	"math/rand/v2"
	"testing"

	"github.com/mrsinham/recistforge/internal/recist"
)

func newTestSampler(t *testing.T, level string, seed uint64) *Sampler {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	s, err := NewSampler(DefaultConfig(), level, rng)
	if err != nil {
		t.Fatalf("NewSampler(%s): %v", level, err)
	}
	return s
}

func TestNewSampler_UnknownLevel(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if _, err := NewSampler(DefaultConfig(), "C9", rng); err == nil {
		t.Fatal("unknown level accepted")
	}
}

func TestPickArtifact_RespectsSeverityCap(t *testing.T) {
	cfg := DefaultConfig()
	for name, level := range cfg.Levels {
		s := newTestSampler(t, name, 11)
		for i := 0; i < 500; i++ {
			a := s.PickArtifact()
			if a == nil {
				continue
			}
			if a.Severity > level.ArtifactMaxSeverity {
				t.Fatalf("level %s drew %s (severity %v) above cap %v",
					name, a.Kind, a.Severity, level.ArtifactMaxSeverity)
			}
		}
	}
}

func TestPickArtifact_C0AlwaysNone(t *testing.T) {
	s := newTestSampler(t, "C0", 3)
	for i := 0; i < 200; i++ {
		if a := s.PickArtifact(); a != nil {
			t.Fatalf("C0 drew artifact %s", a.Kind)
		}
	}
}

func TestSampleStructuredNegatives_Breadth(t *testing.T) {
	cfg := DefaultConfig()
	for name, level := range cfg.Levels {
		s := newTestSampler(t, name, 5)
		for i := 0; i < 50; i++ {
			negs := s.SampleStructuredNegatives(0)
			if len(negs) != level.NegativeBreadth {
				t.Fatalf("level %s drew %d negatives, want %d", name, len(negs), level.NegativeBreadth)
			}
			seen := make(map[string]bool)
			for _, f := range negs {
				if seen[f.Key] {
					t.Fatalf("level %s drew organ %s twice", name, f.Key)
				}
				seen[f.Key] = true
			}
		}
	}
}

func TestSampleStructuredNegatives_MonotonicBreadth(t *testing.T) {
	cfg := DefaultConfig()
	order := []string{"C0", "C1", "C2", "C3", "C4", "C5"}
	prev := 0
	for _, name := range order {
		b := cfg.Levels[name].NegativeBreadth
		if b < prev {
			t.Fatalf("negative breadth decreases at %s: %d < %d", name, b, prev)
		}
		prev = b
	}
	if cfg.Levels["C0"].NegativeBreadth != 2 || cfg.Levels["C5"].NegativeBreadth != 10 {
		t.Errorf("breadth endpoints: C0=%d C5=%d, want 2 and 10",
			cfg.Levels["C0"].NegativeBreadth, cfg.Levels["C5"].NegativeBreadth)
	}
}

func TestSampleIncidentals_CountInRange(t *testing.T) {
	s := newTestSampler(t, "C4", 9)
	level := DefaultConfig().Levels["C4"]
	for i := 0; i < 100; i++ {
		inc := s.SampleIncidentals()
		if len(inc) < level.IncidentalMin || len(inc) > level.IncidentalMax {
			t.Fatalf("drew %d incidentals, want [%d,%d]", len(inc), level.IncidentalMin, level.IncidentalMax)
		}
		for _, f := range inc {
			if f.Text == "" || f.Key == "" {
				t.Fatalf("empty incidental: %+v", f)
			}
		}
	}
}

func TestSamplePostTreatment_LevelGate(t *testing.T) {
	s := newTestSampler(t, "C2", 13)
	for i := 0; i < 100; i++ {
		if pt := s.SamplePostTreatment("lung"); len(pt) != 0 {
			t.Fatal("C2 produced post-treatment findings")
		}
	}

	s = newTestSampler(t, "C5", 13)
	any := false
	for i := 0; i < 200; i++ {
		if len(s.SamplePostTreatment("lung")) > 0 {
			any = true
			break
		}
	}
	if !any {
		t.Error("C5 never produced post-treatment findings across 200 draws")
	}
}

func TestSample_ProfileShape(t *testing.T) {
	s := newTestSampler(t, "C3", 21)
	p := s.Sample("colon")
	if p.Level != "C3" {
		t.Errorf("profile level = %s", p.Level)
	}
	if len(p.Negatives) != DefaultConfig().Levels["C3"].NegativeBreadth {
		t.Errorf("profile negatives = %d", len(p.Negatives))
	}
}

func TestComputeStagingRelevance(t *testing.T) {
	w := DefaultConfig().Relevance

	tests := []struct {
		name string
		in   RelevanceInput
		want float64
	}{
		{
			name: "quiet follow-up",
			in:   RelevanceInput{HasFollowUp: true, Response: recist.ResponseSD, CurrentSLDMM: 50, NadirSLDMM: 50},
			want: 0.0,
		},
		{
			name: "PD with growth",
			in:   RelevanceInput{HasFollowUp: true, Response: recist.ResponsePD, CurrentSLDMM: 66, NadirSLDMM: 50},
			want: 5.0, // PD (3) + >=20% growth (2)
		},
		{
			name: "new met plus node crossing",
			in: RelevanceInput{HasFollowUp: true, Response: recist.ResponsePD, CurrentSLDMM: 66, NadirSLDMM: 50,
				NewMeasurableMetastasis: true, NodeCrossedThreshold: true},
			want: 10.0,
		},
		{
			name: "severe artifact and hedging penalties",
			in: RelevanceInput{HasFollowUp: true, Response: recist.ResponseSD, CurrentSLDMM: 50, NadirSLDMM: 50,
				Artifact: &Artifact{Impact: 3}, UsedHedging: true},
			want: -3.0,
		},
		{
			name: "baseline ignores growth terms",
			in:   RelevanceInput{HasFollowUp: false, NewMeasurableMetastasis: false},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStagingRelevance(w, tt.in); got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ValidateRejectsInconsistencies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArtifactWeights["C2"]["ghost_artifact"] = 0.5
	if err := cfg.Validate(); err == nil {
		t.Error("weight for undeclared artifact accepted")
	}
}
