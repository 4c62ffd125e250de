package recist

import (
	"testing"

	"github.com/mrsinham/recistforge/internal/lesion"
)

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want Response
	}{
		{
			name: "complete response",
			s:    Snapshot{BaselineSLDMM: 50, CurrentSLDMM: 0, NadirSLDMM: 0, AllTargetsResolved: true},
			want: ResponseCR,
		},
		{
			name: "resolved targets with new lesion is PD not CR",
			s:    Snapshot{BaselineSLDMM: 50, CurrentSLDMM: 0, NadirSLDMM: 0, AllTargetsResolved: true, HasNewLesion: true},
			want: ResponsePD,
		},
		{
			name: "resolved non-nodal but node still pathologic",
			s:    Snapshot{BaselineSLDMM: 50, CurrentSLDMM: 12, NadirSLDMM: 12, AllTargetsResolved: true, AnyNodeGE10: true},
			want: ResponsePR,
		},
		{
			name: "new lesion overrides deep response",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 40, NadirSLDMM: 40, HasNewLesion: true},
			want: ResponsePD,
		},
		{
			name: "zero baseline is SD",
			s:    Snapshot{BaselineSLDMM: 0, CurrentSLDMM: 0, NadirSLDMM: 0},
			want: ResponseSD,
		},
		{
			name: "30 percent decrease is PR",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 70, NadirSLDMM: 70},
			want: ResponsePR,
		},
		{
			name: "29 percent decrease is SD",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 71, NadirSLDMM: 71},
			want: ResponseSD,
		},
		{
			name: "20 percent and 5mm over nadir is PD",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 75, NadirSLDMM: 60},
			want: ResponsePD,
		},
		{
			name: "PR from baseline wins over growth from nadir",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 65, NadirSLDMM: 50},
			want: ResponsePR,
		},
		{
			name: "20 percent over nadir but under 5mm absolute is SD",
			s:    Snapshot{BaselineSLDMM: 30, CurrentSLDMM: 24, NadirSLDMM: 20},
			want: ResponseSD,
		},
		{
			name: "5mm over nadir but under 20 percent is SD",
			s:    Snapshot{BaselineSLDMM: 100, CurrentSLDMM: 95, NadirSLDMM: 90},
			want: ResponseSD,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.s); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

// Two targets of 25 and 15 mm: baseline SLD 40. After a nadir of 40, PD
// requires both >=20% growth (>=48) and >=5 mm absolute (>=45), so the
// binding constraint is 48.
func TestClassify_NadirPDBothConditions(t *testing.T) {
	base, nadir := 40, 40

	if got := Classify(Snapshot{BaselineSLDMM: base, CurrentSLDMM: 47, NadirSLDMM: nadir}); got != ResponseSD {
		t.Errorf("SLD 47 from nadir 40: got %v, want SD", got)
	}
	if got := Classify(Snapshot{BaselineSLDMM: base, CurrentSLDMM: 48, NadirSLDMM: nadir}); got != ResponsePD {
		t.Errorf("SLD 48 from nadir 40: got %v, want PD", got)
	}
}

func TestNewSnapshot_Flags(t *testing.T) {
	ms := []Measurement{
		{Target: Target{Kind: lesion.KindPrimary, Key: "primary", MeasureMM: 30}, FollowMM: 0},
		{Target: Target{Kind: lesion.KindNode, Key: "ln:subcarinal", MeasureMM: 16}, FollowMM: 8},
	}
	s := NewSnapshot(46, 46, ms, false)
	if !s.AllTargetsResolved {
		t.Error("non-nodal target at 0 should resolve")
	}
	if s.AnyNodeGE10 {
		t.Error("8mm node should not count as pathologic")
	}
	if s.CurrentSLDMM != 8 {
		t.Errorf("CurrentSLDMM = %d, want 8", s.CurrentSLDMM)
	}

	ms[1].FollowMM = 11
	s = NewSnapshot(46, 46, ms, false)
	if !s.AnyNodeGE10 {
		t.Error("11mm node should count as pathologic")
	}
	if got := Classify(s); got == ResponseCR {
		t.Error("pathologic node must block CR")
	}
}

func TestNewSnapshot_EmptyTargetsNeverCR(t *testing.T) {
	s := NewSnapshot(0, 0, nil, false)
	if s.AllTargetsResolved {
		t.Error("a case with no targets cannot report resolved targets")
	}
	if got := Classify(s); got != ResponseSD {
		t.Errorf("no measurable disease: got %v, want SD", got)
	}
}

func TestNewSnapshot_NadirMonotonicInput(t *testing.T) {
	ms := []Measurement{
		{Target: Target{Kind: lesion.KindPrimary, Key: "primary", MeasureMM: 40}, FollowMM: 25},
	}
	s := NewSnapshot(40, 25, ms, false)
	if s.NadirSLDMM != 25 {
		t.Errorf("NadirSLDMM = %d, want 25", s.NadirSLDMM)
	}
	if got := Classify(s); got != ResponsePR {
		t.Errorf("37 percent decrease: got %v, want PR", got)
	}
}
