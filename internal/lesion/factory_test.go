package lesion

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"

	"github.com/mrsinham/recistforge/internal/lexicon"
)

func TestGeneratePrimary_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, site := range lexicon.PrimarySites {
		for i := 0; i < 20; i++ {
			p := GeneratePrimary(site, rng)
			if p.LongestDiameterMM < primaryMinMM || p.LongestDiameterMM > primaryMaxMM {
				t.Fatalf("%s primary at %dmm, want [%d,%d]", site, p.LongestDiameterMM, primaryMinMM, primaryMaxMM)
			}
			if p.Location == "unspecified" {
				t.Errorf("known site %s produced unspecified location", site)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("generated primary invalid: %v", err)
			}
		}
	}
}

func TestGenerateNode_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	for _, region := range lexicon.NodeRegionNames() {
		for i := 0; i < 20; i++ {
			n := GenerateNode(region, rng)
			if n.ShortAxisMM < nodeMinMM || n.ShortAxisMM > nodeMaxMM {
				t.Fatalf("%s node at %dmm, want [%d,%d]", region, n.ShortAxisMM, nodeMinMM, nodeMaxMM)
			}
			if n.Station == "" {
				t.Errorf("%s node has no station", region)
			}
			if err := n.Validate(); err != nil {
				t.Errorf("generated node invalid: %v", err)
			}
		}
	}
}

func TestGenerateMetastasis_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	for i := 0; i < 50; i++ {
		m := GenerateMetastasis(rng)
		if m.LongestDiameterMM < metMinMM || m.LongestDiameterMM > metMaxMM {
			t.Fatalf("metastasis at %dmm, want [%d,%d]", m.LongestDiameterMM, metMinMM, metMaxMM)
		}
		if _, ok := lexicon.MetSiteOrgan(m.Site); !ok {
			t.Errorf("metastasis at unknown site %q", m.Site)
		}
	}
}

func TestGenerate_IDsAreSeeded(t *testing.T) {
	a := rand.New(rand.NewPCG(9, 9))
	b := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 10; i++ {
		la := GeneratePrimary("lung", a)
		lb := GeneratePrimary("lung", b)
		if la.ID != lb.ID {
			t.Fatalf("draw %d: IDs diverge under the same seed: %q vs %q", i, la.ID, lb.ID)
		}
		if _, err := uuid.Parse(la.ID); err != nil {
			t.Fatalf("lesion ID %q is not a UUID: %v", la.ID, err)
		}
		na := GenerateNode("thoracic", a)
		nb := GenerateNode("thoracic", b)
		if na.ID != nb.ID {
			t.Fatalf("draw %d: node IDs diverge under the same seed", i)
		}
		ma := GenerateMetastasis(a)
		mb := GenerateMetastasis(b)
		if ma.ID != mb.ID {
			t.Fatalf("draw %d: metastasis IDs diverge under the same seed", i)
		}
		if la.ID == na.ID || na.ID == ma.ID {
			t.Fatalf("draw %d: consecutive lesions share an ID", i)
		}
	}

	other := GenerateMetastasis(rand.New(rand.NewPCG(10, 10)))
	first := GenerateMetastasis(rand.New(rand.NewPCG(9, 9)))
	if other.ID == first.ID {
		t.Error("different seeds produced the same lesion ID")
	}
}

func TestLesion_Key(t *testing.T) {
	tests := []struct {
		l    Lesion
		want string
	}{
		{Lesion{Kind: KindPrimary, Site: "lung"}, "primary"},
		{Lesion{Kind: KindNode, Station: "subcarinal"}, "ln:subcarinal"},
		{Lesion{Kind: KindMetastasis, Site: "liver"}, "met:liver"},
	}
	for _, tt := range tests {
		if got := tt.l.Key(); got != tt.want {
			t.Errorf("Key() = %q, want %q", got, tt.want)
		}
	}
}

func TestLesion_MeasurementMM(t *testing.T) {
	n := Lesion{Kind: KindNode, ShortAxisMM: 14, LongestDiameterMM: 25}
	if n.MeasurementMM() != 14 {
		t.Errorf("node measurement = %d, want short axis 14", n.MeasurementMM())
	}
	m := Lesion{Kind: KindMetastasis, LongestDiameterMM: 25}
	if m.MeasurementMM() != 25 {
		t.Errorf("metastasis measurement = %d, want 25", m.MeasurementMM())
	}
}

func TestKind_RoundTrip(t *testing.T) {
	for _, k := range []Kind{KindPrimary, KindNode, KindMetastasis} {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
	if _, err := ParseKind("tumour"); err == nil {
		t.Error("ParseKind accepted unknown kind")
	}
}
