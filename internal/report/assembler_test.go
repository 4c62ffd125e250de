package report

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/lesion"
	"github.com/mrsinham/recistforge/internal/lexicon"
	"github.com/mrsinham/recistforge/internal/recist"
)

func testInput() Input {
	return Input{
		Primary: lesion.Lesion{
			ID: "L1", Kind: lesion.KindPrimary, Site: "lung",
			Location: "right upper lobe", LongestDiameterMM: 42,
			Margin: "spiculated", Enhancement: "heterogeneous enhancement",
		},
		Nodes: []lesion.Lesion{
			{ID: "L2", Kind: lesion.KindNode, Region: "thoracic", Station: "right paratracheal", ShortAxisMM: 17},
		},
		Mets: []lesion.Lesion{
			{ID: "L3", Kind: lesion.KindMetastasis, Site: "liver", LongestDiameterMM: 25},
		},
		UnitMMProb: 1.0,
		Hedge:      "definite",
		Category:   "SD",
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 7))
}

func TestFindings_FixedSectionOrder(t *testing.T) {
	in := testInput()
	out := Findings(in, testRNG())

	lines := strings.Split(out, "\n")
	order := lexicon.ReportOrder()
	if len(lines) != len(order) {
		t.Fatalf("got %d sections, want %d", len(lines), len(order))
	}
	for i, organ := range order {
		matched := false
		for _, h := range organ.Headings() {
			if strings.HasPrefix(lines[i], h+": ") {
				matched = true
				break
			}
		}
		if !matched {
			t.Errorf("section %d does not start with a %s heading: %q", i, organ, lines[i])
		}
	}
}

func TestFindings_MeasurementsRoundTrip(t *testing.T) {
	in := testInput()
	out := Findings(in, testRNG())

	for _, want := range []string{"42 mm", "short axis 17 mm", "25 mm"} {
		if !strings.Contains(out, want) {
			t.Errorf("findings missing %q", want)
		}
	}
	if !strings.Contains(out, "suspicious for metastasis") {
		t.Error("findings missing metastasis sentence")
	}
}

func TestFindings_CMUnitIsExact(t *testing.T) {
	in := testInput()
	in.UnitMMProb = 0.0
	out := Findings(in, testRNG())

	if !strings.Contains(out, "4.2 cm") {
		t.Errorf("primary not rendered as exact cm:\n%s", out)
	}
}

func TestFindings_LimitationsAndComparison(t *testing.T) {
	in := testInput()
	in.Profile.Artifact = &complexity.Artifact{
		Kind: "motion_mild", Impact: 1,
		Phrase: "Mild respiratory motion artifact at the lung bases.",
	}
	in.Comparison = "CT CAP dated 2023-04-01."
	out := Findings(in, testRNG())

	if !strings.Contains(out, "Limitations: Mild respiratory motion artifact at the lung bases.") {
		t.Error("missing limitations line")
	}
	if !strings.Contains(out, "Comparison: CT CAP dated 2023-04-01.") {
		t.Error("missing comparison line")
	}
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[len(lines)-1], "Comparison: ") {
		t.Error("comparison is not the last line")
	}
}

func TestFindings_MergesExtrasOnce(t *testing.T) {
	organ := lexicon.ReportOrder()[0]
	extra := complexity.Finding{Organ: organ, Key: organ.String(), Text: "Trace dependent atelectasis."}

	in := testInput()
	in.Profile.Incidentals = []complexity.Finding{extra, extra}
	out := Findings(in, testRNG())

	if n := strings.Count(out, extra.Text); n != 1 {
		t.Errorf("extra appears %d times, want 1", n)
	}
}

func TestImpression_Statements(t *testing.T) {
	in := testInput()
	in.Hedge = "possible"
	in.Category = "PR"
	in.RECISTBlock = "RECIST 1.1 target lesions:\n  none selected (no measurable disease)."
	in.Profile.Hedge = "Findings are equivocal; short-interval follow-up may be considered."
	in.Mets = append(in.Mets, lesion.Lesion{Kind: lesion.KindMetastasis, Site: "adrenal", LongestDiameterMM: 12},
		lesion.Lesion{Kind: lesion.KindMetastasis, Site: "liver", LongestDiameterMM: 18})

	out := Impression(in)

	for _, want := range []string{
		"- Lung primary neoplasm (possible) at right upper lobe measuring approximately 42 mm.",
		"- Findings concerning for nodal involvement.",
		"- Findings compatible with distant metastases involving: adrenal, liver.",
		"- RECIST 1.1 overall response: PR.",
		"- Comment: Findings are equivocal; short-interval follow-up may be considered.",
		"- Recommend correlation with clinical staging and multidisciplinary discussion.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("impression missing %q\ngot:\n%s", want, out)
		}
	}
	for _, l := range strings.Split(out, "\n") {
		if !strings.HasPrefix(l, "- ") && !strings.HasPrefix(l, "RECIST 1.1 target") && !strings.HasPrefix(l, "  ") {
			t.Errorf("impression line without bullet: %q", l)
		}
	}
}

func TestImpression_NegativeStatements(t *testing.T) {
	in := testInput()
	in.Nodes = nil
	in.Mets = nil
	out := Impression(in)

	if !strings.Contains(out, "No pathologically enlarged lymph nodes identified by size criteria.") {
		t.Error("missing negative nodal statement")
	}
	if !strings.Contains(out, "No definite distant metastases identified.") {
		t.Error("missing negative metastasis statement")
	}
	if !strings.Contains(out, "malignancy") {
		t.Error("definite hedge should render as malignancy")
	}
}

func TestRECISTBlock(t *testing.T) {
	baseline := []recist.Target{
		{Label: "primary lung lesion", MeasureMM: 42},
		{Label: "right paratracheal node", MeasureMM: 17},
	}

	t.Run("baseline only", func(t *testing.T) {
		out := RECISTBlock(baseline, nil, false)
		for _, want := range []string{
			"  primary lung lesion: baseline 42 mm.",
			"  right paratracheal node: baseline 17 mm.",
			"  Sum of diameters: baseline 59 mm.",
			"  New unequivocal lesions: absent.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("follow-up", func(t *testing.T) {
		follow := []recist.Measurement{
			{Target: baseline[0], FollowMM: 30},
			{Target: baseline[1], FollowMM: 12},
		}
		out := RECISTBlock(baseline, follow, true)
		for _, want := range []string{
			"  primary lung lesion: baseline 42 mm, current 30 mm.",
			"  Sum of diameters: baseline 59 mm, current 42 mm.",
			"  New unequivocal lesions: present.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("no measurable disease", func(t *testing.T) {
		out := RECISTBlock(nil, nil, false)
		if !strings.Contains(out, "none selected (no measurable disease).") {
			t.Errorf("unexpected block:\n%s", out)
		}
	})
}

func TestRender_Styles(t *testing.T) {
	in := testInput()
	technique := "CT of the chest, abdomen and pelvis with IV contrast."

	structured := Render(in, StyleStructured, technique, testRNG())
	if !strings.HasPrefix(structured, "EXAM: CT CAP\nTECHNIQUE: "+technique+"\n") {
		t.Error("structured report missing header")
	}
	if strings.Index(structured, "FINDINGS:") > strings.Index(structured, "IMPRESSION:") {
		t.Error("structured report should lead with findings")
	}

	impFirst := Render(in, StyleImpressionFirst, technique, testRNG())
	if strings.Index(impFirst, "IMPRESSION:") > strings.Index(impFirst, "FINDINGS:") {
		t.Error("impression_first report should lead with impression")
	}

	narrative := Render(in, StyleNarrative, technique, testRNG())
	if strings.Contains(narrative, "FINDINGS:\n") {
		t.Error("narrative findings should be a single paragraph")
	}
	if !strings.Contains(narrative, "FINDINGS: ") {
		t.Error("narrative report missing findings paragraph")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{StyleStructured, StyleImpressionFirst, StyleNarrative} {
		got, err := ParseStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStyle("haiku"); err == nil {
		t.Error("invalid style accepted")
	}
}
