package report

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/mrsinham/recistforge/internal/complexity"
	"github.com/mrsinham/recistforge/internal/lesion"
	"github.com/mrsinham/recistforge/internal/lexicon"
	"github.com/mrsinham/recistforge/internal/recist"
)

// Input is the full rendering state for one timepoint: lesions with their
// current (post follow-up) measurements, the rendered RECIST summary, and
// the complexity extras to merge into the organ paragraphs.
type Input struct {
	Primary lesion.Lesion
	Nodes   []lesion.Lesion
	Mets    []lesion.Lesion

	IncludeNegatives bool
	UnitMMProb       float64
	Comparison       string
	Hedge            string // "definite", "probable" or "possible"

	Profile     complexity.Profile
	RECISTBlock string
	Category    string
}

// Render assembles the complete report text: header, FINDINGS and
// IMPRESSION laid out per style.
func Render(in Input, style Style, technique string, rng *rand.Rand) string {
	header := fmt.Sprintf("EXAM: CT CAP\nTECHNIQUE: %s\nHISTORY: %s\n", technique, lexicon.HistoryLine)
	findings := "FINDINGS:\n" + Findings(in, rng)
	impression := "IMPRESSION:\n" + Impression(in)

	switch style {
	case StyleImpressionFirst:
		return header + "\n" + impression + "\n\n" + findings + "\n"
	case StyleNarrative:
		return header + "\n" + strings.ReplaceAll(findings, "\n", " ") + "\n\n" + impression + "\n"
	default:
		return header + "\n" + findings + "\n\n" + impression + "\n"
	}
}

// Findings renders one paragraph per organ section, always in the fixed
// section order. A paragraph states the organ's positive findings when it
// hosts the primary, a node or a metastasis, falls back to a canned
// negative otherwise, and absorbs the complexity extras keyed to it.
func Findings(in Input, rng *rand.Rand) string {
	extras := make(map[lexicon.Organ][]string)
	for _, f := range in.Profile.Negatives {
		extras[f.Organ] = append(extras[f.Organ], f.Text)
	}
	for _, f := range in.Profile.Incidentals {
		extras[f.Organ] = append(extras[f.Organ], f.Text)
	}
	for _, f := range in.Profile.PostTreatment {
		extras[f.Organ] = append(extras[f.Organ], f.Text)
	}

	primaryOrgan, _ := in.Primary.Organ()

	var sections []string
	for _, organ := range lexicon.ReportOrder() {
		var lines []string

		if organ == primaryOrgan {
			lines = append(lines, primarySentence(in.Primary, in.UnitMMProb, rng))
		}
		for _, n := range in.Nodes {
			if o, ok := n.Organ(); ok && o == organ {
				lines = append(lines, nodeSentence(n, in.UnitMMProb, rng))
			}
		}
		for _, m := range in.Mets {
			if o, ok := m.Organ(); ok && o == organ {
				lines = append(lines, metSentence(m, in.UnitMMProb, rng))
			}
		}

		if in.IncludeNegatives || len(lines) == 0 {
			templates := organ.NegativeTemplates()
			lines = append(lines, templates[rng.IntN(len(templates))])
		}

		for _, extra := range extras[organ] {
			if !contains(lines, extra) {
				lines = append(lines, extra)
			}
		}

		headings := organ.Headings()
		heading := headings[rng.IntN(len(headings))]
		sections = append(sections, heading+": "+strings.Join(lines, " "))
	}

	if in.Profile.Artifact != nil {
		sections = append(sections, "Limitations: "+in.Profile.Artifact.Phrase)
	}
	if in.Comparison != "" {
		sections = append(sections, "Comparison: "+in.Comparison)
	}
	return strings.Join(sections, "\n")
}

// Impression renders the summary statements: primary, nodal status,
// metastasis status, the RECIST block with the overall category, and an
// optional hedging comment.
func Impression(in Input) string {
	var lines []string

	certainty := "malignancy"
	if in.Hedge != "" && in.Hedge != lexicon.HedgeDefinite {
		certainty = fmt.Sprintf("neoplasm (%s)", in.Hedge)
	}
	lines = append(lines, fmt.Sprintf("%s primary %s at %s measuring approximately %d mm.",
		capitalize(in.Primary.Site), certainty, in.Primary.Location, in.Primary.LongestDiameterMM))

	if len(in.Nodes) > 0 {
		lines = append(lines, "Findings concerning for nodal involvement.")
	} else {
		lines = append(lines, "No pathologically enlarged lymph nodes identified by size criteria.")
	}

	if len(in.Mets) > 0 {
		seen := make(map[string]bool)
		var sites []string
		for _, m := range in.Mets {
			if !seen[m.Site] {
				seen[m.Site] = true
				sites = append(sites, m.Site)
			}
		}
		sort.Strings(sites)
		lines = append(lines, "Findings compatible with distant metastases involving: "+strings.Join(sites, ", ")+".")
	} else {
		lines = append(lines, "No definite distant metastases identified.")
	}

	if in.RECISTBlock != "" {
		lines = append(lines, in.RECISTBlock)
	}
	lines = append(lines, "RECIST 1.1 overall response: "+in.Category+".")

	if in.Profile.Hedge != "" {
		lines = append(lines, "Comment: "+in.Profile.Hedge)
	}
	lines = append(lines, "Recommend correlation with clinical staging and multidisciplinary discussion.")

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "- " + l
	}
	return strings.Join(out, "\n")
}

// RECISTBlock renders the target-lesion table embedded in the IMPRESSION.
// Follow-up measurements are included when present; the baseline report
// passes nil.
func RECISTBlock(baseline []recist.Target, follow []recist.Measurement, hasNew bool) string {
	var lines []string
	lines = append(lines, "RECIST 1.1 target lesions:")

	if len(baseline) == 0 {
		lines = append(lines, "  none selected (no measurable disease).")
	} else if follow == nil {
		for _, t := range baseline {
			lines = append(lines, fmt.Sprintf("  %s: baseline %d mm.", t.Label, t.MeasureMM))
		}
		lines = append(lines, fmt.Sprintf("  Sum of diameters: baseline %d mm.", recist.SumOfDiameters(baseline)))
	} else {
		for _, m := range follow {
			lines = append(lines, fmt.Sprintf("  %s: baseline %d mm, current %d mm.", m.Label, m.MeasureMM, m.FollowMM))
		}
		lines = append(lines, fmt.Sprintf("  Sum of diameters: baseline %d mm, current %d mm.",
			recist.SumOfDiameters(baseline), recist.SumFollow(follow)))
	}

	if hasNew {
		lines = append(lines, "  New unequivocal lesions: present.")
	} else {
		lines = append(lines, "  New unequivocal lesions: absent.")
	}
	return strings.Join(lines, "\n")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
