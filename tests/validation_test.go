package tests

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrsinham/recistforge/internal/cohort"
	"github.com/mrsinham/recistforge/internal/report"
)

// TestValidation_ReportStructure checks every rendered report carries the
// expected sections and the RECIST summary.
func TestValidation_ReportStructure(t *testing.T) {
	for _, style := range []report.Style{report.StyleStructured, report.StyleImpressionFirst, report.StyleNarrative} {
		t.Run(style.String(), func(t *testing.T) {
			opts := cohortOptions(t, 21)
			opts.NumPatients = 3
			opts.Style = style
			rows, err := cohort.GenerateCohort(opts)
			if err != nil {
				t.Fatalf("GenerateCohort failed: %v", err)
			}

			for _, row := range rows {
				path := filepath.Join(opts.OutputDir, "patients", row.PatientID, row.StudyDate, "report.txt")
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("read %s: %v", path, err)
				}
				text := string(data)

				for _, want := range []string{
					"EXAM: CT CAP",
					"TECHNIQUE:",
					"HISTORY:",
					"FINDINGS:",
					"IMPRESSION:",
					"RECIST 1.1 target lesions:",
					"RECIST 1.1 overall response: " + row.OverallResponse + ".",
					"New unequivocal lesions:",
				} {
					if !strings.Contains(text, want) {
						t.Errorf("%s/%s missing %q", row.PatientID, row.StudyDate, want)
					}
				}
			}
			t.Logf("✓ %d %s reports structurally valid", len(rows), style)
		})
	}
}

// TestValidation_LabelsMatchNumbers recomputes the response category from
// the recorded burden numbers: labels are always derived, never asserted.
func TestValidation_LabelsMatchNumbers(t *testing.T) {
	opts := cohortOptions(t, 33)
	opts.NumPatients = 10
	rows, err := cohort.GenerateCohort(opts)
	if err != nil {
		t.Fatalf("GenerateCohort failed: %v", err)
	}

	checked := 0
	for _, row := range rows {
		if row.Timepoint == 0 {
			continue
		}
		if row.CurrentSLDMM == nil || row.NadirSLDMM == nil {
			t.Fatalf("%s tp %d: missing SLD values", row.PatientID, row.Timepoint)
		}
		base := float64(row.BaselineSLDMM)
		cur := *row.CurrentSLDMM
		nadir := *row.NadirSLDMM

		hasNew := reportDeclaresNewLesions(t, opts.OutputDir, row)

		switch row.OverallResponse {
		case "PR":
			if base == 0 || (float64(cur)-base)/base > -0.30 {
				t.Errorf("%s tp %d: PR label but SLD %d vs baseline %d", row.PatientID, row.Timepoint, cur, row.BaselineSLDMM)
			}
		case "PD":
			growth := math.Inf(1)
			if nadir > 0 {
				growth = float64(cur-nadir) / float64(nadir)
			}
			if !hasNew && (growth < 0.20 || cur-nadir < 5) {
				t.Errorf("%s tp %d: PD label without new lesions or nadir growth (cur %d, nadir %d)",
					row.PatientID, row.Timepoint, cur, nadir)
			}
		case "SD":
			if hasNew {
				t.Errorf("%s tp %d: SD label despite new lesions", row.PatientID, row.Timepoint)
			}
			if nadir > 0 && float64(cur-nadir)/float64(nadir) >= 0.20 && cur-nadir >= 5 && base > 0 && (float64(cur)-base)/base > -0.30 {
				t.Errorf("%s tp %d: SD label but nadir growth qualifies as PD", row.PatientID, row.Timepoint)
			}
		case "CR":
			if hasNew {
				t.Errorf("%s tp %d: CR label despite new lesions", row.PatientID, row.Timepoint)
			}
		default:
			t.Errorf("%s tp %d: unexpected label %q", row.PatientID, row.Timepoint, row.OverallResponse)
		}
		checked++
	}
	t.Logf("✓ %d follow-up labels consistent with their numbers", checked)
}

// TestValidation_LesionRowsCoverTargets checks the ground truth names at
// least one target lesion whenever measurable disease exists.
func TestValidation_LesionRowsCoverTargets(t *testing.T) {
	opts := cohortOptions(t, 55)
	opts.NumPatients = 5
	rows, err := cohort.GenerateCohort(opts)
	if err != nil {
		t.Fatalf("GenerateCohort failed: %v", err)
	}

	for _, row := range rows {
		metaPath := filepath.Join(opts.OutputDir, "patients", row.PatientID, row.StudyDate, "meta.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			t.Fatalf("read %s: %v", metaPath, err)
		}
		var rec cohort.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			t.Fatalf("parse %s: %v", metaPath, err)
		}

		targets := 0
		for _, l := range rec.Lesions {
			if l.LesionID == "" || l.Kind == "" {
				t.Errorf("%s tp %d: incomplete lesion row %+v", row.PatientID, row.Timepoint, l)
			}
			if l.Target {
				targets++
			}
		}
		if row.BaselineSLDMM > 0 && targets == 0 {
			t.Errorf("%s tp %d: baseline SLD %d but no target rows", row.PatientID, row.Timepoint, row.BaselineSLDMM)
		}
		if targets > 5 {
			t.Errorf("%s tp %d: %d targets exceeds RECIST cap", row.PatientID, row.Timepoint, targets)
		}
	}
}

// reportDeclaresNewLesions reads the rendered report's new-lesion line.
func reportDeclaresNewLesions(t *testing.T, outDir string, row cohort.IndexRow) bool {
	t.Helper()
	path := filepath.Join(outDir, "patients", row.PatientID, row.StudyDate, "report.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Contains(string(data), "New unequivocal lesions: present.")
}
