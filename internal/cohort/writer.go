package cohort

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/mrsinham/recistforge/internal/dicomstub"
	"github.com/mrsinham/recistforge/internal/util"
)

// writeCourse persists one patient's artifacts under
// <out>/patients/<PID>/<YYYY-MM-DD>/. Each study directory holds report.txt
// and meta.json; with EmitDICOM a metadata-only study.dcm joins them.
func writeCourse(opts *Options, course *Course, rng *rand.Rand) error {
	pdir := filepath.Join(opts.OutputDir, "patients", course.PatientID)
	for _, study := range course.Studies {
		sdir := filepath.Join(pdir, study.Record.StudyDate)
		if err := os.MkdirAll(sdir, 0755); err != nil {
			return fmt.Errorf("create study directory: %w", err)
		}

		if err := os.WriteFile(filepath.Join(sdir, "report.txt"), []byte(study.ReportText), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		meta, err := json.MarshalIndent(study.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if err := os.WriteFile(filepath.Join(sdir, "meta.json"), append(meta, '\n'), 0644); err != nil {
			return fmt.Errorf("write record: %w", err)
		}

		if opts.EmitDICOM {
			ds := dicomstub.Study{
				PatientID:       course.PatientID,
				PatientName:     course.PatientName,
				StudyDate:       study.Record.StudyDate,
				AccessionNumber: util.GenerateAccessionNumber(rng),
				StudyUID:        util.DeterministicUID(course.PatientID, study.Record.StudyDate, "study"),
				SeriesUID:       util.DeterministicUID(course.PatientID, study.Record.StudyDate, "series"),
				SOPInstanceUID:  util.DeterministicUID(course.PatientID, study.Record.StudyDate, "instance"),
			}
			if err := dicomstub.Write(filepath.Join(sdir, "study.dcm"), ds); err != nil {
				return fmt.Errorf("write dicom stub: %w", err)
			}
		}
	}
	return nil
}

// indexRows flattens a course into its cohort_labels.jsonl lines.
func indexRows(opts *Options, course *Course) []IndexRow {
	rows := make([]IndexRow, 0, len(course.Studies))
	for _, study := range course.Studies {
		rows = append(rows, IndexRow{
			PatientID:        study.Record.PatientID,
			StudyDate:        study.Record.StudyDate,
			Timepoint:        study.Record.Timepoint,
			OverallResponse:  study.Record.RECIST.OverallResponse,
			BaselineSLDMM:    study.Record.RECIST.BaselineSLDMM,
			CurrentSLDMM:     study.Record.RECIST.CurrentSLDMM,
			NadirSLDMM:       study.Record.RECIST.NadirSLDMM,
			StagingRelevance: study.Record.StagingRelevance,
			ComplexityLevel:  opts.ComplexityLevel,
		})
	}
	return rows
}

// writeIndex writes the cohort-level JSON Lines index.
func writeIndex(path string, rows []IndexRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	enc := json.NewEncoder(f)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			f.Close()
			return fmt.Errorf("encode index row: %w", err)
		}
	}
	return f.Close()
}
