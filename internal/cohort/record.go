package cohort

import "github.com/mrsinham/recistforge/internal/complexity"

// RECISTSummary is the quantitative ground truth of one timepoint. Current
// and nadir values are null at baseline, where no response category exists
// yet.
type RECISTSummary struct {
	BaselineSLDMM   int    `json:"baseline_sld_mm"`
	CurrentSLDMM    *int   `json:"current_sld_mm"`
	NadirSLDMM      *int   `json:"nadir_sld_mm"`
	OverallResponse string `json:"overall_response"`
}

// LesionRow is the per-lesion ground truth of one timepoint. MeasureMM is
// short axis for nodes and longest diameter otherwise, reflecting the
// follow-up value when the lesion is a target.
type LesionRow struct {
	LesionID  string `json:"lesion_id"`
	Kind      string `json:"kind"`
	Site      string `json:"site,omitempty"`
	Station   string `json:"station,omitempty"`
	MeasureMM int    `json:"measure_mm"`
	Target    bool   `json:"target"`
}

// Record is the structured ground truth written as meta.json next to each
// report.
type Record struct {
	PatientID         string             `json:"patient_id"`
	StudyDate         string             `json:"study_date"`
	Timepoint         int                `json:"timepoint"`
	RECIST            RECISTSummary      `json:"recist"`
	ComplexityProfile complexity.Profile `json:"complexity_profile"`
	StagingRelevance  float64            `json:"staging_relevance"`
	Lesions           []LesionRow        `json:"lesions"`
}

// IndexRow is the flattened per-timepoint line appended to
// cohort_labels.jsonl for downstream consumers.
type IndexRow struct {
	PatientID        string  `json:"patient_id"`
	StudyDate        string  `json:"study_date"`
	Timepoint        int     `json:"timepoint"`
	OverallResponse  string  `json:"overall_response"`
	BaselineSLDMM    int     `json:"baseline_sld_mm"`
	CurrentSLDMM     *int    `json:"current_sld_mm"`
	NadirSLDMM       *int    `json:"nadir_sld_mm"`
	StagingRelevance float64 `json:"staging_relevance"`
	ComplexityLevel  string  `json:"complexity_level"`
}

// Study pairs the rendered report text with its structured record.
type Study struct {
	Record     Record
	ReportText string
}

// Course is one patient's complete longitudinal output.
type Course struct {
	PatientID    string
	PatientName  string
	BaselineDate string
	Studies      []Study
}
