// Package dicomstub writes metadata-only DICOM study files next to the
// generated reports, giving downstream pipelines a realistic study
// hierarchy to key on without carrying pixel data.
package dicomstub

import (
	"fmt"
	"os"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	transferSyntaxExplicitLE = "1.2.840.10008.1.2.1"
	sopClassCTImageStorage   = "1.2.840.10008.5.1.4.1.1.2"
)

// Study is the identity of one synthetic CT study.
type Study struct {
	PatientID       string
	PatientName     string
	StudyDate       string // YYYY-MM-DD
	AccessionNumber string
	StudyUID        string
	SeriesUID       string
	SOPInstanceUID  string
}

func mustNewElement(t tag.Tag, value interface{}) *dicom.Element {
	e, err := dicom.NewElement(t, value)
	if err != nil {
		panic(fmt.Sprintf("create element %v: %v", t, err))
	}
	return e
}

// Write serializes the study as a pixel-less DICOM file at path.
func Write(path string, s Study) error {
	ds := dicom.Dataset{Elements: []*dicom.Element{
		mustNewElement(tag.TransferSyntaxUID, []string{transferSyntaxExplicitLE}),
		mustNewElement(tag.SOPClassUID, []string{sopClassCTImageStorage}),
		mustNewElement(tag.SOPInstanceUID, []string{s.SOPInstanceUID}),
		mustNewElement(tag.PatientID, []string{s.PatientID}),
		mustNewElement(tag.PatientName, []string{s.PatientName}),
		mustNewElement(tag.AccessionNumber, []string{s.AccessionNumber}),
		mustNewElement(tag.StudyInstanceUID, []string{s.StudyUID}),
		mustNewElement(tag.StudyDate, []string{dicomDate(s.StudyDate)}),
		mustNewElement(tag.StudyDescription, []string{"CT CHEST ABDOMEN PELVIS W CONTRAST"}),
		mustNewElement(tag.SeriesInstanceUID, []string{s.SeriesUID}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.Modality, []string{"CT"}),
		mustNewElement(tag.BodyPartExamined, []string{"CHESTABDPELVIS"}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
	}}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dicom file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := dicom.Write(f, ds); err != nil {
		return fmt.Errorf("write dicom dataset: %w", err)
	}
	return nil
}

// dicomDate converts an ISO date to the compact DICOM DA form.
func dicomDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "")
}
