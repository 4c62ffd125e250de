// Package lexicon provides the static anatomic and narrative catalogs used
// by the report synthesizer: organ sections, lymph-node stations, metastasis
// sites, descriptive vocabularies and canned negative statements.
package lexicon

import (
	"fmt"
	"strings"
)

// Organ identifies one of the fixed FINDINGS sections of a CT CAP report.
type Organ int

const (
	OrganLungs Organ = iota
	OrganMediastinum
	OrganPleura
	OrganAorta
	OrganLiver
	OrganSpleen
	OrganPancreas
	OrganAdrenals
	OrganKidneys
	OrganGI
	OrganMesentery
	OrganMesVessels
	OrganBladder
	OrganReproductive
	OrganLymph
	OrganBones
)

// ReportOrder returns the organ sections in the fixed order they appear in a
// rendered FINDINGS block.
func ReportOrder() []Organ {
	return []Organ{
		OrganLungs, OrganMediastinum, OrganPleura, OrganAorta,
		OrganLiver, OrganSpleen, OrganPancreas, OrganAdrenals,
		OrganKidneys, OrganGI, OrganMesentery, OrganMesVessels,
		OrganBladder, OrganReproductive, OrganLymph, OrganBones,
	}
}

var organNames = map[Organ]string{
	OrganLungs:        "lungs",
	OrganMediastinum:  "mediastinum",
	OrganPleura:       "pleura",
	OrganAorta:        "aorta",
	OrganLiver:        "liver",
	OrganSpleen:       "spleen",
	OrganPancreas:     "pancreas",
	OrganAdrenals:     "adrenals",
	OrganKidneys:      "kidneys",
	OrganGI:           "gi",
	OrganMesentery:    "mesentery",
	OrganMesVessels:   "mes_vessels",
	OrganBladder:      "bladder",
	OrganReproductive: "reproductive",
	OrganLymph:        "lymph",
	OrganBones:        "bones",
}

// String returns the stable key name of the organ section.
func (o Organ) String() string {
	if name, ok := organNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOrgan parses an organ key name. Unknown names are an error so that
// configuration mistakes surface at load time instead of being dropped at
// paragraph-merge time.
func ParseOrgan(s string) (Organ, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	// Nested config keys like "gi.stomach" address the parent section.
	if i := strings.IndexByte(key, '.'); i >= 0 {
		key = key[:i]
	}
	for o, name := range organNames {
		if name == key {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown organ section %q", s)
}

// Headings returns the heading variants for the organ section.
func (o Organ) Headings() []string {
	return organHeadings[o]
}

// NegativeTemplates returns the canned negative statements for the organ.
func (o Organ) NegativeTemplates() []string {
	return negativeTemplates[o]
}

var organHeadings = map[Organ][]string{
	OrganLungs:        {"Lungs", "Lung parenchyma", "Pulmonary"},
	OrganMediastinum:  {"Mediastinum"},
	OrganPleura:       {"Pleura/Pleural spaces", "Pleura"},
	OrganAorta:        {"Great vessels/Aorta", "Aorta and great vessels"},
	OrganLiver:        {"Liver", "Hepatic"},
	OrganSpleen:       {"Spleen"},
	OrganPancreas:     {"Pancreas"},
	OrganAdrenals:     {"Adrenals", "Adrenal glands"},
	OrganKidneys:      {"Kidneys", "Renal"},
	OrganGI:           {"GI tract", "Bowel"},
	OrganMesentery:    {"Mesentery/Omentum", "Mesentery"},
	OrganMesVessels:   {"Mesenteric vessels", "SMA/SMV"},
	OrganBladder:      {"Bladder", "Urinary bladder"},
	OrganReproductive: {"Reproductive organs", "Pelvic organs"},
	OrganLymph:        {"Lymph nodes", "Nodal stations"},
	OrganBones:        {"Bones", "Osseous structures", "Skeleton"},
}

var negativeTemplates = map[Organ][]string{
	OrganLungs: {
		"No focal consolidation or suspicious pulmonary nodules. No pneumothorax.",
		"Clear lungs without focal mass. No suspicious nodules identified.",
	},
	OrganMediastinum:  {"Cardiomediastinal contours within normal limits."},
	OrganPleura:       {"No pleural effusion or pleural thickening."},
	OrganAorta:        {"No thoracic aortic aneurysm or dissection."},
	OrganLiver:        {"No focal hepatic lesions. Normal attenuation."},
	OrganSpleen:       {"Normal in size and attenuation. No focal splenic lesion."},
	OrganPancreas:     {"Normal pancreatic contour and enhancement. No focal mass."},
	OrganAdrenals:     {"Adrenal glands are normal without nodules."},
	OrganKidneys:      {"No hydronephrosis. No enhancing renal mass."},
	OrganGI:           {"No obstructive bowel process. No focal bowel wall mass identified."},
	OrganMesentery:    {"No ascites. No omental caking."},
	OrganMesVessels:   {"SMA/SMV patent without thrombosis."},
	OrganBladder:      {"Urinary bladder unremarkable."},
	OrganReproductive: {"No adnexal mass. Uterus/prostate within expected size for age."},
	OrganLymph:        {"No pathologically enlarged lymph nodes by size criteria."},
	OrganBones:        {"No aggressive osseous lesion. No acute fracture."},
}
