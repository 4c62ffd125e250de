package lexicon

// HedgeDefinite marks an unhedged impression.
const HedgeDefinite = "definite"

var (
	// PrimarySites lists the solid-malignancy primary sites the generator
	// can seed a case with.
	PrimarySites = []string{"lung", "colon", "pancreas", "kidney", "liver", "ovary", "prostate", "stomach"}

	// MetSites lists the distant sites a metastasis may be placed in.
	MetSites = []string{"liver", "adrenal", "bone", "lung", "peritoneum"}

	// Margins and Enhancements describe qualitative lesion attributes.
	Margins      = []string{"smooth", "lobulated", "irregular", "spiculated"}
	Enhancements = []string{"hyperenhancing", "isoenhancing", "hypoenhancing"}

	// UncertainHedges are the qualifiers drawn for the IMPRESSION when the
	// uncertainty mix fires; HedgeDefinite is the unhedged qualifier.
	UncertainHedges = []string{"possible", "probable"}

	// TechniqueLines are the TECHNIQUE header variants.
	TechniqueLines = []string{
		"CT chest, abdomen, and pelvis performed with IV contrast. Contiguous <=5-mm axial images.",
		"Contrast-enhanced CT CAP with portal venous phase abdomen/pelvis; chest imaged in a single post-contrast phase.",
	}

	// HistoryLine is the fixed HISTORY header.
	HistoryLine = "Staging/restaging of solid malignancy."
)

// NodeRegions maps a lymph-node region to its station names. Stations are
// the stable anatomic identity of a node across timepoints.
var NodeRegions = map[string][]string{
	"thoracic":  {"right hilar", "left hilar", "subcarinal", "paratracheal"},
	"abdominal": {"porta hepatis", "celiac", "retroperitoneal", "mesenteric"},
	"pelvic":    {"external iliac", "internal iliac", "obturator", "inguinal"},
}

// NodeRegionNames returns the region keys in a fixed order.
func NodeRegionNames() []string {
	return []string{"thoracic", "abdominal", "pelvic"}
}

// PrimarySiteOrgan returns the FINDINGS section hosting a primary at site.
func PrimarySiteOrgan(site string) (Organ, bool) {
	o, ok := primarySiteOrgans[site]
	return o, ok
}

var primarySiteOrgans = map[string]Organ{
	"lung":     OrganLungs,
	"colon":    OrganGI,
	"stomach":  OrganGI,
	"pancreas": OrganPancreas,
	"kidney":   OrganKidneys,
	"liver":    OrganLiver,
	"ovary":    OrganReproductive,
	"prostate": OrganReproductive,
}

// MetSiteOrgan returns the FINDINGS section hosting a metastasis at site.
func MetSiteOrgan(site string) (Organ, bool) {
	o, ok := metSiteOrgans[site]
	return o, ok
}

var metSiteOrgans = map[string]Organ{
	"liver":      OrganLiver,
	"adrenal":    OrganAdrenals,
	"bone":       OrganBones,
	"lung":       OrganLungs,
	"peritoneum": OrganMesentery,
}

// NodeRegionOrgan returns the FINDINGS section hosting nodes of a region.
// Thoracic stations render under the mediastinum; abdominal and pelvic
// stations render under the lymph-node section.
func NodeRegionOrgan(region string) (Organ, bool) {
	switch region {
	case "thoracic":
		return OrganMediastinum, true
	case "abdominal", "pelvic":
		return OrganLymph, true
	default:
		return 0, false
	}
}

// Incidentals maps an organ section to incidental-finding phrases that may
// be injected by the complexity controller.
var Incidentals = map[Organ][]string{
	OrganLungs: {
		"Scattered subcentimeter pulmonary nodules, statistically benign.",
		"Mild bibasilar dependent atelectasis.",
		"Calcified granuloma in the right upper lobe.",
	},
	OrganLiver: {
		"Subcentimeter hepatic hypodensity, too small to characterize.",
		"Simple hepatic cyst.",
		"Mild hepatic steatosis.",
	},
	OrganKidneys: {
		"Simple renal cortical cyst.",
		"Nonobstructing punctate renal calculus.",
	},
	OrganAdrenals: {
		"Stable lipid-rich adrenal adenoma.",
	},
	OrganPancreas: {
		"Mild fatty atrophy of the pancreas.",
	},
	OrganGI: {
		"Moderate colonic diverticulosis without diverticulitis.",
		"Small hiatal hernia.",
	},
	OrganMesentery: {
		"Trace pelvic free fluid, within physiologic range.",
	},
	OrganAorta: {
		"Atherosclerotic calcification of the abdominal aorta without aneurysm.",
	},
	OrganBladder: {
		"Bladder wall trabeculation, likely chronic outlet-related change.",
	},
	OrganBones: {
		"Degenerative changes of the lumbar spine.",
		"Old healed right rib fractures.",
	},
	OrganSpleen: {
		"Small splenule adjacent to the splenic hilum.",
	},
	OrganPleura: {
		"Trace dependent pleural fluid.",
	},
}

// PostTreatmentEffects groups treatment-change phrases by organ section.
// The kind prefixes match the original report vocabulary.
type PostTreatmentEffect struct {
	Organ  Organ
	Phrase string
}

var RadiationEffects = []PostTreatmentEffect{
	{OrganLungs, "Radiation change: bandlike fibrosis in the medial right upper lobe conforming to a radiation port."},
	{OrganLungs, "Radiation change: ground-glass opacity in the treated field, compatible with acute radiation pneumonitis."},
	{OrganMesentery, "Radiation change: mild pelvic fat stranding within the prior radiation field."},
}

var SurgicalEffects = map[string][]PostTreatmentEffect{
	"lung":     {{OrganLungs, "Postsurgical change: chain sutures at the right lower lobectomy site without local recurrence."}},
	"colon":    {{OrganGI, "Postsurgical change: anastomotic suture line in the sigmoid region without obstruction."}},
	"stomach":  {{OrganGI, "Postsurgical change: partial gastrectomy with unremarkable anastomosis."}},
	"kidney":   {{OrganKidneys, "Postsurgical change: left partial nephrectomy defect with expected architectural distortion."}},
	"liver":    {{OrganLiver, "Postsurgical change: wedge resection margin in the right hepatic lobe."}},
	"pancreas": {{OrganPancreas, "Postsurgical change: pancreaticoduodenectomy with patent hepaticojejunostomy."}},
	"ovary":    {{OrganReproductive, "Postsurgical change: prior hysterectomy and salpingo-oophorectomy."}},
	"prostate": {{OrganReproductive, "Postsurgical change: prostatectomy bed without nodular soft tissue."}},
}

var AblationEffects = []PostTreatmentEffect{
	{OrganLiver, "Post-ablation/embolization change: hypodense ablation cavity in the liver without nodular enhancement."},
	{OrganKidneys, "Post-ablation/embolization change: ablation zone in the renal cortex with expected involution."},
}

// HedgePhrases are the longer uncertainty sentences injected into the
// IMPRESSION when the complexity level samples hedging language.
var HedgePhrases = []string{
	"Findings are equivocal and may reflect treatment-related change rather than progression.",
	"A small lesion of this size is indeterminate by CT; attention on follow-up is recommended.",
	"Differential includes post-treatment change versus residual viable tumor.",
	"Measurement is limited by adjacent artifact; values should be interpreted with caution.",
}
