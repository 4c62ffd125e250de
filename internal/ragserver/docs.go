package ragserver

// Document is one guideline snippet in the in-memory retrieval index.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Docs is the built-in guideline corpus. A real deployment would load an
// embedding index; this placeholder keeps the endpoint contract stable for
// downstream consumers.
var Docs = []Document{
	{ID: "fleschner2017", Text: "Fleischner Society 2017: Solid 6 mm nodule, low-risk -> optional CT at 12 months."},
	{ID: "acr_liver", Text: "ACR incidental liver lesion: hyperenhancing lesion > 1.5 cm requires MRI in high-risk."},
	{ID: "recist11_targets", Text: "RECIST 1.1: up to 5 target lesions total, maximum 2 per organ; non-nodal lesions >= 10 mm longest diameter, nodes >= 15 mm short axis."},
	{ID: "recist11_pd", Text: "RECIST 1.1 progressive disease: >= 20% increase in sum of diameters from nadir with >= 5 mm absolute increase, or unequivocal new lesions."},
	{ID: "recist11_pr", Text: "RECIST 1.1 partial response: >= 30% decrease in sum of diameters from baseline."},
	{ID: "acr_adrenal", Text: "ACR incidental adrenal nodule: <= 10 HU on unenhanced CT is diagnostic of lipid-rich adenoma; no follow-up needed if < 4 cm."},
}
