// Package lesion models disease foci (primary tumor, lymph nodes,
// metastases) and generates them with bounded randomized attributes.
package lesion

import (
	"fmt"
	"strings"

	"github.com/mrsinham/recistforge/internal/lexicon"
)

// Kind discriminates the lesion variants.
type Kind int

const (
	KindPrimary Kind = iota
	KindNode
	KindMetastasis
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindNode:
		return "ln"
	case KindMetastasis:
		return "met"
	default:
		return "unknown"
	}
}

// ParseKind parses a wire kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return KindPrimary, nil
	case "ln", "node", "lymph-node":
		return KindNode, nil
	case "met", "metastasis":
		return KindMetastasis, nil
	default:
		return 0, fmt.Errorf("invalid lesion kind: %s (valid: primary, ln, met)", s)
	}
}

// Lesion is a measurable or non-measurable disease focus. Fields are
// populated according to Kind: primaries carry Site/Location/diameter and
// qualitative attributes, nodes carry Region/Station/short axis, metastases
// carry Site/diameter.
type Lesion struct {
	ID   string
	Kind Kind

	Site     string // primary site or metastasis site
	Location string // narrative location of the primary
	Region   string // node region (thoracic/abdominal/pelvic)
	Station  string // node station, stable identity across timepoints

	LongestDiameterMM int // primaries and metastases
	ShortAxisMM       int // nodes

	Margin      string
	Enhancement string
	Necrosis    bool
}

// MeasurementMM returns the RECIST measurement of the lesion: short axis
// for nodes, longest diameter otherwise.
func (l Lesion) MeasurementMM() int {
	if l.Kind == KindNode {
		return l.ShortAxisMM
	}
	return l.LongestDiameterMM
}

// Key returns the stable anatomic identity used to match the same logical
// lesion across timepoints.
func (l Lesion) Key() string {
	switch l.Kind {
	case KindPrimary:
		return "primary"
	case KindNode:
		return "ln:" + l.Station
	default:
		return "met:" + l.Site
	}
}

// Organ returns the FINDINGS section hosting this lesion.
func (l Lesion) Organ() (lexicon.Organ, bool) {
	switch l.Kind {
	case KindPrimary:
		return lexicon.PrimarySiteOrgan(l.Site)
	case KindNode:
		return lexicon.NodeRegionOrgan(l.Region)
	default:
		return lexicon.MetSiteOrgan(l.Site)
	}
}

// Validate checks kind-dependent field consistency.
func (l Lesion) Validate() error {
	switch l.Kind {
	case KindPrimary:
		if l.Site == "" || l.LongestDiameterMM <= 0 {
			return fmt.Errorf("primary lesion requires site and positive diameter")
		}
	case KindNode:
		if l.Station == "" || l.ShortAxisMM <= 0 {
			return fmt.Errorf("nodal lesion requires station and positive short axis")
		}
	case KindMetastasis:
		if l.Site == "" || l.LongestDiameterMM <= 0 {
			return fmt.Errorf("metastasis requires site and positive diameter")
		}
	default:
		return fmt.Errorf("invalid lesion kind %d", l.Kind)
	}
	return nil
}
