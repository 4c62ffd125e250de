// Package report renders organ-structured FINDINGS and an IMPRESSION from
// the current lesion state, the RECIST summary and the complexity profile.
package report

import (
	"fmt"
	"strings"
)

// Style selects the layout of a rendered report.
type Style int

const (
	StyleStructured Style = iota
	StyleImpressionFirst
	StyleNarrative
)

// String returns the CLI name of the style.
func (s Style) String() string {
	switch s {
	case StyleImpressionFirst:
		return "impression_first"
	case StyleNarrative:
		return "narrative"
	default:
		return "structured"
	}
}

// ParseStyle parses a CLI style name.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "structured":
		return StyleStructured, nil
	case "impression_first":
		return StyleImpressionFirst, nil
	case "narrative":
		return StyleNarrative, nil
	default:
		return 0, fmt.Errorf("invalid style: %s (valid: structured, impression_first, narrative)", s)
	}
}
