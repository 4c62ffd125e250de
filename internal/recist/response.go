// Package recist implements the RECIST 1.1 approximation used by the
// synthesizer: target selection, sum-of-diameters bookkeeping, planned
// follow-up simulation and nadir-aware overall response classification.
package recist

import (
	"fmt"
	"strings"
)

// Response is an overall response category.
type Response int

const (
	ResponseBaseline Response = iota
	ResponseCR
	ResponsePR
	ResponseSD
	ResponsePD
)

// String returns the label written into report artifacts. The baseline
// timepoint carries no category by definition.
func (r Response) String() string {
	switch r {
	case ResponseCR:
		return "CR"
	case ResponsePR:
		return "PR"
	case ResponseSD:
		return "SD"
	case ResponsePD:
		return "PD"
	default:
		return "Baseline (no category)"
	}
}

// ParsePlan parses a planned response category. Baseline is not a valid
// plan: plans only exist for follow-up timepoints.
func ParsePlan(s string) (Response, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CR":
		return ResponseCR, nil
	case "PR":
		return ResponsePR, nil
	case "SD":
		return ResponseSD, nil
	case "PD":
		return ResponsePD, nil
	default:
		return 0, fmt.Errorf("invalid response plan: %s (valid: CR, PR, SD, PD)", s)
	}
}
