// Package complexity samples the confounding content of a study (imaging
// artifacts, incidental findings, structured negatives, post-treatment
// change, hedging language) according to a named complexity level, and
// scores how much the study matters for staging.
package complexity

import (
	"fmt"
	"strings"
)

// Severity ranks CT artifacts. The order is total: a level's cap excludes
// every artifact above it from the draw rather than down-weighting it.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityPartialVolume
	SeverityMotionMild
	SeverityBeamHardening
	SeverityMetalStreak
	SeverityMotionModerate
)

var severityNames = map[Severity]string{
	SeverityNone:           "none",
	SeverityPartialVolume:  "partial_volume",
	SeverityMotionMild:     "motion_mild",
	SeverityBeamHardening:  "beam_hardening",
	SeverityMetalStreak:    "metal_streak",
	SeverityMotionModerate: "motion_moderate",
}

// String returns the wire name of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeverity parses a wire severity name.
func ParseSeverity(s string) (Severity, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for sev, name := range severityNames {
		if name == key {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact severity %q", s)
}

// UnmarshalYAML parses severities from their wire names in config files.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	sev, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// MarshalYAML writes severities as their wire names.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
