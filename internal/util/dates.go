package util

import (
	"math/rand/v2"
	"time"
)

const (
	followUpIntervalDays = 56
	followUpJitterDays   = 14
)

// GenerateBaselineDate draws the day-zero study date, a random calendar
// day in 2023.
func GenerateBaselineDate(rng *rand.Rand) time.Time {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, rng.IntN(365))
}

// NextFollowUpDate advances a study date by roughly eight weeks with
// +/-2 weeks of scheduling jitter.
func NextFollowUpDate(prev time.Time, rng *rand.Rand) time.Time {
	jitter := rng.IntN(2*followUpJitterDays+1) - followUpJitterDays
	return prev.AddDate(0, 0, followUpIntervalDays+jitter)
}

// ISODate formats a study date as YYYY-MM-DD, the form used in directory
// names and record fields.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
