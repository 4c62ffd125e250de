package util

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// PatientID formats the sequential cohort index as a zero-padded patient
// identifier: index 0 becomes PID000000.
func PatientID(index int) string {
	return fmt.Sprintf("PID%06d", index)
}

// GenerateAccessionNumber returns a random 8-digit accession number.
func GenerateAccessionNumber(rng *rand.Rand) string {
	return fmt.Sprintf("ACC%08d", rng.IntN(100000000))
}

// uidRoot is a locally administered OID arc for synthetic studies.
const uidRoot = "1.2.826.0.1.3680043.10.1432"

// DeterministicUID derives a stable DICOM UID from the given identity
// parts. The same parts always map to the same UID, so regenerating a
// cohort with the same seed reproduces its study hierarchy exactly.
func DeterministicUID(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s.%d", uidRoot, h.Sum64())
}
