package cohort

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// patientResult carries one finished patient back from a worker.
type patientResult struct {
	index int
	rows  []IndexRow
	err   error
}

// GenerateCohort runs the full cohort: each patient is simulated and
// written by a worker using its own sub-seeded RNG, so output is
// byte-identical for a given seed regardless of worker count or scheduling.
// Returns the index rows written to cohort_labels.jsonl, ordered by patient
// then timepoint.
func GenerateCohort(opts Options) ([]IndexRow, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.Seed == 0 {
		h := fnv.New64a()
		_, _ = h.Write([]byte(opts.OutputDir)) // hash.Write never returns an error
		opts.Seed = int64(h.Sum64())
		if !opts.Quiet {
			fmt.Printf("Auto-generated seed from '%s': %d\n", opts.OutputDir, opts.Seed)
			fmt.Println("  (same directory = same cohort)")
		}
	}

	if err := os.MkdirAll(filepath.Join(opts.OutputDir, "patients"), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > opts.NumPatients {
		numWorkers = opts.NumPatients
	}

	if !opts.Quiet {
		fmt.Printf("Generating %d patients with %d parallel workers (seed %d)...\n",
			opts.NumPatients, numWorkers, opts.Seed)
	}

	taskChan := make(chan int, opts.NumPatients)
	resultChan := make(chan patientResult, opts.NumPatients)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range taskChan {
				rows, err := generatePatient(&opts, idx)
				resultChan <- patientResult{index: idx, rows: rows, err: err}
			}
		}()
	}

	for i := 0; i < opts.NumPatients; i++ {
		taskChan <- i
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	byPatient := make([][]IndexRow, opts.NumPatients)
	completed := 0
	var firstErr error
	for res := range resultChan {
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate patient %d: %w", res.index, res.err)
		}
		byPatient[res.index] = res.rows
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, opts.NumPatients)
		}
		if !opts.Quiet && (completed%10 == 0 || completed == opts.NumPatients) {
			progress := float64(completed) / float64(opts.NumPatients) * 100
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, opts.NumPatients, progress)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	var allRows []IndexRow
	for _, rows := range byPatient {
		allRows = append(allRows, rows...)
	}
	indexPath := filepath.Join(opts.OutputDir, "cohort_labels.jsonl")
	if err := writeIndex(indexPath, allRows); err != nil {
		return nil, err
	}

	if !opts.Quiet {
		fmt.Printf("\n✓ %d patients created in: %s/patients and index at %s\n",
			opts.NumPatients, opts.OutputDir, indexPath)
	}
	return allRows, nil
}

// generatePatient simulates and writes one patient. The RNG is seeded from
// the cohort seed and the patient's index, keeping patients independent of
// each other and of worker scheduling.
func generatePatient(opts *Options, index int) ([]IndexRow, error) {
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(index+1)))

	course, err := SynthPatientCourse(opts, index, rng)
	if err != nil {
		return nil, err
	}
	if err := writeCourse(opts, course, rng); err != nil {
		return nil, err
	}
	return indexRows(opts, course), nil
}
