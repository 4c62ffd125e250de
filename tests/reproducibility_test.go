package tests

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrsinham/recistforge/internal/cohort"
)

// TestReproducibility_SameSeed checks a fixed seed reproduces the cohort
// byte for byte, including every rendered report and the index.
func TestReproducibility_SameSeed(t *testing.T) {
	optsA := cohortOptions(t, 1234)
	optsB := cohortOptions(t, 1234)

	t.Logf("Generating twin cohorts with seed %d...", optsA.Seed)
	if _, err := cohort.GenerateCohort(optsA); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := cohort.GenerateCohort(optsB); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	compareTrees(t, optsA.OutputDir, optsB.OutputDir)
}

// TestReproducibility_DifferentSeeds checks different seeds diverge.
func TestReproducibility_DifferentSeeds(t *testing.T) {
	optsA := cohortOptions(t, 1)
	optsB := cohortOptions(t, 2)

	if _, err := cohort.GenerateCohort(optsA); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := cohort.GenerateCohort(optsB); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	a, err := os.ReadFile(filepath.Join(optsA.OutputDir, "cohort_labels.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(optsB.OutputDir, "cohort_labels.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("different seeds produced identical cohorts")
	}
}

// TestReproducibility_AutoSeedFromOutputDir checks the zero seed derives
// from the output directory path, so regenerating into the same directory
// reproduces the cohort.
func TestReproducibility_AutoSeedFromOutputDir(t *testing.T) {
	dir := t.TempDir()
	opts := cohortOptions(t, 0)
	opts.OutputDir = dir

	rows1, err := cohort.GenerateCohort(opts)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "cohort_labels.jsonl"))
	if err != nil {
		t.Fatal(err)
	}

	opts2 := cohortOptions(t, 0)
	opts2.OutputDir = dir
	rows2, err := cohort.GenerateCohort(opts2)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "cohort_labels.jsonl"))
	if err != nil {
		t.Fatal(err)
	}

	if len(rows1) != len(rows2) || !bytes.Equal(first, second) {
		t.Error("auto-seeded regeneration into the same directory diverged")
	}
	t.Logf("✓ Auto-seeded cohort stable across %d rows", len(rows1))
}

// compareTrees walks both cohort trees and diffs every file.
func compareTrees(t *testing.T, dirA, dirB string) {
	t.Helper()
	count := 0
	err := filepath.Walk(dirA, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dirA, path)
		if err != nil {
			return err
		}
		a, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(filepath.Join(dirB, rel))
		if err != nil {
			return err
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs between runs", rel)
		}
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("walk cohort tree: %v", err)
	}
	t.Logf("✓ %d files identical across runs", count)
}
