// Package prep turns raw report text into training examples: unit
// normalization, sectioning, heuristic label bootstrap, and a deterministic
// train/val/test split.
package prep

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	cmValueRe   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*cm\b`)
	sectionRe   = regexp.MustCompile(`(?i)\b(IMPRESSION|FINDINGS)\b[:\-]?`)
	primarySize = regexp.MustCompile(`(?i)(\d+)\s*mm\b.*?(mass|lesion)`)
)

// NormalizeUnits rewrites centimeter measurements as whole millimeters so
// downstream extraction sees a single unit.
func NormalizeUnits(text string) string {
	return cmValueRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := cmValueRe.FindStringSubmatch(m)
		v, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return fmt.Sprintf("%d mm", int(math.Round(v*10)))
	})
}

// Sections is a report split on its FINDINGS and IMPRESSION headers. When
// no headers are present both sections carry the full text.
type Sections struct {
	Full       string
	Findings   string
	Impression string
}

// SectionReport splits a report on its section headers.
func SectionReport(text string) Sections {
	s := Sections{Full: text, Findings: text, Impression: text}

	locs := sectionRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return s
	}
	for i, loc := range locs {
		name := strings.ToUpper(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := text[loc[1]:end]
		switch name {
		case "FINDINGS":
			s.Findings = body
		case "IMPRESSION":
			s.Impression = body
		}
	}
	return s
}

// Example is one bootstrap training record.
type Example struct {
	ReportText string         `json:"report_text"`
	SchemaJSON map[string]any `json:"schema_json"`
}

// ToExample builds a minimal bootstrap label from the report text. The
// heuristic only seeds the primary tumor size; richer labels come from
// meta.json when the synthetic ground truth is available.
func ToExample(text string) Example {
	ex := Example{ReportText: strings.TrimSpace(text), SchemaJSON: map[string]any{}}
	if m := primarySize.FindStringSubmatch(text); m != nil {
		size, err := strconv.Atoi(m[1])
		if err == nil {
			ex.SchemaJSON["primary_tumor"] = map[string]any{"size_mm": size}
		}
	}
	return ex
}

// Run walks inDir for .txt reports and writes train/val/test JSON Lines
// under outDir. Every tenth file goes to val, every tenth offset by one to
// test, the rest to train; files are processed in sorted path order so the
// split is stable.
func Run(inDir, outDir string) error {
	var files []string
	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("no .txt reports found under %s", inDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	outs := make(map[string]*os.File, 3)
	for _, name := range []string{"train", "val", "test"} {
		f, err := os.Create(filepath.Join(outDir, name+".jsonl"))
		if err != nil {
			return fmt.Errorf("create %s split: %w", name, err)
		}
		outs[name] = f
		defer f.Close()
	}

	for i, fp := range files {
		data, err := os.ReadFile(fp)
		if err != nil {
			return fmt.Errorf("read %s: %w", fp, err)
		}
		text := NormalizeUnits(string(data))
		sections := SectionReport(text)
		ex := ToExample(sections.Full)

		line, err := json.Marshal(ex)
		if err != nil {
			return fmt.Errorf("marshal example from %s: %w", fp, err)
		}

		var dst *os.File
		switch i % 10 {
		case 0:
			dst = outs["val"]
		case 1:
			dst = outs["test"]
		default:
			dst = outs["train"]
		}
		if _, err := dst.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("write example: %w", err)
		}
	}
	return nil
}
