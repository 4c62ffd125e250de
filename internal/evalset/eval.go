package evalset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FieldScore is the per-field tally across a prediction/gold pair set.
type FieldScore struct {
	Field   string
	Matched int
	Total   int
}

// Accuracy returns the match fraction, zero when nothing was scored.
func (s FieldScore) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total)
}

// Report is the outcome of one evaluation run.
type Report struct {
	Pairs      int
	ExactMatch int
	Quant      []FieldScore
	Qual       []FieldScore
}

// String renders the report the way the CLI prints it.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pairs evaluated: %d\n", r.Pairs)
	fmt.Fprintf(&b, "Exact match: %d/%d\n", r.ExactMatch, r.Pairs)
	for _, s := range r.Quant {
		fmt.Fprintf(&b, "  quant %-40s %d/%d (%.1f%%)\n", s.Field, s.Matched, s.Total, s.Accuracy()*100)
	}
	for _, s := range r.Qual {
		fmt.Fprintf(&b, "  qual  %-40s %d/%d (%.1f%%)\n", s.Field, s.Matched, s.Total, s.Accuracy()*100)
	}
	return b.String()
}

// fuzzyEqual compares values after stripping non-alphanumerics and
// lowercasing, so "PR" matches "p.r." and "15 mm" matches "15mm".
func fuzzyEqual(a, b any) bool {
	return normalize(a) == normalize(b)
}

func normalize(v any) string {
	s := fmt.Sprintf("%v", v)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// lookup resolves a dotted path inside a decoded JSON object. The second
// return is false when any path segment is absent.
func lookup(obj map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = obj
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// asFloat coerces JSON numbers and numeric strings.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Evaluate scores each prediction against the gold record at the same line
// position. Quantitative fields match within the configured millimeter
// tolerance, qualitative fields match fuzzily, and a pair is an exact match
// when every configured field matches.
func Evaluate(cfg *Config, preds, golds []map[string]any) *Report {
	n := min(len(preds), len(golds))
	r := &Report{Pairs: n}

	quant := make([]FieldScore, len(cfg.QuantFields))
	for i, f := range cfg.QuantFields {
		quant[i] = FieldScore{Field: f}
	}
	qual := make([]FieldScore, len(cfg.QualFields))
	for i, f := range cfg.QualFields {
		qual[i] = FieldScore{Field: f}
	}

	for i := 0; i < n; i++ {
		p, g := preds[i], golds[i]
		allMatch := true

		for fi, field := range cfg.QuantFields {
			gv, ok := lookup(g, field)
			if !ok {
				continue // no gold value, field not scored for this pair
			}
			quant[fi].Total++
			pv, ok := lookup(p, field)
			if !ok {
				allMatch = false
				continue
			}
			gf, gok := asFloat(gv)
			pf, pok := asFloat(pv)
			if gok && pok && abs(gf-pf) <= cfg.MatchPolicy.QuantToleranceMM {
				quant[fi].Matched++
			} else {
				allMatch = false
			}
		}

		for fi, field := range cfg.QualFields {
			gv, ok := lookup(g, field)
			if !ok {
				continue
			}
			qual[fi].Total++
			pv, ok := lookup(p, field)
			if ok && fuzzyEqual(pv, gv) {
				qual[fi].Matched++
			} else {
				allMatch = false
			}
		}

		if allMatch {
			r.ExactMatch++
		}
	}

	r.Quant = quant
	r.Qual = qual
	return r
}

// ReadJSONLines decodes one JSON object per line, skipping blank lines.
func ReadJSONLines(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return decodeJSONLines(f)
}

func decodeJSONLines(r io.Reader) ([]map[string]any, error) {
	var out []map[string]any
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, obj)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return out, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
