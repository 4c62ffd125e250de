package ragserver

import (
	"sort"
	"strings"
)

const defaultTopK = 3

// Retrieve ranks the corpus by naive word overlap with the question and
// returns the top k documents. Ties keep corpus order, so results are
// deterministic.
func Retrieve(question string, k int) []Document {
	if k <= 0 {
		k = defaultTopK
	}
	words := strings.Fields(strings.ToLower(question))

	type scored struct {
		doc   Document
		score int
		pos   int
	}
	ranked := make([]scored, len(Docs))
	for i, d := range Docs {
		text := strings.ToLower(d.Text)
		n := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				n++
			}
		}
		ranked[i] = scored{doc: d, score: n, pos: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]Document, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].doc
	}
	return out
}
