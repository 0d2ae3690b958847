// Package fuzzy scores approximate text matches for snippet search.
package fuzzy

import (
	"strings"

	"github.com/xrash/smetrics"

	"github.com/hpungsan/snip/internal/snippet"
)

// DefaultThreshold accepts fields that are at most 30% different from the query.
const DefaultThreshold = 0.3

// Matcher scores how well query approximately matches text.
// Scores are in [0, 1]; 0 is a perfect match. ok reports whether the score is
// within the matcher's tolerance.
type Matcher interface {
	Score(query, text string) (score float64, ok bool)
}

// EditDistance matches a query against runs of words in the text using
// normalized Levenshtein distance. A text containing the query verbatim
// scores 0.
type EditDistance struct {
	Threshold float64
}

// New returns an EditDistance matcher; a non-positive threshold uses DefaultThreshold.
func New(threshold float64) *EditDistance {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &EditDistance{Threshold: threshold}
}

// Score implements Matcher.
func (m *EditDistance) Score(query, text string) (float64, bool) {
	q := snippet.Normalize(query)
	t := snippet.Normalize(text)
	if q == "" || t == "" {
		return 1, false
	}
	if strings.Contains(t, q) {
		return 0, true
	}

	qWords := len(strings.Fields(q))
	words := strings.Fields(t)
	best := 1.0

	// Compare against every run of words whose count is within one of the
	// query's, so both "fetch dta"/"fetch data" and "debounse"/"debounce" line up.
	for n := max(1, qWords-1); n <= qWords+1; n++ {
		for i := 0; i+n <= len(words); i++ {
			window := strings.Join(words[i:i+n], " ")
			if s := distance(q, window); s < best {
				best = s
				if best == 0 {
					return 0, true
				}
			}
		}
	}

	return best, best <= m.Threshold
}

// distance is the Levenshtein distance divided by the longer string's length.
// Both are measured in bytes, as smetrics compares bytes.
func distance(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	d := smetrics.WagnerFischer(a, b, 1, 1, 1)
	return float64(d) / float64(longest)
}
