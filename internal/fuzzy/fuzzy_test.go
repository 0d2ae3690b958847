package fuzzy

import (
	"testing"
)

func TestEditDistance_Score(t *testing.T) {
	m := New(DefaultThreshold)

	tests := []struct {
		name   string
		query  string
		text   string
		wantOK bool
	}{
		{"exact", "fetch data", "fetch data", true},
		{"case insensitive", "DEBOUNCE", "Debounce", true},
		{"substring", "bounce", "function debounce(fn, ms) {}", true},
		{"single typo in phrase", "fetch dta", "fetch data", true},
		{"single typo in word", "debounse", "Debounce", true},
		{"typo inside longer text", "fetch dta", "How to fetch data from an API", true},
		{"unrelated", "kubernetes", "fetch data", false},
		{"no shared letters", "zzzz qqqq", "fetch data", false},
		{"empty query", "", "fetch data", false},
		{"whitespace query", "   ", "fetch data", false},
		{"empty text", "fetch", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := m.Score(tt.query, tt.text)
			if ok != tt.wantOK {
				t.Errorf("Score(%q, %q) = (%v, %v), want ok=%v", tt.query, tt.text, score, ok, tt.wantOK)
			}
			if score < 0 || score > 1 {
				t.Errorf("score %v out of [0,1]", score)
			}
		})
	}
}

func TestEditDistance_Ranking(t *testing.T) {
	m := New(DefaultThreshold)

	exact, _ := m.Score("fetch data", "fetch data")
	typo, _ := m.Score("fetch dta", "fetch data")
	if exact >= typo {
		t.Errorf("exact score %v should rank ahead of typo score %v", exact, typo)
	}
	if exact != 0 {
		t.Errorf("exact score = %v, want 0", exact)
	}
}

func TestEditDistance_Threshold(t *testing.T) {
	// "fetch dta" vs "fetch data" is 1 edit over 10 bytes.
	strict := New(0.05)
	if _, ok := strict.Score("fetch dta", "fetch data"); ok {
		t.Error("strict matcher accepted a 10% difference")
	}

	loose := New(0.5)
	if _, ok := loose.Score("fetch dta", "fetch data"); !ok {
		t.Error("loose matcher rejected a 10% difference")
	}
}

func TestNew_DefaultThreshold(t *testing.T) {
	if got := New(0).Threshold; got != DefaultThreshold {
		t.Errorf("New(0).Threshold = %v, want %v", got, DefaultThreshold)
	}
}

func TestDistance(t *testing.T) {
	if got := distance("", ""); got != 0 {
		t.Errorf("distance(\"\", \"\") = %v, want 0", got)
	}
	if got := distance("abcd", "abcx"); got != 0.25 {
		t.Errorf("distance(abcd, abcx) = %v, want 0.25", got)
	}
}
