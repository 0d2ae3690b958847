package ops

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/fuzzy"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// MaxQueryLength bounds search queries in characters.
const MaxQueryLength = 500

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
}

// SearchResultItem wraps a matching snippet with its match score.
type SearchResultItem struct {
	snippet.Snippet
	// Score is the best field score: 0 is an exact match.
	Score float64 `json:"score"`
	// Field names the field that produced Score.
	Field string `json:"field"`
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items []SearchResultItem `json:"items"`
	Sort  string             `json:"sort"` // "relevance"
}

// Search fuzzy-matches the query against title, code, tags, description,
// language, and category. Results are ranked by score, ties in insertion order.
func Search(ctx context.Context, st store.Store, m fuzzy.Matcher, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}
	if m == nil {
		m = fuzzy.New(fuzzy.DefaultThreshold)
	}

	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	items := []SearchResultItem{}
	for _, sn := range snippets {
		if err := cancelled(ctx, "search"); err != nil {
			return nil, err
		}
		if item, ok := scoreSnippet(m, query, sn); ok {
			items = append(items, item)
		}
	}

	slices.SortStableFunc(items, func(a, b SearchResultItem) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})

	return &SearchOutput{
		Items: items,
		Sort:  "relevance",
	}, nil
}

// scoreSnippet returns the best-scoring field of sn, if any field matches.
func scoreSnippet(m fuzzy.Matcher, query string, sn snippet.Snippet) (SearchResultItem, bool) {
	fields := []struct {
		name string
		text string
	}{
		{"title", sn.Title},
		{"code", sn.Code},
		{"tags", sn.TagList()},
		{"description", sn.Description},
		{"language", sn.Language},
		{"category", sn.Category},
	}

	item := SearchResultItem{Snippet: sn, Score: 1}
	matched := false
	for _, f := range fields {
		score, ok := m.Score(query, f.text)
		if ok && (!matched || score < item.Score) {
			item.Score = score
			item.Field = f.name
			matched = true
		}
	}
	return item, matched
}
