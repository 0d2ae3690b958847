package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Decode parses a JSON array of snippets and applies field defaults.
// Order is preserved. Only parse errors fail; record-level problems are
// reported by Validate.
func Decode(data []byte) ([]Snippet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Snippet{}, nil
	}

	var snippets []Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if snippets == nil {
		snippets = []Snippet{}
	}

	for i := range snippets {
		snippets[i].ApplyDefaults()
	}
	return snippets, nil
}

// Validate checks the collection invariants: positive unique ids and
// non-empty titles. It returns the first violation.
func Validate(snippets []Snippet) error {
	if problems := Problems(snippets); len(problems) > 0 {
		return problems[0]
	}
	return nil
}

// Problems lists every invariant violation in the collection, in record order.
func Problems(snippets []Snippet) []error {
	var problems []error
	seen := make(map[int]bool, len(snippets))
	for i, s := range snippets {
		if s.ID <= 0 {
			problems = append(problems, fmt.Errorf("record %d: id must be positive (got %d)", i, s.ID))
		} else if seen[s.ID] {
			problems = append(problems, fmt.Errorf("record %d: duplicate id %d", i, s.ID))
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.Title) == "" {
			problems = append(problems, fmt.Errorf("record %d: title is required", i))
		}
	}
	return problems
}

// Encode serializes snippets as a pretty-printed JSON array.
func Encode(snippets []Snippet) ([]byte, error) {
	if snippets == nil {
		snippets = []Snippet{}
	}
	data, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
