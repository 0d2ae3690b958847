package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// ListInput contains parameters for the List operation.
// Empty filters are skipped; set filters are combined with AND.
type ListInput struct {
	Language string // case-insensitive equality
	Category string // case-insensitive equality
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []snippet.Snippet `json:"items"`
	Total int               `json:"total"`
}

// List returns snippets matching the filters, in insertion order.
func List(ctx context.Context, st store.Store, input ListInput) (*ListOutput, error) {
	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	lang := strings.TrimSpace(input.Language)
	category := strings.TrimSpace(input.Category)

	// Ensure we return an empty array rather than nil
	items := []snippet.Snippet{}
	for _, sn := range snippets {
		if lang != "" && !strings.EqualFold(strings.TrimSpace(sn.Language), lang) {
			continue
		}
		if category != "" && !strings.EqualFold(strings.TrimSpace(sn.Category), category) {
			continue
		}
		items = append(items, sn)
	}

	return &ListOutput{
		Items: items,
		Total: len(snippets),
	}, nil
}
