package ops

import (
	"context"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID int
}

// Fetch returns the snippet with the given id.
func Fetch(ctx context.Context, st store.Store, input FetchInput) (*snippet.Snippet, error) {
	if input.ID <= 0 {
		return nil, errors.NewInvalidRequest("id must be a positive integer")
	}

	snippets, err := load(ctx, st)
	if err != nil {
		return nil, err
	}

	for i := range snippets {
		if snippets[i].ID == input.ID {
			return &snippets[i], nil
		}
	}
	return nil, errors.NewNotFound(input.ID)
}
