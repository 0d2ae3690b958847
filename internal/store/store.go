// Package store persists the snippet collection.
package store

import (
	"context"

	"github.com/hpungsan/snip/internal/snippet"
)

// Store loads and saves the full snippet collection.
//
// Load returns the records in insertion order. Implementations backed by a
// file return an empty collection, not an error, when the file is missing or
// unreadable. Save overwrites everything previously stored.
type Store interface {
	Load(ctx context.Context) ([]snippet.Snippet, error)
	Save(ctx context.Context, snippets []snippet.Snippet) error
}
