// Package ops implements the snippet operations shared by the CLI, MCP, and
// web surfaces. Every operation is one pass: load, compute, optionally save.
package ops

import (
	"context"
	"strconv"
	"strings"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
	"github.com/hpungsan/snip/internal/store"
)

// ParseID parses a user-supplied snippet id.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidRequest("id must be a positive integer: " + strconv.Quote(s))
	}
	return id, nil
}

// load wraps store errors so every op returns a SnipError.
func load(ctx context.Context, st store.Store) ([]snippet.Snippet, error) {
	snippets, err := st.Load(ctx)
	if err != nil {
		if _, ok := err.(*errors.SnipError); ok {
			return nil, err
		}
		return nil, errors.NewInternal(err)
	}
	return snippets, nil
}

// save wraps store errors so every op returns a SnipError.
func save(ctx context.Context, st store.Store, snippets []snippet.Snippet) error {
	if err := st.Save(ctx, snippets); err != nil {
		if _, ok := err.(*errors.SnipError); ok {
			return err
		}
		return errors.NewInternal(err)
	}
	return nil
}

// cancelled reports a cancelled context as a SnipError.
func cancelled(ctx context.Context, op string) error {
	if ctx.Err() != nil {
		return errors.NewCancelled(op)
	}
	return nil
}
