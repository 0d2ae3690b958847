package ops

import (
	"context"
	"testing"

	"github.com/hpungsan/snip/internal/errors"
)

func TestFetch_Found(t *testing.T) {
	st := newTestStore(t)
	seed(t, st,
		newTestSnippet(1, "one", "go", "General"),
		newTestSnippet(2, "two", "go", "General"),
	)

	sn, err := Fetch(context.Background(), st, FetchInput{ID: 2})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if sn.Title != "two" {
		t.Errorf("Title = %q, want two", sn.Title)
	}
}

func TestFetch_NotFound(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, newTestSnippet(1, "one", "go", "General"))

	_, err := Fetch(context.Background(), st, FetchInput{ID: 9})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Fetch() error = %v, want NOT_FOUND", err)
	}
}

func TestFetch_InvalidID(t *testing.T) {
	st := newTestStore(t)

	_, err := Fetch(context.Background(), st, FetchInput{ID: 0})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Fetch() error = %v, want INVALID_REQUEST", err)
	}
}
