package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
)

// FileName is the backing file name inside the base directory.
const FileName = "snippets.json"

// JSONStore keeps the collection in a single pretty-printed JSON file.
type JSONStore struct {
	path string
}

// NewJSON returns a store backed by the file at path. The file and its parent
// directory are created on first Save.
func NewJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

// DefaultPath returns baseDir/snippets.json.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the backing file. A missing, unreadable, or unparseable file
// yields an empty collection; the cause is logged and not returned.
// Records that parse but break an invariant are kept and logged.
func (s *JSONStore) Load(ctx context.Context) ([]snippet.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled("load")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			slog.Debug("backing file not found, starting empty", "path", s.path)
		} else {
			slog.Warn("backing file unreadable, starting empty", "path", s.path, "error", err)
		}
		return []snippet.Snippet{}, nil
	}

	snippets, err := snippet.Decode(data)
	if err != nil {
		slog.Warn("backing file invalid, starting empty", "path", s.path, "error", err)
		return []snippet.Snippet{}, nil
	}
	for _, problem := range snippet.Problems(snippets) {
		slog.Warn("backing file record kept despite problem", "path", s.path, "error", problem)
	}
	return snippets, nil
}

// Save overwrites the backing file with the full collection.
func (s *JSONStore) Save(ctx context.Context, snippets []snippet.Snippet) error {
	if err := ctx.Err(); err != nil {
		return errors.NewCancelled("save")
	}

	data, err := snippet.Encode(snippets)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("encoding snippets: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create data directory: %w", err))
	}

	if err := WriteFileAtomic(s.path, data, 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("writing %s: %w", s.path, err))
	}

	slog.Debug("saved snippets", "path", s.path, "count", len(snippets))
	return nil
}
