package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
)

func writeImportFile(t *testing.T, snippets ...snippet.Snippet) string {
	t.Helper()
	data, err := snippet.Encode(snippets)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestImport_AppendsWithFreshIDs(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, newTestSnippet(1, "existing", "go", "General"))

	incoming := newTestSnippet(1, "imported", "rust", "Systems", "unsafe")
	incoming.Description = "kept"
	path := writeImportFile(t, incoming, newTestSnippet(2, "second", "go", "General"))

	out, err := Import(context.Background(), st, nil, ImportInput{Path: path, WorkDir: filepath.Dir(path)})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 2 || out.Total != 3 {
		t.Errorf("Imported = %d, Total = %d, want 2, 3", out.Imported, out.Total)
	}
	if len(out.IDs) != 2 || out.IDs[0] != 2 || out.IDs[1] != 3 {
		t.Errorf("IDs = %v, want [2 3]", out.IDs)
	}

	stored, _ := st.Load(context.Background())
	got := stored[1]
	if got.ID != 2 || got.Title != "imported" || got.Language != "rust" || got.Description != "kept" {
		t.Errorf("stored[1] = %+v", got)
	}
	if !got.CreatedAt.Equal(incoming.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, incoming.CreatedAt)
	}
}

func TestImport_FileNotFound(t *testing.T) {
	st := newTestStore(t)

	dir := t.TempDir()

	_, err := Import(context.Background(), st, nil, ImportInput{Path: "missing.json", WorkDir: dir})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("Import() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestImport_InvalidFile(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{oops`},
		{"missing title", `[{"id": 1, "code": "x"}]`},
		{"duplicate ids", `[{"id": 1, "title": "a"}, {"id": 1, "title": "b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			seed(t, st, newTestSnippet(1, "existing", "go", "General"))

			path := filepath.Join(t.TempDir(), "bad.json")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			_, err := Import(context.Background(), st, nil, ImportInput{Path: path, WorkDir: filepath.Dir(path)})
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("Import() error = %v, want INVALID_REQUEST", err)
			}

			stored, _ := st.Load(context.Background())
			if len(stored) != 1 {
				t.Errorf("stored %d snippets, want 1 (unchanged)", len(stored))
			}
		})
	}
}

func TestImport_PathRequired(t *testing.T) {
	st := newTestStore(t)

	_, err := Import(context.Background(), st, nil, ImportInput{Path: "  ", WorkDir: t.TempDir()})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import() error = %v, want INVALID_REQUEST", err)
	}
}

func TestImport_PathChecks(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, newTestSnippet(1, "existing", "go", "General"))
	path := writeImportFile(t, newTestSnippet(1, "imported", "go", "General"))
	workDir := t.TempDir()

	txt := filepath.Join(workDir, "import.txt")
	if err := os.WriteFile(txt, []byte("[]"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"outside allowed directories", path},
		{"traversal", workDir + string(filepath.Separator) + ".." + string(filepath.Separator) + "import.json"},
		{"wrong extension", txt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(context.Background(), st, nil, ImportInput{Path: tt.path, WorkDir: workDir})
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("Import() error = %v, want INVALID_REQUEST", err)
			}
		})
	}

	stored, _ := st.Load(context.Background())
	if len(stored) != 1 {
		t.Errorf("stored %d snippets, want 1 (unchanged)", len(stored))
	}

	cfg := config.DefaultConfig()
	cfg.AllowedPaths = []string{filepath.Dir(path)}
	if _, err := Import(context.Background(), st, cfg, ImportInput{Path: path, WorkDir: workDir}); err != nil {
		t.Errorf("Import from allowed_paths entry failed: %v", err)
	}
}

func TestImport_RelativePathResolvesAgainstWorkDir(t *testing.T) {
	st := newTestStore(t)
	path := writeImportFile(t, newTestSnippet(1, "imported", "go", "General"))

	out, err := Import(context.Background(), st, nil, ImportInput{Path: filepath.Base(path), WorkDir: filepath.Dir(path)})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 {
		t.Errorf("Imported = %d, want 1", out.Imported)
	}
}
