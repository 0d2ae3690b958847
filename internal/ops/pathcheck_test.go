package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
)

func TestValidatePath(t *testing.T) {
	workDir := t.TempDir()
	allowed := t.TempDir()
	outside := t.TempDir()
	cfg := &config.Config{AllowedPaths: []string{allowed, "relative/ignored"}}

	existing := filepath.Join(workDir, "in.json")
	if err := os.WriteFile(existing, []byte("[]"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(allowed, "in.json"), []byte("[]"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		mode    PathCheckMode
		want    string
		errCode errors.ErrorCode
	}{
		{name: "read in work dir", path: existing, mode: PathCheckRead, want: existing},
		{name: "relative read", path: "in.json", mode: PathCheckRead, want: existing},
		{name: "read in allowed path", path: filepath.Join(allowed, "in.json"), mode: PathCheckRead, want: filepath.Join(allowed, "in.json")},
		{name: "write in work dir", path: filepath.Join(workDir, "out.md"), mode: PathCheckWrite, want: filepath.Join(workDir, "out.md")},
		{name: "empty", path: "", mode: PathCheckRead, errCode: errors.ErrInvalidRequest},
		{name: "traversal", path: "../in.json", mode: PathCheckRead, errCode: errors.ErrInvalidRequest},
		{name: "outside", path: filepath.Join(outside, "out.json"), mode: PathCheckWrite, errCode: errors.ErrInvalidRequest},
		{name: "subdirectory", path: filepath.Join(workDir, "sub", "out.json"), mode: PathCheckWrite, errCode: errors.ErrInvalidRequest},
		{name: "wrong extension", path: filepath.Join(workDir, "in.txt"), mode: PathCheckRead, errCode: errors.ErrInvalidRequest},
		{name: "missing", path: filepath.Join(workDir, "gone.json"), mode: PathCheckRead, errCode: errors.ErrFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path, tt.mode, workDir, cfg)
			if tt.errCode != "" {
				if !errors.Is(err, tt.errCode) {
					t.Errorf("ValidatePath(%q) error = %v, want %s", tt.path, err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidatePath(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ValidatePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidatePath_Symlink(t *testing.T) {
	workDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "target.json")
	if err := os.WriteFile(target, []byte("[]"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(workDir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	for _, mode := range []PathCheckMode{PathCheckRead, PathCheckWrite} {
		if _, err := ValidatePath(link, mode, workDir, nil); !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("ValidatePath(link, %d) error = %v, want INVALID_REQUEST", mode, err)
		}
	}
}

func TestContainsTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a/b.json", false},
		{"..", true},
		{"a/../b.json", true},
		{"a..b.json", false},
	}
	for _, tt := range tests {
		if got := containsTraversal(tt.path); got != tt.want {
			t.Errorf("containsTraversal(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
