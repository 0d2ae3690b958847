package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/snip/internal/config"
	"github.com/hpungsan/snip/internal/errors"
)

// PathCheckMode indicates whether the path check is for reading or writing.
type PathCheckMode int

const (
	PathCheckRead  PathCheckMode = iota // import reads a file
	PathCheckWrite                      // export writes a file
)

// ImportExtension is the only extension accepted by Import.
const ImportExtension = ".json"

// ValidatePath checks an import or export file path and returns it absolute.
//
// Rules:
//  1. no ".." components
//  2. reads must end in .json
//  3. the file must sit directly in workDir or an absolute cfg.AllowedPaths entry
//  4. neither the parent directory nor the file may be a symlink
//
// A relative path resolves against workDir. An empty workDir means the
// process working directory.
func ValidatePath(path string, mode PathCheckMode, workDir string, cfg *config.Config) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.NewInvalidRequest("path is required")
	}
	if containsTraversal(path) {
		return "", errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	workDir, err := resolveWorkDir(workDir)
	if err != nil {
		return "", err
	}

	cleaned := filepath.Clean(path)
	if mode == PathCheckRead && !strings.EqualFold(filepath.Ext(cleaned), ImportExtension) {
		return "", errors.NewInvalidRequest("path must have " + ImportExtension + " extension")
	}
	if !filepath.IsAbs(cleaned) {
		cleaned = filepath.Join(workDir, cleaned)
	}
	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}

	allowedDirs, err := allowedDirs(workDir, cfg)
	if err != nil {
		return "", err
	}

	// No subdirectories: the parent must be an allowed directory itself.
	parentDir := filepath.Dir(absPath)
	if !isDirectlyInAllowedDir(parentDir, allowedDirs) {
		return "", errors.NewInvalidRequest(
			fmt.Sprintf("file must be directly in an allowed directory (no subdirectories); allowed: %v",
				allowedDirs))
	}

	if info, err := os.Lstat(parentDir); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return "", errors.NewInvalidRequest("parent directory must not be a symlink")
	}

	if mode == PathCheckRead {
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return "", errors.NewFileNotFound(path)
		}
	}

	if info, err := os.Lstat(absPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return "", errors.NewInvalidRequest("path must not be a symlink")
	}

	return absPath, nil
}

// resolveWorkDir returns workDir as an absolute path, defaulting to os.Getwd.
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.NewInternal(fmt.Errorf("failed to get working directory: %w", err))
		}
		workDir = wd
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("resolving working directory: %w", err))
	}
	return abs, nil
}

// allowedDirs returns workDir plus the absolute cfg.AllowedPaths entries,
// cleaned. Entries that are themselves symlinks are resolved.
func allowedDirs(workDir string, cfg *config.Config) ([]string, error) {
	dirs := []string{workDir}
	if cfg != nil {
		for _, p := range cfg.AllowedPaths {
			if filepath.IsAbs(p) {
				dirs = append(dirs, filepath.Clean(p))
			}
		}
	}

	result := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs := filepath.Clean(d)
		if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(abs)
			if err != nil {
				return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot resolve symlink in allowed path: %v", err))
			}
			abs = resolved
		}
		result = append(result, abs)
	}
	return result, nil
}

// isDirectlyInAllowedDir reports whether parentDir equals one of the allowed directories.
func isDirectlyInAllowedDir(parentDir string, allowedDirs []string) bool {
	parentDir = filepath.Clean(parentDir)
	for _, dir := range allowedDirs {
		if parentDir == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// containsTraversal checks if path contains a ".." component.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}
