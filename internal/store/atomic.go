package store

import (
	"fmt"
	"os"
	"runtime"

	"github.com/oklog/ulid/v2"
)

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so a failed write leaves any existing file untouched. A symlink at
// path is refused rather than followed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to overwrite symlink %s", path)
	}

	tempPath := path + "." + ulid.Make().String() + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return err
	}

	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		// Windows refuses to rename over an existing file.
		if runtime.GOOS == "windows" {
			if rmErr := os.Remove(path); rmErr == nil {
				if err := os.Rename(tempPath, path); err == nil {
					success = true
					return nil
				}
			}
		}
		return fmt.Errorf("failed to finalize write: %w", err)
	}

	success = true
	return nil
}
