//go:build windows

package store

import (
	"os"
)

// openFileNoFollow opens a file for writing.
// On Windows, O_NOFOLLOW is not available; WriteFileAtomic still checks the
// destination for symlinks before we get here.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}
