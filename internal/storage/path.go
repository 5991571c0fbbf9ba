package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// lstat is swappable so tests can simulate failures inside the symlink check.
var lstat = os.Lstat

// Normalize converts a path to forward slashes and collapses "." and ".."
// segments. The result is suitable for use as a stable map key across
// platforms; convert back with filepath.FromSlash at I/O boundaries.
func Normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
}

// JoinUnder joins rel onto root and verifies the result stays inside root.
// Absolute rel paths and ".." traversal that escapes root are rejected with
// ErrSecurityViolation.
func JoinUnder(root, rel string) (string, error) {
	if filepath.IsAbs(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("%w: absolute target path %q", ErrSecurityViolation, rel)
	}
	cleanRoot := filepath.Clean(filepath.FromSlash(root))
	joined := filepath.Clean(filepath.Join(cleanRoot, filepath.FromSlash(rel)))
	if joined != cleanRoot && !strings.HasPrefix(joined, cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes root %q", ErrSecurityViolation, rel, root)
	}
	return joined, nil
}

// ContainsSymlink reports whether any existing component of path, walking up
// to the filesystem root, is a symbolic link. A non-nil error means the
// check itself could not be completed; callers must treat that the same as
// a positive result.
func ContainsSymlink(path string) (bool, error) {
	current := filepath.Clean(path)
	for {
		info, err := lstat(current)
		if err == nil {
			if info.Mode()&os.ModeSymlink != 0 {
				return true, nil
			}
		} else if !os.IsNotExist(err) {
			return false, fmt.Errorf("checking %s: %w", current, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return false, nil
		}
		current = parent
	}
}
