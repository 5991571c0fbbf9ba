package storage

import "errors"

// Sentinel errors for the storage layer. Callers match with errors.Is.
var (
	// ErrNotFound indicates a missing file or a write whose parent
	// directory does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrSecurityViolation indicates a path that escapes its root, resolves
	// through a symlink, or whose safety check could not be completed.
	ErrSecurityViolation = errors.New("storage: security violation")

	// ErrLockTimeout indicates the advisory lock could not be acquired
	// within the configured retry budget.
	ErrLockTimeout = errors.New("storage: lock timeout")
)
