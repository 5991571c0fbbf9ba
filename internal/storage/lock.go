package storage

import (
	"fmt"
	"os"
	"time"
)

const (
	lockSuffix     = ".lock"
	initialBackoff = 10 * time.Millisecond
	maxBackoff     = 500 * time.Millisecond
)

// Lock acquires an exclusive advisory lock on a sidecar ".lock" file beside
// path. Contention is retried with bounded exponential backoff; once the
// timeout budget is exhausted the attempt fails with ErrLockTimeout.
//
// The returned release function unlocks and removes the sidecar. It is safe
// to call exactly once.
func Lock(path string, timeout time.Duration) (release func() error, err error) {
	lockPath := path + lockSuffix
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file %s: %w", lockPath, err)
	}

	deadline := time.Now().Add(timeout)
	backoff := initialBackoff
	for {
		if err := flockTry(f); err == nil {
			break
		}
		if time.Now().After(deadline) {
			f.Close()
			return nil, fmt.Errorf("%w: %s after %s", ErrLockTimeout, path, timeout)
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return func() error {
		unlockErr := flockRelease(f)
		closeErr := f.Close()
		// Best-effort cleanup; another process may recreate it immediately.
		os.Remove(lockPath)
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
