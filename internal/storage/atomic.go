package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Options controls robustness and performance trade-offs for atomic writes.
type Options struct {
	// Fsync flushes the temp file to disk before the rename. Disable only
	// when data loss on power failure is an acceptable risk.
	Fsync bool
	// LockTimeout bounds how long a write waits for the destination's
	// advisory lock before failing with ErrLockTimeout.
	LockTimeout time.Duration
	// NoLock skips the advisory lock. Set it only when the caller
	// already holds the destination's lock for a wider sequence.
	NoLock bool
}

// DefaultOptions returns the standard write options: fsync enabled and a
// 10 second lock budget.
func DefaultOptions() Options {
	return Options{Fsync: true, LockTimeout: 10 * time.Second}
}

// WriteAtomic writes content to path by writing a temp file beside the
// destination and renaming it into place, so readers never observe partial
// data. An exclusive advisory lock on the destination is held for the
// write's duration.
//
// The destination's parent directory must already exist (ErrNotFound
// otherwise). Paths containing symlinked components are refused with
// ErrSecurityViolation; an error while performing that check refuses the
// write the same way.
func WriteAtomic(path string, content []byte, opts Options) error {
	slog.Default().Debug("atomic write", slog.String("path", path), slog.Int("bytes", len(content)))

	linked, err := ContainsSymlink(path)
	if err != nil {
		return fmt.Errorf("%w: symlink check failed for %s: %v", ErrSecurityViolation, path, err)
	}
	if linked {
		return fmt.Errorf("%w: %s resolves through a symlink", ErrSecurityViolation, path)
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: parent directory %s", ErrNotFound, dir)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: parent %s is not a directory", ErrNotFound, dir)
	}

	if !opts.NoLock {
		release, err := Lock(path, opts.LockTimeout)
		if err != nil {
			return err
		}
		defer release()
	}

	tmpName := fmt.Sprintf(".%s.%d.tmp", filepath.Base(path), os.Getpid())
	tmpPath := filepath.Join(dir, tmpName)

	if err := writeTemp(tmpPath, content, opts.Fsync); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming %s over %s: %w", tmpPath, path, err)
	}
	return nil
}

func writeTemp(tmpPath string, content []byte, fsync bool) error {
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating temp file %s: %w", tmpPath, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("writing temp file %s: %w", tmpPath, err)
	}
	if fsync {
		if err := f.Sync(); err != nil {
			f.Close()
			return fmt.Errorf("syncing temp file %s: %w", tmpPath, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing temp file %s: %w", tmpPath, err)
	}
	return nil
}

// ReadText reads a file as a string, mapping a missing file to ErrNotFound.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText writes a string atomically with default options.
func WriteText(path, content string) error {
	return WriteAtomic(path, []byte(content), DefaultOptions())
}
