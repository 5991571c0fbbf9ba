//go:build unix

package storage

import (
	"os"

	"golang.org/x/sys/unix"
)

// flockTry attempts a non-blocking exclusive flock on f.
func flockTry(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// flockRelease drops the advisory lock held on f.
func flockRelease(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
