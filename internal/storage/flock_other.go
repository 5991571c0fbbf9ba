//go:build !unix

package storage

import "os"

// Advisory flock is unavailable on this platform. Writes still go through
// temp-then-rename, so the atomicity guarantee holds; only cross-process
// serialization is lost.
func flockTry(f *os.File) error { return nil }

func flockRelease(f *os.File) error { return nil }
