package storage

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// checksumPrefix names the digest algorithm in every checksum this package
// produces; drift detection relies on the format staying stable.
const checksumPrefix = "sha256:"

// Checksum returns the canonical "sha256:<hex>" digest of content.
// Identical bytes always yield identical digests.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%s%x", checksumPrefix, sum)
}

// ChecksumString returns the canonical digest of a string's bytes.
func ChecksumString(content string) string {
	return Checksum([]byte(content))
}

// ChecksumFile returns the canonical digest of a file's contents.
func ChecksumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Checksum(data), nil
}
