package ledger

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is written into every saved ledger. Readers accept any ledger
// within the same major version.
const Version = "1.0.0"

// CheckVersion validates a loaded ledger's version against what this build
// understands. Empty versions come from pre-versioning ledgers and pass.
func CheckVersion(v string) error {
	if v == "" {
		return nil
	}
	got, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("ledger: invalid version %q: %w", v, err)
	}
	supported := semver.MustParse(Version)
	if got.Major() != supported.Major() {
		return fmt.Errorf("ledger: version %s is not compatible with %s", v, Version)
	}
	return nil
}
