package blocks

import (
	"fmt"
	"regexp"
)

// Style selects the comment syntax used for block markers.
type Style int

const (
	// StyleHTML uses HTML comment markers, for Markdown and plain text.
	StyleHTML Style = iota
	// StyleHash uses single-line # comment markers, for TOML and YAML.
	StyleHash
)

// idPattern restricts block ids to the characters markers can safely embed.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidID reports whether id may be embedded in a marker.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Open returns the opening marker line for id.
func (s Style) Open(id string) string {
	if s == StyleHash {
		return "# repo:block:" + id
	}
	return "<!-- repo:block:" + id + " -->"
}

// Close returns the closing marker line for id.
func (s Style) Close(id string) string {
	if s == StyleHash {
		return "# /repo:block:" + id
	}
	return "<!-- /repo:block:" + id + " -->"
}

// openRegexp returns the pattern matching any open marker in this style,
// capturing the block id.
func (s Style) openRegexp() *regexp.Regexp {
	if s == StyleHash {
		return hashOpenRe
	}
	return htmlOpenRe
}

// closeRegexp returns the pattern matching any close marker in this style.
func (s Style) closeRegexp() *regexp.Regexp {
	if s == StyleHash {
		return hashCloseRe
	}
	return htmlCloseRe
}

var (
	htmlOpenRe  = regexp.MustCompile(`<!-- repo:block:([A-Za-z0-9_-]+) -->`)
	htmlCloseRe = regexp.MustCompile(`<!-- /repo:block:([A-Za-z0-9_-]+) -->`)
	hashOpenRe  = regexp.MustCompile(`(?m)^# repo:block:([A-Za-z0-9_-]+)[ \t]*$`)
	hashCloseRe = regexp.MustCompile(`(?m)^# /repo:block:([A-Za-z0-9_-]+)[ \t]*$`)
)

// openMatcher compiles a pattern matching the open marker for a single id.
// The id is escaped before being embedded; a compile failure surfaces as an
// error rather than a panic.
func (s Style) openMatcher(id string) (*regexp.Regexp, error) {
	return s.matcher(s.Open(id), id)
}

// closeMatcher compiles a pattern matching the close marker for a single
// id. Hash markers anchor to the full line so one id never matches another
// id's prefix.
func (s Style) closeMatcher(id string) (*regexp.Regexp, error) {
	return s.matcher(s.Close(id), id)
}

func (s Style) matcher(marker, id string) (*regexp.Regexp, error) {
	pattern := regexp.QuoteMeta(marker)
	if s == StyleHash {
		pattern = `(?m)^` + pattern + `[ \t]*$`
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("building marker pattern for id %q: %w", id, err)
	}
	return re, nil
}
