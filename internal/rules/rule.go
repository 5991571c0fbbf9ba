package rules

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/repoconf-labs/repoconf/internal/storage"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidID reports whether id is usable as a rule id. Rule ids share the
// block id grammar so a rule can name its managed block directly.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Rule is one declarative statement of desired configuration.
type Rule struct {
	ID          string    `toml:"id"`
	Content     string    `toml:"content"`
	Tags        []string  `toml:"tags,omitempty"`
	Source      string    `toml:"source,omitempty"`
	ContentHash string    `toml:"content_hash"`
	Created     time.Time `toml:"created"`
	Updated     time.Time `toml:"updated"`
}

// NewRule builds a rule with the hash and timestamps filled in.
func NewRule(id, content string, tags []string) (Rule, error) {
	if !ValidID(id) {
		return Rule{}, fmt.Errorf("rules: invalid rule id %q", id)
	}
	now := time.Now().UTC().Truncate(time.Second)
	sort.Strings(tags)
	return Rule{
		ID:          id,
		Content:     content,
		Tags:        tags,
		ContentHash: storage.ChecksumString(content),
		Created:     now,
		Updated:     now,
	}, nil
}

// UpdateContent replaces the rule's content, refreshing the hash and the
// updated timestamp. Setting identical content is a no-op.
func (r *Rule) UpdateContent(content string) bool {
	if r.Content == content {
		return false
	}
	r.Content = content
	r.ContentHash = storage.ChecksumString(content)
	r.Updated = time.Now().UTC().Truncate(time.Second)
	return true
}

// Drifted reports whether the stored hash no longer matches the content,
// which indicates the registry file was edited by hand.
func (r *Rule) Drifted() bool {
	return r.ContentHash != storage.ChecksumString(r.Content)
}

// HasTag reports whether the rule carries the given tag.
func (r *Rule) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
