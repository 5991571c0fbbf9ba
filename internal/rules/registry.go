package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/repoconf-labs/repoconf/internal/storage"
)

var (
	// ErrRuleExists reports an Add with an already-registered id.
	ErrRuleExists = errors.New("rules: rule already exists")
	// ErrRuleNotFound reports an operation on an unregistered id.
	ErrRuleNotFound = errors.New("rules: rule not found")
)

// registryVersion is written into new registries for forward
// compatibility checks.
const registryVersion = "1"

// Registry is the on-disk rule collection. Unknown TOML fields are
// ignored on load so newer registries stay readable.
type Registry struct {
	Version string          `toml:"version"`
	Rules   map[string]Rule `toml:"rules"`

	path string
}

// Path returns the file the registry was loaded from.
func (g *Registry) Path() string { return g.path }

// Load reads a registry file. A missing file is storage.ErrNotFound.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("rules: read registry: %w", err)
	}
	var g Registry
	if err := toml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("rules: parse registry %s: %w", path, err)
	}
	if g.Rules == nil {
		g.Rules = map[string]Rule{}
	}
	for id, r := range g.Rules {
		if r.ID == "" {
			r.ID = id
			g.Rules[id] = r
		}
	}
	g.path = path
	return &g, nil
}

// LoadOrCreate reads a registry, returning a fresh empty one when the file
// does not exist yet.
func LoadOrCreate(path string) (*Registry, error) {
	g, err := Load(path)
	if err == nil {
		return g, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return &Registry{Version: registryVersion, Rules: map[string]Rule{}, path: path}, nil
	}
	return nil, err
}

// Save writes the registry atomically, creating the parent directory.
func (g *Registry) Save() error {
	if g.Version == "" {
		g.Version = registryVersion
	}
	data, err := toml.Marshal(g)
	if err != nil {
		return fmt.Errorf("rules: encode registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("rules: create registry dir: %w", err)
	}
	return storage.WriteText(g.path, string(data))
}

// Add registers a new rule. Duplicate ids are refused.
func (g *Registry) Add(r Rule) error {
	if !ValidID(r.ID) {
		return fmt.Errorf("rules: invalid rule id %q", r.ID)
	}
	if _, ok := g.Rules[r.ID]; ok {
		return fmt.Errorf("%w: %q", ErrRuleExists, r.ID)
	}
	g.Rules[r.ID] = r
	return nil
}

// Get returns the rule with the given id.
func (g *Registry) Get(id string) (Rule, error) {
	r, ok := g.Rules[id]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrRuleNotFound, id)
	}
	return r, nil
}

// Update replaces the content of an existing rule. The boolean reports
// whether the content actually changed.
func (g *Registry) Update(id, content string) (bool, error) {
	r, ok := g.Rules[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrRuleNotFound, id)
	}
	changed := r.UpdateContent(content)
	g.Rules[id] = r
	return changed, nil
}

// Remove deletes a rule.
func (g *Registry) Remove(id string) error {
	if _, ok := g.Rules[id]; !ok {
		return fmt.Errorf("%w: %q", ErrRuleNotFound, id)
	}
	delete(g.Rules, id)
	return nil
}

// List returns all rules sorted by id.
func (g *Registry) List() []Rule {
	out := make([]Rule, 0, len(g.Rules))
	for _, r := range g.Rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListTagged returns the rules carrying the given tag, sorted by id. An
// empty tag matches every rule.
func (g *Registry) ListTagged(tag string) []Rule {
	if tag == "" {
		return g.List()
	}
	var out []Rule
	for _, r := range g.List() {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}
