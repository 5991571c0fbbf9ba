//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/repoconf-labs/repoconf/internal/config"
	"github.com/repoconf-labs/repoconf/internal/engine"
	"github.com/repoconf-labs/repoconf/internal/rules"
)

// projectEnv is one isolated repository under test.
type projectEnv struct {
	Root     string
	Registry *rules.Registry
}

// setupProject initializes a project in a temp directory with the given
// tools enabled.
func setupProject(t *testing.T, toolNames ...string) *projectEnv {
	t.Helper()
	root := t.TempDir()
	if _, err := config.InitProject(root, toolNames); err != nil {
		t.Fatalf("initializing project: %v", err)
	}
	reg, err := rules.LoadOrCreate(config.RegistryPath(root))
	if err != nil {
		t.Fatalf("opening registry: %v", err)
	}
	return &projectEnv{Root: root, Registry: reg}
}

// addRule registers and persists a rule.
func (env *projectEnv) addRule(t *testing.T, id, content string) {
	t.Helper()
	r, err := rules.NewRule(id, content, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Registry.Add(r); err != nil {
		t.Fatal(err)
	}
	if err := env.Registry.Save(); err != nil {
		t.Fatal(err)
	}
}

// engine builds a fresh engine over the project, re-reading its config, the
// way a new CLI invocation would.
func (env *projectEnv) engine(t *testing.T) *engine.Engine {
	t.Helper()
	project, err := config.LoadProject(env.Root)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := rules.LoadOrCreate(config.RegistryPath(env.Root))
	if err != nil {
		t.Fatal(err)
	}
	return engine.New(env.Root, reg, project.Tools, engine.Options{
		LedgerPath: config.LedgerPath(env.Root),
	})
}

// read returns the content of a file under the project root.
func (env *projectEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(env.Root, rel))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// write replaces a file under the project root, simulating a hand edit.
func (env *projectEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(env.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func countOccurrences(s, sub string) int {
	return strings.Count(s, sub)
}
