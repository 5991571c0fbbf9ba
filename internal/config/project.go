package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/repoconf-labs/repoconf/internal/branding"
	"github.com/repoconf-labs/repoconf/internal/storage"
	"github.com/repoconf-labs/repoconf/internal/tools"
)

// Project is the per-repository configuration at .repoconf/config.yaml.
type Project struct {
	Version string   `yaml:"version"`
	Tools   []string `yaml:"tools"`
}

// projectVersion is written into new project configs.
const projectVersion = "1"

// ProjectDir returns the project state directory under root.
func ProjectDir(root string) string {
	return filepath.Join(root, branding.ProjectDir())
}

// ProjectPath returns the project config file under root.
func ProjectPath(root string) string {
	return filepath.Join(ProjectDir(root), fileName+"."+fileType)
}

// RegistryPath returns the rule registry file under root.
func RegistryPath(root string) string {
	return filepath.Join(ProjectDir(root), "rules", "registry.toml")
}

// LedgerPath returns the ledger file under root.
func LedgerPath(root string) string {
	return filepath.Join(ProjectDir(root), "ledger.toml")
}

// FindRoot walks up from dir looking for a project directory. It returns
// storage.ErrNotFound when no ancestor is initialized.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		if info, err := os.Stat(filepath.Join(abs, branding.ProjectDir())); err == nil && info.IsDir() {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w: no %s directory in %s or any parent", storage.ErrNotFound, branding.ProjectDir(), dir)
		}
		abs = parent
	}
}

// LoadProject reads and validates the project config under root.
func LoadProject(root string) (*Project, error) {
	data, err := os.ReadFile(ProjectPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, ProjectPath(root))
		}
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	result, err := ValidateProject(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid project config %s: %s", ProjectPath(root), result.Issues[0].Message)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	for _, name := range p.Tools {
		if _, err := tools.Get(name); err != nil {
			return nil, fmt.Errorf("project config: %w", err)
		}
	}
	return &p, nil
}

// InitProject creates the project directory and a config enabling the
// given tools. An already-initialized root is an error.
func InitProject(root string, toolNames []string) (*Project, error) {
	if _, err := os.Stat(ProjectPath(root)); err == nil {
		return nil, fmt.Errorf("project already initialized at %s", ProjectPath(root))
	}
	for _, name := range toolNames {
		if _, err := tools.Get(name); err != nil {
			return nil, err
		}
	}
	if len(toolNames) == 0 {
		toolNames = tools.Names()
	}

	p := &Project{Version: projectVersion, Tools: toolNames}
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding project config: %w", err)
	}
	if err := os.MkdirAll(ProjectDir(root), 0755); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}
	if err := storage.WriteText(ProjectPath(root), string(data)); err != nil {
		return nil, err
	}
	return p, nil
}
