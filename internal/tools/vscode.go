package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/repoconf-labs/repoconf/internal/document"
)

// vscodeIntegration projects rules into .vscode/settings.json under the
// reserved managed key. It only applies to projects that already use
// VS Code: a missing .vscode directory is a skipped dependency, not a
// reason to create one.
type vscodeIntegration struct{}

func (vscodeIntegration) Name() string { return "vscode" }

func (vscodeIntegration) Targets(ctx Context) ([]Target, error) {
	info, err := os.Stat(filepath.Join(ctx.Root, ".vscode"))
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: no .vscode directory", ErrDependencyAbsent)
	}
	targets := make([]Target, 0, len(ctx.Rules))
	for _, r := range ctx.Rules {
		targets = append(targets, Target{
			Path:    ".vscode/settings.json",
			Kind:    KindJSONKey,
			BlockID: r.ID,
			Format:  document.FormatJSON,
		})
	}
	return targets, nil
}

func (vscodeIntegration) Render(ctx Context, t Target) (string, error) {
	for _, r := range ctx.Rules {
		if r.ID == t.BlockID {
			return r.Content, nil
		}
	}
	return "", &RenderError{
		Tool:   "vscode",
		Target: t.Path,
		Err:    fmt.Errorf("no rule for block %q", t.BlockID),
	}
}
