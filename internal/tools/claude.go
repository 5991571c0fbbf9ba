package tools

import (
	"fmt"

	"github.com/repoconf-labs/repoconf/internal/document"
)

// claudeIntegration projects each rule into a managed block in CLAUDE.md,
// leaving the rest of the file to the user.
type claudeIntegration struct{}

func (claudeIntegration) Name() string { return "claude" }

func (claudeIntegration) Targets(ctx Context) ([]Target, error) {
	targets := make([]Target, 0, len(ctx.Rules))
	for _, r := range ctx.Rules {
		targets = append(targets, Target{
			Path:    "CLAUDE.md",
			Kind:    KindTextBlock,
			BlockID: r.ID,
			Format:  document.FormatMarkdown,
		})
	}
	return targets, nil
}

func (claudeIntegration) Render(ctx Context, t Target) (string, error) {
	for _, r := range ctx.Rules {
		if r.ID == t.BlockID {
			return r.Content, nil
		}
	}
	return "", &RenderError{
		Tool:   "claude",
		Target: t.Path,
		Err:    fmt.Errorf("no rule for block %q", t.BlockID),
	}
}
