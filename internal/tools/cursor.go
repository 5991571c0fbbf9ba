package tools

import (
	"fmt"

	"github.com/repoconf-labs/repoconf/internal/document"
)

// cursorIntegration projects each rule into its own managed block in the
// repository's .cursorrules file. The file is plain text to Cursor but
// tolerates HTML comments, which keeps the markers invisible in its UI.
type cursorIntegration struct{}

func (cursorIntegration) Name() string { return "cursor" }

func (cursorIntegration) Targets(ctx Context) ([]Target, error) {
	targets := make([]Target, 0, len(ctx.Rules))
	for _, r := range ctx.Rules {
		targets = append(targets, Target{
			Path:    ".cursorrules",
			Kind:    KindTextBlock,
			BlockID: r.ID,
			Format:  document.FormatMarkdown,
		})
	}
	return targets, nil
}

func (cursorIntegration) Render(ctx Context, t Target) (string, error) {
	for _, r := range ctx.Rules {
		if r.ID == t.BlockID {
			return r.Content, nil
		}
	}
	return "", &RenderError{
		Tool:   "cursor",
		Target: t.Path,
		Err:    fmt.Errorf("no rule for block %q", t.BlockID),
	}
}
