package tools

import (
	"strings"

	"github.com/repoconf-labs/repoconf/internal/document"
)

// copilotIntegration owns .github/copilot-instructions.md outright:
// Copilot reads the file as a whole, so all rules combine into one
// generated document instead of per-rule blocks.
type copilotIntegration struct{}

const copilotPath = ".github/copilot-instructions.md"

const copilotHeader = "<!-- Generated by repoconf. Edit your rules and run 'repoconf sync' instead of editing this file. -->"

func (copilotIntegration) Name() string { return "copilot" }

func (copilotIntegration) Targets(ctx Context) ([]Target, error) {
	if len(ctx.Rules) == 0 {
		return nil, nil
	}
	return []Target{{
		Path:   copilotPath,
		Kind:   KindFileManaged,
		Format: document.FormatMarkdown,
	}}, nil
}

func (copilotIntegration) Render(ctx Context, _ Target) (string, error) {
	return CombineRules(ctx), nil
}

// CombineRules renders every rule into a single instructions document
// with a generated-file header.
func CombineRules(ctx Context) string {
	var sb strings.Builder
	sb.WriteString(copilotHeader)
	sb.WriteString("\n\n# Project Instructions\n")
	for _, r := range ctx.Rules {
		sb.WriteString("\n## ")
		sb.WriteString(r.ID)
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimRight(r.Content, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}
