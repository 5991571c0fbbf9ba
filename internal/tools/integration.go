package tools

import (
	"errors"
	"fmt"

	"github.com/repoconf-labs/repoconf/internal/document"
	"github.com/repoconf-labs/repoconf/internal/rules"
)

// ErrDependencyAbsent reports that a target's prerequisite is missing,
// such as a settings directory the tool itself would create. The engine
// skips such targets instead of failing them.
var ErrDependencyAbsent = errors.New("tools: dependency absent")

// Kind describes how a target's content merges into the destination file.
type Kind string

const (
	// KindFileManaged owns the whole file.
	KindFileManaged Kind = "file_managed"
	// KindTextBlock owns one marker-delimited block inside the file.
	KindTextBlock Kind = "text_block"
	// KindJSONKey owns one entry under the reserved JSON key.
	KindJSONKey Kind = "json_key"
)

// Context carries everything an integration needs to render.
type Context struct {
	// Root is the project root directory.
	Root string
	// Rules are the registered rules for this projection, pre-filtered
	// by the engine.
	Rules []rules.Rule
}

// Target is one artifact location an integration projects into.
type Target struct {
	// Path is relative to the project root, slash-separated.
	Path string
	Kind Kind
	// BlockID names the managed block for block and key kinds.
	BlockID string
	Format  document.Format
}

// Integration projects rules into one tool's configuration artifacts.
// Targets and Render must be pure: same context in, same output out, no
// filesystem access beyond existence probes in Targets.
type Integration interface {
	// Name is the stable identifier used in config, CLI filters, and
	// the ledger.
	Name() string
	// Targets lists the artifacts to project for this context. An
	// integration whose prerequisite is missing returns
	// ErrDependencyAbsent.
	Targets(ctx Context) ([]Target, error)
	// Render produces the desired content for one target.
	Render(ctx Context, t Target) (string, error)
}

// RenderError wraps a failure in one integration's render, carrying the
// tool and target for reporting.
type RenderError struct {
	Tool   string
	Target string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("tools: %s render %s: %v", e.Tool, e.Target, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
