package engine

import "github.com/repoconf-labs/repoconf/internal/tools"

// State classifies a projection target as found on disk.
type State string

const (
	// StateHealthy means the target content matches the desired render
	// and the ledger agrees.
	StateHealthy State = "healthy"
	// StateMissing means the target file or block does not exist yet.
	StateMissing State = "missing"
	// StateDrifted means the engine wrote this target before and its
	// content has since changed.
	StateDrifted State = "drifted"
	// StateUnmanaged means content occupies the target but the ledger
	// has no record of writing it.
	StateUnmanaged State = "unmanaged"
)

// Outcome is the result of handling one projection during an apply pass.
type Outcome string

const (
	OutcomeHealthy Outcome = "healthy"
	OutcomeFixed   Outcome = "fixed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Projection pairs a tool with one of its targets.
type Projection struct {
	Tool   string
	Target tools.Target
}

// Key identifies the projection in the ledger.
func (p Projection) Key() (tool, file, block string) {
	return p.Tool, p.Target.Path, p.Target.BlockID
}
