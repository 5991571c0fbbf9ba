// Package engine converges tool configuration artifacts toward the rule
// registry. Check classifies every projection without writing; Sync applies
// desired content and cleans up stale ledger entries; Fix repairs the
// projections that Check would flag, reporting only what its own apply pass
// did.
//
// A failure in one projection never aborts the batch: the engine records
// the failure and continues, so a single unwritable file cannot block the
// rest of the repository from converging.
package engine
