// Package tools defines the per-tool integrations that project rules into
// each AI tool's configuration artifacts. An integration declares its
// targets and renders their desired content as a pure function of the
// rules; all filesystem writes happen in the sync engine.
package tools
