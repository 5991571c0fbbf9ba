// Package ledger records what the sync engine has written: one entry per
// projected block or file, keyed by tool, file, and block id, carrying the
// checksum of the content as applied. The ledger is what distinguishes
// drift in managed content from unrelated user edits.
//
// The ledger file is TOML under the project directory. Mutating sequences
// hold a single exclusive lock across load, modify, and save so concurrent
// invocations serialize instead of clobbering each other.
package ledger
