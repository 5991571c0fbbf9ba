// Package blocks locates, inserts, updates, and removes named managed
// regions in text. Two marker families are provided:
//
// Comment markers delimit a region with a paired open/close line:
//
//	<!-- repo:block:my-id -->
//	interior content
//	<!-- /repo:block:my-id -->
//
// or, for #-comment formats:
//
//	# repo:block:my-id
//	interior content
//	# /repo:block:my-id
//
// JSON files cannot carry comments, so managed content lives under a
// reserved "_repo_managed" top-level key keyed by block id (see keyblock.go).
//
// Parsing is lenient: an open marker with no matching close is omitted, an
// orphan close is ignored, and duplicate ids parse as independent entries.
// Nesting of the same id is unsupported; the first close terminates the
// first open, so anything between a second open and that close becomes
// literal interior content of the first block. Callers needing strict
// validation compare OpenCount against CloseCount on the parse result.
package blocks
