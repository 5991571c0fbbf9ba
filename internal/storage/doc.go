// Package storage provides the filesystem primitives the sync engine is
// built on: content checksums, normalized path handling with traversal
// rejection, and atomic writes guarded by advisory file locks.
//
// Writes go through a write-temp-then-rename sequence so readers never
// observe partial content. Before any write the destination path is checked
// for symlinked components; an error during that check refuses the write
// (fail closed) rather than letting it through unverified.
package storage
