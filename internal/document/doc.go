// Package document models a configuration file as an editable unit with a
// detected format, structured path operations, managed block operations,
// and a reversible edit history.
//
// JSON edits preserve the surrounding formatting of the document. YAML and
// TOML edits re-serialize the document, so comments and layout outside the
// edited values are not retained for those formats. Markdown and plain text
// support block operations only; structured path operations on them return
// an UnsupportedValueError.
//
// Every mutation is recorded as an Edit whose inverse restores the prior
// text exactly, so Revert always reproduces the original source
// byte-for-byte.
package document
