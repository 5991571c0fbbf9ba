package document

import "fmt"

// ParseError reports content that does not parse as its declared format.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("document: parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnsupportedValueError reports an operation that the document's format
// cannot express, such as a path operation on plain text.
type UnsupportedValueError struct {
	Format Format
	Op     string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("document: %s not supported for %s documents", e.Op, e.Format)
}
