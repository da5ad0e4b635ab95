package ast

import "fmt"

// ParseError is the one user-facing failure of the pipeline: text that the
// grammar rules reject, such as parameters with no preceding label.
type ParseError struct {
	Message string
	// Offset is the byte offset of the offending token.
	Offset int
	// Err is the underlying cause, such as a *PolicyError.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }
