package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/scss/ast"
)

// Error is a user-level evaluation error: a message plus the source
// location it arose at. Evaluation is fail-fast; the first Error aborts
// the compilation.
type Error struct {
	Message string
	Span    ast.Span
}

func (e *Error) Error() string {
	if e.Span.IsZero() {
		return "Error: " + e.Message
	}
	return fmt.Sprintf("Error: %s\n    %s", e.Message, e.Span)
}

// errorf builds an Error at a location.
func errorf(span ast.Span, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Span: span}
}

// located attaches a span to a plain error coming up from the value or
// scope layer; errors that already carry a location pass through.
func located(err error, span ast.Span) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Message: err.Error(), Span: span}
}
