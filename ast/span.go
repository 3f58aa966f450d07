package ast

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// Span locates a node in its source file. Spans are attached by the parser
// and travel with every diagnostic the evaluator produces.
type Span struct {
	File string
	Line int // 1-based
	Col  int // 1-based
}

func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Col)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// IsZero is true for spans of synthesized nodes.
func (s Span) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Col == 0
}
