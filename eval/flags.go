package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Flags is the packed set of context flags the evaluator maintains while
// walking the stylesheet. Flags are copied by value and restored around
// every construct that changes them.
type Flags uint16

const (
	InMixin Flags = 1 << iota
	InFunction
	InControlFlow
	InKeyframes
	InAtRootRule
	InStyleRule
	InUnknownAtRule
	InContentBlock
	InPlainCSS
	InParens
	AtRootExcludingStyleRule
	InSupportsDeclaration
	InSemiGlobalScope
	FoundContentRule
)

// Has reports whether flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag != 0
}

// Set turns flag on or off.
func (f *Flags) Set(flag Flags, on bool) {
	if on {
		*f |= flag
	} else {
		*f &^= flag
	}
}
