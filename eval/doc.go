/*
Package eval walks a parsed stylesheet and produces plain CSS output
statements in a single pass.

The central type is the Visitor. It owns an Environment (the scope chain
plus the global scope and the active content closure), a packed set of
context flags describing the construct currently being evaluated, and
the csstree arena the output is assembled in. Collaborators are passed
in as interfaces: a Loader resolves and parses imports, a
SelectorCompiler handles parent-selector resolution and keyframes
selectors, and an Extender registers selectors and @extend directives
for late rewriting.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package eval

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'scss.eval'.
func tracer() tracing.Trace {
	return tracing.Select("scss.eval")
}
