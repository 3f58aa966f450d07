/*
Package scope implements the lexical scope chain of the evaluator: an
ordered stack of scopes holding variables, mixins, and functions in
independent namespaces, with a distinguished global scope shared by the
whole compilation unit.

Closures hold the chain by pointer, so mutations made after capture stay
visible; Clone and Slice build the independent spines closures need at
declaration time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scope

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'scss.scope'.
func tracer() tracing.Trace {
	return tracing.Select("scss.scope")
}
