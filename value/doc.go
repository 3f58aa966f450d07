/*
Package value holds the runtime value model of the stylesheet language:
null, booleans, numbers with units, strings, lists, maps, argument lists,
and colors, together with the arithmetic, comparison, and serialization
helpers the evaluator delegates to.

Numbers may carry a slash pair: the two operands a `/` was formed from.
The pair survives only while the number is used verbatim; reading it in an
arithmetic position strips it (see WithoutSlash).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package value

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'scss.value'.
func tracer() tracing.Trace {
	return tracing.Select("scss.value")
}
