/*
Package media models CSS media queries at the level the evaluator needs:
a parsed query list, a serializer, and the pairwise intersection used to
collapse nested `@media` rules into a single query.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package media

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'scss.media'.
func tracer() tracing.Trace {
	return tracing.Select("scss.media")
}
