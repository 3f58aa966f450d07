/*
Package csstree holds the CSS output statements the evaluator produces and
the arena they are assembled in.

The arena addresses nodes by stable integer handles, never by structural
reference, so subtrees can be detached, cloned, and re-spliced (for
`@at-root` and media merge-through) without invalidating handles held
elsewhere. Finish runs the bottom-up compaction that folds every node's
arena children into its body and returns the top-level statements in
insertion order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package csstree

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'scss.tree'.
func tracer() tracing.Trace {
	return tracing.Select("scss.tree")
}
