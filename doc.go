/*
Package scss is the top level API of a Sass/SCSS evaluation engine. It
evaluates parsed stylesheets (package ast) into a CSS output tree
(package csstree) and renders the result (package cssout).

The engine itself lives in package eval; this package bundles it with
file based import resolution and sensible defaults.

	compiler := scss.NewCompiler(scss.Options{
	    LoadPaths: []string{"styles"},
	    Parse:     myparser.ParseFile,
	})
	if err := compiler.Compile(sheet); err != nil { ... }
	fmt.Print(compiler.CSS())

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scss

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scss.engine'.
func tracer() tracing.Trace {
	return tracing.Select("scss.engine")
}
