/*
Package cssout renders the finished output tree of package csstree as CSS
text and bridges it to a douceur stylesheet for interop with CSS tooling.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scss.out'.
func tracer() tracing.Trace {
	return tracing.Select("scss.out")
}
