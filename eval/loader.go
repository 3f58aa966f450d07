package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/scss/ast"

// Loader resolves and loads dynamic imports. Implementations apply the
// documented lookup order (exact name, partial, literal, directory
// index, then load paths); the evaluator only sees the resolved
// canonical path.
type Loader interface {
	// FindImport resolves an import url relative to the directory of the
	// importing file. The returned path must be canonical: it identifies
	// the file for import-cycle detection.
	FindImport(url, fromDir string) (path string, ok bool)
	// LoadSheet loads and parses the stylesheet at a resolved path.
	LoadSheet(path string) (*ast.StyleSheet, error)
}
