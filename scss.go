package scss

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/cssout"
	"github.com/npillmayer/scss/csstree"
	"github.com/npillmayer/scss/eval"
)

// ParseFunc turns SCSS source at a path into a stylesheet AST. Parsing
// is outside this module; clients inject their parser here.
type ParseFunc func(path string, src []byte) (*ast.StyleSheet, error)

// Options configures a Compiler. The zero value compiles without import
// resolution and with default collaborators.
type Options struct {
	// LoadPaths are searched for imports after the importing file's own
	// directory.
	LoadPaths []string
	// Parse loads imported files. Required when LoadPaths is set.
	Parse ParseFunc
	// Loader overrides file based import resolution entirely.
	Loader eval.Loader
	// Extender receives emitted selectors and @extend directives.
	Extender eval.Extender
	// Config carries `with (...)` overrides for guarded declarations.
	Config *eval.ModuleConfig
	// Reporter receives @warn and @debug output.
	Reporter eval.Reporter
	// Quiet suppresses warnings and @debug output.
	Quiet bool
	// MaxDepth bounds callable recursion; 0 means the default.
	MaxDepth int
}

// Compiler evaluates stylesheets into one CSS output. A Compiler is
// single-use: Compile one or more sheets into the same output, then
// read the result with Finish or CSS.
type Compiler struct {
	visitor *eval.Visitor
}

// NewCompiler creates a Compiler from options.
func NewCompiler(opts Options) *Compiler {
	loader := opts.Loader
	if loader == nil && opts.Parse != nil {
		loader = &FileLoader{Paths: opts.LoadPaths, Parse: opts.Parse}
	}
	return &Compiler{
		visitor: eval.New(eval.Params{
			Loader:   loader,
			Extender: opts.Extender,
			Reporter: opts.Reporter,
			Quiet:    opts.Quiet,
			Config:   opts.Config,
			MaxDepth: opts.MaxDepth,
		}),
	}
}

// Compile evaluates a stylesheet into the output tree.
func (c *Compiler) Compile(sheet *ast.StyleSheet) error {
	tracer().Infof("compiling %q", sheet.URL)
	return c.visitor.VisitStyleSheet(sheet)
}

// Finish returns the finished output statements.
func (c *Compiler) Finish() []csstree.Stmt {
	return c.visitor.Finish()
}

// CSS renders the finished output as CSS text.
func (c *Compiler) CSS() string {
	return cssout.Render(c.Finish())
}

// Globals exposes the global environment, e.g. to preload variables or
// inspect bindings after compilation.
func (c *Compiler) Globals() *eval.Environment {
	return c.visitor.Env()
}
