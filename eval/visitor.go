package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"path/filepath"
	"strings"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/npillmayer/scss/media"
	"github.com/npillmayer/scss/value"
)

// Reporter receives user-facing diagnostics: @warn, @debug, and
// deprecation warnings. Internal diagnostics go to the tracer instead.
type Reporter interface {
	Warn(message string, span ast.Span)
	Debug(message string, span ast.Span)
}

// TraceReporter routes diagnostics to the package tracer.
type TraceReporter struct{}

func (TraceReporter) Warn(message string, span ast.Span) {
	tracer().Infof("Warning: %s (%v)", message, span)
}

func (TraceReporter) Debug(message string, span ast.Span) {
	tracer().Debugf("%v Debug: %s", span, message)
}

// DefaultMaxDepth bounds callable recursion.
const DefaultMaxDepth = 512

// Params configures a Visitor. Nil collaborators get working defaults:
// no loader (imports fail), a no-op extender, the textual selector
// compiler, and a tracing reporter.
type Params struct {
	Loader    Loader
	Extender  Extender
	Selectors SelectorCompiler
	Reporter  Reporter
	Quiet     bool
	Config    *ModuleConfig
	MaxDepth  int
}

// Visitor evaluates a stylesheet AST into the CSS output tree. It is
// single-use: create one per compilation, call VisitStyleSheet for the
// entry stylesheet, then Finish.
type Visitor struct {
	env    *Environment
	flags  Flags
	tree   *csstree.Tree
	parent int

	styleRuleIgnoringAtRoot csstree.Selector
	declarationName         string

	mediaQueries      []media.Query
	mediaQuerySources map[string]struct{}

	extender  Extender
	selectors SelectorCompiler
	loader    Loader
	reporter  Reporter
	quiet     bool
	config    *ModuleConfig

	currentPath   string
	activeImports map[string]struct{}

	warningsEmitted map[ast.Span]struct{}
	slashWarned     bool

	depth    int
	maxDepth int
}

// New creates a Visitor with a fresh environment and output tree.
func New(p Params) *Visitor {
	if p.Extender == nil {
		p.Extender = NopExtender{}
	}
	if p.Selectors == nil {
		p.Selectors = TextSelectors{}
	}
	if p.Reporter == nil {
		p.Reporter = TraceReporter{}
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = DefaultMaxDepth
	}
	v := &Visitor{
		env:             NewEnvironment(),
		tree:            csstree.New(),
		parent:          csstree.Root,
		extender:        p.Extender,
		selectors:       p.Selectors,
		loader:          p.Loader,
		reporter:        p.Reporter,
		quiet:           p.Quiet,
		config:          p.Config,
		activeImports:   make(map[string]struct{}),
		warningsEmitted: make(map[ast.Span]struct{}),
		maxDepth:        p.MaxDepth,
	}
	v.flags.Set(InSemiGlobalScope, true)
	return v
}

// Env exposes the environment, mainly for preloading global bindings.
func (v *Visitor) Env() *Environment { return v.env }

// Tree exposes the output tree for debugging dumps.
func (v *Visitor) Tree() *csstree.Tree { return v.tree }

// VisitStyleSheet evaluates the statements of a stylesheet in order.
func (v *Visitor) VisitStyleSheet(sheet *ast.StyleSheet) error {
	tracer().Infof("evaluating stylesheet %q", sheet.URL)
	oldPath := v.currentPath
	v.currentPath = sheet.URL
	if sheet.URL != "" {
		v.activeImports[sheet.URL] = struct{}{}
		defer delete(v.activeImports, sheet.URL)
	}
	defer func() { v.currentPath = oldPath }()
	_, err := v.visitStmts(sheet.Body)
	return err
}

// Finish compacts the output tree and returns the top-level statements.
func (v *Visitor) Finish() []csstree.Stmt {
	return v.tree.Finish()
}

// --- Dispatch ---------------------------------------------------------------

// visitStmts evaluates statements in order. A non-nil value is a
// propagating @return and stops the walk.
func (v *Visitor) visitStmts(body []ast.Stmt) (value.Value, error) {
	for _, stmt := range body {
		val, err := v.visitStmt(stmt)
		if err != nil {
			return nil, err
		}
		if val != nil {
			return val, nil
		}
	}
	return nil, nil
}

func (v *Visitor) visitStmt(stmt ast.Stmt) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.RuleSet:
		return nil, v.visitRuleSet(s)
	case *ast.Declaration:
		return nil, v.visitDeclaration(s)
	case *ast.SilentComment:
		return nil, nil
	case *ast.LoudComment:
		return nil, v.visitLoudComment(s)
	case *ast.If:
		return v.visitIf(s)
	case *ast.For:
		return v.visitFor(s)
	case *ast.Each:
		return v.visitEach(s)
	case *ast.While:
		return v.visitWhile(s)
	case *ast.Return:
		return v.visitReturn(s)
	case *ast.Media:
		return nil, v.visitMedia(s)
	case *ast.Supports:
		return nil, v.visitSupports(s)
	case *ast.UnknownAtRule:
		return nil, v.visitUnknownAtRule(s)
	case *ast.Mixin:
		return nil, v.visitMixinDecl(s)
	case *ast.FunctionDecl:
		return nil, v.visitFunctionDecl(s)
	case *ast.Include:
		return nil, v.visitInclude(s)
	case *ast.ContentRule:
		return nil, v.visitContentRule(s)
	case *ast.VariableDecl:
		return nil, v.visitVariableDecl(s)
	case *ast.Warn:
		return nil, v.visitWarn(s)
	case *ast.Debug:
		return nil, v.visitDebug(s)
	case *ast.ErrorRule:
		return nil, v.visitErrorRule(s)
	case *ast.Extend:
		return nil, v.visitExtend(s)
	case *ast.AtRoot:
		return nil, v.visitAtRoot(s)
	case *ast.ImportRule:
		return nil, v.visitImport(s)
	}
	return nil, errorf(stmt.Location(), "unsupported statement %T", stmt)
}

// --- Context helpers --------------------------------------------------------

// styleRule is the selector of the currently open output style rule, or
// nil when none is open (or @at-root excluded it).
func (v *Visitor) styleRule() csstree.Selector {
	if v.flags.Has(AtRootExcludingStyleRule) {
		return nil
	}
	return v.styleRuleIgnoringAtRoot
}

// addChild attaches a statement to the output tree, optionally walking
// up past parents matched by through (the nest-through rule of style
// rules, media rules, and at-rules).
func (v *Visitor) addChild(stmt csstree.Stmt, through func(csstree.Stmt) bool) int {
	parent := v.parent
	if through != nil {
		for parent != csstree.Root {
			node := v.tree.Get(parent)
			if node == nil || !through(node) {
				break
			}
			parent = v.tree.Parent(parent)
		}
	}
	return v.tree.AddStmt(stmt, parent)
}

func throughStyleRule(s csstree.Stmt) bool {
	_, ok := s.(*csstree.RuleSet)
	return ok
}

// withParent evaluates fn with the insertion point moved to parent.
func (v *Visitor) withParent(parent int, fn func() error) error {
	old := v.parent
	v.parent = parent
	err := fn()
	v.parent = old
	return err
}

// withScope evaluates fn inside a fresh scope (when `when` is set),
// adjusting the semi-global flag: a semi-global scope stays semi-global
// only while every enclosing scope was.
func (v *Visitor) withScope(semiGlobal, when bool, fn func() error) error {
	_, err := v.withScopeVal(semiGlobal, when, func() (value.Value, error) {
		return nil, fn()
	})
	return err
}

func (v *Visitor) withScopeVal(semiGlobal, when bool, fn func() (value.Value, error)) (value.Value, error) {
	semiGlobal = semiGlobal && v.flags.Has(InSemiGlobalScope)
	was := v.flags.Has(InSemiGlobalScope)
	v.flags.Set(InSemiGlobalScope, semiGlobal)
	defer v.flags.Set(InSemiGlobalScope, was)
	if !when {
		return fn()
	}
	v.env.Scopes.EnterNewScope()
	defer v.env.Scopes.ExitScope()
	return fn()
}

// warn emits a user-facing warning unless quiet mode suppresses it.
func (v *Visitor) warn(message string, span ast.Span) {
	if v.quiet {
		return
	}
	v.reporter.Warn(message, span)
}

// withoutSlash strips a retained slash representation, warning once per
// compilation that slash-as-division is deprecated.
func (v *Visitor) withoutSlash(val value.Value, span ast.Span) value.Value {
	if value.HadSlash(val) && !v.slashWarned {
		v.slashWarned = true
		v.warn("using / for division is deprecated; use math.div() instead", span)
	}
	return value.WithoutSlash(val)
}

// interpolate resolves an interpolation to text. Embedded expressions
// normally evaluate with the supports-declaration flag suspended;
// supports conditions pass supports=true to keep it in force.
func (v *Visitor) interpolate(in ast.Interpolation, trim, supports bool) (string, error) {
	var sb strings.Builder
	for _, part := range in.Parts {
		switch p := part.(type) {
		case ast.StringPart:
			sb.WriteString(string(p))
		case ast.ExprPart:
			was := v.flags.Has(InSupportsDeclaration)
			v.flags.Set(InSupportsDeclaration, supports)
			val, err := v.visitExpr(p.Expr)
			v.flags.Set(InSupportsDeclaration, was)
			if err != nil {
				return "", err
			}
			s, err := serializeInterpolated(val)
			if err != nil {
				return "", located(err, in.Span)
			}
			sb.WriteString(s)
		}
	}
	s := sb.String()
	if trim {
		s = strings.TrimSpace(s)
	}
	return s, nil
}

// serializeInterpolated renders a value inside #{...}: null vanishes and
// strings lose their quotes.
func serializeInterpolated(val value.Value) (string, error) {
	switch val := val.(type) {
	case value.Null:
		return "", nil
	case value.Str:
		return val.Text, nil
	default:
		return value.ToCSS(val)
	}
}

// --- Simple statements ------------------------------------------------------

func (v *Visitor) visitRuleSet(node *ast.RuleSet) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	if v.declarationName != "" {
		return errorf(node.Span, "style rules may not be used within nested declarations")
	}
	selectorText, err := v.interpolate(node.Selector, true, false)
	if err != nil {
		return err
	}

	if v.flags.Has(InKeyframes) {
		blocks, err := v.selectors.KeyframesSelector(selectorText)
		if err != nil {
			return located(err, node.Span)
		}
		idx := v.addChild(&csstree.KeyframesBlock{Selector: blocks}, throughStyleRule)
		return v.withParent(idx, func() error {
			return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
				_, err := v.visitStmts(node.Body)
				return err
			})
		})
	}

	resolved, err := v.selectors.ResolveParents(selectorText,
		v.styleRuleIgnoringAtRoot, !v.flags.Has(AtRootExcludingStyleRule))
	if err != nil {
		return located(err, node.Span)
	}
	selector := v.extender.AddSelector(resolved, v.mediaQueries)
	tracer().Debugf("rule %q", selector)
	idx := v.addChild(&csstree.RuleSet{Selector: selector}, throughStyleRule)

	oldAtRoot := v.flags.Has(AtRootExcludingStyleRule)
	oldInStyle := v.flags.Has(InStyleRule)
	oldSelector := v.styleRuleIgnoringAtRoot
	v.flags.Set(AtRootExcludingStyleRule, false)
	v.flags.Set(InStyleRule, true)
	v.styleRuleIgnoringAtRoot = selector

	err = v.withParent(idx, func() error {
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			_, err := v.visitStmts(node.Body)
			return err
		})
	})

	v.styleRuleIgnoringAtRoot = oldSelector
	v.flags.Set(InStyleRule, oldInStyle)
	v.flags.Set(AtRootExcludingStyleRule, oldAtRoot)
	return err
}

func (v *Visitor) visitDeclaration(node *ast.Declaration) error {
	if v.styleRule() == nil && !v.flags.Has(InUnknownAtRule) && !v.flags.Has(InKeyframes) {
		return errorf(node.Span, "declarations may only be used within style rules")
	}
	name, err := v.interpolate(node.Name, false, false)
	if err != nil {
		return err
	}
	if v.declarationName != "" {
		name = v.declarationName + "-" + name
	}
	custom := strings.HasPrefix(name, "--")

	if node.Value != nil {
		val, err := v.visitExpr(node.Value)
		if err != nil {
			return err
		}
		if !value.IsBlank(val) || value.IsEmptyList(val) {
			// an empty list passes through so serialization reports it
			css, err := value.ToCSS(val)
			if err != nil {
				return located(err, node.Span)
			}
			v.addChild(&csstree.Style{Property: name, Value: css, CustomProperty: custom}, nil)
		} else if custom {
			return errorf(node.Span, "custom properties may not be empty")
		}
	}

	if len(node.Body) > 0 {
		if custom {
			return errorf(node.Span, "declarations whose names begin with \"--\" may not be nested")
		}
		oldName := v.declarationName
		v.declarationName = name
		err := v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			_, err := v.visitStmts(node.Body)
			return err
		})
		v.declarationName = oldName
		return err
	}
	return nil
}

func (v *Visitor) visitLoudComment(node *ast.LoudComment) error {
	if v.flags.Has(InFunction) {
		return nil
	}
	text, err := v.interpolate(node.Text, false, false)
	if err != nil {
		return err
	}
	v.addChild(&csstree.Comment{Text: text}, nil)
	return nil
}

func (v *Visitor) visitVariableDecl(node *ast.VariableDecl) error {
	if node.Namespace != "" {
		return errorf(node.Span, "there is no module with the namespace %q", node.Namespace)
	}
	if node.Guarded && v.env.AtRoot() {
		if override, ok := v.config.Take(node.Name); ok && !value.IsNull(override) {
			v.env.Global.InsertVar(node.Name, override)
			return nil
		}
	}
	if node.Guarded {
		if current, err := v.env.Scopes.GetVar(node.Name, v.env.Global); err == nil && !value.IsNull(current) {
			return nil
		}
	}
	if node.Global && !v.env.Global.VarExists(node.Name) {
		if v.env.AtRoot() {
			v.warn("the !global flag is unnecessary for assignments at the root of the stylesheet", node.Span)
		} else {
			v.warn("!global assignments won't be able to declare new variables; consider adding `$"+
				node.Name+": null` at the stylesheet root", node.Span)
		}
	}
	val, err := v.visitExpr(node.Value)
	if err != nil {
		return err
	}
	val = v.withoutSlash(val, node.Span)
	if node.Global {
		v.env.Global.InsertVar(node.Name, val)
		return nil
	}
	v.env.Scopes.InsertVar(node.Name, val, v.env.Global, v.flags.Has(InSemiGlobalScope))
	return nil
}

func (v *Visitor) visitWarn(node *ast.Warn) error {
	if _, seen := v.warningsEmitted[node.Span]; seen {
		return nil
	}
	v.warningsEmitted[node.Span] = struct{}{}
	val, err := v.visitExpr(node.Value)
	if err != nil {
		return err
	}
	msg := value.Inspect(val)
	if s, ok := val.(value.Str); ok {
		msg = s.Text
	}
	v.warn(msg, node.Span)
	return nil
}

func (v *Visitor) visitDebug(node *ast.Debug) error {
	val, err := v.visitExpr(node.Value)
	if err != nil {
		return err
	}
	if !v.quiet {
		v.reporter.Debug(value.Inspect(val), node.Span)
	}
	return nil
}

func (v *Visitor) visitErrorRule(node *ast.ErrorRule) error {
	val, err := v.visitExpr(node.Value)
	if err != nil {
		return err
	}
	return errorf(node.Span, "%s", value.Inspect(val))
}

// --- Imports ----------------------------------------------------------------

func (v *Visitor) visitImport(node *ast.ImportRule) error {
	for _, imp := range node.Imports {
		switch imp := imp.(type) {
		case ast.SassImport:
			if err := v.visitDynamicImport(imp); err != nil {
				return err
			}
		case ast.PlainImport:
			url, err := v.interpolate(imp.URL, true, false)
			if err != nil {
				return err
			}
			modifiers := ""
			if imp.Modifiers != nil {
				if modifiers, err = v.interpolate(*imp.Modifiers, true, false); err != nil {
					return err
				}
			}
			v.addChild(&csstree.Import{URL: url, Modifiers: modifiers}, nil)
		}
	}
	return nil
}

func (v *Visitor) visitDynamicImport(imp ast.SassImport) error {
	if v.loader == nil {
		return errorf(imp.Span, "can't find stylesheet to import")
	}
	resolved, ok := v.loader.FindImport(imp.URL, filepath.Dir(v.currentPath))
	if !ok {
		return errorf(imp.Span, "can't find stylesheet to import")
	}
	if _, active := v.activeImports[resolved]; active {
		return errorf(imp.Span, "this file is already being loaded")
	}
	sheet, err := v.loader.LoadSheet(resolved)
	if err != nil {
		return located(err, imp.Span)
	}
	tracer().Infof("importing %q", resolved)
	v.activeImports[resolved] = struct{}{}
	oldPath := v.currentPath
	v.currentPath = resolved
	_, err = v.visitStmts(sheet.Body)
	v.currentPath = oldPath
	delete(v.activeImports, resolved)
	return err
}
