package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/value"
)

// UserDefinedFunction is a @function declaration bound together with the
// environment captured at its declaration site.
type UserDefinedFunction struct {
	Decl *ast.FunctionDecl
	Env  *Environment
}

func (f *UserDefinedFunction) FuncName() string { return f.Decl.Name }

// UserDefinedMixin is a @mixin declaration with its captured environment.
type UserDefinedMixin struct {
	Decl *ast.Mixin
	Env  *Environment
}

func (m *UserDefinedMixin) MixinName() string { return m.Decl.Name }

// Names with CSS-level meaning that user functions may not shadow.
var reservedFunctionNames = map[string]struct{}{
	"calc": {}, "element": {}, "expression": {}, "url": {},
	"and": {}, "or": {}, "not": {}, "if": {},
}

// --- Declarations -----------------------------------------------------------

func (v *Visitor) visitMixinDecl(node *ast.Mixin) error {
	if v.flags.Has(InControlFlow) || v.flags.Has(InMixin) {
		return errorf(node.Span, "mixins may not be declared in control directives or other mixins")
	}
	tracer().Debugf("declaring mixin %q", node.Name)
	v.env.Scopes.InsertMixin(node.Name,
		&UserDefinedMixin{Decl: node, Env: v.env.Closure()}, v.env.Global)
	return nil
}

func (v *Visitor) visitFunctionDecl(node *ast.FunctionDecl) error {
	if v.flags.Has(InControlFlow) || v.flags.Has(InMixin) {
		return errorf(node.Span, "functions may not be declared in control directives or other mixins")
	}
	if _, reserved := reservedFunctionNames[node.Name]; reserved {
		return errorf(node.Span, "invalid function name %q", node.Name)
	}
	tracer().Debugf("declaring function %q", node.Name)
	v.env.Scopes.InsertFn(node.Name,
		&UserDefinedFunction{Decl: node, Env: v.env.Closure()}, v.env.Global)
	return nil
}

// --- @include and @content --------------------------------------------------

func (v *Visitor) visitInclude(node *ast.Include) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	mixin, err := v.env.Scopes.GetMixin(node.Name, v.env.Global)
	if err != nil {
		return located(err, node.Span)
	}
	udm, ok := mixin.(*UserDefinedMixin)
	if !ok {
		return errorf(node.Span, "%s is not a user-defined mixin", node.Name)
	}
	if node.Content != nil && !udm.Decl.HasContent {
		return errorf(node.Span, "mixin doesn't accept a content block")
	}

	var content *ContentClosure
	if node.Content != nil {
		content = &ContentClosure{Block: node.Content, Env: v.env.Closure()}
	}

	return v.runUserDefinedCallable(node.Args, udm.Decl.Args, udm.Env, node.Name, node.Span,
		func() (value.Value, error) {
			oldContent := v.env.Content
			oldInMixin := v.flags.Has(InMixin)
			oldFound := v.flags.Has(FoundContentRule)
			v.env.Content = content
			v.flags.Set(InMixin, true)
			v.flags.Set(FoundContentRule, false)
			_, err := v.visitStmts(udm.Decl.Body)
			v.flags.Set(FoundContentRule, oldFound)
			v.flags.Set(InMixin, oldInMixin)
			v.env.Content = oldContent
			return nil, err
		})
}

// visitContentRule splices the include-site content block. Without an
// active closure @content is a no-op.
func (v *Visitor) visitContentRule(node *ast.ContentRule) error {
	content := v.env.Content
	if content == nil {
		return nil
	}
	v.flags.Set(FoundContentRule, true)
	return v.runUserDefinedCallable(node.Args, content.Block.Args, content.Env, "@content", node.Span,
		func() (value.Value, error) {
			oldInMixin := v.flags.Has(InMixin)
			oldInContent := v.flags.Has(InContentBlock)
			v.flags.Set(InMixin, false)
			v.flags.Set(InContentBlock, true)
			_, err := v.visitStmts(content.Block.Body)
			v.flags.Set(InContentBlock, oldInContent)
			v.flags.Set(InMixin, oldInMixin)
			return nil, err
		})
}

// --- Argument evaluation ----------------------------------------------------

// ArgumentResult is a fully evaluated invocation: positional values, named
// values in call order, and the separator of an exploded rest list.
type ArgumentResult struct {
	Positional []value.Value
	Named      []value.Keyword
	Separator  value.Separator
}

func (ar *ArgumentResult) namedNames() []string {
	names := make([]string, len(ar.Named))
	for i, kw := range ar.Named {
		names[i] = kw.Name
	}
	return names
}

// takeNamed removes and returns the named argument for name.
func (ar *ArgumentResult) takeNamed(name string) (value.Value, bool) {
	for i, kw := range ar.Named {
		if kw.Name == name {
			ar.Named = append(ar.Named[:i], ar.Named[i+1:]...)
			return kw.Value, true
		}
	}
	return nil, false
}

// putNamed appends or replaces a named argument. Rest maps override
// earlier explicit names, matching call-site evaluation order.
func (ar *ArgumentResult) putNamed(name string, val value.Value) {
	for i, kw := range ar.Named {
		if kw.Name == name {
			ar.Named[i].Value = val
			return
		}
	}
	ar.Named = append(ar.Named, value.Keyword{Name: name, Value: val})
}

// evalArgs evaluates an invocation in the current environment, exploding
// rest and keyword-rest arguments.
func (v *Visitor) evalArgs(inv ast.ArgumentInvocation) (*ArgumentResult, error) {
	result := &ArgumentResult{Separator: value.Undecided}
	for _, arg := range inv.Positional {
		val, err := v.visitExpr(arg)
		if err != nil {
			return nil, err
		}
		result.Positional = append(result.Positional, val)
	}
	for _, arg := range inv.Named {
		val, err := v.visitExpr(arg.Value)
		if err != nil {
			return nil, err
		}
		result.putNamed(arg.Name, val)
	}

	if inv.Rest != nil {
		rest, err := v.visitExpr(inv.Rest)
		if err != nil {
			return nil, err
		}
		switch rest := rest.(type) {
		case value.Map:
			if err := addRestMap(result, rest, inv.Span); err != nil {
				return nil, err
			}
		case value.List:
			result.Positional = append(result.Positional, rest.Elems...)
			result.Separator = rest.Separator
		case value.ArgList:
			result.Positional = append(result.Positional, rest.Elems...)
			result.Separator = rest.Separator
			for _, kw := range rest.Keywords {
				result.putNamed(kw.Name, kw.Value)
			}
		default:
			result.Positional = append(result.Positional, rest)
		}
	}

	if inv.KeywordRest != nil {
		kwRest, err := v.visitExpr(inv.KeywordRest)
		if err != nil {
			return nil, err
		}
		m, ok := kwRest.(value.Map)
		if !ok {
			return nil, errorf(inv.Span,
				"variable keyword arguments must be a map (was %s)", value.Inspect(kwRest))
		}
		if err := addRestMap(result, m, inv.Span); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// addRestMap spreads a map's entries as named arguments.
func addRestMap(result *ArgumentResult, m value.Map, span ast.Span) error {
	for _, p := range m.Pairs {
		key, ok := p.Key.(value.Str)
		if !ok {
			return errorf(span,
				"variable keyword argument map must have string keys; %s is not a string",
				value.Inspect(p.Key))
		}
		result.putNamed(key.Text, p.Value)
	}
	return nil
}

// --- Callable invocation ----------------------------------------------------

// runUserDefinedCallable evaluates the invocation in the caller's
// environment, switches to a closure of the declaration environment with
// one fresh scope, binds parameters, and runs the body.
func (v *Visitor) runUserDefinedCallable(inv ast.ArgumentInvocation, decl ast.ArgumentDeclaration,
	env *Environment, name string, span ast.Span, run func() (value.Value, error)) error {
	_, err := v.runCallableVal(inv, decl, env, name, span, run)
	return err
}

func (v *Visitor) runCallableVal(inv ast.ArgumentInvocation, decl ast.ArgumentDeclaration,
	env *Environment, name string, span ast.Span, run func() (value.Value, error)) (value.Value, error) {
	args, err := v.evalArgs(inv)
	if err != nil {
		return nil, err
	}

	if v.depth >= v.maxDepth {
		return nil, errorf(span, "stack depth exceeded (max %d) while calling %s", v.maxDepth, name)
	}
	v.depth++
	defer func() { v.depth-- }()

	oldEnv := v.env
	v.env = env.Closure()
	defer func() { v.env = oldEnv }()

	return v.withScopeVal(false, true, func() (value.Value, error) {
		if err := decl.Verify(len(args.Positional), args.namedNames()); err != nil {
			return nil, located(err, span)
		}

		declared := len(decl.Args)
		bound := len(args.Positional)
		if bound > declared {
			bound = declared
		}
		for i := 0; i < bound; i++ {
			v.env.Scopes.InsertVarLast(decl.Args[i].Name,
				value.WithoutSlash(args.Positional[i]), v.env.Global)
		}
		for i := bound; i < declared; i++ {
			arg := decl.Args[i]
			val, ok := args.takeNamed(arg.Name)
			if !ok {
				// default expressions evaluate in the callee environment
				if val, err = v.visitExpr(arg.Default); err != nil {
					return nil, err
				}
			}
			v.env.Scopes.InsertVarLast(arg.Name, v.withoutSlash(val, span), v.env.Global)
		}

		var argList *value.ArgList
		if decl.Rest != "" {
			var rest []value.Value
			if len(args.Positional) > declared {
				rest = args.Positional[declared:]
			}
			sep := args.Separator
			if sep == value.Undecided {
				sep = value.Comma
			}
			al := value.NewArgList(rest, args.Named, sep)
			argList = &al
			v.env.Scopes.InsertVarLast(decl.Rest, al, v.env.Global)
		}

		val, err := run()
		if err != nil {
			return nil, err
		}

		if len(args.Named) > 0 && (argList == nil || !argList.KeywordsAccessed()) {
			names := args.namedNames()
			sort.Strings(names)
			return nil, errorf(span, "no %s named %s",
				pluralizeArgs(len(names)), dollarNames(names))
		}
		return val, nil
	})
}

func pluralizeArgs(n int) string {
	if n == 1 {
		return "argument"
	}
	return "arguments"
}

func dollarNames(names []string) string {
	prefixed := make([]string, len(names))
	for i, n := range names {
		prefixed[i] = "$" + n
	}
	switch len(prefixed) {
	case 1:
		return prefixed[0]
	case 2:
		return prefixed[0] + " or " + prefixed[1]
	}
	s := ""
	for i, p := range prefixed {
		switch {
		case i == 0:
			s = p
		case i == len(prefixed)-1:
			s += " or " + p
		default:
			s += ", " + p
		}
	}
	return s
}
