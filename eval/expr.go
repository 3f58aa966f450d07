package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/value"
)

// --- Expression dispatch ----------------------------------------------------

func (v *Visitor) visitExpr(e ast.Expr) (value.Value, error) {
	switch e := e.(type) {
	case ast.Null:
		return value.Null{}, nil
	case ast.BoolLit:
		return value.Bool(e.Value), nil
	case ast.NumberLit:
		return value.Number{Value: e.Value, Unit: e.Unit}, nil
	case ast.ColorLit:
		return value.Color{Hex: e.Hex}, nil
	case ast.StringLit:
		text, err := v.interpolate(e.Text, false, v.flags.Has(InSupportsDeclaration))
		if err != nil {
			return nil, err
		}
		return value.Str{Text: text, Quoted: e.Quoted}, nil
	case ast.ListLit:
		elems := make([]value.Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			val, err := v.visitExpr(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, val)
		}
		return value.List{Elems: elems, Separator: value.Separator(e.Separator), Brackets: e.Brackets}, nil
	case ast.MapLit:
		return v.visitMapLit(e)
	case ast.BinaryOp:
		return v.visitBinaryOp(e)
	case ast.UnaryOp:
		return v.visitUnaryOp(e)
	case ast.Paren:
		old := v.flags.Has(InParens)
		v.flags.Set(InParens, true)
		val, err := v.visitExpr(e.Inner)
		v.flags.Set(InParens, old)
		return val, err
	case ast.Variable:
		if e.Namespace != "" {
			return nil, errorf(e.Span, "there is no module with the namespace %q", e.Namespace)
		}
		val, err := v.env.Scopes.GetVar(e.Name, v.env.Global)
		if err != nil {
			return nil, located(err, e.Span)
		}
		return val, nil
	case ast.FunctionCall:
		return v.visitFunctionCall(e)
	case ast.InterpolatedFunction:
		name, err := v.interpolate(e.Name, false, false)
		if err != nil {
			return nil, err
		}
		return v.plainCssCall(name, e.Args, e.Span)
	case ast.Ternary:
		return v.visitTernary(e)
	case ast.ParentSelector:
		return v.parentSelectorValue(), nil
	case ast.Calculation:
		return v.visitCalculation(e)
	}
	return nil, errorf(ast.Span{}, "unsupported expression %T", e)
}

func (v *Visitor) visitMapLit(e ast.MapLit) (value.Value, error) {
	m := value.Map{}
	for _, p := range e.Pairs {
		key, err := v.visitExpr(p.Key)
		if err != nil {
			return nil, err
		}
		if _, dup := m.Get(key); dup {
			return nil, errorf(e.Span, "duplicate key %s in map literal", value.Inspect(key))
		}
		val, err := v.visitExpr(p.Value)
		if err != nil {
			return nil, err
		}
		m.Insert(key, val)
	}
	return m, nil
}

// --- Operators --------------------------------------------------------------

func (v *Visitor) visitBinaryOp(e ast.BinaryOp) (value.Value, error) {
	// `or` and `and` short-circuit on the left operand's truthiness
	if e.Op == ast.OpOr || e.Op == ast.OpAnd {
		lhs, err := v.visitExpr(e.Lhs)
		if err != nil {
			return nil, err
		}
		if lhs.IsTruthy() == (e.Op == ast.OpOr) {
			return lhs, nil
		}
		return v.visitExpr(e.Rhs)
	}

	lhs, err := v.visitExpr(e.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := v.visitExpr(e.Rhs)
	if err != nil {
		return nil, err
	}

	var result value.Value
	switch e.Op {
	case ast.OpSingleEq:
		result, err = value.SingleEq(lhs, rhs)
	case ast.OpEq:
		return value.Bool(value.Equal(lhs, rhs)), nil
	case ast.OpNeq:
		return value.Bool(!value.Equal(lhs, rhs)), nil
	case ast.OpGreater, ast.OpGreaterEq, ast.OpLess, ast.OpLessEq:
		result, err = value.Compare(lhs, rhs, e.Op.String())
	case ast.OpPlus:
		result, err = value.Add(lhs, rhs)
	case ast.OpMinus:
		result, err = value.Sub(lhs, rhs)
	case ast.OpMul:
		result, err = value.Mul(lhs, rhs)
	case ast.OpRem:
		result, err = value.Rem(lhs, rhs)
	case ast.OpDiv:
		return v.divide(lhs, rhs, e)
	default:
		return nil, errorf(e.Span, "unsupported operator %s", e.Op)
	}
	if err != nil {
		return nil, located(err, e.Span)
	}
	return result, nil
}

// divide implements `/`, retaining the slash representation when the
// syntactic position allows it and both operands are numbers.
func (v *Visitor) divide(lhs, rhs value.Value, e ast.BinaryOp) (value.Value, error) {
	result, err := value.Div(value.WithoutSlash(lhs), value.WithoutSlash(rhs))
	if err != nil {
		return nil, located(err, e.Span)
	}
	ln, lok := lhs.(value.Number)
	rn, rok := rhs.(value.Number)
	if e.AllowsSlash && lok && rok {
		if num, ok := result.(value.Number); ok {
			ln.AsSlash = nil
			rn.AsSlash = nil
			num.AsSlash = &value.SlashPair{Numerator: ln, Denominator: rn}
			return num, nil
		}
	}
	return result, nil
}

func (v *Visitor) visitUnaryOp(e ast.UnaryOp) (value.Value, error) {
	operand, err := v.visitExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	var result value.Value
	switch e.Op {
	case ast.UnaryPlus:
		result, err = value.Plus(operand)
	case ast.UnaryNeg:
		result, err = value.Neg(operand)
	case ast.UnaryDiv:
		result, err = value.SlashPrefix(operand)
	case ast.UnaryNot:
		return value.Not(operand), nil
	}
	if err != nil {
		return nil, located(err, e.Span)
	}
	return result, nil
}

// --- Function calls ---------------------------------------------------------

func (v *Visitor) visitFunctionCall(e ast.FunctionCall) (value.Value, error) {
	if e.Namespace != "" {
		return nil, errorf(e.Span, "there is no module with the namespace %q", e.Namespace)
	}

	fn, found := v.env.Scopes.GetFn(e.Name, v.env.Global)
	if !found {
		if builtin, ok := builtinTable[e.Name]; ok {
			fn = builtin
		}
	}
	if fn == nil {
		// unknown names fall through to a plain CSS call
		return v.plainCssCall(e.Name, e.Args, e.Span)
	}

	oldInFunction := v.flags.Has(InFunction)
	v.flags.Set(InFunction, true)
	defer v.flags.Set(InFunction, oldInFunction)

	switch fn := fn.(type) {
	case *UserDefinedFunction:
		val, err := v.runCallableVal(e.Args, fn.Decl.Args, fn.Env, e.Name, e.Span,
			func() (value.Value, error) {
				ret, err := v.visitStmts(fn.Decl.Body)
				if err != nil {
					return nil, err
				}
				if ret == nil {
					return nil, errorf(e.Span, "function finished without @return")
				}
				return ret, nil
			})
		if err != nil {
			return nil, err
		}
		return value.WithoutSlash(val), nil
	case *Builtin:
		return v.runBuiltin(fn, e.Args, e.Span)
	default:
		return nil, errorf(e.Span, "%s is not callable", fn.FuncName())
	}
}

// plainCssCall renders an unknown function call as CSS text.
func (v *Visitor) plainCssCall(name string, inv ast.ArgumentInvocation, span ast.Span) (value.Value, error) {
	if len(inv.Named) > 0 || inv.KeywordRest != nil {
		return nil, errorf(span, "plain CSS functions don't support keyword arguments")
	}
	args := make([]string, 0, len(inv.Positional))
	for _, arg := range inv.Positional {
		val, err := v.visitExpr(arg)
		if err != nil {
			return nil, err
		}
		s, err := value.ToCSS(val)
		if err != nil {
			return nil, located(err, span)
		}
		args = append(args, s)
	}
	if inv.Rest != nil {
		rest, err := v.visitExpr(inv.Rest)
		if err != nil {
			return nil, err
		}
		for _, el := range value.AsList(rest) {
			s, err := value.ToCSS(el)
			if err != nil {
				return nil, located(err, span)
			}
			args = append(args, s)
		}
	}
	return value.Unquoted(name + "(" + strings.Join(args, ", ") + ")"), nil
}

// --- The if() form ----------------------------------------------------------

// ternaryDecl gives if() the argument shape of a regular three-parameter
// function for verification and naming.
var ternaryDecl = ast.ArgumentDeclaration{
	Args: []ast.Argument{{Name: "condition"}, {Name: "if-true"}, {Name: "if-false"}},
}

// visitTernary evaluates if(condition, if-true, if-false) lazily: only
// the taken branch runs. Invocations using rest arguments fall back to
// eager evaluation since laziness cannot be preserved.
func (v *Visitor) visitTernary(e ast.Ternary) (value.Value, error) {
	if e.Args.Rest != nil || e.Args.KeywordRest != nil {
		return v.ternaryEager(e)
	}
	named := make([]string, len(e.Args.Named))
	for i, n := range e.Args.Named {
		named[i] = n.Name
	}
	if err := ternaryDecl.Verify(len(e.Args.Positional), named); err != nil {
		return nil, located(err, e.Span)
	}
	pick := func(i int) ast.Expr {
		if i < len(e.Args.Positional) {
			return e.Args.Positional[i]
		}
		for _, n := range e.Args.Named {
			if n.Name == ternaryDecl.Args[i].Name {
				return n.Value
			}
		}
		return nil
	}
	cond, err := v.visitExpr(pick(0))
	if err != nil {
		return nil, err
	}
	branch := pick(2)
	if cond.IsTruthy() {
		branch = pick(1)
	}
	val, err := v.visitExpr(branch)
	if err != nil {
		return nil, err
	}
	return v.withoutSlash(val, e.Span), nil
}

func (v *Visitor) ternaryEager(e ast.Ternary) (value.Value, error) {
	args, err := v.evalArgs(e.Args)
	if err != nil {
		return nil, err
	}
	if err := ternaryDecl.Verify(len(args.Positional), args.namedNames()); err != nil {
		return nil, located(err, e.Span)
	}
	get := func(i int) value.Value {
		if i < len(args.Positional) {
			return args.Positional[i]
		}
		val, _ := args.takeNamed(ternaryDecl.Args[i].Name)
		return val
	}
	cond := get(0)
	ifTrue, ifFalse := get(1), get(2)
	if cond.IsTruthy() {
		return v.withoutSlash(ifTrue, e.Span), nil
	}
	return v.withoutSlash(ifFalse, e.Span), nil
}

// --- & and calculations -----------------------------------------------------

// parentSelectorValue exposes the current selector as a comma list of
// space lists, or null at the root.
func (v *Visitor) parentSelectorValue() value.Value {
	sel := v.styleRuleIgnoringAtRoot
	if sel == nil {
		return value.Null{}
	}
	complexes := splitSelectorList(sel.String())
	list := value.List{Separator: value.Comma}
	for _, cplx := range complexes {
		fields := strings.Fields(cplx)
		inner := value.List{Separator: value.Space}
		for _, f := range fields {
			inner.Elems = append(inner.Elems, value.Unquoted(f))
		}
		list.Elems = append(list.Elems, inner)
	}
	return list
}

// visitCalculation folds calc()/min()/max()/clamp() to a number when all
// arguments are compatible numbers; otherwise it renders the call as CSS
// text. Inside supports declarations calculations never fold.
func (v *Visitor) visitCalculation(e ast.Calculation) (value.Value, error) {
	vals := make([]value.Value, len(e.Args))
	texts := make([]string, len(e.Args))
	numeric := !v.flags.Has(InSupportsDeclaration)
	for i, arg := range e.Args {
		val, text, err := v.calcArg(arg)
		if err != nil {
			return nil, located(err, e.Span)
		}
		vals[i] = val
		texts[i] = text
		if val == nil {
			numeric = false
		}
	}

	if numeric {
		switch e.Name {
		case ast.CalcCalc:
			if len(vals) == 1 {
				return vals[0], nil
			}
		case ast.CalcMin, ast.CalcMax:
			if folded, ok := v.foldMinMax(e.Name, vals); ok {
				return folded, nil
			}
		case ast.CalcClamp:
			if len(vals) == 3 {
				if folded, ok := v.foldClamp(vals[0], vals[1], vals[2]); ok {
					return folded, nil
				}
			}
		}
	}
	return value.Unquoted(e.Name.String() + "(" + strings.Join(texts, ", ") + ")"), nil
}

func (v *Visitor) foldMinMax(name ast.CalcName, vals []value.Value) (value.Value, bool) {
	if len(vals) == 0 {
		return nil, false
	}
	op := "<"
	if name == ast.CalcMax {
		op = ">"
	}
	best := vals[0]
	for _, val := range vals[1:] {
		better, err := value.Compare(val, best, op)
		if err != nil {
			return nil, false
		}
		if better.IsTruthy() {
			best = val
		}
	}
	return best, true
}

func (v *Visitor) foldClamp(min, mid, max value.Value) (value.Value, bool) {
	belowMin, err := value.Compare(mid, min, "<")
	if err != nil {
		return nil, false
	}
	if belowMin.IsTruthy() {
		return min, true
	}
	aboveMax, err := value.Compare(mid, max, ">")
	if err != nil {
		return nil, false
	}
	if aboveMax.IsTruthy() {
		return max, true
	}
	return mid, true
}

// calcArg evaluates one calculation argument, returning both the folded
// number (nil when the argument cannot fold) and the CSS text fallback.
func (v *Visitor) calcArg(e ast.Expr) (value.Value, string, error) {
	switch e := e.(type) {
	case ast.BinaryOp:
		lv, lt, err := v.calcArg(e.Lhs)
		if err != nil {
			return nil, "", err
		}
		rv, rt, err := v.calcArg(e.Rhs)
		if err != nil {
			return nil, "", err
		}
		if lv != nil && rv != nil {
			var folded value.Value
			switch e.Op {
			case ast.OpPlus:
				folded, err = value.Add(lv, rv)
			case ast.OpMinus:
				folded, err = value.Sub(lv, rv)
			case ast.OpMul:
				folded, err = value.Mul(lv, rv)
			case ast.OpDiv:
				folded, err = value.Div(lv, rv)
			}
			if err == nil && folded != nil {
				if _, isNum := folded.(value.Number); isNum {
					fs, serr := value.ToCSS(folded)
					if serr != nil {
						return nil, "", serr
					}
					return folded, fs, nil
				}
			}
		}
		return nil, lt + " " + e.Op.String() + " " + rt, nil
	case ast.Paren:
		val, text, err := v.calcArg(e.Inner)
		if err != nil {
			return nil, "", err
		}
		if val != nil {
			return val, text, nil
		}
		return nil, "(" + text + ")", nil
	default:
		val, err := v.visitExpr(e)
		if err != nil {
			return nil, "", err
		}
		if num, ok := val.(value.Number); ok {
			num.AsSlash = nil
			return num, value.FormatNumber(num), nil
		}
		text, err := value.ToCSS(val)
		if err != nil {
			return nil, "", err
		}
		return nil, text, nil
	}
}
