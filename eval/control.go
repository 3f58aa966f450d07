package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"math"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/value"
)

// Control flow opens exactly one scope for its whole execution (one per
// taken branch for @if). Bodies propagate a @return value outward the
// moment one appears.

func (v *Visitor) visitIf(node *ast.If) (value.Value, error) {
	var body []ast.Stmt
	taken := false
	for _, clause := range node.Clauses {
		cond, err := v.visitExpr(clause.Condition)
		if err != nil {
			return nil, err
		}
		if cond.IsTruthy() {
			body = clause.Body
			taken = true
			break
		}
	}
	if !taken {
		if node.Else == nil {
			return nil, nil
		}
		body = node.Else
	}
	old := v.flags.Has(InControlFlow)
	v.flags.Set(InControlFlow, true)
	defer v.flags.Set(InControlFlow, old)
	return v.withScopeVal(true, ast.HasDeclarations(body), func() (value.Value, error) {
		return v.visitStmts(body)
	})
}

func (v *Visitor) visitFor(node *ast.For) (value.Value, error) {
	fromNum, err := v.assertNumber(node.From, node.Span)
	if err != nil {
		return nil, err
	}
	toNum, err := v.assertNumber(node.To, node.Span)
	if err != nil {
		return nil, err
	}
	toConverted, err := value.Convert(toNum, fromNum.Unit)
	if err != nil {
		return nil, located(err, node.Span)
	}
	from, err := assertInt(fromNum, node.Span)
	if err != nil {
		return nil, err
	}
	to, err := assertInt(toConverted, node.Span)
	if err != nil {
		return nil, err
	}
	direction := 1
	if from > to {
		direction = -1
	}
	if !node.Exclusive {
		to += direction
	}
	if from == to {
		return nil, nil
	}
	old := v.flags.Has(InControlFlow)
	v.flags.Set(InControlFlow, true)
	defer v.flags.Set(InControlFlow, old)
	return v.withScopeVal(true, true, func() (value.Value, error) {
		for i := from; i != to; i += direction {
			v.env.Scopes.InsertVarLast(node.Variable,
				value.Number{Value: float64(i), Unit: fromNum.Unit}, v.env.Global)
			val, err := v.visitStmts(node.Body)
			if err != nil || val != nil {
				return val, err
			}
		}
		return nil, nil
	})
}

func (v *Visitor) visitEach(node *ast.Each) (value.Value, error) {
	list, err := v.visitExpr(node.List)
	if err != nil {
		return nil, err
	}
	elems := value.AsList(list)
	old := v.flags.Has(InControlFlow)
	v.flags.Set(InControlFlow, true)
	defer v.flags.Set(InControlFlow, old)
	return v.withScopeVal(true, true, func() (value.Value, error) {
		for _, elem := range elems {
			v.bindEachVariables(node.Variables, elem, node.Span)
			val, err := v.visitStmts(node.Body)
			if err != nil || val != nil {
				return val, err
			}
		}
		return nil, nil
	})
}

// bindEachVariables binds the loop variables of one @each iteration.
// Multiple variables destructure the element, padding with null.
func (v *Visitor) bindEachVariables(names []string, elem value.Value, span ast.Span) {
	if len(names) == 1 {
		v.env.Scopes.InsertVarLast(names[0], v.withoutSlash(elem, span), v.env.Global)
		return
	}
	parts := value.AsList(elem)
	for i, name := range names {
		var val value.Value = value.Null{}
		if i < len(parts) {
			val = v.withoutSlash(parts[i], span)
		}
		v.env.Scopes.InsertVarLast(name, val, v.env.Global)
	}
}

func (v *Visitor) visitWhile(node *ast.While) (value.Value, error) {
	old := v.flags.Has(InControlFlow)
	v.flags.Set(InControlFlow, true)
	defer v.flags.Set(InControlFlow, old)
	return v.withScopeVal(true, ast.HasDeclarations(node.Body), func() (value.Value, error) {
		for {
			cond, err := v.visitExpr(node.Condition)
			if err != nil {
				return nil, err
			}
			if !cond.IsTruthy() {
				return nil, nil
			}
			val, err := v.visitStmts(node.Body)
			if err != nil || val != nil {
				return val, err
			}
		}
	})
}

func (v *Visitor) visitReturn(node *ast.Return) (value.Value, error) {
	if !v.flags.Has(InFunction) {
		return nil, errorf(node.Span, "this at-rule is not allowed here")
	}
	val, err := v.visitExpr(node.Value)
	if err != nil {
		return nil, err
	}
	return v.withoutSlash(val, node.Span), nil
}

func (v *Visitor) assertNumber(e ast.Expr, span ast.Span) (value.Number, error) {
	val, err := v.visitExpr(e)
	if err != nil {
		return value.Number{}, err
	}
	num, ok := val.(value.Number)
	if !ok {
		return value.Number{}, errorf(span, "%s is not a number", value.Inspect(val))
	}
	return num, nil
}

func assertInt(num value.Number, span ast.Span) (int, error) {
	if num.Value != math.Trunc(num.Value) {
		return 0, errorf(span, "%s is not an int", value.FormatNumber(num))
	}
	return int(num.Value), nil
}
