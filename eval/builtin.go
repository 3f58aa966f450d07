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

// Builtin is a function implemented in Go. Arguments arrive fully bound:
// positional, then defaults, then the rest argument list if declared.
type Builtin struct {
	name string
	decl ast.ArgumentDeclaration
	fn   func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error)
}

func (b *Builtin) FuncName() string { return b.name }

func params(names ...string) ast.ArgumentDeclaration {
	decl := ast.ArgumentDeclaration{}
	for _, n := range names {
		decl.Args = append(decl.Args, ast.Argument{Name: n})
	}
	return decl
}

var builtinTable = map[string]*Builtin{
	// The parser normally routes if() to the lazy special form; this
	// entry covers indirect calls, which are necessarily eager.
	"if": {
		name: "if",
		decl: params("condition", "if-true", "if-false"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			if args[0].IsTruthy() {
				return args[1], nil
			}
			return args[2], nil
		},
	},
	"keywords": {
		name: "keywords",
		decl: params("args"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			al, ok := args[0].(value.ArgList)
			if !ok {
				return nil, errorf(span, "$args: %s is not an argument list", value.Inspect(args[0]))
			}
			return al.KeywordMap(), nil
		},
	},
	"inspect": {
		name: "inspect",
		decl: params("value"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			return value.Unquoted(value.Inspect(args[0])), nil
		},
	},
	"type-of": {
		name: "type-of",
		decl: params("value"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			return value.Unquoted(value.TypeName(args[0])), nil
		},
	},
	"length": {
		name: "length",
		decl: params("list"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			return value.Num(float64(len(value.AsList(args[0])))), nil
		},
	},
	"nth": {
		name: "nth",
		decl: params("list", "n"),
		fn: func(v *Visitor, args []value.Value, span ast.Span) (value.Value, error) {
			elems := value.AsList(args[0])
			num, ok := args[1].(value.Number)
			if !ok {
				return nil, errorf(span, "$n: %s is not a number", value.Inspect(args[1]))
			}
			n, err := assertInt(num, span)
			if err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, errorf(span, "$n: list index may not be 0")
			}
			if n < 0 {
				n += len(elems) + 1
			}
			if n < 1 || n > len(elems) {
				return nil, errorf(span, "$n: invalid index %s for a list with %d elements",
					value.FormatNumber(num), len(elems))
			}
			return elems[n-1], nil
		},
	},
}

// runBuiltin binds an invocation against a builtin's declaration and
// calls its implementation.
func (v *Visitor) runBuiltin(b *Builtin, inv ast.ArgumentInvocation, span ast.Span) (value.Value, error) {
	args, err := v.evalArgs(inv)
	if err != nil {
		return nil, err
	}
	if err := b.decl.Verify(len(args.Positional), args.namedNames()); err != nil {
		return nil, located(err, span)
	}

	declared := len(b.decl.Args)
	bound := make([]value.Value, 0, declared+1)
	n := len(args.Positional)
	if n > declared {
		n = declared
	}
	for i := 0; i < n; i++ {
		bound = append(bound, value.WithoutSlash(args.Positional[i]))
	}
	for i := n; i < declared; i++ {
		arg := b.decl.Args[i]
		val, ok := args.takeNamed(arg.Name)
		if !ok {
			if val, err = v.visitExpr(arg.Default); err != nil {
				return nil, err
			}
		}
		bound = append(bound, v.withoutSlash(val, span))
	}

	var argList *value.ArgList
	if b.decl.Rest != "" {
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
		bound = append(bound, al)
	}

	result, err := b.fn(v, bound, span)
	if err != nil {
		return nil, err
	}

	if len(args.Named) > 0 && (argList == nil || !argList.KeywordsAccessed()) {
		names := args.namedNames()
		sort.Strings(names)
		return nil, errorf(span, "no %s named %s", pluralizeArgs(len(names)), dollarNames(names))
	}
	return value.WithoutSlash(result), nil
}
