package ast

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Expr is the closed sum of expression variants.
type Expr interface{ isExpr() }

// Null is the literal `null`.
type Null struct{}

// BoolLit is `true` or `false`.
type BoolLit struct{ Value bool }

// NumberLit is a numeric literal with an optional unit.
type NumberLit struct {
	Value float64
	Unit  string
}

// ColorLit is a hex color literal, carried through opaquely.
type ColorLit struct{ Hex string }

// StringLit is a (possibly interpolated) string.
type StringLit struct {
	Text   Interpolation
	Quoted bool
	Span   Span
}

// ListLit is a bracketed or bare list literal.
type ListLit struct {
	Elems     []Expr
	Separator Separator
	Brackets  bool
}

// MapLit is `(key: value, ...)`. Duplicate keys are an evaluation error.
type MapLit struct {
	Pairs []MapPair
	Span  Span
}

// MapPair is one key/value entry of a map literal.
type MapPair struct {
	Key, Value Expr
}

// BinaryOp is a binary operation. AllowsSlash records whether a `/` in
// this syntactic position may retain its slash representation.
type BinaryOp struct {
	Lhs, Rhs    Expr
	Op          BinOp
	AllowsSlash bool
	Span        Span
}

// UnaryOp is `+x`, `-x`, `/x`, or `not x`.
type UnaryOp struct {
	Op      UnOp
	Operand Expr
	Span    Span
}

// Paren is a parenthesized expression.
type Paren struct{ Inner Expr }

// Variable references `$name`, optionally module-qualified.
type Variable struct {
	Name      string
	Namespace string
	Span      Span
}

// FunctionCall is `name(args)`, optionally module-qualified.
type FunctionCall struct {
	Name      string
	Namespace string
	Args      ArgumentInvocation
	Span      Span
}

// InterpolatedFunction is `#{...}(args)`; always a plain CSS call.
type InterpolatedFunction struct {
	Name Interpolation
	Args ArgumentInvocation
	Span Span
}

// Ternary is the special `if(condition, if-true, if-false)` form with
// lazy branch evaluation.
type Ternary struct {
	Args ArgumentInvocation
	Span Span
}

// ParentSelector is `&`.
type ParentSelector struct{ Span Span }

// Calculation is `calc`/`min`/`max`/`clamp`.
type Calculation struct {
	Name CalcName
	Args []Expr
	Span Span
}

func (Null) isExpr()                 {}
func (BoolLit) isExpr()              {}
func (NumberLit) isExpr()            {}
func (ColorLit) isExpr()             {}
func (StringLit) isExpr()            {}
func (ListLit) isExpr()              {}
func (MapLit) isExpr()               {}
func (BinaryOp) isExpr()             {}
func (UnaryOp) isExpr()              {}
func (Paren) isExpr()                {}
func (Variable) isExpr()             {}
func (FunctionCall) isExpr()         {}
func (InterpolatedFunction) isExpr() {}
func (Ternary) isExpr()              {}
func (ParentSelector) isExpr()       {}
func (Calculation) isExpr()          {}

// Separator distinguishes space- from comma-separated lists; Undecided is
// used for lists whose separator is not yet known (singletons, rest args).
type Separator int

const (
	Undecided Separator = iota
	Space
	Comma
)

// BinOp enumerates binary operators.
type BinOp int

const (
	OpSingleEq BinOp = iota // `=` inside supports declarations
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpRem
)

func (op BinOp) String() string {
	switch op {
	case OpSingleEq:
		return "="
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	}
	return "?"
}

// UnOp enumerates unary operators.
type UnOp int

const (
	UnaryPlus UnOp = iota
	UnaryNeg
	UnaryDiv
	UnaryNot
)

// CalcName enumerates calculation functions.
type CalcName int

const (
	CalcCalc CalcName = iota
	CalcMin
	CalcMax
	CalcClamp
)

func (c CalcName) String() string {
	switch c {
	case CalcCalc:
		return "calc"
	case CalcMin:
		return "min"
	case CalcMax:
		return "max"
	case CalcClamp:
		return "clamp"
	}
	return "calc"
}

// InMinOrMax reports whether bare comparisons are legal arguments.
func (c CalcName) InMinOrMax() bool {
	return c == CalcMin || c == CalcMax
}
