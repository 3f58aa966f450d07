package eval

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/stretchr/testify/assert"
)

func styleValue(t *testing.T, p Params, e ast.Expr, extra ...ast.Stmt) string {
	t.Helper()
	body := append(extra, rule("a", style("prop", e)))
	out := evalSheet(t, p, body...)
	for _, s := range out {
		if r, ok := s.(*csstree.RuleSet); ok && len(r.Body) > 0 {
			return r.Body[0].(*csstree.Style).Value
		}
	}
	t.Fatalf("no declaration emitted")
	return ""
}

// --- Slash handling ---------------------------------------------------------

func TestSlashRetainedInPlainPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// `font: 12px/30px` stays a slash in the output
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: dim(12, "px"), Rhs: dim(30, "px"), Op: ast.OpDiv, AllowsSlash: true,
	})
	assert.Equal(t, "12px/30px", val)
}

func TestSlashDividesInCalculationPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: dim(12, "px"), Rhs: dim(30, "px"), Op: ast.OpDiv, AllowsSlash: false,
	})
	assert.Equal(t, ".4", val)
}

func TestSlashStrippedThroughVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// assigning a slash number to a variable collapses it to the quotient
	val := styleValue(t, Params{Quiet: true}, varRef("x"),
		assign("x", ast.BinaryOp{
			Lhs: dim(12, "px"), Rhs: dim(30, "px"), Op: ast.OpDiv, AllowsSlash: true,
		}),
	)
	assert.Equal(t, ".4", val)
}

func TestSlashArithmeticUsesQuotient(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// (12px/30px) + 1 operates on the quotient, not the slash text
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: ast.BinaryOp{Lhs: num(12), Rhs: num(30), Op: ast.OpDiv, AllowsSlash: true},
		Rhs: num(1),
		Op:  ast.OpPlus,
	})
	assert.Equal(t, "1.4", val)
}

// --- Operators --------------------------------------------------------------

func TestStringConcatenationKeepsQuoting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: ast.StringLit{Text: ast.Plain("foo"), Quoted: true},
		Rhs: str("bar"),
		Op:  ast.OpPlus,
	})
	assert.Equal(t, `"foobar"`, val)
}

func TestComparisonConvertsUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: dim(1, "cm"), Rhs: dim(5, "mm"), Op: ast.OpGreater,
	})
	assert.Equal(t, "true", val)
}

func TestAndShortCircuits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// the right operand would fail on lookup, but `and` never reaches it
	val := styleValue(t, Params{}, ast.BinaryOp{
		Lhs: ast.BoolLit{Value: false},
		Rhs: varRef("undefined"),
		Op:  ast.OpAnd,
	})
	assert.Equal(t, "false", val)
}

func TestUnknownFunctionRendersAsPlainCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, call("var", ast.ArgumentInvocation{
		Positional: []ast.Expr{str("--main"), str("red")},
	}))
	assert.Equal(t, "var(--main, red)", val)
}

func TestPlainCSSFunctionRejectsKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("a", style("prop", call("rotate", ast.ArgumentInvocation{
			Named: []ast.NamedArgument{{Name: "deg", Value: num(45)}},
		}))),
	)
	assert.Contains(t, err.Error(), "plain CSS functions don't support keyword arguments")
}

func TestMapLiteralRejectsDuplicateKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		assign("m", ast.MapLit{Pairs: []ast.MapPair{
			{Key: str("k"), Value: num(1)},
			{Key: str("k"), Value: num(2)},
		}}),
	)
	assert.Contains(t, err.Error(), "duplicate key")
}

// --- if() -------------------------------------------------------------------

func TestTernaryIsLazy(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// the untaken branch references an undefined variable and must not
	// be evaluated
	val := styleValue(t, Params{}, ast.Ternary{Args: ast.ArgumentInvocation{
		Positional: []ast.Expr{ast.BoolLit{Value: true}, num(1), varRef("undefined")},
	}})
	assert.Equal(t, "1", val)
}

func TestTernaryNamedBranches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.Ternary{Args: ast.ArgumentInvocation{
		Positional: []ast.Expr{ast.BoolLit{Value: false}},
		Named: []ast.NamedArgument{
			{Name: "if-true", Value: num(1)},
			{Name: "if-false", Value: num(2)},
		},
	}})
	assert.Equal(t, "2", val)
}

func TestTernaryVerifiesArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("a", style("prop", ast.Ternary{Args: ast.ArgumentInvocation{
			Positional: []ast.Expr{ast.BoolLit{Value: true}},
		}})),
	)
	assert.Contains(t, err.Error(), "missing argument $if-true")
}

// --- Calculations -----------------------------------------------------------

func TestCalcFoldsSingleNumericArgument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.Calculation{
		Name: ast.CalcCalc,
		Args: []ast.Expr{ast.BinaryOp{Lhs: dim(1, "px"), Rhs: dim(2, "px"), Op: ast.OpPlus}},
	})
	assert.Equal(t, "3px", val)
}

func TestCalcFallsBackToText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.Calculation{
		Name: ast.CalcCalc,
		Args: []ast.Expr{ast.BinaryOp{Lhs: dim(100, "%"), Rhs: dim(2, "px"), Op: ast.OpMinus}},
	})
	assert.Equal(t, "calc(100% - 2px)", val)
}

func TestMinFoldsComparableNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.Calculation{
		Name: ast.CalcMin,
		Args: []ast.Expr{dim(10, "mm"), dim(2, "cm")},
	})
	assert.Equal(t, "10mm", val)
}

func TestClampFolds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, ast.Calculation{
		Name: ast.CalcClamp,
		Args: []ast.Expr{num(1), num(5), num(3)},
	})
	assert.Equal(t, "3", val)
}

// --- Builtins ---------------------------------------------------------------

func TestNthNegativeIndexesFromEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, call("nth", ast.ArgumentInvocation{
		Positional: []ast.Expr{
			ast.ListLit{Elems: []ast.Expr{str("a"), str("b"), str("c")}, Separator: ast.Comma},
			num(-1),
		},
	}))
	assert.Equal(t, "c", val)
}

func TestNthRejectsZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("a", style("prop", call("nth", ast.ArgumentInvocation{
			Positional: []ast.Expr{str("x"), num(0)},
		}))),
	)
	assert.Contains(t, err.Error(), "list index may not be 0")
}

func TestTypeOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, call("type-of", ast.ArgumentInvocation{
		Positional: []ast.Expr{num(1)},
	}))
	assert.Equal(t, "number", val)
}

func TestUserFunctionShadowsBuiltin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	val := styleValue(t, Params{}, call("length", ast.ArgumentInvocation{
		Positional: []ast.Expr{str("x")},
	}), fnDecl("length", ast.ArgumentDeclaration{Rest: "args"}, num(42)))
	assert.Equal(t, "42", val)
}
