package eval

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/stretchr/testify/assert"
)

func selectorsOf(out []csstree.Stmt) []string {
	var sels []string
	for _, s := range out {
		if r, ok := s.(*csstree.RuleSet); ok {
			sels = append(sels, r.Selector.String())
		}
	}
	return sels
}

func TestForThroughIsInclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.For{Variable: "i", From: num(1), To: num(3), Body: []ast.Stmt{
			rule("item", style("z-index", varRef("i"))),
		}},
	)
	if len(out) != 3 {
		t.Fatalf("expected 3 iterations, have %d", len(out))
	}
	assert.Equal(t, "1", out[0].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
	assert.Equal(t, "3", out[2].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
}

func TestForToIsExclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.For{Variable: "i", From: num(1), To: num(3), Exclusive: true, Body: []ast.Stmt{
			rule("item", style("z-index", varRef("i"))),
		}},
	)
	assert.Equal(t, 2, len(out))
}

func TestForCountsDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.For{Variable: "i", From: num(3), To: num(1), Body: []ast.Stmt{
			rule("item", style("z-index", varRef("i"))),
		}},
	)
	if len(out) != 3 {
		t.Fatalf("expected 3 iterations, have %d", len(out))
	}
	assert.Equal(t, "3", out[0].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
	assert.Equal(t, "1", out[2].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
}

func TestForEqualBoundsExclusive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.For{Variable: "i", From: num(2), To: num(2), Exclusive: true, Body: []ast.Stmt{
			rule("item", style("z-index", varRef("i"))),
		}},
	)
	assert.Equal(t, 0, len(out))
}

func TestForRejectsFraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		&ast.For{Variable: "i", From: num(1.5), To: num(3), Body: nil},
	)
	assert.Contains(t, err.Error(), "1.5 is not an int")
}

func TestEachIterates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.Each{Variables: []string{"name"}, List: ast.ListLit{
			Elems:     []ast.Expr{str("alpha"), str("beta")},
			Separator: ast.Comma,
		}, Body: []ast.Stmt{
			rule("x", style("content", varRef("name"))),
		}},
	)
	if len(out) != 2 {
		t.Fatalf("expected 2 iterations, have %d", len(out))
	}
	assert.Equal(t, "alpha", out[0].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
	assert.Equal(t, "beta", out[1].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
}

func TestEachDestructuresWithNullPadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// the second element has no $b, which binds to null and vanishes
	out := evalSheet(t, Params{},
		&ast.Each{Variables: []string{"a", "b"}, List: ast.ListLit{
			Elems: []ast.Expr{
				ast.ListLit{Elems: []ast.Expr{str("x"), str("y")}, Separator: ast.Space},
				str("z"),
			},
			Separator: ast.Comma,
		}, Body: []ast.Stmt{
			rule("x", style("grid-area", varRef("b"))),
		}},
	)
	first := out[0].(*csstree.RuleSet)
	second := out[1].(*csstree.RuleSet)
	assert.Equal(t, "y", first.Body[0].(*csstree.Style).Value)
	assert.Equal(t, 0, len(second.Body))
}

func TestEachSingleValueActsAsList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.Each{Variables: []string{"v"}, List: num(7), Body: []ast.Stmt{
			rule("x", style("z-index", varRef("v"))),
		}},
	)
	assert.Equal(t, 1, len(out))
}

func TestIfElseChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.If{
			Clauses: []ast.IfClause{
				{Condition: ast.BoolLit{Value: false}, Body: []ast.Stmt{rule("a")}},
				{Condition: ast.BoolLit{Value: true}, Body: []ast.Stmt{rule("b")}},
			},
			Else: []ast.Stmt{rule("c")},
		},
	)
	assert.Equal(t, []string{"b"}, selectorsOf(out))
}

func TestIfBranchAssignsSemiGlobally(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		assign("a", num(1)),
		&ast.If{Clauses: []ast.IfClause{{
			Condition: ast.BoolLit{Value: true},
			Body:      []ast.Stmt{assign("a", num(2))},
		}}},
		rule("x", style("z-index", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "2", r.Body[0].(*csstree.Style).Value)
}

func TestWhileLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		assign("i", num(0)),
		&ast.While{
			Condition: ast.BinaryOp{Lhs: varRef("i"), Rhs: num(3), Op: ast.OpLess},
			Body: []ast.Stmt{
				rule("x", style("z-index", varRef("i"))),
				assign("i", ast.BinaryOp{Lhs: varRef("i"), Rhs: num(1), Op: ast.OpPlus}),
			},
		},
	)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, "2", out[2].(*csstree.RuleSet).Body[0].(*csstree.Style).Value)
}

func TestReturnOutsideFunctionFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		&ast.Return{Value: num(1)},
	)
	assert.Contains(t, err.Error(), "this at-rule is not allowed here")
}

func TestReturnStopsLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// @function first-even($limit) { @for $i from 1 through $limit {
	//   @if $i % 2 == 0 { @return $i } } }
	out := evalSheet(t, Params{},
		fnDecl2("first-even", []ast.Stmt{
			&ast.For{Variable: "i", From: num(1), To: varRef("limit"), Body: []ast.Stmt{
				&ast.If{Clauses: []ast.IfClause{{
					Condition: ast.BinaryOp{
						Lhs: ast.BinaryOp{Lhs: varRef("i"), Rhs: num(2), Op: ast.OpRem},
						Rhs: num(0), Op: ast.OpEq,
					},
					Body: []ast.Stmt{&ast.Return{Value: varRef("i")}},
				}}},
			}},
		}),
		rule("a", style("z-index", call("first-even", ast.ArgumentInvocation{
			Positional: []ast.Expr{num(9)},
		}))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "2", r.Body[0].(*csstree.Style).Value)
}

func fnDecl2(name string, body []ast.Stmt) *ast.FunctionDecl {
	return &ast.FunctionDecl{
		Name: name,
		Args: ast.ArgumentDeclaration{Args: []ast.Argument{{Name: "limit"}}},
		Body: body,
	}
}
