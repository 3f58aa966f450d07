package eval

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/npillmayer/scss/value"
	"github.com/stretchr/testify/assert"
)

// --- AST builders -----------------------------------------------------------

func rule(sel string, body ...ast.Stmt) *ast.RuleSet {
	return &ast.RuleSet{Selector: ast.Plain(sel), Body: body}
}

func style(name string, val ast.Expr) *ast.Declaration {
	return &ast.Declaration{Name: ast.Plain(name), Value: val}
}

func assign(name string, val ast.Expr) *ast.VariableDecl {
	return &ast.VariableDecl{Name: name, Value: val}
}

func num(f float64) ast.Expr { return ast.NumberLit{Value: f} }

func dim(f float64, unit string) ast.Expr { return ast.NumberLit{Value: f, Unit: unit} }

func str(s string) ast.Expr { return ast.StringLit{Text: ast.Plain(s)} }

func varRef(name string) ast.Expr { return ast.Variable{Name: name} }

func evalSheet(t *testing.T, p Params, body ...ast.Stmt) []csstree.Stmt {
	t.Helper()
	v := New(p)
	if err := v.VisitStyleSheet(&ast.StyleSheet{Body: body}); err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	return v.Finish()
}

func evalError(t *testing.T, p Params, body ...ast.Stmt) error {
	t.Helper()
	v := New(p)
	err := v.VisitStyleSheet(&ast.StyleSheet{Body: body})
	if err == nil {
		t.Fatalf("expected an evaluation error")
	}
	return err
}

func onlyRule(t *testing.T, out []csstree.Stmt) *csstree.RuleSet {
	t.Helper()
	if len(out) != 1 {
		t.Fatalf("expected 1 top level statement, have %d", len(out))
	}
	r, ok := out[0].(*csstree.RuleSet)
	if !ok {
		t.Fatalf("expected a rule set, have %T", out[0])
	}
	return r
}

// --- Variables and scoping --------------------------------------------------

func TestVariableLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		assign("a", num(1)),
		rule("a", style("color", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "1", r.Body[0].(*csstree.Style).Value)
}

func TestDefaultGuardSkipsReachableBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		assign("a", num(1)),
		&ast.VariableDecl{Name: "a", Value: num(2), Guarded: true},
		rule("a", style("color", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "1", r.Body[0].(*csstree.Style).Value)
}

func TestDefaultGuardAssignsWhenUnset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.VariableDecl{Name: "a", Value: num(2), Guarded: true},
		rule("a", style("color", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "2", r.Body[0].(*csstree.Style).Value)
}

func TestRuleBodyAssignmentShadows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	// a rule body opens a fresh scope, so re-assigning $a shadows the
	// root binding instead of overwriting it; only control-flow bodies
	// write through to the enclosing scope
	out := evalSheet(t, Params{},
		assign("a", num(1)),
		rule("a", assign("a", num(2))),
		rule("b", style("top", varRef("a"))),
	)
	if len(out) != 2 {
		t.Fatalf("expected 2 rules, have %d", len(out))
	}
	b := out[1].(*csstree.RuleSet)
	assert.Equal(t, "1", b.Body[0].(*csstree.Style).Value)
}

func TestModuleConfigOverridesDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	config := NewModuleConfig()
	if err := config.Set("a", value.Num(3)); err != nil {
		t.Fatal(err)
	}
	out := evalSheet(t, Params{Config: config},
		&ast.VariableDecl{Name: "a", Value: num(1), Guarded: true},
		rule("a", style("z-index", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "3", r.Body[0].(*csstree.Style).Value)
}

// --- Nesting ----------------------------------------------------------------

func TestNestedRuleHoistsThroughParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a",
			style("color", str("red")),
			rule("b", style("top", dim(1, "px"))),
		),
	)
	if len(out) != 2 {
		t.Fatalf("expected the nested rule to surface as a sibling, have %d statements", len(out))
	}
	assert.Equal(t, "a", out[0].(*csstree.RuleSet).Selector.String())
	assert.Equal(t, "a b", out[1].(*csstree.RuleSet).Selector.String())
}

func TestParentSelectorSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a", rule("&:hover", style("color", str("red")))),
	)
	assert.Equal(t, "a:hover", out[1].(*csstree.RuleSet).Selector.String())
}

func TestTopLevelParentSelectorFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("&:hover", style("color", str("red"))),
	)
	assert.Contains(t, err.Error(), "may not contain the parent selector")
}

func TestNestedDeclarationNameConcat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a", &ast.Declaration{
			Name:  ast.Plain("margin"),
			Value: dim(1, "px"),
			Body:  []ast.Stmt{style("top", dim(2, "px"))},
		}),
	)
	r := onlyRule(t, out)
	if len(r.Body) != 2 {
		t.Fatalf("expected 2 declarations, have %d", len(r.Body))
	}
	assert.Equal(t, "margin", r.Body[0].(*csstree.Style).Property)
	assert.Equal(t, "margin-top", r.Body[1].(*csstree.Style).Property)
}

func TestDeclarationOutsideRuleFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{}, style("color", str("red")))
	assert.Contains(t, err.Error(), "declarations may only be used within style rules")
}

func TestNullDeclarationVanishes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a",
			style("color", ast.Null{}),
			style("top", dim(0, "px")),
		),
	)
	r := onlyRule(t, out)
	if len(r.Body) != 1 {
		t.Fatalf("expected the null declaration to vanish, have %d", len(r.Body))
	}
	assert.Equal(t, "top", r.Body[0].(*csstree.Style).Property)
}

// --- Media ------------------------------------------------------------------

func TestNestedMediaMerges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.Media{Query: ast.Plain("screen"), Body: []ast.Stmt{
			&ast.Media{Query: ast.Plain("(min-width: 100px)"), Body: []ast.Stmt{
				rule("a", style("color", str("red"))),
			}},
		}},
	)
	var merged *csstree.Media
	for _, s := range out {
		if m, ok := s.(*csstree.Media); ok && len(m.Body) > 0 {
			merged = m
		}
	}
	if merged == nil {
		t.Fatalf("expected a non-empty media rule in the output")
	}
	assert.Equal(t, "screen and (min-width: 100px)", merged.Query)
	assert.Equal(t, "a", merged.Body[0].(*csstree.RuleSet).Selector.String())
}

func TestMediaInsideRuleWrapsDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a",
			&ast.Media{Query: ast.Plain("print"), Body: []ast.Stmt{
				style("color", str("black")),
			}},
		),
	)
	// the media rule hoists past the style rule and re-opens it inside
	var m *csstree.Media
	for _, s := range out {
		if mm, ok := s.(*csstree.Media); ok {
			m = mm
		}
	}
	if m == nil {
		t.Fatalf("expected a media rule at the top level")
	}
	inner := m.Body[0].(*csstree.RuleSet)
	assert.Equal(t, "a", inner.Selector.String())
	assert.Equal(t, "color", inner.Body[0].(*csstree.Style).Property)
}

// --- Keyframes and unknown at-rules -----------------------------------------

func TestKeyframes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.UnknownAtRule{
			Name:    ast.Plain("keyframes"),
			Value:   plainPtr("fade"),
			HasBody: true,
			Body: []ast.Stmt{
				rule("from", style("opacity", num(0))),
				rule("50%", style("opacity", num(0.5))),
			},
		},
	)
	at := out[0].(*csstree.UnknownAtRule)
	assert.Equal(t, "keyframes", at.Name)
	assert.Equal(t, "fade", at.Params)
	if len(at.Body) != 2 {
		t.Fatalf("expected 2 keyframe blocks, have %d", len(at.Body))
	}
	assert.Equal(t, []string{"from"}, at.Body[0].(*csstree.KeyframesBlock).Selector)
	assert.Equal(t, []string{"50%"}, at.Body[1].(*csstree.KeyframesBlock).Selector)
}

func TestKeyframesRejectsOrdinarySelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		&ast.UnknownAtRule{
			Name:    ast.Plain("keyframes"),
			Value:   plainPtr("fade"),
			HasBody: true,
			Body:    []ast.Stmt{rule("div", style("opacity", num(0)))},
		},
	)
	assert.Contains(t, err.Error(), `expected "to" or "from"`)
}

// --- @at-root ---------------------------------------------------------------

func TestAtRootEscapesStyleRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		rule("a",
			style("color", str("red")),
			&ast.AtRoot{Body: []ast.Stmt{
				rule("b", style("top", dim(0, "px"))),
			}},
		),
	)
	if len(out) != 2 {
		t.Fatalf("expected 2 top level rules, have %d", len(out))
	}
	// b escapes a entirely, so its selector has no ancestor
	assert.Equal(t, "b", out[1].(*csstree.RuleSet).Selector.String())
}

func TestAtRootWithMediaKeepsMedia(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.Media{Query: ast.Plain("screen"), Body: []ast.Stmt{
			rule("a",
				&ast.AtRoot{Query: plainPtr("(with: media)"), Body: []ast.Stmt{
					rule("b", style("color", str("red"))),
				}},
			),
		}},
	)
	// the media ancestor survives, the style rule ancestor does not
	var kept *csstree.Media
	for _, s := range out {
		if m, ok := s.(*csstree.Media); ok {
			for _, child := range m.Body {
				if r, ok := child.(*csstree.RuleSet); ok && r.Selector.String() == "b" {
					kept = m
				}
			}
		}
	}
	if kept == nil {
		t.Fatalf("expected rule b below a media rule")
	}
	assert.Equal(t, "screen", kept.Query)
}

// --- Errors and diagnostics -------------------------------------------------

func TestErrorRuleIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		&ast.ErrorRule{Value: str("boom")},
	)
	assert.Contains(t, err.Error(), "boom")
}

func TestUndefinedVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("a", style("color", varRef("missing"))),
	)
	assert.Contains(t, err.Error(), "undefined variable $missing")
}

func TestExtendRejectsComplexTarget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		rule("a", &ast.Extend{Value: ast.Plain("b c")}),
	)
	assert.Contains(t, err.Error(), "complex selectors may not be extended")
}

func TestExtendOutsideRuleFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	err := evalError(t, Params{},
		&ast.Extend{Value: ast.Plain(".b")},
	)
	assert.Contains(t, err.Error(), "@extend may only be used within style rules")
}

// --- Imports ----------------------------------------------------------------

type mapLoader map[string]*ast.StyleSheet

func (m mapLoader) FindImport(url, fromDir string) (string, bool) {
	_, ok := m[url]
	return url, ok
}

func (m mapLoader) LoadSheet(path string) (*ast.StyleSheet, error) {
	sheet, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("no such sheet %q", path)
	}
	return sheet, nil
}

func TestImportEvaluatesInline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	loader := mapLoader{
		"vars": {URL: "vars", Body: []ast.Stmt{assign("a", num(7))}},
	}
	out := evalSheet(t, Params{Loader: loader},
		&ast.ImportRule{Imports: []ast.Import{ast.SassImport{URL: "vars"}}},
		rule("a", style("z-index", varRef("a"))),
	)
	r := onlyRule(t, out)
	assert.Equal(t, "7", r.Body[0].(*csstree.Style).Value)
}

func TestImportCycleFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	loader := mapLoader{}
	loader["x"] = &ast.StyleSheet{URL: "x", Body: []ast.Stmt{
		&ast.ImportRule{Imports: []ast.Import{ast.SassImport{URL: "y"}}},
	}}
	loader["y"] = &ast.StyleSheet{URL: "y", Body: []ast.Stmt{
		&ast.ImportRule{Imports: []ast.Import{ast.SassImport{URL: "x"}}},
	}}
	err := evalError(t, Params{Loader: loader},
		&ast.ImportRule{Imports: []ast.Import{ast.SassImport{URL: "x"}}},
	)
	assert.Contains(t, err.Error(), "already being loaded")
}

func TestPlainImportEmits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.eval")
	defer teardown()
	//
	out := evalSheet(t, Params{},
		&ast.ImportRule{Imports: []ast.Import{
			ast.PlainImport{URL: ast.Plain(`"theme.css"`)},
		}},
	)
	imp := out[0].(*csstree.Import)
	assert.Equal(t, `"theme.css"`, imp.URL)
}

// --- helpers ----------------------------------------------------------------

func plainPtr(s string) *ast.Interpolation {
	in := ast.Plain(s)
	return &in
}
