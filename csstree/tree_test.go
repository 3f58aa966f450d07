package csstree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type sel string

func (s sel) String() string { return string(s) }

func TestTreeFinishOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	tree := New()
	a := tree.AddStmt(&RuleSet{Selector: sel("a")}, Root)
	tree.AddStmt(&Style{Property: "color", Value: "red"}, a)
	tree.AddStmt(&Style{Property: "top", Value: "0"}, a)
	tree.AddStmt(&RuleSet{Selector: sel("b")}, Root)
	out := tree.Finish()
	if len(out) != 2 {
		t.Fatalf("expected 2 top level statements, have %d", len(out))
	}
	rule, ok := out[0].(*RuleSet)
	if !ok {
		t.Fatalf("expected rule set first, have %T", out[0])
	}
	assert.Equal(t, "a", rule.Selector.String())
	assert.Equal(t, 2, len(rule.Body))
	assert.Equal(t, "color", rule.Body[0].(*Style).Property)
	assert.Equal(t, "top", rule.Body[1].(*Style).Property)
}

func TestTreeNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	tree := New()
	m := tree.AddStmt(&Media{Query: "screen"}, -1)
	r := tree.AddStmt(&RuleSet{Selector: sel("a")}, m)
	tree.AddStmt(&Style{Property: "color", Value: "red"}, r)
	out := tree.Finish()
	if len(out) != 1 {
		t.Fatalf("expected 1 top level statement, have %d", len(out))
	}
	media := out[0].(*Media)
	rule := media.Body[0].(*RuleSet)
	assert.Equal(t, 1, len(rule.Body))
}

func TestTreeTombstone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	tree := New()
	a := tree.AddStmt(&RuleSet{Selector: sel("a")}, Root)
	tree.AddStmt(&RuleSet{Selector: sel("b")}, Root)
	taken := tree.Take(a)
	if _, ok := taken.(*RuleSet); !ok {
		t.Fatalf("expected to take a rule set, have %T", taken)
	}
	out := tree.Finish()
	if len(out) != 1 {
		t.Fatalf("expected tombstone to be skipped, have %d statements", len(out))
	}
	assert.Equal(t, "b", out[0].(*RuleSet).Selector.String())
}

func TestTreeFinishIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	tree := New()
	a := tree.AddStmt(&RuleSet{Selector: sel("a")}, Root)
	tree.AddStmt(&Style{Property: "color", Value: "red"}, a)
	first := tree.Finish()
	second := tree.Finish()
	assert.Equal(t, len(first), len(second))
	rule := second[0].(*RuleSet)
	assert.Equal(t, 1, len(rule.Body), "second pass must not duplicate children")
}

func TestCopyWithoutChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	orig := &Media{Query: "screen", Body: []Stmt{&Style{Property: "color"}}}
	dup := CopyWithoutChildren(orig).(*Media)
	assert.Equal(t, "screen", dup.Query)
	assert.Equal(t, 0, len(dup.Body))
}

func TestTreeParentWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.tree")
	defer teardown()
	//
	tree := New()
	m := tree.AddStmt(&Media{Query: "screen"}, Root)
	r := tree.AddStmt(&RuleSet{Selector: sel("a")}, m)
	s := tree.AddStmt(&Style{Property: "color"}, r)
	assert.Equal(t, r, tree.Parent(s))
	assert.Equal(t, m, tree.Parent(r))
	assert.Equal(t, Root, tree.Parent(m))
	assert.Equal(t, -1, tree.Parent(Root))
	assert.True(t, tree.HasChildren(m))
	assert.False(t, tree.HasChildren(s))
}
