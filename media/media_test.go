package media

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseQueryList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	queries, err := ParseList("screen and (min-width: 500px), print")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, have %d", len(queries))
	}
	assert.Equal(t, "screen", queries[0].Type)
	assert.Equal(t, []string{"(min-width: 500px)"}, queries[0].Conditions)
	assert.Equal(t, "print", queries[1].Type)
	assert.Equal(t, "screen and (min-width: 500px)", queries[0].String())
}

func TestParseModifierAndConditions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	queries, err := ParseList("not screen and (color)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	assert.Equal(t, "not", queries[0].Modifier)
	assert.Equal(t, "screen", queries[0].Type)

	queries, err = ParseList("(min-width: 10em) and (max-width: 20em)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	assert.Equal(t, "", queries[0].Type)
	assert.Equal(t, 2, len(queries[0].Conditions))
	assert.True(t, queries[0].Conjunction)

	queries, err = ParseList("(color) or (hover)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	assert.False(t, queries[0].Conjunction)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	for _, input := range []string{
		"",
		"not",
		"screen and",
		"(color) and (hover) or (pointer)",
		"(min-width: 10em",
	} {
		if _, err := ParseList(input); err == nil {
			t.Errorf("expected %q to fail to parse", input)
		}
	}
}

func TestMergeDisjointTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	_, res := Merge(NewType("screen"), NewType("print"))
	assert.Equal(t, MergeEmpty, res, "screen and print match nothing")
}

func TestMergeConditions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	q1 := Query{Type: "screen", Conditions: []string{"(min-width: 100px)"}, Conjunction: true}
	q2 := NewConditions(true, "(max-width: 200px)")
	merged, res := Merge(q1, q2)
	if res != MergeSuccess {
		t.Fatalf("expected success, have %v", res)
	}
	assert.Equal(t, "screen and (min-width: 100px) and (max-width: 200px)", merged.String())
}

func TestMergeKindIsCommutative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	cases := [][2]Query{
		{NewType("screen"), NewType("print")},
		{NewType("screen"), NewType("screen")},
		{NewType("all"), NewType("print")},
		{Query{Modifier: "not", Type: "screen", Conjunction: true}, NewType("print")},
		{Query{Modifier: "not", Type: "screen", Conjunction: true},
			Query{Modifier: "not", Type: "print", Conjunction: true}},
		{NewConditions(true, "(color)"), NewConditions(true, "(hover)")},
		{NewConditions(false, "(color)", "(hover)"), NewType("screen")},
	}
	for _, c := range cases {
		_, ab := Merge(c[0], c[1])
		_, ba := Merge(c[1], c[0])
		assert.Equal(t, ab, ba, "merge kind must not depend on order for %v", c)
	}
}

func TestMergeNegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	not := Query{Modifier: "not", Type: "screen", Conditions: []string{"(color)"}, Conjunction: true}
	pos := Query{Type: "screen", Conditions: []string{"(color)", "(hover)"}, Conjunction: true}
	_, res := Merge(not, pos)
	assert.Equal(t, MergeEmpty, res, "negated subset of positive conditions")

	other := Query{Type: "screen", Conditions: []string{"(hover)"}, Conjunction: true}
	_, res = Merge(not, other)
	assert.Equal(t, MergeUnrepresentable, res)
}

func TestMergeAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scss.media")
	defer teardown()
	//
	existing := []Query{NewType("screen"), NewType("print")}
	incoming := []Query{{Type: "screen", Conditions: []string{"(color)"}, Conjunction: true}}
	merged, ok := MergeAll(existing, incoming)
	if !ok {
		t.Fatal("expected a representable merge")
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged query, have %d", len(merged))
	}
	assert.Equal(t, "screen and (color)", merged[0].String())

	// Fully disjoint lists collapse to an empty, but valid, result.
	merged, ok = MergeAll([]Query{NewType("print")}, []Query{NewType("screen")})
	assert.True(t, ok)
	assert.Equal(t, 0, len(merged))

	// A single unrepresentable pair voids the merge.
	_, ok = MergeAll([]Query{NewConditions(false, "(color)", "(hover)")}, incoming)
	assert.False(t, ok)
}
