package media

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// Query is one media query out of a comma separated query list. Empty
// strings stand for absent parts: a query may carry only a type
// ("screen"), only conditions ("(min-width: 100px)"), or both.
type Query struct {
	Modifier   string   // "not" or "only", lowercased for comparison
	Type       string   // "screen", "print", "all", ...
	Conditions []string // parenthesized feature conditions
	// Conjunction is false for condition-only queries joined with `or`.
	// Such queries cannot be intersected with anything.
	Conjunction bool
}

// NewType creates a query with a bare media type.
func NewType(mediaType string) Query {
	return Query{Type: mediaType, Conjunction: true}
}

// NewConditions creates a type-less query from feature conditions.
func NewConditions(conjunction bool, conds ...string) Query {
	return Query{Conditions: conds, Conjunction: conjunction}
}

// MatchesAllTypes reports whether the query does not restrict the media
// type.
func (q Query) MatchesAllTypes() bool {
	return q.Type == "" || strings.EqualFold(q.Type, "all")
}

func (q Query) String() string {
	var b strings.Builder
	if q.Modifier != "" {
		b.WriteString(q.Modifier)
		b.WriteByte(' ')
	}
	if q.Type != "" {
		b.WriteString(q.Type)
		if len(q.Conditions) > 0 {
			b.WriteString(" and ")
		}
	}
	op := " and "
	if !q.Conjunction {
		op = " or "
	}
	b.WriteString(strings.Join(q.Conditions, op))
	return b.String()
}

// ListString serializes a query list the way it appears after `@media`.
func ListString(queries []Query) string {
	parts := make([]string, len(queries))
	for i, q := range queries {
		parts[i] = q.String()
	}
	return strings.Join(parts, ", ")
}
