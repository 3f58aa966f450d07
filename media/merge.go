package media

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// MergeResult classifies the outcome of intersecting two queries.
type MergeResult int

const (
	// MergeEmpty means the intersection matches no medium at all.
	MergeEmpty MergeResult = iota
	// MergeUnrepresentable means the intersection exists but cannot be
	// written as a single CSS media query.
	MergeUnrepresentable
	// MergeSuccess means the intersection was computed.
	MergeSuccess
)

// Merge intersects two media queries. The merged query is only
// meaningful when the result is MergeSuccess.
func Merge(q1, q2 Query) (Query, MergeResult) {
	if !q1.Conjunction || !q2.Conjunction {
		return Query{}, MergeUnrepresentable
	}
	ourMod := strings.ToLower(q1.Modifier)
	theirMod := strings.ToLower(q2.Modifier)
	ourType := strings.ToLower(q1.Type)
	theirType := strings.ToLower(q2.Type)

	if ourType == "" && theirType == "" {
		return NewConditions(true, concat(q1.Conditions, q2.Conditions)...), MergeSuccess
	}

	var modifier, mediaType string
	var conditions []string
	switch {
	case (ourMod == "not") != (theirMod == "not"):
		if ourType == theirType {
			negative, positive := q1.Conditions, q2.Conditions
			if theirMod == "not" {
				negative, positive = q2.Conditions, q1.Conditions
			}
			// A negated subset of the positive conditions contradicts
			// them outright.
			if isSubset(negative, positive) {
				return Query{}, MergeEmpty
			}
			return Query{}, MergeUnrepresentable
		}
		if q1.MatchesAllTypes() || q2.MatchesAllTypes() {
			return Query{}, MergeUnrepresentable
		}
		if ourMod == "not" {
			modifier, mediaType, conditions = q2.Modifier, q2.Type, q2.Conditions
		} else {
			modifier, mediaType, conditions = q1.Modifier, q1.Type, q1.Conditions
		}
	case ourMod == "not":
		// Both negated. "neither screen nor print" has no CSS syntax.
		if ourType != theirType {
			return Query{}, MergeUnrepresentable
		}
		more, fewer := q1.Conditions, q2.Conditions
		if len(q2.Conditions) > len(q1.Conditions) {
			more, fewer = q2.Conditions, q1.Conditions
		}
		// The superset of conditions is the strictly narrower negation.
		if !isSubset(fewer, more) {
			return Query{}, MergeUnrepresentable
		}
		modifier, mediaType, conditions = q1.Modifier, q1.Type, more
	case q1.MatchesAllTypes():
		modifier = q2.Modifier
		// Keep the type absent if both inputs left it out.
		if !(q2.MatchesAllTypes() && ourType == "") {
			mediaType = q2.Type
		}
		conditions = concat(q1.Conditions, q2.Conditions)
	case q2.MatchesAllTypes():
		modifier, mediaType = q1.Modifier, q1.Type
		conditions = concat(q1.Conditions, q2.Conditions)
	case ourType != theirType:
		return Query{}, MergeEmpty
	default:
		modifier = q1.Modifier
		if modifier == "" {
			modifier = q2.Modifier
		}
		mediaType = q1.Type
		conditions = concat(q1.Conditions, q2.Conditions)
	}
	merged := Query{
		Modifier:    modifier,
		Type:        mediaType,
		Conditions:  conditions,
		Conjunction: true,
	}
	tracer().Debugf("media: merged %q and %q to %q", q1, q2, merged)
	return merged, MergeSuccess
}

// MergeAll intersects every pair from two query lists. Pairs with an
// empty intersection are dropped; a single unrepresentable pair voids the
// whole merge, reported by ok == false. ok == true with an empty list
// means the combined queries match nothing.
func MergeAll(existing, incoming []Query) (merged []Query, ok bool) {
	merged = []Query{}
	for _, q1 := range existing {
		for _, q2 := range incoming {
			m, res := Merge(q1, q2)
			switch res {
			case MergeEmpty:
				continue
			case MergeUnrepresentable:
				return nil, false
			case MergeSuccess:
				merged = append(merged, m)
			}
		}
	}
	return merged, true
}

func isSubset(sub, super []string) bool {
	for _, s := range sub {
		found := false
		for _, t := range super {
			if s == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
