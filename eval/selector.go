package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/scss/csstree"
)

// SelectorCompiler is the selector-handling collaborator. Selector
// grammar is outside the evaluator; this interface covers the three
// operations the evaluator needs.
type SelectorCompiler interface {
	// ResolveParents resolves the parent selector `&` in a nested rule's
	// selector against the enclosing rule's selector. When implicitParent
	// is set and the selector does not mention `&`, the parent is
	// prepended as an ancestor.
	ResolveParents(selector string, parent csstree.Selector, implicitParent bool) (csstree.Selector, error)
	// KeyframesSelector parses the selector of a rule nested inside
	// @keyframes into its block selectors ("from", "to", "50%").
	KeyframesSelector(selector string) ([]string, error)
	// ExtendTargets splits an @extend target into simple selectors,
	// rejecting complex and compound targets.
	ExtendTargets(selector string) ([]string, error)
}

// TextSelector is the textual selector representation used by the
// reference SelectorCompiler.
type TextSelector string

func (s TextSelector) String() string { return string(s) }

// TextSelectors is a purely textual SelectorCompiler. It handles comma
// lists, `&` substitution with the full parent cross product, and the
// structural checks @extend needs, without a real selector grammar.
type TextSelectors struct{}

// ResolveParents substitutes `&` (or prepends the parent) for every
// parent/child combination of the two comma lists.
func (TextSelectors) ResolveParents(selector string, parent csstree.Selector, implicitParent bool) (csstree.Selector, error) {
	children := splitSelectorList(selector)
	if parent == nil {
		for _, child := range children {
			if strings.Contains(child, "&") {
				return nil, fmt.Errorf("top-level selectors may not contain the parent selector \"&\"")
			}
		}
		return TextSelector(strings.Join(children, ", ")), nil
	}
	parents := splitSelectorList(parent.String())
	var resolved []string
	for _, child := range children {
		switch {
		case strings.Contains(child, "&"):
			for _, p := range parents {
				resolved = append(resolved, strings.ReplaceAll(child, "&", p))
			}
		case implicitParent:
			for _, p := range parents {
				resolved = append(resolved, p+" "+child)
			}
		default:
			resolved = append(resolved, child)
		}
	}
	return TextSelector(strings.Join(resolved, ", ")), nil
}

// KeyframesSelector accepts "from", "to", and percentages.
func (TextSelectors) KeyframesSelector(selector string) ([]string, error) {
	var blocks []string
	for _, part := range splitSelectorList(selector) {
		lower := strings.ToLower(part)
		if lower == "from" || lower == "to" {
			blocks = append(blocks, lower)
			continue
		}
		if strings.HasSuffix(part, "%") {
			if _, err := strconv.ParseFloat(strings.TrimSuffix(part, "%"), 64); err == nil {
				blocks = append(blocks, part)
				continue
			}
		}
		return nil, fmt.Errorf("expected \"to\" or \"from\", was %q", part)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("expected \"to\" or \"from\"")
	}
	return blocks, nil
}

// ExtendTargets rejects complex and compound targets and returns the
// remaining simple selectors.
func (TextSelectors) ExtendTargets(selector string) ([]string, error) {
	var targets []string
	for _, part := range splitSelectorList(selector) {
		if strings.ContainsAny(part, " \t>+~") {
			return nil, fmt.Errorf("complex selectors may not be extended")
		}
		simples := splitCompound(part)
		if len(simples) > 1 {
			return nil, fmt.Errorf("compound selectors may no longer be extended.\nConsider `@extend %s` instead.",
				strings.Join(simples, ", "))
		}
		targets = append(targets, part)
	}
	return targets, nil
}

// splitSelectorList splits on top-level commas, trimming whitespace.
func splitSelectorList(selector string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range selector {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(selector[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(selector[start:]))
	return parts
}

// splitCompound splits a compound selector into its simple selectors.
func splitCompound(selector string) []string {
	var simples []string
	depth := 0
	start := 0
	for i, r := range selector {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '.', '#', '%', ':':
			// `::element` belongs to the pseudo that started one rune back
			if depth == 0 && i > start && selector[i-1] != ':' {
				simples = append(simples, selector[start:i])
				start = i
			}
		}
	}
	return append(simples, selector[start:])
}
