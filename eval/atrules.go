package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/npillmayer/scss/media"
)

// --- @media -----------------------------------------------------------------

func (v *Visitor) visitMedia(node *ast.Media) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	if v.declarationName != "" {
		return errorf(node.Span, "media rules may not be used within nested declarations")
	}
	queryText, err := v.interpolate(node.Query, true, false)
	if err != nil {
		return err
	}
	queries, err := media.ParseList(queryText)
	if err != nil {
		return located(err, node.Span)
	}

	// Merge against the enclosing query set. An unrepresentable merge
	// falls back to plain nesting; an empty merge drops the whole rule.
	useQueries := queries
	var sources map[string]struct{}
	if v.mediaQueries != nil {
		if merged, ok := media.MergeAll(v.mediaQueries, queries); ok {
			if len(merged) == 0 {
				return nil
			}
			useQueries = merged
			sources = make(map[string]struct{})
			for q := range v.mediaQuerySources {
				sources[q] = struct{}{}
			}
			for _, q := range v.mediaQueries {
				sources[q.String()] = struct{}{}
			}
			for _, q := range queries {
				sources[q.String()] = struct{}{}
			}
		}
	}

	through := func(s csstree.Stmt) bool {
		if _, ok := s.(*csstree.RuleSet); ok {
			return true
		}
		if m, ok := s.(*csstree.Media); ok && len(sources) > 0 {
			for _, q := range m.Queries {
				if _, fromSource := sources[q]; !fromSource {
					return false
				}
			}
			return true
		}
		return false
	}

	serialized := make([]string, len(useQueries))
	for i, q := range useQueries {
		serialized[i] = q.String()
	}
	idx := v.addChild(&csstree.Media{Query: media.ListString(useQueries), Queries: serialized}, through)

	oldQueries, oldSources := v.mediaQueries, v.mediaQuerySources
	v.mediaQueries, v.mediaQuerySources = useQueries, sources
	err = v.withParent(idx, func() error {
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			if sel := v.styleRule(); sel != nil {
				// nest a clone of the open style rule so bare
				// declarations have somewhere to land
				ruleIdx := v.tree.AddStmt(&csstree.RuleSet{Selector: sel}, v.parent)
				return v.withParent(ruleIdx, func() error {
					_, err := v.visitStmts(node.Body)
					return err
				})
			}
			_, err := v.visitStmts(node.Body)
			return err
		})
	})
	v.mediaQueries, v.mediaQuerySources = oldQueries, oldSources
	return err
}

// --- @supports --------------------------------------------------------------

func (v *Visitor) visitSupports(node *ast.Supports) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	if v.declarationName != "" {
		return errorf(node.Span, "supports rules may not be used within nested declarations")
	}
	condition, err := v.interpolate(node.Condition, true, true)
	if err != nil {
		return err
	}
	idx := v.addChild(&csstree.Supports{Params: condition}, throughStyleRule)
	return v.withParent(idx, func() error {
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			if sel := v.styleRule(); sel != nil {
				ruleIdx := v.tree.AddStmt(&csstree.RuleSet{Selector: sel}, v.parent)
				return v.withParent(ruleIdx, func() error {
					_, err := v.visitStmts(node.Body)
					return err
				})
			}
			_, err := v.visitStmts(node.Body)
			return err
		})
	})
}

// --- Unknown at-rules (including @keyframes) --------------------------------

func (v *Visitor) visitUnknownAtRule(node *ast.UnknownAtRule) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	if v.declarationName != "" {
		return errorf(node.Span, "at-rules may not be used within nested declarations")
	}
	name, err := v.interpolate(node.Name, false, false)
	if err != nil {
		return err
	}
	params := ""
	if node.Value != nil {
		if params, err = v.interpolate(*node.Value, true, false); err != nil {
			return err
		}
	}
	if !node.HasBody {
		v.addChild(&csstree.UnknownAtRule{Name: name, Params: params}, nil)
		return nil
	}

	keyframes := unvendor(strings.ToLower(name)) == "keyframes"
	oldKeyframes := v.flags.Has(InKeyframes)
	oldUnknown := v.flags.Has(InUnknownAtRule)
	if keyframes {
		v.flags.Set(InKeyframes, true)
	} else {
		v.flags.Set(InUnknownAtRule, true)
	}

	idx := v.addChild(&csstree.UnknownAtRule{Name: name, Params: params, HasBody: true}, throughStyleRule)
	err = v.withParent(idx, func() error {
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			if sel := v.styleRule(); sel != nil && !keyframes {
				ruleIdx := v.tree.AddStmt(&csstree.RuleSet{Selector: sel}, v.parent)
				return v.withParent(ruleIdx, func() error {
					_, err := v.visitStmts(node.Body)
					return err
				})
			}
			_, err := v.visitStmts(node.Body)
			return err
		})
	})

	v.flags.Set(InKeyframes, oldKeyframes)
	v.flags.Set(InUnknownAtRule, oldUnknown)
	return err
}

// unvendor strips a `-vendor-` prefix from an identifier.
func unvendor(name string) string {
	if len(name) < 2 || name[0] != '-' || name[1] == '-' {
		return name
	}
	if i := strings.IndexByte(name[1:], '-'); i > 0 {
		return name[i+2:]
	}
	return name
}

// --- @extend ----------------------------------------------------------------

func (v *Visitor) visitExtend(node *ast.Extend) error {
	sel := v.styleRule()
	if sel == nil || v.declarationName != "" {
		return errorf(node.Span, "@extend may only be used within style rules")
	}
	targetText, err := v.interpolate(node.Value, true, false)
	if err != nil {
		return err
	}
	targets, err := v.selectors.ExtendTargets(targetText)
	if err != nil {
		return located(err, node.Span)
	}
	for _, target := range targets {
		if err := v.extender.AddExtension(sel, target, node.Optional, v.mediaQueries, node.Span); err != nil {
			return located(err, node.Span)
		}
	}
	return nil
}

// --- @at-root ---------------------------------------------------------------

// atRootQuery is a parsed `(with: ...)` / `(without: ...)` query. The
// default query excludes style rules only.
type atRootQuery struct {
	include bool
	names   map[string]struct{}
}

var defaultAtRootQuery = atRootQuery{names: map[string]struct{}{"rule": {}}}

func parseAtRootQuery(text string) (atRootQuery, error) {
	q := atRootQuery{names: make(map[string]struct{})}
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return q, fmt.Errorf("expected at-root query like \"(without: rule)\", was %q", text)
	}
	inner := s[1 : len(s)-1]
	colon := strings.IndexByte(inner, ':')
	if colon < 0 {
		return q, fmt.Errorf("expected \":\" in at-root query %q", text)
	}
	switch key := strings.TrimSpace(inner[:colon]); key {
	case "with":
		q.include = true
	case "without":
	default:
		return q, fmt.Errorf("expected \"with\" or \"without\", was %q", key)
	}
	names := strings.Fields(strings.ToLower(inner[colon+1:]))
	if len(names) == 0 {
		return q, fmt.Errorf("expected at-root query value")
	}
	for _, n := range names {
		q.names[n] = struct{}{}
	}
	return q, nil
}

func (q atRootQuery) has(name string) bool {
	_, ok := q.names[name]
	return ok
}

func (q atRootQuery) excludesStyleRules() bool {
	return (q.has("all") || q.has("rule")) != q.include
}

func (q atRootQuery) excludesName(name string) bool {
	return (q.has("all") || q.has(name)) != q.include
}

func (q atRootQuery) excludes(s csstree.Stmt) bool {
	if q.has("all") {
		return !q.include
	}
	switch s := s.(type) {
	case *csstree.RuleSet:
		return q.excludesStyleRules()
	case *csstree.Media:
		return q.excludesName("media")
	case *csstree.Supports:
		return q.excludesName("supports")
	case *csstree.UnknownAtRule:
		return q.excludesName(strings.ToLower(unvendor(s.Name)))
	case *csstree.KeyframesBlock:
		return q.excludesName("keyframes")
	}
	return false
}

func (v *Visitor) visitAtRoot(node *ast.AtRoot) error {
	if v.flags.Has(InFunction) {
		return errorf(node.Span, "this at-rule is not allowed here")
	}
	query := defaultAtRootQuery
	if node.Query != nil {
		text, err := v.interpolate(*node.Query, true, false)
		if err != nil {
			return err
		}
		if query, err = parseAtRootQuery(text); err != nil {
			return located(err, node.Span)
		}
	}

	// Ancestors of the insertion point the query keeps, innermost first.
	var included []int
	for cur := v.parent; cur != csstree.Root; cur = v.tree.Parent(cur) {
		stmt := v.tree.Get(cur)
		if stmt == nil {
			break
		}
		if !query.excludes(stmt) {
			included = append(included, cur)
		}
	}

	root, toClone := v.trimIncluded(included)
	if root == v.parent {
		// nothing between here and the root is excluded
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			_, err := v.visitStmts(node.Body)
			return err
		})
	}

	// Rebuild the kept ancestors as a chain of childless clones under
	// the trimmed root, outer to inner, and evaluate into the innermost.
	target := root
	for i := len(toClone) - 1; i >= 0; i-- {
		clone := csstree.CopyWithoutChildren(v.tree.Get(toClone[i]))
		target = v.tree.AddStmt(clone, target)
	}

	oldFlags := v.flags
	oldQueries, oldSources := v.mediaQueries, v.mediaQuerySources
	v.flags.Set(InAtRootRule, true)
	if query.excludesStyleRules() {
		v.flags.Set(AtRootExcludingStyleRule, true)
	}
	if v.mediaQueries != nil && query.excludesName("media") {
		v.mediaQueries, v.mediaQuerySources = nil, nil
	}
	if v.flags.Has(InKeyframes) && query.excludesName("keyframes") {
		v.flags.Set(InKeyframes, false)
	}
	if v.flags.Has(InUnknownAtRule) && !containsAtRule(v.tree, included) {
		v.flags.Set(InUnknownAtRule, false)
	}

	err := v.withParent(target, func() error {
		return v.withScope(false, ast.HasDeclarations(node.Body), func() error {
			_, err := v.visitStmts(node.Body)
			return err
		})
	})

	v.mediaQueries, v.mediaQuerySources = oldQueries, oldSources
	v.flags = oldFlags
	return err
}

// trimIncluded finds the node the at-root content re-roots under: the
// outermost point from which the kept ancestors run contiguously to the
// document root. Kept ancestors below that point (separated from it by
// excluded ones) are returned for cloning, innermost first.
func (v *Visitor) trimIncluded(included []int) (root int, toClone []int) {
	if len(included) == 0 {
		return csstree.Root, nil
	}
	parent := v.parent
	innermost := -1
	for i := 0; i < len(included); i++ {
		for parent != included[i] {
			innermost = -1
			parent = v.tree.Parent(parent)
			if parent < 0 {
				return csstree.Root, included
			}
		}
		if innermost < 0 {
			innermost = i
		}
		parent = v.tree.Parent(parent)
	}
	if parent != csstree.Root {
		// an excluded ancestor sits above the outermost kept one
		return csstree.Root, included
	}
	return included[innermost], included[:innermost]
}

func containsAtRule(tree *csstree.Tree, nodes []int) bool {
	for _, idx := range nodes {
		if _, ok := tree.Get(idx).(*csstree.UnknownAtRule); ok {
			return true
		}
	}
	return false
}
