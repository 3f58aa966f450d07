package cssout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/npillmayer/scss/csstree"
)

// Stylesheet converts finished output statements into a douceur
// stylesheet, the common interchange format of CSS tooling. Comments
// have no douceur representation and are dropped.
func Stylesheet(stmts []csstree.Stmt) *css.Stylesheet {
	sheet := css.NewStylesheet()
	for _, stmt := range stmts {
		if rule := toRule(stmt, 0); rule != nil {
			sheet.Rules = append(sheet.Rules, rule)
		}
	}
	tracer().Debugf("converted %d statements to %d douceur rules", len(stmts), len(sheet.Rules))
	return sheet
}

func toRule(stmt csstree.Stmt, level int) *css.Rule {
	switch stmt := stmt.(type) {
	case *csstree.RuleSet:
		rule := css.NewRule(css.QualifiedRule)
		rule.Prelude = stmt.Selector.String()
		rule.Selectors = splitSelectors(rule.Prelude)
		rule.EmbedLevel = level
		fillBody(rule, stmt.Body, level)
		return rule
	case *csstree.Media:
		return atRule("@media", stmt.Query, stmt.Body, level)
	case *csstree.Supports:
		return atRule("@supports", stmt.Params, stmt.Body, level)
	case *csstree.UnknownAtRule:
		rule := atRule("@"+stmt.Name, stmt.Params, stmt.Body, level)
		return rule
	case *csstree.KeyframesBlock:
		rule := css.NewRule(css.QualifiedRule)
		rule.Prelude = strings.Join(stmt.Selector, ", ")
		rule.Selectors = stmt.Selector
		rule.EmbedLevel = level
		fillBody(rule, stmt.Body, level)
		return rule
	case *csstree.Import:
		rule := css.NewRule(css.AtRule)
		rule.Name = "@import"
		rule.Prelude = stmt.URL
		if stmt.Modifiers != "" {
			rule.Prelude += " " + stmt.Modifiers
		}
		rule.EmbedLevel = level
		return rule
	case *csstree.Style, *csstree.Comment:
		return nil
	}
	return nil
}

func atRule(name, prelude string, body []csstree.Stmt, level int) *css.Rule {
	rule := css.NewRule(css.AtRule)
	rule.Name = name
	rule.Prelude = prelude
	rule.EmbedLevel = level
	fillBody(rule, body, level)
	return rule
}

func fillBody(rule *css.Rule, body []csstree.Stmt, level int) {
	for _, child := range body {
		if style, ok := child.(*csstree.Style); ok {
			rule.Declarations = append(rule.Declarations, &css.Declaration{
				Property:  style.Property,
				Value:     style.Value,
				Important: strings.HasSuffix(style.Value, "!important"),
			})
			continue
		}
		if nested := toRule(child, level+1); nested != nil {
			rule.Rules = append(rule.Rules, nested)
		}
	}
}

func splitSelectors(prelude string) []string {
	parts := strings.Split(prelude, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
