package cssout

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/scss/csstree"
)

// Render serializes finished output statements as expanded CSS text.
// Containers without any renderable content are dropped.
func Render(stmts []csstree.Stmt) string {
	var sb strings.Builder
	first := true
	for _, stmt := range stmts {
		if isEmpty(stmt) {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		renderStmt(&sb, stmt, 0)
	}
	return sb.String()
}

func renderStmt(sb *strings.Builder, stmt csstree.Stmt, level int) {
	indent := strings.Repeat("  ", level)
	switch stmt := stmt.(type) {
	case *csstree.RuleSet:
		renderBlock(sb, indent, stmt.Selector.String(), stmt.Body, level)
	case *csstree.Style:
		sb.WriteString(indent)
		sb.WriteString(stmt.Property)
		sb.WriteString(": ")
		sb.WriteString(stmt.Value)
		sb.WriteString(";\n")
	case *csstree.Media:
		renderBlock(sb, indent, "@media "+stmt.Query, stmt.Body, level)
	case *csstree.Supports:
		renderBlock(sb, indent, "@supports "+stmt.Params, stmt.Body, level)
	case *csstree.UnknownAtRule:
		head := "@" + stmt.Name
		if stmt.Params != "" {
			head += " " + stmt.Params
		}
		if !stmt.HasBody {
			sb.WriteString(indent)
			sb.WriteString(head)
			sb.WriteString(";\n")
			return
		}
		renderBlock(sb, indent, head, stmt.Body, level)
	case *csstree.KeyframesBlock:
		renderBlock(sb, indent, strings.Join(stmt.Selector, ", "), stmt.Body, level)
	case *csstree.Comment:
		sb.WriteString(indent)
		sb.WriteString(stmt.Text)
		sb.WriteString("\n")
	case *csstree.Import:
		sb.WriteString(indent)
		sb.WriteString("@import ")
		sb.WriteString(stmt.URL)
		if stmt.Modifiers != "" {
			sb.WriteString(" ")
			sb.WriteString(stmt.Modifiers)
		}
		sb.WriteString(";\n")
	}
}

func renderBlock(sb *strings.Builder, indent, head string, body []csstree.Stmt, level int) {
	sb.WriteString(indent)
	sb.WriteString(head)
	sb.WriteString(" {\n")
	for _, child := range body {
		if isEmpty(child) {
			continue
		}
		renderStmt(sb, child, level+1)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

// isEmpty reports whether a container holds nothing renderable. Unknown
// at-rules keep their (possibly empty) blocks, matching CSS semantics.
func isEmpty(stmt csstree.Stmt) bool {
	var body []csstree.Stmt
	switch stmt := stmt.(type) {
	case *csstree.RuleSet:
		body = stmt.Body
	case *csstree.Media:
		body = stmt.Body
	case *csstree.Supports:
		body = stmt.Body
	case *csstree.KeyframesBlock:
		body = stmt.Body
	default:
		return false
	}
	for _, child := range body {
		if !isEmpty(child) {
			return false
		}
	}
	return true
}
