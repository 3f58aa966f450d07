package csstree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the arena as an indented tree for tracing and debugging.
// Tombstones show up as "·" so holes stay visible.
func (t *Tree) Dump() string {
	pr := treeprint.New()
	pr.SetValue("root")
	t.dump(pr, Root)
	return pr.String()
}

func (t *Tree) dump(pr treeprint.Tree, idx int) {
	for _, child := range t.parentToChild[idx] {
		label := "·"
		if s := t.slots[child]; s != nil {
			label = stmtLabel(s)
		}
		branch := pr.AddBranch(fmt.Sprintf("%d: %s", child, label))
		t.dump(branch, child)
	}
}

func stmtLabel(s Stmt) string {
	switch s := s.(type) {
	case *RuleSet:
		return fmt.Sprintf("rule %q", s.Selector.String())
	case *Style:
		return fmt.Sprintf("style %s: %s", s.Property, s.Value)
	case *Media:
		return fmt.Sprintf("@media %s", s.Query)
	case *Supports:
		return fmt.Sprintf("@supports %s", s.Params)
	case *UnknownAtRule:
		return "@" + s.Name
	case *KeyframesBlock:
		return fmt.Sprintf("keyframes block %v", s.Selector)
	case *Comment:
		return "comment"
	case *Import:
		return "@import " + s.URL
	}
	return fmt.Sprintf("%T", s)
}
