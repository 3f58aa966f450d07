package csstree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "fmt"

// Selector abstracts the resolved selector attached to a rule set. The
// extender owns the concrete representation and may rewrite it after the
// rule was emitted; the tree only renders it.
type Selector interface {
	fmt.Stringer
}

// Stmt is the closed sum of output statements.
type Stmt interface {
	isOutStmt()
}

// RuleSet is an emitted style rule.
type RuleSet struct {
	Selector Selector
	Body     []Stmt
}

// Style is one emitted declaration. Value is already serialized.
type Style struct {
	Property       string
	Value          string
	CustomProperty bool
}

// Media is an emitted `@media` rule with a resolved, merged query list.
// Queries keeps the individual serialized queries so nested rules can
// decide whether they may hoist through this one.
type Media struct {
	Query   string
	Queries []string
	Body    []Stmt
}

// Supports is an emitted `@supports` rule.
type Supports struct {
	Params string
	Body   []Stmt
}

// UnknownAtRule is any other emitted at-rule, including `@keyframes`.
type UnknownAtRule struct {
	Name    string
	Params  string
	Body    []Stmt
	HasBody bool
}

// KeyframesBlock is one selector block inside `@keyframes`.
type KeyframesBlock struct {
	Selector []string // "from", "to", "50%"...
	Body     []Stmt
}

// Comment is an emitted loud comment.
type Comment struct {
	Text string
}

// Import is a plain CSS `@import`.
type Import struct {
	URL       string
	Modifiers string
}

func (*RuleSet) isOutStmt()        {}
func (*Style) isOutStmt()          {}
func (*Media) isOutStmt()          {}
func (*Supports) isOutStmt()       {}
func (*UnknownAtRule) isOutStmt()  {}
func (*KeyframesBlock) isOutStmt() {}
func (*Comment) isOutStmt()        {}
func (*Import) isOutStmt()         {}

// CopyWithoutChildren clones a container statement with an empty body.
// Leaf statements cannot be cloned this way; asking for it is a
// programming error.
func CopyWithoutChildren(s Stmt) Stmt {
	switch s := s.(type) {
	case *RuleSet:
		return &RuleSet{Selector: s.Selector}
	case *Media:
		return &Media{Query: s.Query, Queries: s.Queries}
	case *Supports:
		return &Supports{Params: s.Params}
	case *UnknownAtRule:
		return &UnknownAtRule{Name: s.Name, Params: s.Params, HasBody: s.HasBody}
	case *KeyframesBlock:
		return &KeyframesBlock{Selector: s.Selector}
	default:
		panic(fmt.Sprintf("csstree: cannot copy leaf statement %T without children", s))
	}
}

// appendChild adds child to a container statement's body.
func appendChild(parent, child Stmt) {
	switch parent := parent.(type) {
	case *RuleSet:
		parent.Body = append(parent.Body, child)
	case *Media:
		parent.Body = append(parent.Body, child)
	case *Supports:
		parent.Body = append(parent.Body, child)
	case *UnknownAtRule:
		parent.Body = append(parent.Body, child)
	case *KeyframesBlock:
		parent.Body = append(parent.Body, child)
	default:
		panic(fmt.Sprintf("csstree: statement %T cannot have children", parent))
	}
}
