package ast

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "strings"

// StyleSheet is the root of a parsed stylesheet.
type StyleSheet struct {
	Body []Stmt
	URL  string // source path, used for import resolution and spans
}

// --- Statements ------------------------------------------------------------

// Stmt is the closed sum of statement variants.
type Stmt interface {
	isStmt()
	Location() Span
}

// RuleSet is a (possibly nested) style rule: `a, b:hover { ... }`.
type RuleSet struct {
	Selector Interpolation
	Body     []Stmt
	Span     Span
}

// Declaration is a property declaration: `color: red` or a nested group
// `margin: { top: 1px }`. Value may be nil when only a body is present.
type Declaration struct {
	Name  Interpolation
	Value Expr
	Body  []Stmt
	Span  Span
}

// SilentComment is `// ...`; never emitted.
type SilentComment struct {
	Text string
	Span Span
}

// LoudComment is `/* ... */`; emitted except inside functions.
type LoudComment struct {
	Text Interpolation
	Span Span
}

// If is the full `@if / @else if / @else` chain.
type If struct {
	Clauses []IfClause
	Else    []Stmt
	Span    Span
}

// IfClause is one condition/body pair of an If.
type IfClause struct {
	Condition Expr
	Body      []Stmt
}

// For is `@for $i from <a> through|to <b>`.
type For struct {
	Variable  string
	From, To  Expr
	Exclusive bool // `to` rather than `through`
	Body      []Stmt
	Span      Span
}

// Each is `@each $a, $b in <list>`.
type Each struct {
	Variables []string
	List      Expr
	Body      []Stmt
	Span      Span
}

// While is `@while <condition>`.
type While struct {
	Condition Expr
	Body      []Stmt
	Span      Span
}

// Return is `@return <expr>`; legal only inside function bodies.
type Return struct {
	Value Expr
	Span  Span
}

// Media is `@media <query> { ... }`.
type Media struct {
	Query Interpolation
	Body  []Stmt
	Span  Span
}

// Supports is `@supports <condition> { ... }`.
type Supports struct {
	Condition Interpolation
	Body      []Stmt
	Span      Span
}

// UnknownAtRule covers at-rules the evaluator has no special handling for,
// including `@keyframes` (recognized by name during evaluation).
type UnknownAtRule struct {
	Name    Interpolation
	Value   *Interpolation // params after the name, if any
	Body    []Stmt
	HasBody bool
	Span    Span
}

// Mixin is a `@mixin` declaration.
type Mixin struct {
	Name       string
	Args       ArgumentDeclaration
	Body       []Stmt
	HasContent bool // body contains a reachable @content
	Span       Span
}

// FunctionDecl is a `@function` declaration.
type FunctionDecl struct {
	Name string
	Args ArgumentDeclaration
	Body []Stmt
	Span Span
}

// Include is `@include name(args) { optional content }`.
type Include struct {
	Name    string
	Args    ArgumentInvocation
	Content *ContentBlock
	Span    Span
}

// ContentBlock is the trailing block of an @include, spliced in wherever
// the mixin executes @content.
type ContentBlock struct {
	Args ArgumentDeclaration
	Body []Stmt
	Span Span
}

// ContentRule is `@content(args)` inside a mixin body.
type ContentRule struct {
	Args ArgumentInvocation
	Span Span
}

// VariableDecl is `$name: value` with optional `!default` / `!global`
// guards and an optional module namespace.
type VariableDecl struct {
	Name      string
	Namespace string // empty unless module-qualified
	Value     Expr
	Guarded   bool // !default
	Global    bool // !global
	Span      Span
}

// Warn is `@warn <expr>`.
type Warn struct {
	Value Expr
	Span  Span
}

// Debug is `@debug <expr>`.
type Debug struct {
	Value Expr
	Span  Span
}

// ErrorRule is `@error <expr>`; always fatal.
type ErrorRule struct {
	Value Expr
	Span  Span
}

// Extend is `@extend <selector>` with optional `!optional`.
type Extend struct {
	Value    Interpolation
	Optional bool
	Span     Span
}

// AtRoot is `@at-root [query] { ... }`.
type AtRoot struct {
	Query *Interpolation
	Body  []Stmt
	Span  Span
}

// ImportRule is one `@import` statement carrying one or more imports.
type ImportRule struct {
	Imports []Import
	Span    Span
}

// Import is the closed sum of import variants.
type Import interface{ isImport() }

// SassImport is a dynamic import resolved and evaluated inline.
type SassImport struct {
	URL  string
	Span Span
}

// PlainImport is a plain CSS import emitted verbatim.
type PlainImport struct {
	URL       Interpolation
	Modifiers *Interpolation
	Span      Span
}

func (SassImport) isImport()  {}
func (PlainImport) isImport() {}

func (*RuleSet) isStmt()       {}
func (*Declaration) isStmt()   {}
func (*SilentComment) isStmt() {}
func (*LoudComment) isStmt()   {}
func (*If) isStmt()            {}
func (*For) isStmt()           {}
func (*Each) isStmt()          {}
func (*While) isStmt()         {}
func (*Return) isStmt()        {}
func (*Media) isStmt()         {}
func (*Supports) isStmt()      {}
func (*UnknownAtRule) isStmt() {}
func (*Mixin) isStmt()         {}
func (*FunctionDecl) isStmt()  {}
func (*Include) isStmt()       {}
func (*ContentRule) isStmt()   {}
func (*VariableDecl) isStmt()  {}
func (*Warn) isStmt()          {}
func (*Debug) isStmt()         {}
func (*ErrorRule) isStmt()     {}
func (*Extend) isStmt()        {}
func (*AtRoot) isStmt()        {}
func (*ImportRule) isStmt()    {}

func (s *RuleSet) Location() Span       { return s.Span }
func (s *Declaration) Location() Span   { return s.Span }
func (s *SilentComment) Location() Span { return s.Span }
func (s *LoudComment) Location() Span   { return s.Span }
func (s *If) Location() Span            { return s.Span }
func (s *For) Location() Span           { return s.Span }
func (s *Each) Location() Span          { return s.Span }
func (s *While) Location() Span         { return s.Span }
func (s *Return) Location() Span        { return s.Span }
func (s *Media) Location() Span         { return s.Span }
func (s *Supports) Location() Span      { return s.Span }
func (s *UnknownAtRule) Location() Span { return s.Span }
func (s *Mixin) Location() Span         { return s.Span }
func (s *FunctionDecl) Location() Span  { return s.Span }
func (s *Include) Location() Span       { return s.Span }
func (s *ContentRule) Location() Span   { return s.Span }
func (s *VariableDecl) Location() Span  { return s.Span }
func (s *Warn) Location() Span          { return s.Span }
func (s *Debug) Location() Span         { return s.Span }
func (s *ErrorRule) Location() Span     { return s.Span }
func (s *Extend) Location() Span        { return s.Span }
func (s *AtRoot) Location() Span        { return s.Span }
func (s *ImportRule) Location() Span    { return s.Span }

// HasDeclarations reports whether any statement in body declares a
// variable, mixin, function, or import at its own level. Constructs whose
// body has no declarations may skip opening a scope.
func HasDeclarations(body []Stmt) bool {
	for _, stmt := range body {
		switch stmt.(type) {
		case *VariableDecl, *Mixin, *FunctionDecl, *ImportRule:
			return true
		}
	}
	return false
}

// --- Interpolation ---------------------------------------------------------

// Interpolation is a sequence of literal text and embedded expressions,
// as in `a#{$b}c`.
type Interpolation struct {
	Parts []InterpolationPart
	Span  Span
}

// InterpolationPart is either a literal string or an expression.
type InterpolationPart interface{ isInterpolationPart() }

// StringPart is a literal segment of an interpolation.
type StringPart string

// ExprPart is an embedded `#{...}` expression.
type ExprPart struct{ Expr Expr }

func (StringPart) isInterpolationPart() {}
func (ExprPart) isInterpolationPart()   {}

// Plain builds an interpolation holding only literal text.
func Plain(text string) Interpolation {
	return Interpolation{Parts: []InterpolationPart{StringPart(text)}}
}

// AsPlain returns the literal text if the interpolation contains no
// embedded expressions.
func (in Interpolation) AsPlain() (string, bool) {
	var sb strings.Builder
	for _, part := range in.Parts {
		s, ok := part.(StringPart)
		if !ok {
			return "", false
		}
		sb.WriteString(string(s))
	}
	return sb.String(), true
}
