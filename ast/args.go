package ast

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"
)

// Argument is one declared parameter with an optional default expression.
type Argument struct {
	Name    string
	Default Expr // nil when the parameter is mandatory
}

// ArgumentDeclaration is the declared parameter list of a function, mixin,
// or content block, with an optional rest parameter.
type ArgumentDeclaration struct {
	Args []Argument
	Rest string // empty when no rest parameter is declared
}

// Verify checks an invocation's shape against this declaration: not more
// positional arguments than declared parameters (unless a rest parameter
// absorbs them), every mandatory parameter satisfied positionally or by
// name, and no named argument that names a nonexistent parameter (unless a
// rest parameter absorbs it).
func (decl ArgumentDeclaration) Verify(positional int, named []string) error {
	namedUsed := 0
	for i, arg := range decl.Args {
		if i < positional {
			if containsName(named, arg.Name) {
				return fmt.Errorf("argument $%s was passed both by position and by name", arg.Name)
			}
			continue
		}
		if containsName(named, arg.Name) {
			namedUsed++
		} else if arg.Default == nil {
			return fmt.Errorf("missing argument $%s", arg.Name)
		}
	}

	if decl.Rest != "" {
		return nil
	}

	if positional > len(decl.Args) {
		return fmt.Errorf("only %d %s allowed, but %d %s",
			len(decl.Args), pluralize("argument", len(decl.Args)),
			positional, pluralizeWere(positional))
	}

	if namedUsed < len(named) {
		unknown := make([]string, 0, len(named)-namedUsed)
		for _, name := range named {
			if !decl.hasArg(name) {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		return fmt.Errorf("no %s named %s",
			pluralize("argument", len(unknown)), dollarSentence(unknown))
	}

	return nil
}

func (decl ArgumentDeclaration) hasArg(name string) bool {
	for _, arg := range decl.Args {
		if arg.Name == name {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func pluralizeWere(n int) string {
	if n == 1 {
		return "was passed"
	}
	return "were passed"
}

func dollarSentence(names []string) string {
	prefixed := make([]string, len(names))
	for i, n := range names {
		prefixed[i] = "$" + n
	}
	switch len(prefixed) {
	case 0:
		return ""
	case 1:
		return prefixed[0]
	case 2:
		return prefixed[0] + " or " + prefixed[1]
	}
	return strings.Join(prefixed[:len(prefixed)-1], ", ") + " or " + prefixed[len(prefixed)-1]
}

// NamedArgument is one `name: expr` entry of an invocation. Order is
// preserved for deterministic evaluation and diagnostics.
type NamedArgument struct {
	Name  string
	Value Expr
}

// ArgumentInvocation is the argument list at a call site.
type ArgumentInvocation struct {
	Positional  []Expr
	Named       []NamedArgument
	Rest        Expr // `list...`
	KeywordRest Expr // second `map...`
	Span        Span
}

// IsEmpty reports whether the invocation passes no arguments at all.
func (inv ArgumentInvocation) IsEmpty() bool {
	return len(inv.Positional) == 0 && len(inv.Named) == 0 &&
		inv.Rest == nil && inv.KeywordRest == nil
}
