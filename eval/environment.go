package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/scope"
	"github.com/npillmayer/scss/value"
)

// Environment bundles everything name resolution needs: the chain of
// open lexical scopes, the global scope, and the content closure active
// for @content. Environments are duplicated, never shared, when entering
// callables and content blocks; the members are shared by reference.
type Environment struct {
	Scopes  *scope.Chain
	Global  *scope.Scope
	Content *ContentClosure
}

// NewEnvironment creates a root environment with an empty chain.
func NewEnvironment() *Environment {
	return &Environment{
		Scopes: scope.NewChain(),
		Global: scope.NewScope(),
	}
}

// Closure captures the environment for a callable declared now: the
// chain spine is copied (member scopes stay shared), the global scope
// and content closure pass through.
func (e *Environment) Closure() *Environment {
	return &Environment{
		Scopes:  e.Scopes.Clone(),
		Global:  e.Global,
		Content: e.Content,
	}
}

// AtRoot reports whether no lexical scope is open, i.e. evaluation is at
// the stylesheet root.
func (e *Environment) AtRoot() bool {
	return e.Scopes.IsEmpty()
}

// ContentClosure is the content block of an @include together with the
// environment captured at the include site. The captured environment
// carries its own content closure, so nested @content chains through.
type ContentClosure struct {
	Block *ast.ContentBlock
	Env   *Environment
}

// MixinName implements value.MixinValue so a content closure can run
// through the same callable machinery as a mixin.
func (c *ContentClosure) MixinName() string { return "@content" }

// ModuleConfig holds `with (...)` variable overrides consumed by
// guarded declarations at module root. Each variable may be configured
// once.
type ModuleConfig struct {
	values map[string]value.Value
}

// NewModuleConfig creates an empty configuration.
func NewModuleConfig() *ModuleConfig {
	return &ModuleConfig{values: make(map[string]value.Value)}
}

// Set configures a variable override. Configuring the same variable
// twice is an error.
func (c *ModuleConfig) Set(name string, v value.Value) error {
	if _, ok := c.values[name]; ok {
		return fmt.Errorf("the variable $%s was configured twice", name)
	}
	c.values[name] = v
	return nil
}

// Take removes and returns the override for name, if configured.
func (c *ModuleConfig) Take(name string) (value.Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[name]
	if ok {
		delete(c.values, name)
	}
	return v, ok
}

// IsEmpty reports whether no unconsumed override remains.
func (c *ModuleConfig) IsEmpty() bool {
	return c == nil || len(c.values) == 0
}
