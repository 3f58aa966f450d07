package scope

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/scss/value"
)

// Scope is one lexical block's bindings. The three namespaces are
// independent: the same identifier may denote a variable, a mixin, and a
// function simultaneously.
type Scope struct {
	vars   map[string]value.Value
	mixins map[string]value.MixinValue
	fns    map[string]value.Func
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{}
}

// VarExists is a predicate whether a variable is bound in this scope.
func (s *Scope) VarExists(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// GetVar returns the variable binding, if present.
func (s *Scope) GetVar(name string) (value.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// InsertVar binds a variable, replacing any previous binding.
func (s *Scope) InsertVar(name string, v value.Value) {
	if s.vars == nil {
		s.vars = make(map[string]value.Value)
	}
	s.vars[name] = v
}

// FnExists is a predicate whether a function is bound in this scope.
func (s *Scope) FnExists(name string) bool {
	_, ok := s.fns[name]
	return ok
}

// GetFn returns the function binding, if present.
func (s *Scope) GetFn(name string) (value.Func, bool) {
	f, ok := s.fns[name]
	return f, ok
}

// InsertFn binds a function.
func (s *Scope) InsertFn(name string, f value.Func) {
	if s.fns == nil {
		s.fns = make(map[string]value.Func)
	}
	s.fns[name] = f
}

// MixinExists is a predicate whether a mixin is bound in this scope.
func (s *Scope) MixinExists(name string) bool {
	_, ok := s.mixins[name]
	return ok
}

// GetMixin returns the mixin binding, if present.
func (s *Scope) GetMixin(name string) (value.MixinValue, bool) {
	m, ok := s.mixins[name]
	return m, ok
}

// InsertMixin binds a mixin.
func (s *Scope) InsertMixin(name string, m value.MixinValue) {
	if s.mixins == nil {
		s.mixins = make(map[string]value.MixinValue)
	}
	s.mixins[name] = m
}

// copyScope duplicates all three namespaces (used by Chain.DeepClone).
func (s *Scope) copyScope() *Scope {
	dup := NewScope()
	for k, v := range s.vars {
		dup.InsertVar(k, v)
	}
	for k, m := range s.mixins {
		dup.InsertMixin(k, m)
	}
	for k, f := range s.fns {
		dup.InsertFn(k, f)
	}
	return dup
}
