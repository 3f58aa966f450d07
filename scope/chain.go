package scope

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/npillmayer/scss/value"
)

// Chain is the stack of open lexical scopes, innermost last. The global
// scope is not part of the chain; lookups receive it as an explicit
// fallback handle so that closures sliced from the chain still reach it.
//
// A Chain is shared by pointer between the active environment and every
// closure that captured it. Access is guarded by a mutex in the style of
// the rest of this module: evaluation is single-threaded, the lock turns
// reentrant misuse into a visible deadlock instead of silent corruption.
type Chain struct {
	mu     sync.RWMutex
	scopes []*Scope
}

// NewChain creates an empty chain (evaluation is "at root" while the
// chain is empty).
func NewChain() *Chain {
	return &Chain{}
}

// Len returns the number of open scopes. It doubles as the closure
// capture index: a callable declared now rebuilds its chain with
// Slice(Len()) when invoked later.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.scopes)
}

// IsEmpty reports whether no scope is open, i.e. evaluation is at the
// stylesheet root.
func (c *Chain) IsEmpty() bool {
	return c.Len() == 0
}

// EnterNewScope pushes a fresh scope.
func (c *Chain) EnterNewScope() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = append(c.scopes, NewScope())
}

// ExitScope pops the innermost scope.
func (c *Chain) ExitScope() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scopes) == 0 {
		panic("scope: exit from empty chain")
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Clone copies the spine of the chain. The member scopes stay shared, so
// bindings mutated later remain visible, but pushes and pops on either
// chain no longer affect the other. This is the capture operation for
// closures.
func (c *Chain) Clone() *Chain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dup := make([]*Scope, len(c.scopes))
	copy(dup, c.scopes)
	return &Chain{scopes: dup}
}

// Slice keeps the outermost n scopes (shared), dropping inner ones. It
// rebuilds the chain a callable saw at declaration time.
func (c *Chain) Slice(n int) *Chain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n > len(c.scopes) {
		n = len(c.scopes)
	}
	dup := make([]*Scope, n)
	copy(dup, c.scopes[:n])
	return &Chain{scopes: dup}
}

// DeepClone copies the spine and every scope's bindings, producing a
// fully independent snapshot.
func (c *Chain) DeepClone() *Chain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dup := make([]*Scope, len(c.scopes))
	for i, s := range c.scopes {
		dup[i] = s.copyScope()
	}
	return &Chain{scopes: dup}
}

// --- Lookups ---------------------------------------------------------------

// GetVar searches innermost to outermost, then the global fallback.
func (c *Chain) GetVar(name string, global *Scope) (value.Value, error) {
	c.mu.RLock()
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i].GetVar(name); ok {
			c.mu.RUnlock()
			return v, nil
		}
	}
	c.mu.RUnlock()
	if v, ok := global.GetVar(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("undefined variable $%s", name)
}

// VarExists reports whether the variable is reachable from the innermost
// scope.
func (c *Chain) VarExists(name string, global *Scope) bool {
	_, err := c.GetVar(name, global)
	return err == nil
}

// GetFn searches innermost to outermost, then the global fallback.
func (c *Chain) GetFn(name string, global *Scope) (value.Func, bool) {
	c.mu.RLock()
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if f, ok := c.scopes[i].GetFn(name); ok {
			c.mu.RUnlock()
			return f, true
		}
	}
	c.mu.RUnlock()
	return global.GetFn(name)
}

// GetMixin searches innermost to outermost, then the global fallback.
func (c *Chain) GetMixin(name string, global *Scope) (value.MixinValue, error) {
	c.mu.RLock()
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if m, ok := c.scopes[i].GetMixin(name); ok {
			c.mu.RUnlock()
			return m, nil
		}
	}
	c.mu.RUnlock()
	if m, ok := global.GetMixin(name); ok {
		return m, nil
	}
	return nil, fmt.Errorf("undefined mixin %s", name)
}

// --- Insertions ------------------------------------------------------------

// InsertVarLast binds a variable in the innermost open scope (or the
// global fallback when the chain is empty). Loop variables and bound call
// arguments use this.
func (c *Chain) InsertVarLast(name string, v value.Value, global *Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scopes) == 0 {
		global.InsertVar(name, v)
		return
	}
	c.scopes[len(c.scopes)-1].InsertVar(name, v)
}

// InsertVar binds a variable honoring semi-global semantics: if the name
// is already bound in some open scope, that binding is updated in place
// when either it is the innermost scope or semiGlobal is set; otherwise a
// new innermost binding shadows it. A name bound only globally is updated
// globally when semiGlobal is set.
func (c *Chain) InsertVar(name string, v value.Value, global *Scope, semiGlobal bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scopes) == 0 {
		global.InsertVar(name, v)
		return
	}
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].VarExists(name) {
			if i == len(c.scopes)-1 || semiGlobal {
				c.scopes[i].InsertVar(name, v)
				return
			}
			break
		}
	}
	if semiGlobal && global.VarExists(name) {
		global.InsertVar(name, v)
		return
	}
	tracer().Debugf("binding $%s in scope %d", name, len(c.scopes)-1)
	c.scopes[len(c.scopes)-1].InsertVar(name, v)
}

// InsertFn binds a function in the innermost scope (global when empty).
func (c *Chain) InsertFn(name string, f value.Func, global *Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scopes) == 0 {
		global.InsertFn(name, f)
		return
	}
	c.scopes[len(c.scopes)-1].InsertFn(name, f)
}

// InsertMixin binds a mixin in the innermost scope (global when empty).
func (c *Chain) InsertMixin(name string, m value.MixinValue, global *Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scopes) == 0 {
		global.InsertMixin(name, m)
		return
	}
	c.scopes[len(c.scopes)-1].InsertMixin(name, m)
}
