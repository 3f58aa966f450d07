package eval

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/scss/ast"
	"github.com/npillmayer/scss/csstree"
	"github.com/npillmayer/scss/media"
)

// Extender is the selector-inheritance collaborator. The evaluator hands
// it every emitted selector and every @extend directive; the extender
// may return a selector handle it rewrites later, which is why emitted
// rules hold selectors behind the csstree.Selector interface.
type Extender interface {
	// AddSelector registers an emitted rule's selector together with the
	// media queries it is scoped to, and returns the handle the rule
	// should carry.
	AddSelector(selector csstree.Selector, queries []media.Query) csstree.Selector
	// AddExtension registers `@extend target` appearing inside a rule
	// with the given selector.
	AddExtension(selector csstree.Selector, target string, optional bool,
		queries []media.Query, span ast.Span) error
}

// NopExtender ignores extensions; selectors pass through unchanged.
// Used for compilations without @extend support.
type NopExtender struct{}

func (NopExtender) AddSelector(selector csstree.Selector, _ []media.Query) csstree.Selector {
	return selector
}

func (NopExtender) AddExtension(_ csstree.Selector, _ string, _ bool,
	_ []media.Query, _ ast.Span) error {
	return nil
}
