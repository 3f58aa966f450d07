package csstree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Root is the handle of the implicit stylesheet root. It never holds a
// statement; its children are the top-level output statements.
const Root = 0

// Tree is the arena the evaluator assembles output statements in. Slots
// are append-only; a nil slot is a tombstone for a statement that was
// taken out for re-parenting (at-root, media nest-through).
type Tree struct {
	slots         []Stmt
	parentToChild map[int][]int
	childToParent map[int]int
	finished      []Stmt
	done          bool
}

// New creates a tree containing only the root slot.
func New() *Tree {
	return &Tree{
		slots:         []Stmt{nil},
		parentToChild: make(map[int][]int),
		childToParent: make(map[int]int),
	}
}

// AddStmt appends a statement under the given parent handle and returns
// the new statement's handle. A negative parent means the root.
func (t *Tree) AddStmt(stmt Stmt, parent int) int {
	if parent < 0 {
		parent = Root
	}
	idx := len(t.slots)
	t.slots = append(t.slots, stmt)
	t.parentToChild[parent] = append(t.parentToChild[parent], idx)
	t.childToParent[idx] = parent
	tracer().Debugf("tree: stmt %d under %d", idx, parent)
	return idx
}

// Get returns the statement at a handle, or nil for the root and for
// tombstones.
func (t *Tree) Get(idx int) Stmt {
	if idx < 0 || idx >= len(t.slots) {
		return nil
	}
	return t.slots[idx]
}

// Take removes the statement at a handle, leaving a tombstone, and
// returns it. The handle's children stay attached and will be folded into
// whatever statement is later put back with Replace. Taking a slot twice
// is a programming error.
func (t *Tree) Take(idx int) Stmt {
	s := t.slots[idx]
	if s == nil && idx != Root {
		panic("csstree: slot taken twice")
	}
	t.slots[idx] = nil
	return s
}

// Replace puts a statement back into a slot.
func (t *Tree) Replace(idx int, s Stmt) {
	t.slots[idx] = s
}

// Parent returns the parent handle, or -1 for the root.
func (t *Tree) Parent(idx int) int {
	if idx == Root {
		return -1
	}
	return t.childToParent[idx]
}

// HasChildren reports whether any statement was added under the handle.
func (t *Tree) HasChildren(idx int) bool {
	return len(t.parentToChild[idx]) > 0
}

// Finish folds every statement's arena children into its body, bottom-up,
// and returns the root's surviving children in insertion order.
// Tombstoned slots are skipped; their bodies were already spliced
// elsewhere by the evaluator. Finish is idempotent, repeated calls return
// the first result.
func (t *Tree) Finish() []Stmt {
	if t.done {
		return t.finished
	}
	var out []Stmt
	for _, child := range t.parentToChild[Root] {
		if t.slots[child] == nil {
			continue
		}
		t.applyChildren(child)
		out = append(out, t.slots[child])
	}
	t.finished, t.done = out, true
	return out
}

// applyChildren recursively appends the arena children of idx to the
// statement's body.
func (t *Tree) applyChildren(idx int) {
	parent := t.slots[idx]
	for _, child := range t.parentToChild[idx] {
		if t.slots[child] == nil {
			continue
		}
		t.applyChildren(child)
		appendChild(parent, t.slots[child])
	}
}
