package value

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Functions and mixins are first-class: they live in scopes next to
// variables. Their concrete representations belong to the evaluator; the
// scope chain only needs opaque markers.

// Func marks a callable usable in expression position.
type Func interface {
	FuncName() string
}

// MixinValue marks a callable usable with @include.
type MixinValue interface {
	MixinName() string
}
