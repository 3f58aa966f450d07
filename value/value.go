package value

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// Value is the closed sum of runtime values.
type Value interface {
	isValue()
	// IsTruthy follows the language rule: everything except null and
	// false is truthy.
	IsTruthy() bool
}

// --- Variants --------------------------------------------------------------

// Null is the null value.
type Null struct{}

// Bool is true or false.
type Bool bool

// Str is a string value, quoted or unquoted.
type Str struct {
	Text   string
	Quoted bool
}

// Number is a numeric value with an optional unit and an optional slash
// pair (see package doc).
type Number struct {
	Value   float64
	Unit    string
	AsSlash *SlashPair
}

// SlashPair records the two numbers a slash-division was formed from.
type SlashPair struct {
	Numerator, Denominator Number
}

// List is an ordered sequence with a separator and optional brackets.
type List struct {
	Elems     []Value
	Separator Separator
	Brackets  bool
}

// Pair is one entry of a Map.
type Pair struct {
	Key, Value Value
}

// Map is an ordered association. Key equality is value equality.
type Map struct {
	Pairs []Pair
}

// Keyword is one captured keyword argument of an ArgList.
type Keyword struct {
	Name  string
	Value Value
}

// ArgList packages unconsumed rest arguments: positional elements plus
// captured keywords. Reading the keywords (via KeywordMap) marks the list
// as keywords-accessed, which exempts the call from the unconsumed-named-
// argument check.
type ArgList struct {
	Elems     []Value
	Keywords  []Keyword
	Separator Separator
	accessed  *bool
}

// Color is an opaque color value; the color model itself is external.
type Color struct {
	Hex string
}

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Str) isValue()     {}
func (Number) isValue()  {}
func (List) isValue()    {}
func (Map) isValue()     {}
func (ArgList) isValue() {}
func (Color) isValue()   {}

func (Null) IsTruthy() bool      { return false }
func (b Bool) IsTruthy() bool    { return bool(b) }
func (Str) IsTruthy() bool       { return true }
func (Number) IsTruthy() bool    { return true }
func (List) IsTruthy() bool      { return true }
func (Map) IsTruthy() bool       { return true }
func (ArgList) IsTruthy() bool   { return true }
func (Color) IsTruthy() bool     { return true }

// Separator distinguishes list separators.
type Separator int

const (
	Undecided Separator = iota
	Space
	Comma
)

func (s Separator) String() string {
	if s == Comma {
		return ", "
	}
	return " "
}

// --- Constructors and accessors --------------------------------------------

// Num builds a unitless number.
func Num(v float64) Number { return Number{Value: v} }

// Dim builds a number with a unit.
func Dim(v float64, unit string) Number { return Number{Value: v, Unit: unit} }

// Unquoted builds an unquoted string value.
func Unquoted(text string) Str { return Str{Text: text} }

// Quoted builds a quoted string value.
func QuotedStr(text string) Str { return Str{Text: text, Quoted: true} }

// NewArgList builds an argument-list value with a fresh keywords-accessed
// marker shared by all copies of the list.
func NewArgList(elems []Value, keywords []Keyword, sep Separator) ArgList {
	return ArgList{Elems: elems, Keywords: keywords, Separator: sep, accessed: new(bool)}
}

// KeywordMap returns the captured keywords as a map value and marks the
// argument list as keywords-accessed.
func (a ArgList) KeywordMap() Map {
	if a.accessed != nil {
		*a.accessed = true
	}
	m := Map{}
	for _, kw := range a.Keywords {
		m.Pairs = append(m.Pairs, Pair{Key: QuotedStr(kw.Name), Value: kw.Value})
	}
	return m
}

// KeywordsAccessed reports whether KeywordMap has been called on any copy
// of this argument list.
func (a ArgList) KeywordsAccessed() bool {
	return a.accessed != nil && *a.accessed
}

// Get looks up a key in the map by value equality.
func (m Map) Get(key Value) (Value, bool) {
	for _, p := range m.Pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Insert appends or replaces the entry for key.
func (m *Map) Insert(key, val Value) {
	for i, p := range m.Pairs {
		if Equal(p.Key, key) {
			m.Pairs[i].Value = val
			return
		}
	}
	m.Pairs = append(m.Pairs, Pair{Key: key, Value: val})
}

// AsList exposes any value as a list, following the language rule that
// every value is a single-element list of itself; maps become lists of
// two-element lists.
func AsList(v Value) []Value {
	switch v := v.(type) {
	case List:
		return v.Elems
	case ArgList:
		return v.Elems
	case Map:
		elems := make([]Value, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			elems = append(elems, List{Elems: []Value{p.Key, p.Value}, Separator: Space})
		}
		return elems
	default:
		return []Value{v}
	}
}

// SeparatorOf returns the separator a value exposes as a list.
func SeparatorOf(v Value) Separator {
	switch v := v.(type) {
	case List:
		return v.Separator
	case ArgList:
		return v.Separator
	case Map:
		return Comma
	default:
		return Space
	}
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// IsBlank reports whether v renders to nothing in CSS: null, an empty
// unquoted string, or a list of blank elements.
func IsBlank(v Value) bool {
	switch v := v.(type) {
	case Null:
		return true
	case Str:
		return !v.Quoted && v.Text == ""
	case List:
		for _, e := range v.Elems {
			if !IsBlank(e) {
				return false
			}
		}
		return true
	case ArgList:
		return IsBlank(List{Elems: v.Elems})
	}
	return false
}

// IsEmptyList reports whether v is a list with no elements.
func IsEmptyList(v Value) bool {
	l, ok := v.(List)
	return ok && len(l.Elems) == 0
}

// WithoutSlash strips the slash pair from a number; other values pass
// through unchanged. HadSlash tells callers whether a deprecation warning
// is due.
func WithoutSlash(v Value) Value {
	if n, ok := v.(Number); ok && n.AsSlash != nil {
		n.AsSlash = nil
		return n
	}
	return v
}

// HadSlash reports whether v is a number carrying a slash pair.
func HadSlash(v Value) bool {
	n, ok := v.(Number)
	return ok && n.AsSlash != nil
}

// Equal is deep value equality. Numbers with comparable units compare
// after conversion; quoting is ignored for strings, per the language.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Null:
		return IsNull(b)
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Str:
		bs, ok := b.(Str)
		return ok && a.Text == bs.Text
	case Number:
		bn, ok := b.(Number)
		if !ok {
			return false
		}
		if a.Unit == bn.Unit {
			return a.Value == bn.Value
		}
		converted, err := Convert(bn, a.Unit)
		if err != nil {
			return false
		}
		return a.Value == converted.Value
	case Color:
		bc, ok := b.(Color)
		return ok && strings.EqualFold(a.Hex, bc.Hex)
	case List:
		bl, ok := b.(List)
		if !ok || len(a.Elems) != len(bl.Elems) || a.Separator != bl.Separator {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], bl.Elems[i]) {
				return false
			}
		}
		return true
	case Map:
		bm, ok := b.(Map)
		if !ok || len(a.Pairs) != len(bm.Pairs) {
			return false
		}
		for _, p := range a.Pairs {
			v, found := bm.Get(p.Key)
			if !found || !Equal(p.Value, v) {
				return false
			}
		}
		return true
	case ArgList:
		return Equal(List{Elems: a.Elems, Separator: a.Separator}, b)
	}
	return false
}

// TypeName returns the language-level type name of a value.
func TypeName(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Str:
		return "string"
	case Number:
		return "number"
	case List:
		return "list"
	case Map:
		return "map"
	case ArgList:
		return "arglist"
	case Color:
		return "color"
	}
	return fmt.Sprintf("%T", v)
}
