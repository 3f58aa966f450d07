package value

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"math"
)

// The binary helpers below implement the value-level semantics the
// expression evaluator delegates to. They know nothing about spans; the
// evaluator attaches locations to the errors they return.

// Add implements `+`. Numbers add with unit reconciliation; a string
// operand concatenates (the result keeps the quoting of the string side).
func Add(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			converted, err := Convert(bn, an.Unit)
			if err != nil {
				return nil, err
			}
			unit := an.Unit
			if unit == "" {
				unit = bn.Unit
			}
			return Number{Value: an.Value + converted.Value, Unit: unit}, nil
		}
	}
	if as, ok := a.(Str); ok {
		text, err := concatOperand(b)
		if err != nil {
			return nil, err
		}
		return Str{Text: as.Text + text, Quoted: as.Quoted}, nil
	}
	if bs, ok := b.(Str); ok {
		text, err := concatOperand(a)
		if err != nil {
			return nil, err
		}
		return Str{Text: text + bs.Text, Quoted: bs.Quoted}, nil
	}
	if IsNull(a) || IsNull(b) {
		return nil, typeError("+", a, b)
	}
	// Remaining combinations concatenate their CSS renderings unquoted.
	left, err := ToCSS(a)
	if err != nil {
		return nil, err
	}
	right, err := ToCSS(b)
	if err != nil {
		return nil, err
	}
	return Str{Text: left + right}, nil
}

// Sub implements `-` on numbers; other combinations render with a hyphen,
// matching the language's treatment of `a - b` for non-numbers.
func Sub(a, b Value) (Value, error) {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			converted, err := Convert(bn, an.Unit)
			if err != nil {
				return nil, err
			}
			unit := an.Unit
			if unit == "" {
				unit = bn.Unit
			}
			return Number{Value: an.Value - converted.Value, Unit: unit}, nil
		}
	}
	if IsNull(a) || IsNull(b) {
		return nil, typeError("-", a, b)
	}
	left, err := ToCSS(a)
	if err != nil {
		return nil, err
	}
	right, err := ToCSS(b)
	if err != nil {
		return nil, err
	}
	return Str{Text: left + "-" + right}, nil
}

// Mul implements `*`; defined on numbers only, and at most one operand
// may carry a unit.
func Mul(a, b Value) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if !aok || !bok {
		return nil, typeError("*", a, b)
	}
	if an.Unit != "" && bn.Unit != "" {
		return nil, fmt.Errorf("%s*%s isn't a valid CSS value", FormatNumber(an), FormatNumber(bn))
	}
	unit := an.Unit
	if unit == "" {
		unit = bn.Unit
	}
	return Number{Value: an.Value * bn.Value, Unit: unit}, nil
}

// Div implements `/`. Number pairs divide (equal units cancel); any other
// combination renders both sides joined by a slash, the plain-CSS reading.
func Div(a, b Value) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if aok && bok {
		if bn.Value == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		unit := an.Unit
		switch {
		case an.Unit == bn.Unit:
			unit = ""
		case bn.Unit == "":
			// keep numerator unit
		case an.Unit == "":
			return nil, fmt.Errorf("incompatible units: cannot divide unitless by %s", bn.Unit)
		default:
			converted, err := Convert(bn, an.Unit)
			if err != nil {
				return nil, err
			}
			bn = converted
			unit = ""
		}
		return Number{Value: an.Value / bn.Value, Unit: unit}, nil
	}
	left, err := ToCSS(a)
	if err != nil {
		return nil, err
	}
	right, err := ToCSS(b)
	if err != nil {
		return nil, err
	}
	return Str{Text: left + "/" + right}, nil
}

// Rem implements `%` on numbers, with the remainder taking the sign of
// the right operand as in the language.
func Rem(a, b Value) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if !aok || !bok {
		return nil, typeError("%", a, b)
	}
	converted, err := Convert(bn, an.Unit)
	if err != nil {
		return nil, err
	}
	if converted.Value == 0 {
		return nil, fmt.Errorf("modulo by zero")
	}
	rem := math.Mod(an.Value, converted.Value)
	if rem != 0 && (rem < 0) != (converted.Value < 0) {
		rem += converted.Value
	}
	unit := an.Unit
	if unit == "" {
		unit = bn.Unit
	}
	return Number{Value: rem, Unit: unit}, nil
}

// Compare implements `<`, `<=`, `>`, `>=` on numbers with unit
// conversion. The op argument uses the conventions of the ast package
// ("<", "<=", ">", ">=").
func Compare(a, b Value, op string) (Value, error) {
	an, aok := a.(Number)
	bn, bok := b.(Number)
	if !aok || !bok {
		return nil, typeError(op, a, b)
	}
	converted, err := Convert(bn, an.Unit)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op {
	case "<":
		result = an.Value < converted.Value
	case "<=":
		result = an.Value <= converted.Value
	case ">":
		result = an.Value > converted.Value
	case ">=":
		result = an.Value >= converted.Value
	default:
		return nil, fmt.Errorf("unknown comparison %q", op)
	}
	return Bool(result), nil
}

// SingleEq implements `=` as it appears inside supports declarations:
// both sides render to CSS joined by `=`.
func SingleEq(a, b Value) (Value, error) {
	left, err := ToCSS(a)
	if err != nil {
		return nil, err
	}
	right, err := ToCSS(b)
	if err != nil {
		return nil, err
	}
	return Str{Text: left + "=" + right}, nil
}

// Neg implements unary `-`.
func Neg(v Value) (Value, error) {
	switch v := v.(type) {
	case Number:
		return Number{Value: -v.Value, Unit: v.Unit}, nil
	default:
		s, err := ToCSS(v)
		if err != nil {
			return nil, err
		}
		return Str{Text: "-" + s}, nil
	}
}

// Plus implements unary `+`: numbers pass through, everything else
// renders prefixed with `+`.
func Plus(v Value) (Value, error) {
	if _, ok := v.(Number); ok {
		return v, nil
	}
	s, err := ToCSS(v)
	if err != nil {
		return nil, err
	}
	return Str{Text: "+" + s}, nil
}

// SlashPrefix implements unary `/`.
func SlashPrefix(v Value) (Value, error) {
	s, err := ToCSS(v)
	if err != nil {
		return nil, err
	}
	return Str{Text: "/" + s}, nil
}

// Not implements `not`.
func Not(v Value) Value {
	return Bool(!v.IsTruthy())
}

func typeError(op string, a, b Value) error {
	return fmt.Errorf("undefined operation %q %s %q", Inspect(a), op, Inspect(b))
}

func concatOperand(v Value) (string, error) {
	if s, ok := v.(Str); ok {
		return s.Text, nil
	}
	return ToCSS(v)
}
