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
	"strconv"
	"strings"
)

// Precision is the number of decimal digits kept when numbers are
// rendered to CSS.
const Precision = 10

// ToCSS renders a value as CSS text. Values that cannot appear in CSS
// (null outside a preserved empty list, maps, argument lists with
// keywords) yield an error.
func ToCSS(v Value) (string, error) {
	switch v := v.(type) {
	case Null:
		return "", fmt.Errorf("null isn't a valid CSS value")
	case Bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case Str:
		if v.Quoted {
			return quote(v.Text), nil
		}
		return v.Text, nil
	case Number:
		if v.AsSlash != nil {
			num, err := ToCSS(v.AsSlash.Numerator)
			if err != nil {
				return "", err
			}
			den, err := ToCSS(v.AsSlash.Denominator)
			if err != nil {
				return "", err
			}
			return num + "/" + den, nil
		}
		return FormatNumber(v), nil
	case Color:
		return v.Hex, nil
	case List:
		if len(v.Elems) == 0 && !v.Brackets {
			return "", fmt.Errorf("() isn't a valid CSS value")
		}
		parts := make([]string, 0, len(v.Elems))
		for _, e := range v.Elems {
			if IsNull(e) {
				continue
			}
			s, err := ToCSS(e)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		joined := strings.Join(parts, v.Separator.String())
		if v.Brackets {
			return "[" + joined + "]", nil
		}
		return joined, nil
	case ArgList:
		return ToCSS(List{Elems: v.Elems, Separator: v.Separator})
	case Map:
		return "", fmt.Errorf("maps may not be used as CSS values")
	}
	return "", fmt.Errorf("cannot serialize %s", TypeName(v))
}

// Inspect renders a value the way @debug and error messages show it:
// null is spelled out, strings keep their quotes, maps are rendered.
func Inspect(v Value) string {
	switch v := v.(type) {
	case Null:
		return "null"
	case Str:
		if v.Quoted {
			return quote(v.Text)
		}
		return v.Text
	case Map:
		parts := make([]string, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			parts = append(parts, Inspect(p.Key)+": "+Inspect(p.Value))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case List:
		if len(v.Elems) == 0 && !v.Brackets {
			return "()"
		}
		parts := make([]string, 0, len(v.Elems))
		for _, e := range v.Elems {
			parts = append(parts, Inspect(e))
		}
		joined := strings.Join(parts, v.Separator.String())
		if v.Brackets {
			return "[" + joined + "]"
		}
		return joined
	case ArgList:
		return Inspect(List{Elems: v.Elems, Separator: v.Separator})
	default:
		s, err := ToCSS(v)
		if err != nil {
			return TypeName(v)
		}
		return s
	}
}

// FormatNumber renders a number with its unit, rounded to Precision
// digits with trailing zeros trimmed.
func FormatNumber(n Number) string {
	rounded := roundTo(n.Value, Precision)
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	// CSS drops the integer zero of fractions: 0.5 -> .5
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-0.") {
		s = "-" + s[2:]
	}
	return s + n.Unit
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}

func quote(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
