package value

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"
)

// Absolute length units are convertible among each other. The ratios come
// from the typesetting dimension constants, which express every absolute
// unit in the same base (scaled points).
var absoluteLength = map[string]float64{
	"px": float64(dimen.PX),
	"pt": float64(dimen.PT),
	"mm": float64(dimen.MM),
	"cm": float64(dimen.CM),
	"in": float64(dimen.IN),
	"pc": float64(12 * dimen.PT),
	"q":  float64(dimen.MM) / 4,
}

// Comparable reports whether numbers in unit a can be converted to unit b.
// A unitless number is comparable with anything.
func Comparable(a, b string) bool {
	if a == "" || b == "" || a == b {
		return true
	}
	_, oka := absoluteLength[a]
	_, okb := absoluteLength[b]
	return oka && okb
}

// Convert returns n expressed in the given unit, or an error if the units
// are incomparable. Unitless numbers adopt the target unit unchanged.
func Convert(n Number, unit string) (Number, error) {
	if n.Unit == unit || unit == "" {
		return n, nil
	}
	if n.Unit == "" {
		return Number{Value: n.Value, Unit: unit}, nil
	}
	from, okf := absoluteLength[n.Unit]
	to, okt := absoluteLength[unit]
	if !okf || !okt {
		return Number{}, fmt.Errorf("incompatible units %s and %s", n.Unit, unit)
	}
	return Number{Value: n.Value * from / to, Unit: unit}, nil
}
