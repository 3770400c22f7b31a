package swh

import (
	"fmt"
	"math"
)

// Reynolds number regime boundaries.
const (
	LaminarLimit   = 2100.0
	TurbulentLimit = 4000.0
)

// FrictionFactor returns the Darcy-Weisbach friction factor for a full
// circular pipe.
//
//   - Re <= 2100: laminar, 64/Re.
//   - 2100 < Re <= 4000: linear in Re between the laminar value at 2100 and
//     the Serghide value at 4000.
//   - Re > 4000: Serghide's explicit approximation of Colebrook-White.
//
// Returns ErrDomain when re is not a positive finite number or relRough is
// negative or non-finite.
func FrictionFactor(re, relRough float64) (float64, error) {
	if math.IsNaN(re) || math.IsInf(re, 0) || re <= 0 {
		return 0, fmt.Errorf("%w: reynolds number %v", ErrDomain, re)
	}
	if math.IsNaN(relRough) || math.IsInf(relRough, 0) || relRough < 0 {
		return 0, fmt.Errorf("%w: relative roughness %v", ErrDomain, relRough)
	}

	switch {
	case re <= LaminarLimit:
		return 64 / re, nil
	case re <= TurbulentLimit:
		flam := 64 / LaminarLimit
		fturb := serghide(TurbulentLimit, relRough)
		return flam + (fturb-flam)*(re-LaminarLimit)/(TurbulentLimit-LaminarLimit), nil
	default:
		return serghide(re, relRough), nil
	}
}

func serghide(re, relRough float64) float64 {
	r := relRough / 3.7
	a := -2 * math.Log10(r+12/re)
	b := -2 * math.Log10(r+2.51*a/re)
	c := -2 * math.Log10(r+2.51*b/re)
	d := a - (b-a)*(b-a)/(c-2*b+a)
	return 1 / (d * d)
}
