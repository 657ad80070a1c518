// Package mobius implements fractional-linear (Möbius) transformations of
// the complex plane, specialized to the canonical form used by the tiling
// generator: the unique transform carrying a triple of points onto
// (-1, 0, +1).
package mobius

import (
	"github.com/irfansharif/hypertile/internal/geom"
)

// Transform holds the four complex coefficients of z ↦ (Az+B)/(Cz+D).
// Transforms built by FromTriple are unimodular (AD−BC = 1), which makes the
// algebraic inverse z ↦ (Dz−B)/(A−Cz) exact.
type Transform struct {
	A, B, C, D geom.Point
}

// FromTriple returns the transform sending p → -1, q → 0, r → +1.
//
// The construction divides all four coefficients by a common denominator
// s = √(2(p−r)(q−p)(q−r)). A complex square root has two branches differing
// by global sign; branch selects which one (0 or 1, as ordered by
// geom.Roots). The two results are algebraically the same map, but circle
// constructions layered on top are tolerance-sensitive, so the branch is
// pinned rather than normalized away. Callers want FromTripleDefault unless
// they need the opposite orientation for a frame.
func FromTriple(p, q, r geom.Point, branch int) Transform {
	two := geom.MakePoint(2, 0)
	s := two.Mul(p.Sub(r)).Mul(q.Sub(p)).Mul(q.Sub(r)).Roots(2)[branch&1]

	a := r.Sub(p).Div(s)
	b := q.Mul(a).Neg()
	c := p.Add(r).Sub(q.Scale(2)).Div(s)
	d := q.Mul(p.Add(r)).Sub(p.Mul(r).Scale(2)).Div(s)
	return Transform{A: a, B: b, C: c, D: d}
}

// FromTripleDefault is FromTriple with the reference branch (k=0, the root
// with argument in [0, π)).
func FromTripleDefault(p, q, r geom.Point) Transform {
	return FromTriple(p, q, r, 0)
}

// Apply evaluates the transform at z: (Az+B)/(Cz+D) forward, or the
// algebraic inverse (Dz−B)/(A−Cz) when inverted is true. For any transform
// the two modes are exact inverses of each other.
func (t Transform) Apply(z geom.Point, inverted bool) geom.Point {
	if inverted {
		num := t.D.Mul(z).Sub(t.B)
		den := t.A.Sub(t.C.Mul(z))
		return num.Div(den)
	}
	num := t.A.Mul(z).Add(t.B)
	den := t.C.Mul(z).Add(t.D)
	return num.Div(den)
}

// Reflect mirrors z across the geodesic that the transform maps to the real
// axis: forward transform, conjugate, inverse transform.
func (t Transform) Reflect(z geom.Point) geom.Point {
	return t.Apply(t.Apply(z, false).Conj(), true)
}
