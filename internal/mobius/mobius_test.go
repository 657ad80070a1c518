package mobius

import (
	"math"
	"testing"

	"github.com/irfansharif/hypertile/internal/geom"
)

const tol = 1e-9

func nearPt(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestFromTripleCanonicalImages(t *testing.T) {
	tests := []struct {
		name    string
		p, q, r geom.Point
	}{
		{"real axis", geom.MakePoint(-2, 0), geom.MakePoint(0.5, 0), geom.MakePoint(3, 0)},
		{"generic", geom.MakePoint(0.2, 0.7), geom.MakePoint(-0.4, 0.1), geom.MakePoint(0.6, -0.3)},
		{"unit circle", geom.Versor(2.1), geom.Versor(0.4), geom.Versor(-1.3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := FromTripleDefault(tc.p, tc.q, tc.r)
			if got := tr.Apply(tc.p, false); !nearPt(got, geom.MakePoint(-1, 0)) {
				t.Errorf("P maps to %v, want (-1,0)", got)
			}
			if got := tr.Apply(tc.q, false); !nearPt(got, geom.Point{}) {
				t.Errorf("Q maps to %v, want (0,0)", got)
			}
			if got := tr.Apply(tc.r, false); !nearPt(got, geom.MakePoint(1, 0)) {
				t.Errorf("R maps to %v, want (1,0)", got)
			}
		})
	}
}

func TestFromTripleUnimodular(t *testing.T) {
	tr := FromTripleDefault(
		geom.MakePoint(0.2, 0.7), geom.MakePoint(-0.4, 0.1), geom.MakePoint(0.6, -0.3),
	)
	det := tr.A.Mul(tr.D).Sub(tr.B.Mul(tr.C))
	if !nearPt(det, geom.MakePoint(1, 0)) {
		t.Errorf("AD-BC = %v, want 1", det)
	}
}

func TestBranchesAgree(t *testing.T) {
	p := geom.MakePoint(0.3, 0.2)
	q := geom.MakePoint(-0.1, 0.5)
	r := geom.MakePoint(0.7, -0.4)
	t0 := FromTriple(p, q, r, 0)
	t1 := FromTriple(p, q, r, 1)
	// Both branches define the same map even though the coefficients differ
	// by a global sign.
	for _, z := range []geom.Point{geom.MakePoint(0.1, 0.1), geom.MakePoint(-0.6, 0.2)} {
		if !nearPt(t0.Apply(z, false), t1.Apply(z, false)) {
			t.Errorf("branches disagree at %v", z)
		}
	}
	if nearPt(t0.A, t1.A) {
		t.Error("expected the two branches to carry different coefficients")
	}
}

func TestRoundTrip(t *testing.T) {
	tr := FromTripleDefault(
		geom.Versor(2.1), geom.MakePoint(0.15, -0.2), geom.Versor(-0.7),
	)
	probes := []geom.Point{
		geom.MakePoint(0.3, 0.4),
		geom.MakePoint(-0.8, 0.1),
		geom.MakePoint(0, -0.55),
		geom.MakePoint(0.01, 0.01),
	}
	for _, z := range probes {
		fwd := tr.Apply(tr.Apply(z, false), true)
		if !nearPt(fwd, z) {
			t.Errorf("inverse∘forward at %v = %v", z, fwd)
		}
		bwd := tr.Apply(tr.Apply(z, true), false)
		if !nearPt(bwd, z) {
			t.Errorf("forward∘inverse at %v = %v", z, bwd)
		}
	}
}

func TestReflect(t *testing.T) {
	// Reflecting across the real axis itself (identity-frame transform) is
	// plain conjugation.
	tr := FromTripleDefault(geom.MakePoint(-1, 0), geom.Point{}, geom.MakePoint(1, 0))
	z := geom.MakePoint(0.3, 0.4)
	if got := tr.Reflect(z); !nearPt(got, z.Conj()) {
		t.Errorf("got %v, want %v", got, z.Conj())
	}

	// Reflection is an involution for any frame.
	tr = FromTripleDefault(geom.Versor(1.0), geom.MakePoint(0.2, 0.1), geom.Versor(-2.0))
	if got := tr.Reflect(tr.Reflect(z)); !nearPt(got, z) {
		t.Errorf("double reflection of %v = %v", z, got)
	}

	// Points on the mirror stay put.
	fixed := geom.MakePoint(0.2, 0.1)
	if got := tr.Reflect(fixed); !nearPt(got, fixed) {
		t.Errorf("mirror point moved to %v", got)
	}
}
