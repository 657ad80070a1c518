package tiling

import (
	"errors"
	"math"
	"testing"

	"github.com/irfansharif/hypertile/internal/geom"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func onCircle(t *testing.T, c geom.Circle, p geom.Point) {
	t.Helper()
	if d := geom.Dist(c.Center, p); !near(d, c.Radius) {
		t.Errorf("point %v at distance %v from center, radius %v", p, d, c.Radius)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		p, q int
		want bool
	}{
		{7, 3, true},
		{4, 5, true},
		{3, 7, true},
		{5, 5, true},
		{3, 3, false}, // (1)(1) = 1
		{4, 4, false}, // (2)(2) = 4, boundary: Euclidean, not hyperbolic
		{3, 6, false}, // (1)(4) = 4
		{2, 9, false},
		{9, 2, false},
	}
	for _, tc := range tests {
		if got := Valid(tc.p, tc.q); got != tc.want {
			t.Errorf("Valid(%d,%d) = %v, want %v", tc.p, tc.q, got, tc.want)
		}
	}
}

func TestGenerateHermannGrid(t *testing.T) {
	d, err := Generate(4, 5, 0.02)
	if err != nil {
		t.Fatal(err)
	}

	if d.V0 != (geom.Point{}) {
		t.Errorf("V0 = %v, want origin", d.V0)
	}
	if n := d.V1.Norm(); n <= 0 || n >= 1 {
		t.Errorf("|V1| = %v, want in (0,1)", n)
	}
	if n := d.V2.Norm(); n <= 0 || n >= 1 {
		t.Errorf("|V2| = %v, want in (0,1)", n)
	}

	// V2 lies on the α-ray at the polygon-vertex distance.
	alpha := math.Pi / 4
	if !near(d.V2.Arg(), alpha) {
		t.Errorf("V2 argument = %v, want %v", d.V2.Arg(), alpha)
	}

	// The inversion circle is orthogonal to the unit circle and carries V1
	// and V2 on its boundary.
	if !near(d.InvCen.Norm2(), d.InvRad*d.InvRad+1) {
		t.Error("inversion circle not orthogonal to the unit circle")
	}
	inv := geom.MakeCircle(d.InvCen, d.InvRad)
	onCircle(t, inv, d.V1)
	onCircle(t, inv, d.V2)

	// All six decoration circles are non-degenerate; the corner-rounding
	// circles fit inside the disk.
	for i, c := range d.EdgeCircles() {
		if c.Radius <= 0 || math.IsInf(c.Radius, 0) || math.IsNaN(c.Radius) {
			t.Errorf("edge circle %d has radius %v", i, c.Radius)
		}
	}
	for i, c := range d.VertexCircles() {
		if c.Radius <= 0 || c.Radius >= 1 {
			t.Errorf("vertex circle %d has radius %v, want in (0,1)", i, c.Radius)
		}
	}
}

func TestGenerateEdgeBands(t *testing.T) {
	const thickness = 0.02
	d, err := Generate(4, 5, thickness)
	if err != nil {
		t.Fatal(err)
	}

	// The V0V1 band circle passes through the edge's ideal endpoints and
	// the canonical thickening point; its frame is the identity.
	onCircle(t, d.Edge01, geom.MakePoint(-1, 0))
	onCircle(t, d.Edge01, geom.MakePoint(1, 0))
	onCircle(t, d.Edge01, geom.MakePoint(0, thickness))

	// The V2V0 band is the mirror image of the V0V1 band across the
	// bisector of the corner at V0, so the radii agree.
	if !near(d.Edge01.Radius, d.Edge20.Radius) {
		t.Errorf("Edge01 radius %v != Edge20 radius %v", d.Edge01.Radius, d.Edge20.Radius)
	}
	alpha := math.Pi / 4
	onCircle(t, d.Edge20, geom.Versor(alpha))
	onCircle(t, d.Edge20, geom.Versor(alpha).Neg())

	// The V1V2 band shares its ideal endpoints with the inversion circle.
	ideals := geom.CircleCircleIntersections(d.InvCen, d.InvRad, geom.Point{}, 1)
	if len(ideals) != 2 {
		t.Fatal("inversion circle must cross the unit circle twice")
	}
	for _, p := range ideals {
		onCircle(t, d.Edge12, p)
	}
}

func TestGenerateVertexCircles(t *testing.T) {
	const thickness = 0.02
	d, err := Generate(4, 5, thickness)
	if err != nil {
		t.Fatal(err)
	}

	// At V0 the double-reflection construction collapses to the circle of
	// radius edgeThickness about the origin.
	if n := d.V0Enlarged.Center.Norm(); n > tol {
		t.Errorf("V0 circle center %v, want origin", d.V0Enlarged.Center)
	}
	if !near(d.V0Enlarged.Radius, thickness) {
		t.Errorf("V0 circle radius %v, want %v", d.V0Enlarged.Radius, thickness)
	}

	// The other corner circles hug their vertices at the band scale.
	if dist := geom.Dist(d.V1Enlarged.Center, d.V1); dist > 10*thickness {
		t.Errorf("V1 circle center %v too far from V1 %v", d.V1Enlarged.Center, d.V1)
	}
	if dist := geom.Dist(d.V2Enlarged.Center, d.V2); dist > 10*thickness {
		t.Errorf("V2 circle center %v too far from V2 %v", d.V2Enlarged.Center, d.V2)
	}
}

func TestGenerateScintillatingGrid(t *testing.T) {
	d, err := Generate(3, 7, 0.015)
	if err != nil {
		t.Fatal(err)
	}
	if n := d.V1.Norm(); n >= 1 {
		t.Errorf("|V1| = %v, want < 1", n)
	}
	if n := d.V2.Norm(); n >= 1 {
		t.Errorf("|V2| = %v, want < 1", n)
	}
	// All ornament points stay inside the disk.
	pts := []geom.Point{d.D, d.E, d.D1, d.E1, d.D1p, d.E1p, d.D2, d.E2}
	for i, p := range pts {
		if p.Norm() >= 1 {
			t.Errorf("ornament point %d = %v outside the disk", i, p)
		}
	}
}

func TestGenerateRotatingSnakes(t *testing.T) {
	d, err := Generate(5, 5, 0.025)
	if err != nil {
		t.Fatal(err)
	}
	r := d.C2RotSnakes.Radius
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		t.Errorf("snakes circle radius = %v, want finite positive", r)
	}
	onCircle(t, d.C2RotSnakes, d.V1)
}

func TestGenerateOrnaments(t *testing.T) {
	const thickness = 0.02
	d, err := Generate(4, 5, thickness)
	if err != nil {
		t.Fatal(err)
	}

	// The V0 motif is in the canonical frame already: D on the real axis at
	// 4t, E at 0.6 of that radius, 0.6 of the way into the corner angle.
	wantD := geom.MakePoint(4*thickness, 0)
	if geom.Dist(d.D, wantD) > tol {
		t.Errorf("D = %v, want %v", d.D, wantD)
	}
	wantE := geom.Versor(0.6 * math.Pi / 4).Scale(0.6 * 4 * thickness)
	if geom.Dist(d.E, wantE) > tol {
		t.Errorf("E = %v, want %v", d.E, wantE)
	}

	// The corner motifs anchor near their vertices.
	for _, tc := range []struct {
		name   string
		vertex geom.Point
		pts    []geom.Point
	}{
		{"V1", d.V1, []geom.Point{d.D1, d.E1, d.D1p, d.E1p}},
		{"V2", d.V2, []geom.Point{d.D2, d.E2}},
	} {
		for i, p := range tc.pts {
			if dist := geom.Dist(p, tc.vertex); dist > 8*thickness {
				t.Errorf("%s motif point %d at distance %v from vertex", tc.name, i, dist)
			}
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	d, err := Generate(3, 3, 0.02)
	if err == nil {
		t.Fatal("expected error for {3,3}")
	}
	var ite *InvalidTilingError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTilingError, got %T: %v", err, err)
	}
	if ite.P != 3 || ite.Q != 3 {
		t.Errorf("error carries (%d,%d), want (3,3)", ite.P, ite.Q)
	}
	if d != (Descriptor{}) {
		t.Error("failed generation must not return a partial descriptor")
	}
	if !AsInvalidTiling(err) {
		t.Error("AsInvalidTiling(err) = false")
	}
}

func TestGenerateBadThickness(t *testing.T) {
	if _, err := Generate(7, 3, 0); err == nil {
		t.Error("expected error for zero thickness")
	}
	if _, err := Generate(7, 3, -0.1); err == nil {
		t.Error("expected error for negative thickness")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(7, 3, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(7, 3, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("descriptor is not a pure function of its inputs")
	}
}
