// Package tiling derives the complete fundamental-domain geometry for a
// regular hyperbolic tiling {p,q} in the Poincaré disk.
//
// The construction works in several stages:
//   - Solve the hyperbolic trigonometry of the (2,p,q) triangle: the
//     inversion circle realizing reflection across the polygon edge, and the
//     triangle vertices V0 (disk center), V1 (edge midpoint), V2 (polygon
//     vertex).
//   - Build, per triangle edge, the Möbius transform carrying that edge onto
//     the real axis, and displace a canonical thickening point through it to
//     fit the "thick edge" circle for that side.
//   - Blend adjacent thick edges with enlarged rounding circles at each
//     vertex, via double reflection of a seed point across the adjoining
//     edge transforms.
//   - Place the ornament motif points at each corner, and the auxiliary
//     circle used by the rotating-snakes layout.
//
// The output Descriptor is a pure function of (p, q, edgeThickness): it is
// recomputed wholesale on any parameter change and never patched.
package tiling

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/mobius"
)

// Fixed ratios of the corner ornament motif: the outer point sits at
// 4·edgeThickness along the edge axis, the inner point at 0.6 of that radius
// and 0.6 of the corner angle.
const (
	ornamentReach      = 4.0
	ornamentAngleRatio = 0.6
	ornamentRadixRatio = 0.6
)

// InvalidTilingError reports a Schläfli pair that does not satisfy the
// hyperbolic condition (p−2)(q−2) > 4.
type InvalidTilingError struct {
	P, Q int
}

func (e *InvalidTilingError) Error() string {
	return fmt.Sprintf("invalid tiling {%d,%d}: need p,q ≥ 3 and (p-2)(q-2) > 4", e.P, e.Q)
}

// DegenerateGeometryError reports a circle construction that collapsed
// mid-derivation. This is unreachable for valid (p,q) inputs and indicates a
// broken invariant, not a recoverable condition.
type DegenerateGeometryError struct {
	Stage string
	Err   error
}

func (e *DegenerateGeometryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("degenerate geometry at %s", e.Stage)
	}
	return fmt.Sprintf("degenerate geometry at %s: %v", e.Stage, e.Err)
}

func (e *DegenerateGeometryError) Unwrap() error { return e.Err }

// Descriptor is the generator's single output: every point and circle the
// per-pixel classifier needs to render the tiling. V0 is always the origin;
// V1 and V2 lie strictly inside the unit disk.
type Descriptor struct {
	P             int
	Q             int
	EdgeThickness float64

	// Canonical reduction primitives: the inversion circle realizing
	// reflection across the polygon edge, and the unit normal of the
	// reflection line bounding the fundamental wedge at angle π/p.
	InvCen geom.Point
	InvRad float64
	RefNrm geom.Point

	// Fundamental triangle vertices.
	V0, V1, V2 geom.Point

	// Ornament motif points: the pair (D, E) at V0, two mirrored pairs at
	// V1, and one pair at V2.
	D, E     geom.Point
	D1, E1   geom.Point
	D1p, E1p geom.Point
	D2, E2   geom.Point

	// Thick-edge circles, one per triangle side (V0V1, V1V2, V2V0).
	Edge01, Edge12, Edge20 geom.Circle

	// Enlarged rounding circles blending adjacent thick edges at each
	// vertex. V1's comes from the in-triangle crossing of its two adjacent
	// thick-edge circles; V0's and V2's are anchored at the vertices
	// themselves and apply when only one adjacent edge is thickened.
	V0Enlarged, V1Enlarged, V2Enlarged geom.Circle

	// Auxiliary circle through V1 and its double reflection, used only by
	// the rotating-snakes radial layout.
	C2RotSnakes geom.Circle

	// Canonical edge transforms (edge → real axis, unimodular). Retained so
	// consumers can verify Möbius symmetry and map points between frames.
	T01, T12, T20 mobius.Transform
}

// OrnamentTriangles returns the four corner-motif triangles in classifier
// priority order.
func (d *Descriptor) OrnamentTriangles() [4][3]geom.Point {
	return [4][3]geom.Point{
		{d.V0, d.D, d.E},
		{d.V1, d.D1, d.E1},
		{d.V1, d.D1p, d.E1p},
		{d.V2, d.D2, d.E2},
	}
}

// EdgeCircles returns the three thick-edge circles.
func (d *Descriptor) EdgeCircles() [3]geom.Circle {
	return [3]geom.Circle{d.Edge01, d.Edge12, d.Edge20}
}

// VertexCircles returns the three enlarged rounding circles.
func (d *Descriptor) VertexCircles() [3]geom.Circle {
	return [3]geom.Circle{d.V0Enlarged, d.V1Enlarged, d.V2Enlarged}
}

// Valid reports whether (p,q) describes a hyperbolic tiling:
// p,q ≥ 3 and (p−2)(q−2) > 4.
func Valid(p, q int) bool {
	return p >= 3 && q >= 3 && (p-2)*(q-2) > 4
}

// Generate derives the full tiling descriptor for the Schläfli symbol {p,q}
// with the given edge thickness. It fails with *InvalidTilingError when the
// hyperbolic condition does not hold, and with *DegenerateGeometryError if
// an internal circle construction collapses (unreachable for valid inputs,
// checked defensively).
func Generate(p, q int, edgeThickness float64) (Descriptor, error) {
	if !Valid(p, q) {
		return Descriptor{}, &InvalidTilingError{P: p, Q: q}
	}
	if edgeThickness <= 0 {
		return Descriptor{}, fmt.Errorf("edge thickness must be positive, got %v", edgeThickness)
	}

	alpha := math.Pi / float64(p)
	beta := math.Pi / float64(q)

	// Euclidean distance from the disk center to the polygon vertex, via
	// cosh(dist) = cot(α)·cot(β) rewritten in half-tangent form.
	cotB := math.Cos(beta) / math.Sin(beta)
	tanA := math.Tan(alpha)
	rSide := math.Sqrt((cotB - tanA) / (cotB + tanA))

	// Inversion circle: center on the real axis, orthogonal to the unit
	// circle, passing through rSide·versor(α).
	dist := (rSide*rSide + 1) / (2 * rSide * math.Cos(alpha))
	invRad := math.Sqrt(dist*dist - 1)
	invCen := geom.MakePoint(dist, 0)

	v0 := geom.Point{}
	v1 := geom.MakePoint(dist-invRad, 0)
	v2, ok := geom.IntersectCircleWithOriginLine(invCen, invRad, geom.Versor(alpha))
	if !ok {
		return Descriptor{}, &DegenerateGeometryError{Stage: "V2 ray intersection"}
	}

	desc := Descriptor{
		P:             p,
		Q:             q,
		EdgeThickness: edgeThickness,
		InvCen:        invCen,
		InvRad:        invRad,
		RefNrm:        geom.MakePoint(-math.Sin(alpha), math.Cos(alpha)),
		V0:            v0,
		V1:            v1,
		V2:            v2,
	}

	// Ideal endpoints of each edge's geodesic. The V0V1 and V2V0 edges are
	// diameters with endpoints on the unit circle directly; the V1V2 edge's
	// endpoints come from intersecting the inversion circle with the unit
	// circle.
	i01a, i01b := geom.MakePoint(-1, 0), geom.MakePoint(1, 0)
	i20a, i20b := geom.Versor(alpha).Neg(), geom.Versor(alpha)
	ideals := geom.CircleCircleIntersections(invCen, invRad, geom.Point{}, 1)
	if len(ideals) != 2 {
		return Descriptor{}, &DegenerateGeometryError{Stage: "inversion circle ideal points"}
	}
	sort.Slice(ideals, func(i, j int) bool { return ideals[i].Y > ideals[j].Y })

	// Canonical edge transforms, oriented so the opposite vertex lands in
	// the upper half of the frame (thickening then bulges into the
	// triangle).
	desc.T01 = orientedEdge(i01a, v0, i01b, v2)
	desc.T12 = orientedEdge(ideals[0], v1, ideals[1], v0)
	desc.T20 = orientedEdge(i20a, v0, i20b, v1)

	var err error
	if desc.Edge01, err = thickEdgeCircle(desc.T01, i01a, i01b, edgeThickness); err != nil {
		return Descriptor{}, err
	}
	if desc.Edge12, err = thickEdgeCircle(desc.T12, ideals[0], ideals[1], edgeThickness); err != nil {
		return Descriptor{}, err
	}
	if desc.Edge20, err = thickEdgeCircle(desc.T20, i20a, i20b, edgeThickness); err != nil {
		return Descriptor{}, err
	}

	if desc.V1Enlarged, err = crossingEnlargedCircle(&desc); err != nil {
		return Descriptor{}, err
	}
	if desc.V0Enlarged, err = vertexEnlargedCircle(v0, desc.T01, desc.T20, edgeThickness); err != nil {
		return Descriptor{}, err
	}
	if desc.V2Enlarged, err = vertexEnlargedCircle(v2, desc.T20, desc.T12, edgeThickness); err != nil {
		return Descriptor{}, err
	}

	desc.D, desc.E = ornamentPair(v0, v1, desc.T01, alpha, edgeThickness)
	desc.D1, desc.E1 = ornamentPair(v1, v0, desc.T01, math.Pi/2, edgeThickness)
	desc.D1p, desc.E1p = ornamentPair(v1, v2, desc.T12, math.Pi/2, edgeThickness)
	desc.D2, desc.E2 = ornamentPair(v2, v0, desc.T20, beta, edgeThickness)

	// Rotating-snakes circle: V1 reflected across the V2V0 edge, then that
	// image reflected across the V1V2 edge, circumscribed with V1 itself.
	v1a := desc.T20.Reflect(v1)
	v1b := desc.T12.Reflect(v1a)
	snakes, err := geom.CircleFrom3Points(v1, v1a, v1b)
	if err != nil {
		return Descriptor{}, &DegenerateGeometryError{Stage: "rotating-snakes circle", Err: err}
	}
	desc.C2RotSnakes = snakes

	return desc, nil
}

// orientedEdge builds the canonical transform for an edge with ideal
// endpoints ia/ib and on-edge anchor q, flipping the endpoint order if
// needed so that the opposite triangle vertex maps to Im > 0.
func orientedEdge(ia, q, ib, opposite geom.Point) mobius.Transform {
	t := mobius.FromTripleDefault(ia, q, ib)
	if t.Apply(opposite, false).Y < 0 {
		t = mobius.FromTripleDefault(ib, q, ia)
	}
	return t
}

// thickEdgeCircle displaces the canonical thickening point (0, t) back
// through the edge transform and fits a circle through it and the edge's
// ideal endpoints. Points between this circle and the edge geodesic render
// as the widened edge.
func thickEdgeCircle(t mobius.Transform, ia, ib geom.Point, thickness float64) (geom.Circle, error) {
	displaced := t.Apply(geom.MakePoint(0, thickness), true)
	c, err := geom.CircleFrom3Points(ia, ib, displaced)
	if err != nil {
		return geom.Circle{}, &DegenerateGeometryError{Stage: "thick-edge circle", Err: err}
	}
	return c, nil
}

// crossingEnlargedCircle rounds the corner at V1: the two adjacent
// thick-edge circles cross inside the fundamental triangle; that crossing,
// together with its reflections across both adjoining edges, determines the
// blending circle.
func crossingEnlargedCircle(d *Descriptor) (geom.Circle, error) {
	pts := geom.CircleCircleIntersections(
		d.Edge01.Center, d.Edge01.Radius,
		d.Edge12.Center, d.Edge12.Radius,
	)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Y > pts[j].Y })

	var seed geom.Point
	found := false
	for _, pt := range pts {
		if geom.IsInsideTriangle(pt, d.V0, d.V1, d.V2) {
			seed = pt
			found = true
			break
		}
	}
	if !found {
		return geom.Circle{}, &DegenerateGeometryError{Stage: "V1 thick-edge crossing"}
	}

	r1 := d.T01.Reflect(seed)
	r2 := d.T12.Reflect(seed)
	c, err := geom.CircleFrom3Points(seed, r1, r2)
	if err != nil {
		return geom.Circle{}, &DegenerateGeometryError{Stage: "V1 enlarged circle", Err: err}
	}
	return c, nil
}

// bandHeight is the height of the canonical thick-edge circle (through
// (-1,0), (1,0), (0,t)) above the real axis at station x. At x=0 this is
// exactly t.
func bandHeight(x, t float64) (float64, error) {
	cy := (t*t - 1) / (2 * t)
	r := (t*t + 1) / (2 * t)
	s := r*r - x*x
	if s < 0 {
		return 0, fmt.Errorf("station %v outside canonical band (radius %v)", x, r)
	}
	return cy + math.Sqrt(s), nil
}

// vertexEnlargedCircle rounds a corner anchored at the vertex itself: seed
// the exact thick-band height over the vertex's station in the primary
// edge's frame, then reflect across both adjoining edges. The resulting
// circle meets the thick edge with no gap or overlap, and is the one used
// when only one edge at the vertex is thickened.
func vertexEnlargedCircle(v geom.Point, te, tf mobius.Transform, thickness float64) (geom.Circle, error) {
	w := te.Apply(v, false)
	h, err := bandHeight(w.X, thickness)
	if err != nil {
		return geom.Circle{}, &DegenerateGeometryError{Stage: "vertex band height", Err: err}
	}
	seed := te.Apply(geom.MakePoint(w.X, h), true)
	r1 := te.Reflect(seed)
	r2 := tf.Reflect(seed)
	c, err := geom.CircleFrom3Points(seed, r1, r2)
	if err != nil {
		return geom.Circle{}, &DegenerateGeometryError{Stage: "vertex enlarged circle", Err: err}
	}
	return c, nil
}

// ornamentPair places the corner motif (D, E) at vertex v: D at
// 4·thickness along the edge axis toward the edge's other vertex, E at 0.6
// of D's radius with the polar angle interpolated 0.6 of the way into the
// corner of angle gamma. The canonical motif is carried to the vertex by a
// hyperbolic translation along the real axis of the edge frame, so the
// construction at V0 (identity frame) reduces to the literal formulas.
func ornamentPair(v, other geom.Point, te mobius.Transform, gamma, thickness float64) (geom.Point, geom.Point) {
	w := te.Apply(v, false)
	dir := 1.0
	if te.Apply(other, false).X < w.X {
		dir = -1
	}

	place := func(m geom.Point) geom.Point {
		if dir < 0 {
			m = geom.MakePoint(-m.X, m.Y)
		}
		// Disk automorphism z ↦ (z+w)/(1+wz) for real w translates the
		// motif from the frame origin to the vertex station.
		wre := geom.MakePoint(w.X, 0)
		z := m.Add(wre).Div(geom.MakePoint(1, 0).Add(wre.Mul(m)))
		return te.Apply(z, true)
	}

	reach := ornamentReach * thickness
	d := place(geom.MakePoint(reach, 0))
	e := place(geom.Versor(ornamentAngleRatio * gamma).Scale(ornamentRadixRatio * reach))
	return d, e
}

// AsInvalidTiling reports whether err is an invalid-tiling rejection.
func AsInvalidTiling(err error) bool {
	var ite *InvalidTilingError
	return errors.As(err, &ite)
}
