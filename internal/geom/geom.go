// Package geom provides the 2D numerical primitives for hyperbolic tiling
// construction:
// - Points treated as complex numbers (field operations, exp, tanh,
//   integer powers and roots)
// - Circles and fallible circle construction from three points
// - Circle-circle and circle-line intersection
// - Barycentric point-in-triangle testing
//
// Everything is a pure function over immutable values. Degeneracies are
// detected against a fixed 1e-12 epsilon rather than surfaced as NaNs.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the degeneracy threshold shared by all constructions in this
// package.
const Epsilon = 1e-12

// Point represents a 2D point, interpreted as the complex number X + iY.
type Point struct {
	X float64
	Y float64
}

// Circle represents a circle by center and radius, radius >= 0.
type Circle struct {
	Center Point
	Radius float64
}

func MakePoint(x, y float64) Point         { return Point{X: x, Y: y} }
func MakeCircle(c Point, r float64) Circle { return Circle{Center: c, Radius: r} }

// Versor returns the unit complex number cos(t) + i sin(t).
func Versor(t float64) Point { return Point{X: math.Cos(t), Y: math.Sin(t)} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Neg() Point            { return Point{-p.X, -p.Y} }

// Conj returns the complex conjugate.
func (p Point) Conj() Point { return Point{p.X, -p.Y} }

// Mul returns the complex product p*q.
func (p Point) Mul(q Point) Point {
	return Point{p.X*q.X - p.Y*q.Y, p.X*q.Y + p.Y*q.X}
}

// Norm2 returns |p|², the squared modulus.
func (p Point) Norm2() float64 { return p.X*p.X + p.Y*p.Y }

// Norm returns |p|.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Arg returns the argument of p in (-π, π].
func (p Point) Arg() float64 { return math.Atan2(p.Y, p.X) }

// Reciprocal returns 1/p. Precondition: |p| > 0; a zero input propagates
// infinities per IEEE semantics, which callers are expected to avoid.
func (p Point) Reciprocal() Point {
	n := p.Norm2()
	return Point{p.X / n, -p.Y / n}
}

// Div returns the complex quotient p/q. Precondition: |q| > 0.
func (p Point) Div(q Point) Point { return p.Mul(q.Reciprocal()) }

// Normalize returns p/|p|. Precondition: |p| > 0.
func (p Point) Normalize() Point { return p.Scale(1 / p.Norm()) }

// Dot returns the Euclidean inner product of p and q as plane vectors.
func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 { return p.Sub(q).Norm() }

// Exp returns e^p = e^X (cos Y + i sin Y).
func (p Point) Exp() Point {
	return Versor(p.Y).Scale(math.Exp(p.X))
}

// Tanh returns the complex hyperbolic tangent (e^{2p}-1)/(e^{2p}+1).
func (p Point) Tanh() Point {
	e := p.Scale(2).Exp()
	one := Point{X: 1}
	return e.Sub(one).Div(e.Add(one))
}

// Pow returns p^n for integer n >= 0, via the polar form r^n·versor(nθ).
func (p Point) Pow(n int) Point {
	r := math.Pow(p.Norm(), float64(n))
	return Versor(float64(n) * p.Arg()).Scale(r)
}

// Roots returns the n distinct n-th roots of p, ordered by branch:
// r^{1/n}·versor((θ+2kπ)/n) for k = 0..n-1. Precondition: n > 0.
func (p Point) Roots(n int) []Point {
	r := math.Pow(p.Norm(), 1/float64(n))
	theta := p.Arg()
	roots := make([]Point, n)
	for k := 0; k < n; k++ {
		roots[k] = Versor((theta + 2*math.Pi*float64(k)) / float64(n)).Scale(r)
	}
	return roots
}

// CircleFrom3Points returns the circle through the three given points.
// Returns an error if the points are collinear (system determinant below
// Epsilon), rather than a garbage circle.
func CircleFrom3Points(p1, p2, p3 Point) (Circle, error) {
	// Circumcenter as the solution of the 2x2 system equating squared
	// distances to p1/p2 and p1/p3.
	ax := 2 * (p2.X - p1.X)
	ay := 2 * (p2.Y - p1.Y)
	bx := 2 * (p3.X - p1.X)
	by := 2 * (p3.Y - p1.Y)
	det := ax*by - ay*bx
	if math.Abs(det) < Epsilon {
		return Circle{}, fmt.Errorf("collinear points %v, %v, %v (determinant ≈ 0)", p1, p2, p3)
	}

	c1 := p2.Norm2() - p1.Norm2()
	c2 := p3.Norm2() - p1.Norm2()
	center := Point{
		X: (c1*by - c2*ay) / det,
		Y: (ax*c2 - bx*c1) / det,
	}
	return Circle{Center: center, Radius: Dist(center, p1)}, nil
}

// CircleCircleIntersections returns the intersection points of two circles:
// zero points when the circles are separate, one contained in the other, or
// coincident; one point at tangency; two points otherwise. No ordering is
// guaranteed on the returned pair.
func CircleCircleIntersections(c1 Point, r1 float64, c2 Point, r2 float64) []Point {
	d := Dist(c1, c2)
	if d < Epsilon {
		return nil // coincident (or identical) centers
	}
	if d > r1+r2 {
		return nil // separate
	}
	if d < math.Abs(r1-r2) {
		return nil // one inside the other
	}

	// Chord midpoint along the center line, then perpendicular offset.
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0 // numerical tangency
	}
	h := math.Sqrt(h2)

	mid := c1.Add(c2.Sub(c1).Scale(a / d))
	if h < Epsilon {
		return []Point{mid}
	}

	perp := Point{-(c2.Y - c1.Y), c2.X - c1.X}.Scale(h / d)
	return []Point{mid.Add(perp), mid.Sub(perp)}
}

// IsInsideTriangle reports whether p lies inside the triangle abc, boundary
// included (all barycentric coordinates >= 0). Returns false for degenerate
// triangles.
func IsInsideTriangle(p, a, b, c Point) bool {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if math.Abs(denom) < Epsilon {
		return false // degenerate triangle
	}
	w1 := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / denom
	w2 := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / denom
	w3 := 1 - w1 - w2
	return w1 >= 0 && w2 >= 0 && w3 >= 0
}

// IntersectCircleWithOriginLine intersects a circle with the line through the
// origin whose normal is (direction.Y, -direction.X), i.e. the line spanned
// by direction. Of the up-to-two intersections it returns the one closer to
// the origin; ok is false when the line misses the circle.
func IntersectCircleWithOriginLine(center Point, radius float64, direction Point) (Point, bool) {
	nx := direction.Y
	ny := -direction.X

	if math.Abs(ny) < Epsilon {
		// Near-vertical line x = 0: substitute directly to avoid dividing
		// by the slope.
		disc := radius*radius - center.X*center.X
		if disc < 0 {
			return Point{}, false
		}
		s := math.Sqrt(disc)
		y1 := center.Y + s
		y2 := center.Y - s
		if math.Abs(y2) < math.Abs(y1) {
			y1 = y2
		}
		return Point{X: 0, Y: y1}, true
	}

	// y = m·x on the line; substitute into the circle equation.
	m := -nx / ny
	qa := 1 + m*m
	qb := -2 * (center.X + m*center.Y)
	qc := center.Norm2() - radius*radius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return Point{}, false
	}
	s := math.Sqrt(disc)
	x1 := (-qb + s) / (2 * qa)
	x2 := (-qb - s) / (2 * qa)
	pt1 := Point{X: x1, Y: m * x1}
	pt2 := Point{X: x2, Y: m * x2}
	if pt2.Norm2() < pt1.Norm2() {
		return pt2, true
	}
	return pt1, true
}
