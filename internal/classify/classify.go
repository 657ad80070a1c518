// Package classify is the per-sample rendering engine: it maps a plane
// sample through a projection model into the Poincaré disk, folds it into
// the fundamental domain by iterated inversion and reflection, and labels it
// with the tiling feature it falls on. Every evaluation reads only immutable
// snapshots (descriptor and settings), so samples can be computed in
// parallel freely.
package classify

import (
	"math"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// DefaultMaxIterations bounds the domain reduction loop. Enough for every
// on-screen sample at moderate zoom; extreme zoom near the disk boundary can
// exhaust it, in which case the last reached state is used as-is (a known
// approximation).
const DefaultMaxIterations = 50

// Feature is the classification outcome for one sample. Values double as
// palette slot indices.
type Feature int

const (
	FeatureBackground Feature = iota
	FeatureFillA
	FeatureFillB
	FeatureEdge
	FeatureVertex
	FeatureOrnament
)

// FillMode selects how fundamental-domain copies are colored.
type FillMode int

const (
	// FillChecker alternates FillA/FillB by reflection parity.
	FillChecker FillMode = iota
	// FillSolid paints every copy FillA.
	FillSolid
	// FillSnakes alternates by angular sector around the rotating-snakes
	// circle center, combined with parity.
	FillSnakes

	FillModeCount
)

var fillNames = [FillModeCount]string{"checker", "solid", "snakes"}

func (f FillMode) String() string {
	if f < 0 || f >= FillModeCount {
		return "unknown"
	}
	return fillNames[f]
}

// Settings is the read-only per-sample configuration snapshot. Copies are
// passed by value into sample evaluation; there is no shared mutable state.
type Settings struct {
	Model         Model
	Fill          FillMode
	Shift         geom.Point // Möbius recentering offset (pan), |Shift| < 1
	Zoom          float64    // plane units per half min-dimension, > 0
	MaxIterations int
	ShowEdges     bool
	ShowVertices  bool
	ShowOrnaments bool
}

// DefaultSettings returns the baseline configuration: Poincaré disk,
// checkerboard fill, all decorations on.
func DefaultSettings() Settings {
	return Settings{
		Model:         ModelPoincare,
		Fill:          FillChecker,
		Zoom:          0.95,
		MaxIterations: DefaultMaxIterations,
		ShowEdges:     true,
		ShowVertices:  true,
		ShowOrnaments: true,
	}
}

// Recenter applies the Möbius disk automorphism moving shift to the origin:
// z ↦ (z − m) / (1 − conj(m)·z).
func Recenter(z, shift geom.Point) geom.Point {
	if shift == (geom.Point{}) {
		return z
	}
	one := geom.MakePoint(1, 0)
	return z.Sub(shift).Div(one.Sub(shift.Conj().Mul(z)))
}

// Reduce folds z into the fundamental domain by repeatedly inverting across
// the inversion circle, reflecting across the wedge boundary line, and
// conjugating below the real axis, counting operations for parity. It stops
// as soon as a full pass changes nothing, or after maxIter passes (the point
// is then used as-is).
func Reduce(d *tiling.Descriptor, z geom.Point, maxIter int) (geom.Point, int) {
	parity := 0
	r2 := d.InvRad * d.InvRad
	for i := 0; i < maxIter; i++ {
		changed := false

		if v := z.Sub(d.InvCen); v.Norm2() < r2 {
			z = d.InvCen.Add(v.Scale(r2 / v.Norm2()))
			parity++
			changed = true
		}
		if dot := geom.Dot(z, d.RefNrm); dot > 0 {
			z = z.Sub(d.RefNrm.Scale(2 * dot))
			parity++
			changed = true
		}
		if z.Y < 0 {
			z = z.Conj()
			parity++
			changed = true
		}

		if !changed {
			break
		}
	}
	return z, parity
}

func insideCircle(z geom.Point, c geom.Circle) bool {
	return geom.Dist(z, c.Center) < c.Radius
}

// Classify labels one plane sample. Priority on the reduced point: ornament
// triangles, then vertex circles, then edge circles, then fill.
func Classify(d *tiling.Descriptor, s Settings, z geom.Point) Feature {
	z = Project(s.Model, z)
	if z.Norm2() >= 1 {
		return FeatureBackground
	}
	z = Recenter(z, s.Shift)

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	z, parity := Reduce(d, z, maxIter)

	if s.ShowOrnaments {
		for _, tri := range d.OrnamentTriangles() {
			if geom.IsInsideTriangle(z, tri[0], tri[1], tri[2]) {
				return FeatureOrnament
			}
		}
	}
	if s.ShowVertices {
		for _, c := range d.VertexCircles() {
			if insideCircle(z, c) {
				return FeatureVertex
			}
		}
	}
	if s.ShowEdges {
		for _, c := range d.EdgeCircles() {
			if insideCircle(z, c) {
				return FeatureEdge
			}
		}
	}

	return fill(d, s, z, parity)
}

func fill(d *tiling.Descriptor, s Settings, z geom.Point, parity int) Feature {
	switch s.Fill {
	case FillSolid:
		return FeatureFillA
	case FillSnakes:
		// Bucket by angle around the snakes circle center so copies form
		// pinwheel sectors; parity keeps adjacent copies alternating.
		sectors := 2 * d.P
		ang := z.Sub(d.C2RotSnakes.Center).Arg() + math.Pi
		k := int(math.Floor(ang / (2 * math.Pi) * float64(sectors)))
		if (k+parity)&1 == 0 {
			return FeatureFillA
		}
		return FeatureFillB
	default:
		if parity&1 == 0 {
			return FeatureFillA
		}
		return FeatureFillB
	}
}
