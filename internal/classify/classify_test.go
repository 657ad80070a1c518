package classify

import (
	"sync/atomic"
	"testing"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/palette"
	"github.com/irfansharif/hypertile/internal/tiling"
)

func hermann(t *testing.T) *tiling.Descriptor {
	t.Helper()
	d, err := tiling.Generate(4, 5, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	return &d
}

func TestRecenter(t *testing.T) {
	shift := geom.MakePoint(0.3, -0.2)
	if got := Recenter(shift, shift); got.Norm() > tol {
		t.Errorf("shift point must map to origin, got %v", got)
	}
	if got := Recenter(geom.MakePoint(0.5, 0.1), geom.Point{}); !nearPt(got, geom.MakePoint(0.5, 0.1)) {
		t.Errorf("zero shift must be identity, got %v", got)
	}
	// Disk automorphism: interior stays interior.
	for _, z := range []geom.Point{{X: 0.9}, {X: -0.3, Y: 0.7}, {Y: -0.99}} {
		if got := Recenter(z, shift); got.Norm2() >= 1 {
			t.Errorf("Recenter(%v) = %v left the disk", z, got)
		}
	}
}

func TestReduceFixedPoint(t *testing.T) {
	d := hermann(t)
	z := geom.MakePoint(0.1, 0.05) // already inside the fundamental wedge
	got, parity := Reduce(d, z, DefaultMaxIterations)
	if got != z || parity != 0 {
		t.Errorf("got %v parity %d, want %v parity 0", got, parity, z)
	}
}

func TestReduceSingleOps(t *testing.T) {
	d := hermann(t)
	home := geom.MakePoint(0.1, 0.05)

	t.Run("conjugation", func(t *testing.T) {
		got, parity := Reduce(d, home.Conj(), DefaultMaxIterations)
		if !nearPt(got, home) || parity != 1 {
			t.Errorf("got %v parity %d", got, parity)
		}
	})

	t.Run("wedge reflection", func(t *testing.T) {
		// Mirror image of home across the π/4 boundary line.
		refl := home.Sub(d.RefNrm.Scale(2 * geom.Dot(home, d.RefNrm)))
		// home has negative dot with the outward normal, its mirror positive.
		got, parity := Reduce(d, refl, DefaultMaxIterations)
		if !nearPt(got, home) || parity != 1 {
			t.Errorf("got %v parity %d", got, parity)
		}
	})

	t.Run("inversion", func(t *testing.T) {
		r2 := d.InvRad * d.InvRad
		v := home.Sub(d.InvCen)
		inverted := d.InvCen.Add(v.Scale(r2 / v.Norm2()))
		got, parity := Reduce(d, inverted, DefaultMaxIterations)
		if !nearPt(got, home) || parity != 1 {
			t.Errorf("got %v parity %d", got, parity)
		}
	})
}

func TestReduceBudget(t *testing.T) {
	d := hermann(t)
	// Deep in the tiling, near the boundary: needs many folds.
	z := geom.MakePoint(0.9999, 0.0001)
	got, _ := Reduce(d, z, 1)
	if got.Norm2() > 1+tol {
		t.Errorf("budget-exhausted reduction escaped the disk: %v", got)
	}

	// Early stop: a point two passes from home reduces identically under a
	// small and a generous budget.
	z0 := geom.MakePoint(0.3, 0.2)
	smallPt, smallParity := Reduce(d, z0, 3)
	bigPt, bigParity := Reduce(d, z0, DefaultMaxIterations)
	if smallPt != bigPt || smallParity != bigParity {
		t.Errorf("budget 3 gave (%v, %d), budget %d gave (%v, %d)",
			smallPt, smallParity, DefaultMaxIterations, bigPt, bigParity)
	}
}

func TestClassifyBackground(t *testing.T) {
	d := hermann(t)
	s := DefaultSettings()
	if got := Classify(d, s, geom.MakePoint(2, 0)); got != FeatureBackground {
		t.Errorf("got %v, want background", got)
	}
	if got := Classify(d, s, geom.MakePoint(0.8, 0.7)); got != FeatureBackground {
		t.Errorf("norm>1 sample classified %v", got)
	}
}

func TestClassifyPriority(t *testing.T) {
	d := hermann(t)
	s := DefaultSettings()

	// Centroid of the V0 ornament triangle: inside the ornament, also
	// inside the thick V0V1 band. Ornament wins while enabled.
	centroid := d.V0.Add(d.D).Add(d.E).Scale(1.0 / 3)
	if got := Classify(d, s, centroid); got != FeatureOrnament {
		t.Errorf("got %v, want ornament", got)
	}
	s.ShowOrnaments = false
	if got := Classify(d, s, centroid); got != FeatureEdge {
		t.Errorf("ornaments off: got %v, want edge", got)
	}

	// Near the origin: inside the V0 rounding circle and the edge band.
	// Vertex outranks edge.
	near0 := geom.MakePoint(0.005, 0.005)
	if got := Classify(d, s, near0); got != FeatureVertex {
		t.Errorf("got %v, want vertex", got)
	}
	s.ShowVertices = false
	if got := Classify(d, s, near0); got != FeatureEdge {
		t.Errorf("vertices off: got %v, want edge", got)
	}
	s.ShowEdges = false
	if got := Classify(d, s, near0); got != FeatureFillA && got != FeatureFillB {
		t.Errorf("all decorations off: got %v, want a fill color", got)
	}
}

func TestClassifyCheckerParity(t *testing.T) {
	d := hermann(t)
	s := DefaultSettings()
	s.ShowEdges = false
	s.ShowVertices = false
	s.ShowOrnaments = false

	z := geom.MakePoint(0.1, 0.05)
	if got := Classify(d, s, z); got != FeatureFillA {
		t.Errorf("in-domain sample: got %v, want fill A", got)
	}
	if got := Classify(d, s, z.Conj()); got != FeatureFillB {
		t.Errorf("one-reflection sample: got %v, want fill B", got)
	}

	s.Fill = FillSolid
	if got := Classify(d, s, z.Conj()); got != FeatureFillA {
		t.Errorf("solid fill: got %v, want fill A", got)
	}
}

func TestClassifySnakesFill(t *testing.T) {
	d, err := tiling.Generate(5, 5, 0.025)
	if err != nil {
		t.Fatal(err)
	}
	s := DefaultSettings()
	s.Fill = FillSnakes
	s.ShowEdges = false
	s.ShowVertices = false
	s.ShowOrnaments = false

	got := Classify(&d, s, geom.MakePoint(0.2, 0.1))
	if got != FeatureFillA && got != FeatureFillB {
		t.Errorf("got %v, want a fill color", got)
	}
}

func TestRender(t *testing.T) {
	d := hermann(t)
	s := DefaultSettings()
	pal, _ := palette.Named("classic")

	var rows int64
	img := Render(d, s, pal, RenderOptions{
		Width:       256,
		Height:      256,
		Supersample: 2,
		Workers:     3,
		Progress:    func(n int) { atomic.AddInt64(&rows, int64(n)) },
	})

	if got := atomic.LoadInt64(&rows); got != 256 {
		t.Errorf("progress reported %d rows, want 256", got)
	}

	// The corners lie outside the disk; the pixels at the exact center sit
	// well inside the V0 rounding circle.
	if got := img.RGBAAt(0, 0); got != pal[palette.Background] {
		t.Errorf("corner = %v, want background %v", got, pal[palette.Background])
	}
	if got := img.RGBAAt(128, 127); got != pal[palette.Vertex] {
		t.Errorf("center = %v, want vertex %v", got, pal[palette.Vertex])
	}
}
