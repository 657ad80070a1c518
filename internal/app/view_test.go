package app

import (
	"math"
	"testing"

	"github.com/irfansharif/hypertile/internal/geom"
)

func TestViewZoomClamp(t *testing.T) {
	v := NewView(800, 600)
	v.SetZoom(1e9)
	if v.Zoom != maxZoom {
		t.Errorf("zoom %v, want clamped to %v", v.Zoom, maxZoom)
	}
	v.SetZoom(0)
	if v.Zoom != minZoom {
		t.Errorf("zoom %v, want clamped to %v", v.Zoom, minZoom)
	}
	v.SetZoom(2)
	if v.Zoom != 2 {
		t.Errorf("zoom %v, want 2", v.Zoom)
	}
}

func TestViewShiftClamp(t *testing.T) {
	v := NewView(800, 600)
	v.SetShift(geom.MakePoint(3, 4))
	if n := v.Shift.Norm(); math.Abs(n-maxShiftNorm) > 1e-12 {
		t.Errorf("shift norm %v, want %v", n, maxShiftNorm)
	}
	// Direction is preserved under clamping.
	if math.Abs(v.Shift.Arg()-geom.MakePoint(3, 4).Arg()) > 1e-12 {
		t.Error("clamping changed the shift direction")
	}

	inside := geom.MakePoint(0.2, -0.1)
	v.SetShift(inside)
	if v.Shift != inside {
		t.Errorf("in-disk shift modified: %v", v.Shift)
	}
}

func TestViewPlanePoint(t *testing.T) {
	v := NewView(800, 600)
	v.SetZoom(1)

	center := v.PlanePoint(400, 300)
	if center.Norm() > 1e-12 {
		t.Errorf("window center maps to %v, want origin", center)
	}

	// Up and right in window space is +y and +x in plane space; the short
	// viewport side spans 2 plane units at zoom 1.
	p := v.PlanePoint(700, 0)
	if p.X <= 0 || p.Y <= 0 {
		t.Errorf("top-right quadrant maps to %v", p)
	}
	if got := v.PlanePoint(400, 0).Y; math.Abs(got-1) > 1e-12 {
		t.Errorf("top edge maps to y=%v, want 1", got)
	}
}

func TestViewReset(t *testing.T) {
	v := NewView(800, 600)
	v.SetZoom(5)
	v.SetShift(geom.MakePoint(0.4, 0.4))
	v.Reset()
	if v.Shift != (geom.Point{}) {
		t.Errorf("reset kept shift %v", v.Shift)
	}
	if v.Zoom != NewView(1, 1).Zoom {
		t.Errorf("reset kept zoom %v", v.Zoom)
	}
}
