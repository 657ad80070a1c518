package app

import (
	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/geom"
)

const (
	minZoom = 0.05
	maxZoom = 50.0

	// maxShiftNorm keeps the Möbius pan offset strictly inside the disk;
	// at |shift| → 1 the recentering map degenerates.
	maxShiftNorm = 0.995
)

// View manages the current view state: zoom, the Möbius pan offset, and the
// viewport dimensions.
type View struct {
	Zoom          float64
	Shift         geom.Point
	Width, Height int
}

// NewView creates a view with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   classify.DefaultSettings().Zoom,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to the valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetShift sets the Möbius pan offset, clamped into the disk.
func (vs *View) SetShift(shift geom.Point) {
	if n := shift.Norm(); n > maxShiftNorm {
		shift = shift.Scale(maxShiftNorm / n)
	}
	vs.Shift = shift
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// Reset restores the default zoom and re-centers on the origin.
func (vs *View) Reset() {
	vs.Zoom = classify.DefaultSettings().Zoom
	vs.Shift = geom.Point{}
}

// PlanePoint maps window coordinates (y down) to centered plane coordinates
// (y up), the same mapping the renderer applies per fragment. Used to turn
// cursor drags into Möbius shifts.
func (vs *View) PlanePoint(x, y float64) geom.Point {
	halfMin := float64(vs.Width)
	if vs.Height < vs.Width {
		halfMin = float64(vs.Height)
	}
	halfMin /= 2
	return geom.MakePoint(
		(x-float64(vs.Width)/2)/(halfMin*vs.Zoom),
		(float64(vs.Height)/2-y)/(halfMin*vs.Zoom),
	)
}
