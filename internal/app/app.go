// Package app wires the window, the tiling state and the renderer together.
// All state transitions go through App methods; the descriptor is an
// immutable value swapped wholesale whenever (p, q, edgeThickness) changes,
// so an in-flight frame never observes a half-updated tiling.
package app

import (
	"image"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/palette"
	"github.com/irfansharif/hypertile/internal/preset"
	"github.com/irfansharif/hypertile/internal/render"
	"github.com/irfansharif/hypertile/internal/share"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// snapshotSupersample is the sub-sampling grid used for PNG snapshots.
const snapshotSupersample = 3

// App encapsulates the main application state and logic.
type App struct {
	Window   *glfw.Window
	Renderer *render.Renderer
	View     *View

	P             int
	Q             int
	EdgeThickness float64
	Settings      classify.Settings
	PaletteName   string
	Palette       palette.Palette

	descriptor tiling.Descriptor
	presetIdx  int
}

// NewApp creates the application around an initialized window and GL
// context, starting from the default preset.
func NewApp(window *glfw.Window, view *View) *App {
	a := &App{
		Window:   window,
		Renderer: render.NewRenderer(),
		View:     view,
	}
	a.ApplyPreset(preset.Default())
	return a
}

// Descriptor returns the current tiling descriptor.
func (a *App) Descriptor() tiling.Descriptor {
	return a.descriptor
}

// ApplyPreset replaces the whole configuration with the named bundle and
// regenerates the descriptor. View zoom and pan are preserved.
func (a *App) ApplyPreset(p preset.Preset) {
	d, err := tiling.Generate(p.P, p.Q, p.EdgeThickness)
	if err != nil {
		// Presets are validated by their tests; a failure here is a
		// programming error.
		log.Fatalf("preset %q failed to generate: %v", p.Name, err)
	}

	a.P, a.Q, a.EdgeThickness = p.P, p.Q, p.EdgeThickness
	a.Settings = p.Settings
	a.Settings.Zoom = a.View.Zoom
	a.Settings.Shift = a.View.Shift
	a.PaletteName = p.Palette
	pal, ok := palette.Named(p.Palette)
	if !ok {
		log.Fatalf("preset %q names unknown palette %q", p.Name, p.Palette)
	}
	a.Palette = pal
	a.descriptor = d
}

// CyclePreset advances to the next preset bundle.
func (a *App) CyclePreset() {
	presets := preset.All()
	a.presetIdx = (a.presetIdx + 1) % len(presets)
	a.ApplyPreset(presets[a.presetIdx])
}

// SetTiling regenerates the descriptor for the new parameters. Invalid
// pairs are refused and the previous descriptor stays active.
func (a *App) SetTiling(p, q int, edgeThickness float64) bool {
	d, err := tiling.Generate(p, q, edgeThickness)
	if err != nil {
		log.Printf("WARNING: keeping {%d,%d}: %v", a.P, a.Q, err)
		return false
	}
	a.P, a.Q, a.EdgeThickness = p, q, edgeThickness
	a.descriptor = d
	return true
}

// StepP adjusts the polygon order by delta, skipping values that violate
// the hyperbolic condition.
func (a *App) StepP(delta int) bool {
	p := a.P + delta
	if p < 3 || !tiling.Valid(p, a.Q) {
		log.Printf("WARNING: {%d,%d} is not hyperbolic, ignoring", p, a.Q)
		return false
	}
	return a.SetTiling(p, a.Q, a.EdgeThickness)
}

// StepQ adjusts the vertex order by delta, skipping invalid values.
func (a *App) StepQ(delta int) bool {
	q := a.Q + delta
	if q < 3 || !tiling.Valid(a.P, q) {
		log.Printf("WARNING: {%d,%d} is not hyperbolic, ignoring", a.P, q)
		return false
	}
	return a.SetTiling(a.P, q, a.EdgeThickness)
}

// ScaleThickness multiplies the edge thickness by factor, keeping it in a
// renderable range.
func (a *App) ScaleThickness(factor float64) bool {
	t := a.EdgeThickness * factor
	if t < 0.001 || t > 0.2 {
		return false
	}
	return a.SetTiling(a.P, a.Q, t)
}

// CycleModel switches to the next projection model.
func (a *App) CycleModel() {
	a.Settings.Model = a.Settings.Model.Next()
}

// CycleFill switches to the next fill mode.
func (a *App) CycleFill() {
	a.Settings.Fill = (a.Settings.Fill + 1) % classify.FillModeCount
}

// PrepareRenderer pushes current state into the GL pipeline for one frame.
func (a *App) PrepareRenderer(w, h int) {
	a.Settings.Zoom = a.View.Zoom
	a.Settings.Shift = a.View.Shift
	if err := a.Renderer.Prepare(&a.descriptor, a.Settings, a.Palette, w, h); err != nil {
		log.Fatalf("Failed to prepare renderer: %v", err)
	}
}

// Snapshot renders the current state on the CPU at the given size,
// supersampled, for PNG export.
func (a *App) Snapshot(w, h int) *image.RGBA {
	s := a.Settings
	s.Zoom = a.View.Zoom
	s.Shift = a.View.Shift
	return classify.Render(&a.descriptor, s, a.Palette, classify.RenderOptions{
		Width:       w,
		Height:      h,
		Supersample: snapshotSupersample,
	})
}

// ShareState bundles the current configuration for URL export.
func (a *App) ShareState() share.State {
	s := a.Settings
	s.Zoom = a.View.Zoom
	s.Shift = a.View.Shift
	return share.State{
		P:             a.P,
		Q:             a.Q,
		EdgeThickness: a.EdgeThickness,
		Palette:       a.PaletteName,
		Settings:      s,
		Descriptor:    a.descriptor,
	}
}

// ApplyShared restores a decoded shared state, adopting its descriptor
// as-is so the rendering matches the sender's exactly.
func (a *App) ApplyShared(st share.State) {
	a.P, a.Q, a.EdgeThickness = st.P, st.Q, st.EdgeThickness
	a.Settings = st.Settings
	a.PaletteName = st.Palette
	if pal, ok := palette.Named(st.Palette); ok {
		a.Palette = pal
	} else {
		log.Printf("WARNING: shared state names unknown palette %q, keeping current", st.Palette)
	}
	a.descriptor = st.Descriptor
	a.View.SetZoom(st.Settings.Zoom)
	a.View.SetShift(st.Settings.Shift)
}
