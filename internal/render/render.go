// Package render draws the hyperbolic tiling with OpenGL.
//
// The tiling itself is a single fullscreen-quad pass: the fragment shader
// runs the per-sample classifier against descriptor uniforms, so pan, zoom
// and model switches never regenerate geometry. A second, vertex-colored
// pass can overlay the triangulated fundamental-domain outline for
// debugging the generator.
package render

import (
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/palette"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
}

type Renderer struct {
	w, h int

	shaderManager *ShaderManager

	quadVAO uint32
	quadVBO uint32

	overlayVAO   uint32
	overlayVBO   uint32
	overlayCount int32
	overlayKey   [3]float64 // (p, q, thickness) the overlay mesh was built for
	ShowOverlay  bool

	zoom  float64
	stats Stats
}

func NewRenderer() *Renderer {
	r := &Renderer{
		zoom:          0.95,
		shaderManager: NewShaderManager(),
	}
	r.initQuad()
	gl.GenVertexArrays(1, &r.overlayVAO)
	gl.GenBuffers(1, &r.overlayVBO)
	return r
}

// initQuad uploads the static fullscreen quad, two clip-space triangles.
func (r *Renderer) initQuad() {
	quad := []float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// Prepare uploads the descriptor, settings and palette as uniforms, and
// rebuilds the overlay mesh when the tiling changed.
func (r *Renderer) Prepare(
	d *tiling.Descriptor, s classify.Settings, pal palette.Palette, w, h int,
) error {
	startTime := time.Now()

	if w <= 0 || h <= 0 {
		log.Fatalf("cannot prepare renderer: invalid viewport dimensions %dx%d", w, h)
	}
	r.w, r.h = w, h
	r.zoom = s.Zoom
	if r.zoom <= 0 {
		r.zoom = 0.95
	}

	sm := r.shaderManager
	sm.UseTiling()

	gl.Uniform2f(sm.u.resolution, float32(w), float32(h))
	gl.Uniform1f(sm.u.zoom, float32(r.zoom))
	gl.Uniform2f(sm.u.shift, float32(s.Shift.X), float32(s.Shift.Y))
	gl.Uniform1i(sm.u.model, int32(s.Model))
	gl.Uniform1i(sm.u.fill, int32(s.Fill))
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = classify.DefaultMaxIterations
	}
	gl.Uniform1i(sm.u.maxIter, int32(maxIter))
	gl.Uniform1i(sm.u.showEdges, boolUniform(s.ShowEdges))
	gl.Uniform1i(sm.u.showVertices, boolUniform(s.ShowVertices))
	gl.Uniform1i(sm.u.showOrnaments, boolUniform(s.ShowOrnaments))

	gl.Uniform2f(sm.u.invCen, float32(d.InvCen.X), float32(d.InvCen.Y))
	gl.Uniform1f(sm.u.invRad, float32(d.InvRad))
	gl.Uniform2f(sm.u.refNrm, float32(d.RefNrm.X), float32(d.RefNrm.Y))

	var ornament [24]float32
	for t, tri := range d.OrnamentTriangles() {
		for v, p := range tri {
			ornament[(3*t+v)*2+0] = float32(p.X)
			ornament[(3*t+v)*2+1] = float32(p.Y)
		}
	}
	gl.Uniform2fv(sm.u.ornament, 12, &ornament[0])

	gl.Uniform3fv(sm.u.edgeCircle, 3, circleUniforms(d.EdgeCircles()))
	gl.Uniform3fv(sm.u.vertexCircle, 3, circleUniforms(d.VertexCircles()))
	gl.Uniform3f(sm.u.snakes,
		float32(d.C2RotSnakes.Center.X), float32(d.C2RotSnakes.Center.Y),
		float32(d.C2RotSnakes.Radius))
	gl.Uniform1i(sm.u.sectors, int32(2*d.P))

	var colors [24]float32
	for i, c := range pal {
		colors[i*4+0] = float32(c.R) / 255
		colors[i*4+1] = float32(c.G) / 255
		colors[i*4+2] = float32(c.B) / 255
		colors[i*4+3] = float32(c.A) / 255
	}
	gl.Uniform4fv(sm.u.palette, 6, &colors[0])

	if r.ShowOverlay {
		key := [3]float64{float64(d.P), float64(d.Q), d.EdgeThickness}
		if key != r.overlayKey {
			if err := r.prepareOverlay(d); err != nil {
				log.Printf("WARNING: domain overlay unavailable: %v", err)
			} else {
				r.overlayKey = key
			}
		}
	}

	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	return nil
}

// Draw renders the tiling pass and, when enabled, the domain overlay.
func (r *Renderer) Draw() {
	startTime := time.Now()

	r.shaderManager.UseTiling()
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	if r.ShowOverlay && r.overlayCount > 0 {
		r.shaderManager.UseOverlay()
		r.shaderManager.SetTransform(r.planeToNDC())
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.BindVertexArray(r.overlayVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, r.overlayCount)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Stats returns the current performance statistics.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// planeToNDC maps plane coordinates to clip space the same way the fragment
// pass maps fragments to plane coordinates. The overlay is drawn in the
// Poincaré model without the pan shift; it is a generator debug view, not a
// projected feature.
func (r *Renderer) planeToNDC() [16]float32 {
	halfMin := float64(r.w)
	if r.h < r.w {
		halfMin = float64(r.h)
	}
	halfMin /= 2
	sx := float32(2 * halfMin * r.zoom / float64(r.w))
	sy := float32(2 * halfMin * r.zoom / float64(r.h))
	return [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func circleUniforms(circles [3]geom.Circle) *float32 {
	buf := make([]float32, 9)
	for i, c := range circles {
		buf[i*3+0] = float32(c.Center.X)
		buf[i*3+1] = float32(c.Center.Y)
		buf[i*3+2] = float32(c.Radius)
	}
	return &buf[0]
}
