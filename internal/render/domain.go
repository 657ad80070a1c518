package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rclancey/earcut"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// arcSamples is the number of segments used for the curved V1V2 side of the
// fundamental triangle.
const arcSamples = 24

// overlayColor is the translucent wash drawn over the fundamental domain.
var overlayColor = [4]float32{1, 1, 1, 0.25}

// prepareOverlay triangulates the fundamental-domain outline and uploads it
// to the overlay buffer.
func (r *Renderer) prepareOverlay(d *tiling.Descriptor) error {
	outline := domainOutline(d)
	triangles, err := earClip(outline)
	if err != nil {
		return err
	}

	vertices := make([]float32, 0, len(triangles)*3*6)
	for _, tri := range triangles {
		for v := 0; v < 3; v++ {
			vertices = append(vertices,
				float32(tri[v].X), float32(tri[v].Y),
				overlayColor[0], overlayColor[1], overlayColor[2], overlayColor[3],
			)
		}
	}

	gl.BindVertexArray(r.overlayVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.overlayVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, 6*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	r.overlayCount = int32(len(vertices) / 6)
	return nil
}

// domainOutline walks the fundamental triangle's boundary: the straight V0V1
// side, the V1V2 arc along the inversion circle, and the straight V2V0 side
// back to the origin.
func domainOutline(d *tiling.Descriptor) []geom.Point {
	outline := make([]geom.Point, 0, arcSamples+3)
	outline = append(outline, d.V0, d.V1)

	a1 := d.V1.Sub(d.InvCen).Arg()
	a2 := d.V2.Sub(d.InvCen).Arg()
	for i := 1; i < arcSamples; i++ {
		t := float64(i) / arcSamples
		ang := a1 + (a2-a1)*t
		outline = append(outline, d.InvCen.Add(geom.Versor(ang).Scale(d.InvRad)))
	}

	outline = append(outline, d.V2)
	return outline
}

// earClip triangulates a simple polygon with the earcut algorithm, returning
// point triangles.
func earClip(polygon []geom.Point) ([][3]geom.Point, error) {
	if len(polygon) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(polygon))
	}

	// Earcut consumes a flat [x0, y0, x1, y1, ...] array.
	coords := make([]float64, len(polygon)*2)
	for i, p := range polygon {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(polygon), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (%d indices)", len(indices))
	}

	triangles := make([][3]geom.Point, len(indices)/3)
	for t := range triangles {
		for v := 0; v < 3; v++ {
			idx := indices[t*3+v]
			triangles[t][v] = geom.MakePoint(coords[idx*2], coords[idx*2+1])
		}
	}
	return triangles, nil
}
