// Command hypdiagram draws the construction geometry of a tiling descriptor
// as an SVG: the unit circle, the inversion circle, the fundamental triangle,
// the thick-edge and enlarged-vertex circles, and the ornament motifs. Useful
// for debugging the construction when changing it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	jgeom "github.com/jbeda/geom"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/tiling"
)

const (
	defaultStyle   = "stroke-width: 0.004; fill: none"
	diskStyle      = "stroke: black"
	inversionStyle = "stroke: gray; stroke-dasharray: 0.02 0.01"
	triangleStyle  = "stroke: black; stroke-width: 0.006"
	edgeStyle      = "stroke: blue"
	vertexStyle    = "stroke: green"
	ornamentStyle  = "stroke: red; fill: rgba(255,0,0,0.15)"
	snakesStyle    = "stroke: purple; stroke-dasharray: 0.01 0.01"
)

var (
	pFlag         = flag.Int("p", 7, "polygon order")
	qFlag         = flag.Int("q", 3, "vertex order")
	thicknessFlag = flag.Float64("thickness", 0.02, "edge thickness")
	outFlag       = flag.String("out", "", "output SVG path (default stdout)")
)

// SVG serialization helper.
type SVG struct {
	writer io.Writer
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{w}
}

func (svg *SVG) printf(format string, a ...interface{}) (n int, errno error) {
	return fmt.Fprintf(svg.writer, format, a...)
}

func extraparams(s []string) string {
	ep := ""
	for i := 0; i < len(s); i++ {
		if strings.Index(s[i], "=") > 0 {
			ep += (s[i]) + " "
		} else if len(s[i]) > 0 {
			ep += fmt.Sprintf("style='%s' ", s[i])
		}
	}
	return ep
}

func (svg *SVG) Start(viewBox jgeom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) Line(p1 jgeom.Coord, p2 jgeom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) Circle(c jgeom.Coord, r float64, s ...string) {
	svg.printf("<circle cx='%f' cy='%f' r='%f' %s/>\n", c.X, c.Y, r, extraparams(s))
}

func (svg *SVG) Polygon(pts []jgeom.Coord, s ...string) {
	svg.printf("<polygon points='")
	for i, p := range pts {
		if i > 0 {
			svg.printf(" ")
		}
		svg.printf("%f,%f", p.X, p.Y)
	}
	svg.printf("' %s/>\n", extraparams(s))
}

// coord converts a disk point into SVG coordinates. SVG y grows downward, so
// the plane is flipped to keep the conventional orientation on screen.
func coord(p geom.Point) jgeom.Coord {
	return jgeom.Coord{X: p.X, Y: -p.Y}
}

func drawCircle(svg *SVG, c geom.Circle, style string) {
	svg.Circle(coord(c.Center), c.Radius, style)
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	flag.Parse()

	d, err := tiling.Generate(*pFlag, *qFlag, *thicknessFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}

	out := io.Writer(os.Stdout)
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *outFlag, err)
		}
		defer f.Close()
		out = f
	}

	svg := NewSVG(out)
	viewBox := jgeom.Rect{
		Min: jgeom.Coord{X: -1.2, Y: -1.2},
		Max: jgeom.Coord{X: 1.2, Y: 1.2},
	}
	svg.Start(viewBox, defaultStyle)

	// The disk boundary and the inversion circle carrying the far edge.
	svg.Circle(jgeom.Coord{}, 1, diskStyle)
	drawCircle(svg, geom.MakeCircle(d.InvCen, d.InvRad), inversionStyle)

	// Fundamental triangle: two straight sides from the origin, the third is
	// an arc of the inversion circle (drawn above).
	svg.Line(coord(d.V0), coord(d.V1), triangleStyle)
	svg.Line(coord(d.V0), coord(d.V2), triangleStyle)

	for _, c := range d.EdgeCircles() {
		drawCircle(svg, c, edgeStyle)
	}
	for _, c := range d.VertexCircles() {
		drawCircle(svg, c, vertexStyle)
	}
	for _, tri := range d.OrnamentTriangles() {
		svg.Polygon([]jgeom.Coord{coord(tri[0]), coord(tri[1]), coord(tri[2])}, ornamentStyle)
	}
	drawCircle(svg, d.C2RotSnakes, snakesStyle)

	svg.End()

	if *outFlag != "" {
		log.Printf("Wrote {%d,%d} construction diagram to %s", d.P, d.Q, *outFlag)
	}
}
