// Package palette provides the six-slot color palettes used by the tiling
// classifier: background, the two fill colors, edge, vertex and ornament.
// Palettes are generated through HSV space with go-colorful.
package palette

import (
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Slot indices into a Palette, matching the classifier's feature order.
const (
	Background = 0
	FillA      = 1
	FillB      = 2
	Edge       = 3
	Vertex     = 4
	Ornament   = 5
)

// Palette holds six RGBA colors, one per classifier feature.
type Palette [6]color.RGBA

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hsv converts hue (degrees, any value, wrapped to [0,360)) and
// saturation/value in 0-1 to RGBA.
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, clamp(s, 0, 1), clamp(v, 0, 1))
	red, green, blue := c.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

var named = map[string]Palette{
	// Blue fills over white edges, the default look.
	"classic": {
		Background: hsv(220, 0.10, 0.15),
		FillA:      hsv(215, 0.75, 0.85),
		FillB:      hsv(200, 0.55, 0.60),
		Edge:       white,
		Vertex:     hsv(45, 0.80, 0.95),
		Ornament:   hsv(10, 0.85, 0.90),
	},
	// Black cells and white streets, gray smudges appear at the crossings.
	"hermann": {
		Background: white,
		FillA:      black,
		FillB:      black,
		Edge:       white,
		Vertex:     white,
		Ornament:   black,
	},
	// Dark cells, gray streets, white discs at the crossings.
	"scintillating": {
		Background: black,
		FillA:      hsv(0, 0, 0.10),
		FillB:      hsv(0, 0, 0.10),
		Edge:       hsv(0, 0, 0.55),
		Vertex:     white,
		Ornament:   hsv(0, 0, 0.10),
	},
	// High-contrast hue steps for the rotating-snakes drift.
	"snakes": {
		Background: black,
		FillA:      hsv(55, 0.95, 0.98),
		FillB:      hsv(230, 0.85, 0.75),
		Edge:       black,
		Vertex:     white,
		Ornament:   hsv(0, 0.90, 0.90),
	},
}

// Named returns the palette registered under name.
func Named(name string) (Palette, bool) {
	p, ok := named[name]
	return p, ok
}

// Names returns the registered palette names, sorted.
func Names() []string {
	out := make([]string, 0, len(named))
	for name := range named {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Random returns a palette with a dark background and related accent hues.
func Random(r *rand.Rand) Palette {
	base := r.Float64() * 360

	p := Palette{}
	p[Background] = hsv(base, 0.2+r.Float64()*0.3, 0.10+r.Float64()*0.10)
	p[FillA] = hsv(base, 0.5+r.Float64()*0.4, 0.5+r.Float64()*0.4)
	p[FillB] = hsv(base+180, 0.5+r.Float64()*0.4, 0.5+r.Float64()*0.4)
	p[Edge] = white
	p[Vertex] = hsv(base+90, 0.6+r.Float64()*0.3, 0.7+r.Float64()*0.3)
	p[Ornament] = hsv(base+270, 0.6+r.Float64()*0.3, 0.7+r.Float64()*0.3)
	return p
}

// Shimmered applies a brightness jitter to the fill and accent slots when
// shimmer >= 0.
func Shimmered(p Palette, shimmer int, r *rand.Rand) Palette {
	if shimmer < 0 {
		return p
	}

	out := p
	for i := FillA; i <= Ornament; i++ {
		c := colorful.Color{
			R: float64(out[i].R) / 255,
			G: float64(out[i].G) / 255,
			B: float64(out[i].B) / 255,
		}
		h, s, v := c.Hsv()
		v = clamp(v+(r.Float64()-0.5)*0.2, 0, 1)
		out[i] = hsv(h, s, v)
	}
	return out
}
