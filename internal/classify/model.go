package classify

import (
	"math"

	"github.com/irfansharif/hypertile/internal/geom"
)

// Model selects the projection mapping screen coordinates into the Poincaré
// disk. The numeric values are part of the shareable-state format and must
// not be reordered.
type Model int

const (
	ModelPoincare Model = iota
	ModelHalfPlane
	ModelKlein
	ModelInverted
	ModelGans
	ModelAzimuthal
	ModelEqualArea
	ModelBand

	ModelCount
)

var modelNames = [ModelCount]string{
	"poincare",
	"half-plane",
	"klein",
	"inverted",
	"gans",
	"azimuthal",
	"equal-area",
	"band",
}

func (m Model) String() string {
	if m < 0 || m >= ModelCount {
		return "unknown"
	}
	return modelNames[m]
}

// Next cycles to the following model, wrapping around.
func (m Model) Next() Model { return (m + 1) % ModelCount }

// Project maps a plane sample through the selected model into disk
// coordinates. Outputs with norm >= 1 are background, rejected by the
// caller.
func Project(m Model, z geom.Point) geom.Point {
	switch m {
	case ModelHalfPlane:
		z.Y += 1
		i := geom.MakePoint(0, 1)
		return z.Sub(i).Div(z.Add(i))
	case ModelKlein:
		s := 1 - z.Norm2()
		if s <= 0 {
			return z // outside the model, stays outside the disk
		}
		return z.Scale(1 / (1 + math.Sqrt(s)))
	case ModelInverted:
		return z.Scale(3).Reciprocal()
	case ModelGans:
		z = z.Scale(10)
		return z.Scale(1 / (1 + math.Sqrt(1+z.Norm2())))
	case ModelAzimuthal:
		z = z.Scale(3)
		n := z.Norm()
		if n < geom.Epsilon {
			return geom.Point{}
		}
		return z.Normalize().Scale(math.Tanh(n / 2))
	case ModelEqualArea:
		z = z.Scale(3)
		return z.Scale(1 / math.Sqrt(1+z.Norm2()))
	case ModelBand:
		return z.Tanh()
	default:
		return z
	}
}
