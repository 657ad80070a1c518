// Package preset defines the named parameter bundles reachable from the
// viewer. Each preset is a pure function returning a complete configuration
// from scratch; applying one never patches the current state incrementally.
package preset

import (
	"github.com/irfansharif/hypertile/internal/classify"
)

// Preset bundles a tiling, its classifier settings and a palette name.
type Preset struct {
	Name          string
	P, Q          int
	EdgeThickness float64
	Settings      classify.Settings
	Palette       string
}

// Default is the plain {7,3} tiling with every decoration on.
func Default() Preset {
	return Preset{
		Name:          "default",
		P:             7,
		Q:             3,
		EdgeThickness: 0.02,
		Settings:      classify.DefaultSettings(),
		Palette:       "classic",
	}
}

// HermannGrid reproduces the Hermann grid illusion: dark cells and white
// streets; gray smudges appear at the street crossings.
func HermannGrid() Preset {
	s := classify.DefaultSettings()
	s.ShowOrnaments = false
	return Preset{
		Name:          "hermann",
		P:             4,
		Q:             5,
		EdgeThickness: 0.02,
		Settings:      s,
		Palette:       "hermann",
	}
}

// ScintillatingGrid is the Hermann variant with bright discs at the
// crossings that appear to flicker.
func ScintillatingGrid() Preset {
	s := classify.DefaultSettings()
	s.ShowOrnaments = false
	return Preset{
		Name:          "scintillating",
		P:             3,
		Q:             7,
		EdgeThickness: 0.015,
		Settings:      s,
		Palette:       "scintillating",
	}
}

// RotatingSnakes lays high-contrast sectors around the auxiliary circle so
// the tiling appears to drift rotationally.
func RotatingSnakes() Preset {
	s := classify.DefaultSettings()
	s.Fill = classify.FillSnakes
	s.ShowEdges = false
	s.ShowOrnaments = false
	return Preset{
		Name:          "snakes",
		P:             5,
		Q:             5,
		EdgeThickness: 0.025,
		Settings:      s,
		Palette:       "snakes",
	}
}

// All returns every preset in cycling order, starting with the default.
func All() []Preset {
	return []Preset{Default(), HermannGrid(), ScintillatingGrid(), RotatingSnakes()}
}

// Named looks a preset up by name.
func Named(name string) (Preset, bool) {
	for _, p := range All() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
