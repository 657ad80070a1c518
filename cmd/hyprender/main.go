// Command hyprender renders a hyperbolic tiling to a PNG without opening a
// window. Jobs are described by flags, or by a YAML file for repeatable
// batch renders; flags given explicitly override the file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"

	"github.com/irfansharif/hypertile/internal/classify"
	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/palette"
	"github.com/irfansharif/hypertile/internal/preset"
	"github.com/irfansharif/hypertile/internal/tiling"
)

const logFlags = log.Ltime | log.Lshortfile

// job is a complete render description. The zero value for a field means
// "take it from the preset".
type job struct {
	Preset        string  `yaml:"preset"`
	P             int     `yaml:"p"`
	Q             int     `yaml:"q"`
	EdgeThickness float64 `yaml:"edge_thickness"`
	Palette       string  `yaml:"palette"`
	Model         string  `yaml:"model"`
	Fill          string  `yaml:"fill"`
	Zoom          float64 `yaml:"zoom"`
	ShiftX        float64 `yaml:"shift_x"`
	ShiftY        float64 `yaml:"shift_y"`
	HideEdges     bool    `yaml:"hide_edges"`
	HideVertices  bool    `yaml:"hide_vertices"`
	HideOrnaments bool    `yaml:"hide_ornaments"`

	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Supersample int    `yaml:"supersample"`
	Workers     int    `yaml:"workers"`
	Out         string `yaml:"out"`
}

var (
	jobFlag           = flag.String("job", "", "YAML job file")
	presetFlag        = flag.String("preset", "default", "preset to start from")
	pFlag             = flag.Int("p", 0, "polygon order (overrides preset)")
	qFlag             = flag.Int("q", 0, "vertex order (overrides preset)")
	thicknessFlag     = flag.Float64("thickness", 0, "edge thickness (overrides preset)")
	paletteFlag       = flag.String("palette", "", "palette name (overrides preset)")
	modelFlag         = flag.String("model", "", "projection model (overrides preset)")
	fillFlag          = flag.String("fill", "", "fill mode (overrides preset)")
	zoomFlag          = flag.Float64("zoom", 0, "zoom level (overrides preset)")
	widthFlag         = flag.Int("width", 2048, "output width in pixels")
	heightFlag        = flag.Int("height", 2048, "output height in pixels")
	supersampleFlag   = flag.Int("supersample", 3, "sub-sampling grid per pixel axis")
	workersFlag       = flag.Int("workers", 0, "row workers (0 = GOMAXPROCS)")
	outFlag           = flag.String("out", "tiling.png", "output PNG path")
	hideEdgesFlag     = flag.Bool("hide-edges", false, "suppress thick edges")
	hideVerticesFlag  = flag.Bool("hide-vertices", false, "suppress enlarged vertices")
	hideOrnamentsFlag = flag.Bool("hide-ornaments", false, "suppress ornament motifs")
)

func main() {
	log.SetFlags(logFlags)
	flag.Parse()

	j := job{
		Preset:      *presetFlag,
		Width:       *widthFlag,
		Height:      *heightFlag,
		Supersample: *supersampleFlag,
		Workers:     *workersFlag,
		Out:         *outFlag,
	}
	if *jobFlag != "" {
		raw, err := os.ReadFile(*jobFlag)
		if err != nil {
			log.Fatalf("Failed to read job file: %v", err)
		}
		if err := yaml.Unmarshal(raw, &j); err != nil {
			log.Fatalf("Failed to parse job file: %v", err)
		}
	}
	applyFlagOverrides(&j)

	d, settings, pal, err := resolve(j)
	if err != nil {
		log.Fatalf("%v", err)
	}

	bar := progressbar.Default(int64(j.Height), fmt.Sprintf("rendering {%d,%d}", d.P, d.Q))
	img := classify.Render(&d, settings, pal, classify.RenderOptions{
		Width:       j.Width,
		Height:      j.Height,
		Supersample: j.Supersample,
		Workers:     j.Workers,
		Progress: func(rows int) {
			_ = bar.Add(rows)
		},
	})
	_ = bar.Finish()

	f, err := os.Create(j.Out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", j.Out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode %s: %v", j.Out, err)
	}
	log.Printf("Wrote %dx%d render of {%d,%d} to %s", j.Width, j.Height, d.P, d.Q, j.Out)
}

// applyFlagOverrides copies explicitly-set flags over the job, so the
// command line wins over the YAML file.
func applyFlagOverrides(j *job) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preset":
			j.Preset = *presetFlag
		case "p":
			j.P = *pFlag
		case "q":
			j.Q = *qFlag
		case "thickness":
			j.EdgeThickness = *thicknessFlag
		case "palette":
			j.Palette = *paletteFlag
		case "model":
			j.Model = *modelFlag
		case "fill":
			j.Fill = *fillFlag
		case "zoom":
			j.Zoom = *zoomFlag
		case "width":
			j.Width = *widthFlag
		case "height":
			j.Height = *heightFlag
		case "supersample":
			j.Supersample = *supersampleFlag
		case "workers":
			j.Workers = *workersFlag
		case "out":
			j.Out = *outFlag
		case "hide-edges":
			j.HideEdges = *hideEdgesFlag
		case "hide-vertices":
			j.HideVertices = *hideVerticesFlag
		case "hide-ornaments":
			j.HideOrnaments = *hideOrnamentsFlag
		}
	})
}

// resolve turns a job into the render inputs, starting from the named preset
// and layering the job's explicit fields on top.
func resolve(j job) (tiling.Descriptor, classify.Settings, palette.Palette, error) {
	base, ok := preset.Named(j.Preset)
	if !ok {
		return tiling.Descriptor{}, classify.Settings{}, palette.Palette{},
			fmt.Errorf("unknown preset %q (have: default, hermann, scintillating, snakes)", j.Preset)
	}

	p, q, t := base.P, base.Q, base.EdgeThickness
	if j.P != 0 {
		p = j.P
	}
	if j.Q != 0 {
		q = j.Q
	}
	if j.EdgeThickness != 0 {
		t = j.EdgeThickness
	}
	d, err := tiling.Generate(p, q, t)
	if err != nil {
		return tiling.Descriptor{}, classify.Settings{}, palette.Palette{}, err
	}

	settings := base.Settings
	if j.Model != "" {
		m, err := modelByName(j.Model)
		if err != nil {
			return tiling.Descriptor{}, classify.Settings{}, palette.Palette{}, err
		}
		settings.Model = m
	}
	if j.Fill != "" {
		f, err := fillByName(j.Fill)
		if err != nil {
			return tiling.Descriptor{}, classify.Settings{}, palette.Palette{}, err
		}
		settings.Fill = f
	}
	if j.Zoom != 0 {
		settings.Zoom = j.Zoom
	}
	settings.Shift = geom.MakePoint(j.ShiftX, j.ShiftY)
	if j.HideEdges {
		settings.ShowEdges = false
	}
	if j.HideVertices {
		settings.ShowVertices = false
	}
	if j.HideOrnaments {
		settings.ShowOrnaments = false
	}

	name := base.Palette
	if j.Palette != "" {
		name = j.Palette
	}
	pal, ok := palette.Named(name)
	if !ok {
		return tiling.Descriptor{}, classify.Settings{}, palette.Palette{},
			fmt.Errorf("unknown palette %q (have: %v)", name, palette.Names())
	}

	return d, settings, pal, nil
}

func modelByName(name string) (classify.Model, error) {
	for m := classify.Model(0); m < classify.ModelCount; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown projection model %q", name)
}

func fillByName(name string) (classify.FillMode, error) {
	for f := classify.FillMode(0); f < classify.FillModeCount; f++ {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown fill mode %q", name)
}
