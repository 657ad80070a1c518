package classify

import (
	"image"
	"runtime"
	"sync"

	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/palette"
	"github.com/irfansharif/hypertile/internal/tiling"
)

// RenderOptions configures a CPU raster pass.
type RenderOptions struct {
	Width, Height int
	Supersample   int            // N×N sub-samples per pixel; <= 1 disables
	Workers       int            // <= 0 means GOMAXPROCS
	Progress      func(rows int) // called per finished row, from worker goroutines
}

// Render rasterizes the tiling to an RGBA image on the CPU, classifying each
// sample independently across row-parallel workers. Used for snapshots and
// offline rendering; the interactive path runs the same logic on the GPU.
func Render(d *tiling.Descriptor, s Settings, pal palette.Palette, opts RenderOptions) *image.RGBA {
	w, h := opts.Width, opts.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 0.95
	}
	half := float64(w) / 2
	if h < w {
		half = float64(h) / 2
	}
	scale := 1 / (half * zoom)

	rows := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for py := range rows {
				renderRow(d, s, pal, img, py, scale, ss)
				if opts.Progress != nil {
					opts.Progress(1)
				}
			}
		}()
	}
	for py := 0; py < h; py++ {
		rows <- py
	}
	close(rows)
	wg.Wait()

	return img
}

func renderRow(
	d *tiling.Descriptor, s Settings, pal palette.Palette,
	img *image.RGBA, py int, scale float64, ss int,
) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	cx, cy := float64(w)/2, float64(h)/2

	for px := 0; px < w; px++ {
		var rSum, gSum, bSum int
		for sy := 0; sy < ss; sy++ {
			for sx := 0; sx < ss; sx++ {
				fx := float64(px) + (float64(sx)+0.5)/float64(ss)
				fy := float64(py) + (float64(sy)+0.5)/float64(ss)
				z := plane(fx, fy, cx, cy, scale)
				c := pal[Classify(d, s, z)]
				rSum += int(c.R)
				gSum += int(c.G)
				bSum += int(c.B)
			}
		}
		n := ss * ss
		i := img.PixOffset(px, py)
		img.Pix[i+0] = uint8(rSum / n)
		img.Pix[i+1] = uint8(gSum / n)
		img.Pix[i+2] = uint8(bSum / n)
		img.Pix[i+3] = 0xff
	}
}

// plane maps pixel coordinates (y down) to centered plane coordinates
// (y up).
func plane(fx, fy, cx, cy, scale float64) geom.Point {
	return geom.MakePoint((fx-cx)*scale, (cy-fy)*scale)
}
