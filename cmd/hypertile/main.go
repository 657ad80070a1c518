// Command hypertile is the interactive hyperbolic tiling viewer: a GLFW
// window with the per-pixel classifier running as a fragment shader.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/hypertile/internal/app"
	"github.com/irfansharif/hypertile/internal/preset"
	"github.com/irfansharif/hypertile/internal/render"
	"github.com/irfansharif/hypertile/internal/share"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

var (
	presetFlag = flag.String("preset", "", "starting preset (default, hermann, scintillating, snakes)")
	shareFlag  = flag.String("share", "", "shared state URL or fragment to restore")
	widthFlag  = flag.Int("width", 1280, "initial window width")
	heightFlag = flag.Int("height", 960, "initial window height")
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("HYPERTILE_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func makeTitle(a *app.App, fps, avgFrameTime float64, stats render.Stats) string {
	return fmt.Sprintf("Hypertile {%d,%d} %s/%s (%.1f FPS, %.2fms/frame, %.2fms/prepare, %.2fµs/draw)",
		a.P, a.Q,
		a.Settings.Model, a.Settings.Fill,
		fps,
		avgFrameTime,
		stats.LastPrepareTimeMs,
		stats.LastDrawTimeUs,
	)
}

func main() {
	flag.Parse()

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(*widthFlag, *heightFlag, "Hypertile", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	cw, ch := window.GetFramebufferSize()
	application := app.NewApp(window, app.NewView(cw, ch))

	if name := startingPreset(); name != "" {
		p, ok := preset.Named(name)
		if !ok {
			log.Fatalf("Unknown preset %q", name)
		}
		application.ApplyPreset(p)
	}
	if *shareFlag != "" {
		st, err := share.FromURL(*shareFlag)
		if err != nil {
			log.Fatalf("Failed to restore shared state: %v", err)
		}
		application.ApplyShared(st)
	}

	application.PrepareRenderer(cw, ch)
	eventHandlers := NewEventHandlers(application)

	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		w, h := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		eventHandlers.handleContinuousStepping()
		application.PrepareRenderer(w, h)
		application.Renderer.Draw()
		application.Window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			stats := application.Renderer.Stats()
			application.Window.SetTitle(makeTitle(application, fps, avgFrameTime, stats))

			runtimeLogger.Printf("=== {%d,%d} thickness %.4f, model %s, fill %s ===",
				application.P, application.Q, application.EdgeThickness,
				application.Settings.Model, application.Settings.Fill)
			runtimeLogger.Printf("Frame rate:  %.1f FPS (%.2f ms/frame)", fps, avgFrameTime)
			runtimeLogger.Printf("Render time: %.2f µs (last draw), %.2f ms (last prepare)",
				stats.LastDrawTimeUs, stats.LastPrepareTimeMs)
		}
	}
}

// startingPreset resolves the initial preset name from the flag or the
// HYPERTILE_PRESET environment variable, flag winning.
func startingPreset() string {
	if *presetFlag != "" {
		return *presetFlag
	}
	return os.Getenv("HYPERTILE_PRESET")
}
