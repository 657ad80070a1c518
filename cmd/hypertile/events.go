package main

import (
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/ncruces/zenity"

	"github.com/irfansharif/hypertile/internal/app"
	"github.com/irfansharif/hypertile/internal/geom"
	"github.com/irfansharif/hypertile/internal/share"
)

const repeatInterval = 125 * time.Millisecond // time between successive steps when a key is held down
const thicknessStep = 1.1                     // multiplicative edge thickness change per keypress
const zoomStep = 0.15                         // zoom change per scroll unit

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	application *app.App

	// Up/Down and Left/Right step the Schläfli parameters; - and = scale the
	// edge thickness. Held keys repeat on our own timer for consistent
	// timing across platforms.
	stepKeyHeld  bool
	stepFn       func() bool
	lastStepTime time.Time

	// Drag state (per-gesture), captured on mouse press. The drag is a
	// Möbius translation, so we remember both the starting shift and the
	// plane point under the cursor when the gesture began.
	isDragging                       bool
	dragStartMouseX, dragStartMouseY float64
	dragStartShiftX, dragStartShiftY float64
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{
		application:  application,
		lastStepTime: time.Now(),
	}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods) // for various actions
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for panning
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos) // for drag-panning
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.performZoom(zoomDelta) // for zooming
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.application.View.SetViewport(newW, newH) // for window resize
	})
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	switch key {
	case glfw.KeyEscape:
		if action == glfw.Press {
			eh.application.Window.SetShouldClose(true)
		}
	case glfw.KeySpace:
		if action == glfw.Press {
			eh.application.CyclePreset()
		}
	case glfw.KeyUp:
		eh.handleStepKeys(action, func() bool { return eh.application.StepP(1) })
	case glfw.KeyDown:
		eh.handleStepKeys(action, func() bool { return eh.application.StepP(-1) })
	case glfw.KeyRight:
		eh.handleStepKeys(action, func() bool { return eh.application.StepQ(1) })
	case glfw.KeyLeft:
		eh.handleStepKeys(action, func() bool { return eh.application.StepQ(-1) })
	case glfw.KeyEqual:
		eh.handleStepKeys(action, func() bool { return eh.application.ScaleThickness(thicknessStep) })
	case glfw.KeyMinus:
		eh.handleStepKeys(action, func() bool { return eh.application.ScaleThickness(1 / thicknessStep) })
	case glfw.KeyM:
		if action == glfw.Press {
			eh.application.CycleModel()
		}
	case glfw.KeyF:
		if action == glfw.Press {
			eh.application.CycleFill()
		}
	case glfw.KeyE:
		if action == glfw.Press {
			eh.application.Settings.ShowEdges = !eh.application.Settings.ShowEdges
		}
	case glfw.KeyV:
		if action == glfw.Press {
			eh.application.Settings.ShowVertices = !eh.application.Settings.ShowVertices
		}
	case glfw.KeyO:
		if action == glfw.Press {
			eh.application.Settings.ShowOrnaments = !eh.application.Settings.ShowOrnaments
		}
	case glfw.KeyD:
		if action == glfw.Press {
			eh.application.Renderer.ShowOverlay = !eh.application.Renderer.ShowOverlay
		}
	case glfw.KeyR:
		if action == glfw.Press {
			eh.application.View.Reset()
		}
	case glfw.KeyS:
		if action == glfw.Press {
			eh.handleSnapshotKey()
		}
	case glfw.KeyU:
		if action == glfw.Press {
			fmt.Println(share.URL("hypertile://view", eh.application.ShareState()))
		}
	}
}

// handleStepKeys handles press/release for the parameter stepping keys,
// applying the step immediately and arming the repeat timer.
func (eh *EventHandlers) handleStepKeys(action glfw.Action, step func() bool) {
	switch action {
	case glfw.Press:
		eh.stepKeyHeld = true
		eh.stepFn = step
		step()
		eh.lastStepTime = time.Now()

	case glfw.Release:
		eh.stepKeyHeld = false
		eh.stepFn = nil

	case glfw.Repeat:
		// Ignore repeat events - we handle continuous stepping ourselves to
		// ensure consistent timing.
	}
}

// handleContinuousStepping applies the held stepping key on our own timer.
// Called once per frame from the main loop.
func (eh *EventHandlers) handleContinuousStepping() {
	if !eh.stepKeyHeld || eh.stepFn == nil {
		return // nothing to do
	}

	now := time.Now()
	if now.Sub(eh.lastStepTime) < repeatInterval {
		return // not enough time has passed since the last step
	}

	eh.stepFn()
	eh.lastStepTime = now
}

// handleSnapshotKey renders the current view on the CPU and writes it to a
// PNG chosen through a native save dialog.
func (eh *EventHandlers) handleSnapshotKey() {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save snapshot"),
		zenity.Filename("hypertile.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{Name: "PNG images", Patterns: []string{"*.png"}, CaseFold: true}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return // nothing to do
	}
	if err != nil {
		log.Printf("WARNING: save dialog failed: %v", err)
		return
	}

	w, h := eh.application.Window.GetFramebufferSize()
	img := eh.application.Snapshot(w, h)

	f, err := os.Create(path)
	if err != nil {
		log.Printf("WARNING: failed to create %s: %v", path, err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Printf("WARNING: failed to encode %s: %v", path, err)
		return
	}
	log.Printf("Wrote %dx%d snapshot to %s", w, h, path)
}

// handleMouseButton handles mouse button events for panning.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	switch action {
	case glfw.Press:
		eh.startPanning()
	case glfw.Release:
		eh.stopPanning()
	}
}

// handleCursorPos handles mouse movement for panning.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	eh.updatePanning(xpos, ypos)
}

// startPanning starts the panning operation.
func (eh *EventHandlers) startPanning() {
	eh.isDragging = true
	eh.dragStartMouseX, eh.dragStartMouseY = eh.application.Window.GetCursorPos()
	view := eh.application.View
	eh.dragStartShiftX, eh.dragStartShiftY = view.Shift.X, view.Shift.Y
}

// stopPanning ends panning operation.
func (eh *EventHandlers) stopPanning() {
	eh.isDragging = false
}

// updatePanning updates the Möbius shift based on mouse movement. Dragging
// moves the recentering point opposite to the cursor so the figure follows
// the drag.
func (eh *EventHandlers) updatePanning(xpos, ypos float64) {
	if !eh.isDragging {
		return
	}

	// Anchor against the gesture start, not the previous event, so jittery
	// cursor streams cannot accumulate error. Cursor positions are in screen
	// coordinates; the view works in framebuffer pixels.
	scaleX, scaleY := eh.application.Window.GetContentScale()
	view := eh.application.View
	start := view.PlanePoint(eh.dragStartMouseX*float64(scaleX), eh.dragStartMouseY*float64(scaleY))
	cur := view.PlanePoint(xpos*float64(scaleX), ypos*float64(scaleY))
	delta := cur.Sub(start)

	startShift := geom.MakePoint(eh.dragStartShiftX, eh.dragStartShiftY)
	view.SetShift(startShift.Sub(delta))
}

// performZoom handles zoom operations.
func (eh *EventHandlers) performZoom(zoomDelta float64) {
	view := eh.application.View
	view.SetZoom(view.Zoom * (1.0 + zoomDelta*zoomStep))
}
