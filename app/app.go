// Package app runs the desk room: it wires input to the interaction
// handlers and drives the per-frame update and render.
package app

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"desk-room/assets"
	"desk-room/config"
	"desk-room/interact"
	"desk-room/room"
	"desk-room/scene"
)

// Renderer draws a scene. Implementations own all GPU state.
type Renderer interface {
	SetSize(width, height int)
	Render(s *scene.Scene, cam *scene.Camera) error
}

// Window is the event and presentation surface.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	PollEvents()
	SwapBuffers()
	// Size is the window size in cursor coordinates.
	Size() (int, int)
	GetFramebufferSize() (int, int)
}

// Key is an input key the room responds to.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
)

type App struct {
	Scene  *scene.Scene
	Camera *scene.Camera
	Layout *room.Layout
	Input  *interact.InteractionState
	Light  *LightAnimator
	Loader *assets.Loader

	window   Window
	renderer Renderer

	width, height int
	lastErr       string
	frames        uint64
}

// New assembles the room, starts loading its assets and sizes the view to
// the window's framebuffer.
func New(cfg *config.Config, win Window, r Renderer, loader *assets.Loader) *App {
	layout := room.Build(loader)
	layout.Light.Intensity = cfg.Light.Intensity
	layout.Light.Range = cfg.Light.Range
	layout.Light.ShadowSize = cfg.Light.ShadowSize

	s := layout.Scene()
	cam := scene.NewCamera(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far)
	cam.SetPosition(mgl32.Vec3(cfg.Camera.Position))
	cam.LookAt(layout.FocalPoint())
	s.SetCamera(cam)

	opts := interact.Options{
		OrbitStep:       cfg.Orbit.Step,
		OrbitHeightStep: cfg.Orbit.HeightStep,
		OrbitRadius:     cfg.Orbit.Radius,
		DragDamping:     cfg.Orbit.Damping,
		ClickSlop:       cfg.Orbit.ClickSlop,
	}

	a := &App{
		Scene:    s,
		Camera:   cam,
		Layout:   layout,
		Input:    interact.NewInteractionState(opts, layout.FocalPoint(), layout.Monitor, layout.MonitorImages),
		Light:    NewLightAnimator(cfg.Light.Radius, cfg.Light.Height),
		Loader:   loader,
		window:   win,
		renderer: r,
	}

	loader.Model(room.MouseModel, layout.AttachMouse)
	a.Resize(win.GetFramebufferSize())
	return a
}

// OnKey handles a key press or repeat.
func (a *App) OnKey(key Key) {
	switch key {
	case KeyLeft:
		a.Input.Key(interact.DirLeft, a.Camera)
	case KeyRight:
		a.Input.Key(interact.DirRight, a.Camera)
	case KeyUp:
		a.Input.Key(interact.DirUp, a.Camera)
	case KeyDown:
		a.Input.Key(interact.DirDown, a.Camera)
	case KeyEscape:
		a.window.SetShouldClose(true)
	}
}

// OnPrimaryButton handles the main mouse button at window position (x, y).
func (a *App) OnPrimaryButton(pressed bool, x, y float64) {
	if pressed {
		a.Input.PointerDown(x, y)
		return
	}
	w, h := a.window.Size()
	if a.Input.PointerUp(x, y, w, h, a.Camera) {
		slog.Info("monitor image", "index", a.Input.Cycle.Index())
	}
}

// OnCursor handles pointer motion.
func (a *App) OnCursor(x, y float64) {
	_, h := a.window.Size()
	a.Input.PointerMove(x, y, h)
}

// Resize updates the camera aspect and the render viewport. Repeating a
// size is harmless; a zero size (minimised window) is ignored.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.Camera.UpdateAspectRatio(float32(width), float32(height))
	a.renderer.SetSize(width, height)
}

// Size returns the current framebuffer size.
func (a *App) Size() (int, int) {
	return a.width, a.height
}

// Frame runs one update and draw. Input callbacks must already have run
// for this frame.
func (a *App) Frame() {
	a.Loader.Queue().Drain()
	a.Input.Controls.Update(a.Camera)
	a.Light.Update(a.Layout.Light)

	if err := a.renderer.Render(a.Scene, a.Camera); err != nil {
		if msg := err.Error(); msg != a.lastErr {
			slog.Error("render failed", "frame", a.frames, "err", err)
			a.lastErr = msg
		}
	} else {
		a.lastErr = ""
	}
	a.frames++
}

// Frames returns the number of frames run.
func (a *App) Frames() uint64 {
	return a.frames
}

// Run loops until the window is closed.
func (a *App) Run() {
	slog.Info("render loop started")
	for !a.window.ShouldClose() {
		a.window.PollEvents()
		a.Frame()
		a.window.SwapBuffers()
	}
	slog.Info("render loop stopped", "frames", a.frames)
}
