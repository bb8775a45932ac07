package interact

import (
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// Options tunes the interaction handlers.
type Options struct {
	OrbitStep       float32
	OrbitHeightStep float32
	OrbitRadius     float32
	DragDamping     float32
	ClickSlop       float64
}

func DefaultOptions() Options {
	return Options{
		OrbitStep:       0.05,
		OrbitHeightStep: 0.1,
		OrbitRadius:     5,
		DragDamping:     0.05,
		ClickSlop:       4,
	}
}

// InteractionState holds all mutable input state of the room: keyboard
// orbit, drag controls, the monitor image cycle and the pointer. It needs
// no window or GL context.
type InteractionState struct {
	Orbit    *OrbitController
	Controls *Controls
	Cycle    *TextureCycle
	Picker   *Picker
	Pointer  Pointer
}

// NewInteractionState wires handlers around focal, with monitor as the
// only clickable node showing images in turn.
func NewInteractionState(opts Options, focal mgl32.Vec3, monitor *scene.Node, images []*scene.Texture) *InteractionState {
	orbit := NewOrbitController(focal)
	orbit.Step = opts.OrbitStep
	orbit.HeightStep = opts.OrbitHeightStep
	orbit.Radius = opts.OrbitRadius

	controls := NewControls(focal)
	controls.Damping = opts.DragDamping

	cycle := NewTextureCycle(images)
	return &InteractionState{
		Orbit:    orbit,
		Controls: controls,
		Cycle:    cycle,
		Picker:   NewPicker(monitor, cycle),
		Pointer:  Pointer{ClickSlop: opts.ClickSlop},
	}
}

// Key applies an arrow key to the camera.
func (s *InteractionState) Key(dir Direction, cam *scene.Camera) {
	s.Orbit.Handle(dir, cam)
}

// PointerDown starts a press at (x, y).
func (s *InteractionState) PointerDown(x, y float64) {
	s.Pointer.Press(x, y)
}

// PointerMove queues a drag rotation while the button is held.
func (s *InteractionState) PointerMove(x, y float64, height int) {
	dx, dy := s.Pointer.Move(x, y)
	if s.Pointer.Down() {
		s.Controls.Drag(dx, dy, height)
	}
}

// PointerUp ends a press and, if it was a click, hit-tests the monitor.
// It reports whether the monitor image changed.
func (s *InteractionState) PointerUp(x, y float64, width, height int, cam *scene.Camera) bool {
	if !s.Pointer.Release(x, y) {
		return false
	}
	return s.Picker.Click(x, y, width, height, cam)
}
