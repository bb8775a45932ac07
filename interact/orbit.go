package interact

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// Direction is an arrow-key orbit command.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// OrbitState is the keyboard orbit position: azimuth in radians around the
// world Y axis and camera height.
type OrbitState struct {
	Azimuth float32
	Height  float32
}

// InitialOrbit is the state before any key is pressed.
var InitialOrbit = OrbitState{Azimuth: 0, Height: 2}

// OrbitController moves the camera on a circle of Radius around the world
// origin and keeps it aimed at Focal. Neither azimuth nor height is bounded.
type OrbitController struct {
	State OrbitState

	Step       float32 // azimuth change per key, radians
	HeightStep float32
	Radius     float32
	Focal      mgl32.Vec3
}

func NewOrbitController(focal mgl32.Vec3) *OrbitController {
	return &OrbitController{
		State:      InitialOrbit,
		Step:       0.05,
		HeightStep: 0.1,
		Radius:     5,
		Focal:      focal,
	}
}

// Position returns the camera position for the current state.
func (o *OrbitController) Position() mgl32.Vec3 {
	return mgl32.Vec3{
		o.Radius * math32.Sin(o.State.Azimuth),
		o.State.Height,
		o.Radius * math32.Cos(o.State.Azimuth),
	}
}

// Handle applies one key step and re-aims the camera.
func (o *OrbitController) Handle(dir Direction, cam *scene.Camera) {
	switch dir {
	case DirLeft:
		o.State.Azimuth -= o.Step
	case DirRight:
		o.State.Azimuth += o.Step
	case DirUp:
		o.State.Height += o.HeightStep
	case DirDown:
		o.State.Height -= o.HeightStep
	default:
		return
	}
	o.Apply(cam)
}

// Apply places cam at Position looking at Focal.
func (o *OrbitController) Apply(cam *scene.Camera) {
	cam.SetPosition(o.Position())
	cam.LookAt(o.Focal)
}
