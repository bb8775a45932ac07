package interact

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// Controls orbits the camera around Target from pointer drags, easing each
// drag out over several frames.
type Controls struct {
	Target        mgl32.Vec3
	Damping       float32 // fraction of pending rotation applied per frame
	RotateSpeed   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
}

const pendingEpsilon = 1e-6

func NewControls(target mgl32.Vec3) *Controls {
	return &Controls{
		Target:        target,
		Damping:       0.05,
		RotateSpeed:   1,
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
	}
}

// Drag queues a rotation for a pointer move of (dx, dy) pixels in a
// viewport of the given height.
func (c *Controls) Drag(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	h := float32(viewportHeight)
	c.deltaTheta -= 2 * math32.Pi * float32(dx) / h * c.RotateSpeed
	c.deltaPhi -= 2 * math32.Pi * float32(dy) / h * c.RotateSpeed
}

// Pending reports whether any queued rotation is left.
func (c *Controls) Pending() bool {
	return math32.Abs(c.deltaTheta) > pendingEpsilon || math32.Abs(c.deltaPhi) > pendingEpsilon
}

// Update applies a damped share of the queued rotation to cam. It returns
// false and leaves cam untouched when nothing is queued.
func (c *Controls) Update(cam *scene.Camera) bool {
	if !c.Pending() {
		c.deltaTheta, c.deltaPhi = 0, 0
		return false
	}

	offset := cam.Position.Sub(c.Target)
	radius := offset.Len()
	if radius == 0 {
		c.deltaTheta, c.deltaPhi = 0, 0
		return false
	}
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))

	theta += c.deltaTheta * c.Damping
	phi += c.deltaPhi * c.Damping

	const eps = 1e-6
	phi = mgl32.Clamp(phi, math32.Max(eps, c.MinPolarAngle), math32.Min(math32.Pi-eps, c.MaxPolarAngle))

	sinPhi := math32.Sin(phi)
	offset = mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	cam.SetPosition(c.Target.Add(offset))
	cam.LookAt(c.Target)

	c.deltaTheta *= 1 - c.Damping
	c.deltaPhi *= 1 - c.Damping
	return true
}

// Stop drops any queued rotation.
func (c *Controls) Stop() {
	c.deltaTheta, c.deltaPhi = 0, 0
}
