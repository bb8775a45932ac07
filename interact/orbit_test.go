package interact

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"desk-room/scene"
)

var focal = mgl32.Vec3{0, 0, -2}

func newCamera() *scene.Camera {
	return scene.NewCamera(75, 16.0/9.0, 0.1, 1000)
}

func TestOrbitSequence(t *testing.T) {
	o := NewOrbitController(focal)
	cam := newCamera()

	for _, d := range []Direction{DirRight, DirRight, DirUp, DirLeft, DirDown, DirDown} {
		o.Handle(d, cam)
	}

	assert.InDelta(t, 0.05, o.State.Azimuth, 1e-6)
	assert.InDelta(t, 1.9, o.State.Height, 1e-5)
	assert.InDelta(t, 5*math32.Sin(0.05), cam.Position.X(), 1e-5)
	assert.InDelta(t, 1.9, cam.Position.Y(), 1e-5)
	assert.InDelta(t, 5*math32.Cos(0.05), cam.Position.Z(), 1e-5)

	want := focal.Sub(cam.Position).Normalize()
	assert.True(t, want.ApproxEqualThreshold(cam.GetForward(), 1e-4))
}

func TestOrbitDeterministic(t *testing.T) {
	seq := []Direction{DirUp, DirLeft, DirLeft, DirRight, DirUp, DirDown, DirLeft}
	run := func() mgl32.Vec3 {
		o := NewOrbitController(focal)
		cam := newCamera()
		for _, d := range seq {
			o.Handle(d, cam)
		}
		return cam.Position
	}
	assert.Equal(t, run(), run())
}

func TestOrbitUnclamped(t *testing.T) {
	o := NewOrbitController(focal)
	cam := newCamera()
	for i := 0; i < 100; i++ {
		o.Handle(DirUp, cam)
		o.Handle(DirLeft, cam)
	}
	assert.InDelta(t, 12, o.State.Height, 1e-3)
	assert.InDelta(t, -5, o.State.Azimuth, 1e-3)
}

func TestUnknownDirectionIgnored(t *testing.T) {
	o := NewOrbitController(focal)
	cam := newCamera()
	o.Handle(Direction(42), cam)
	assert.Equal(t, InitialOrbit, o.State)
	assert.Equal(t, mgl32.Vec3{}, cam.Position)
}

func TestControlsDamping(t *testing.T) {
	c := NewControls(focal)
	cam := newCamera()
	cam.SetPosition(mgl32.Vec3{0, 2, 5})
	cam.LookAt(focal)

	assert.False(t, c.Update(cam), "idle controls move the camera")
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, cam.Position)

	radius := cam.Position.Sub(focal).Len()
	c.Drag(100, 0, 720)
	assert.True(t, c.Pending())

	first := cam.Position
	assert.True(t, c.Update(cam))
	moved := cam.Position.Sub(first).Len()
	assert.Greater(t, moved, float32(0))
	assert.InDelta(t, radius, cam.Position.Sub(focal).Len(), 1e-4)

	// later frames move less
	prev := cam.Position
	c.Update(cam)
	assert.Less(t, cam.Position.Sub(prev).Len(), moved)

	c.Stop()
	assert.False(t, c.Pending())
}

func TestOrbitIgnoresUnknownDirection(t *testing.T) {
	o := NewOrbitController(focal)
	cam := newCamera()
	cam.SetPosition(mgl32.Vec3{5, 2, 5})
	cam.LookAt(focal)

	o.Handle(Direction(99), cam)
	assert.Equal(t, InitialOrbit, o.State)
	assert.Equal(t, mgl32.Vec3{5, 2, 5}, cam.Position)
}
