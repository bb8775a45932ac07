package app

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"desk-room/core"
	"desk-room/scene"
)

func TestLightPeriodic(t *testing.T) {
	a := NewLightAnimator(3, 3)
	for _, t0 := range []float64{0, 1.25, 1.7e9} {
		p := a.Position(t0)
		q := a.Position(t0 + 2*math.Pi)
		assert.True(t, p.ApproxEqualThreshold(q, 1e-4), "t=%v: %v vs %v", t0, p, q)
		assert.Equal(t, float32(3), p.Y())
		assert.InDelta(t, 3, mgl32.Vec2{p.X(), p.Z()}.Len(), 1e-4)
	}
}

func TestLightKnownPositions(t *testing.T) {
	a := NewLightAnimator(3, 3)
	assert.True(t, mgl32.Vec3{0, 3, 3}.ApproxEqualThreshold(a.Position(0), 1e-6))
	assert.True(t, mgl32.Vec3{3, 3, 0}.ApproxEqualThreshold(a.Position(math.Pi/2), 1e-5))
}

func TestLightUpdateUsesClock(t *testing.T) {
	a := NewLightAnimator(3, 3)
	a.Clock = func() float64 { return math.Pi }
	light := scene.NewPointLight(core.ColorWhite, 30, 100)
	light.SetPosition(mgl32.Vec3{10, 0, 10})

	a.Update(light)
	assert.True(t, mgl32.Vec3{0, 3, -3}.ApproxEqualThreshold(light.Position, 1e-5))
}
