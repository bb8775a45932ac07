package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"desk-room/core"
)

func TestShadowViewProjectionCentresTarget(t *testing.T) {
	l := NewPointLight(core.ColorWhite, 30, 100)
	l.SetPosition(mgl32.Vec3{0, 3, 3})
	l.Target = mgl32.Vec3{0, 0, -2}

	vp := l.ShadowViewProjection()
	p := mgl32.TransformCoordinate(l.Target, vp)
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
	assert.True(t, p.Z() > -1 && p.Z() < 1, "target depth %v outside clip range", p.Z())
}

func TestShadowViewProjectionStraightDown(t *testing.T) {
	l := NewPointLight(core.ColorWhite, 30, 100)
	l.SetPosition(mgl32.Vec3{0, 5, 0})

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, l.ShadowViewProjection())
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
}
