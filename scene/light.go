package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
)

// PointLight emits in all directions from Position, fading to zero at Range.
type PointLight struct {
	Name      string
	Position  mgl32.Vec3
	Color     core.Color
	Intensity float32
	Range     float32 // 0 means no cutoff

	CastShadow bool
	ShadowSize int // shadow map resolution in texels per side
	// Target is the point the shadow map is centred on.
	Target mgl32.Vec3
	// ShadowFOV is the vertical field of view of the shadow map in degrees.
	ShadowFOV  float32
	ShadowNear float32
}

func NewPointLight(color core.Color, intensity, rng float32) *PointLight {
	return &PointLight{
		Name:       "PointLight",
		Color:      color,
		Intensity:  intensity,
		Range:      rng,
		ShadowSize: 512,
		ShadowFOV:  120,
		ShadowNear: 0.5,
	}
}

func (l *PointLight) SetPosition(pos mgl32.Vec3) {
	l.Position = pos
}

// ShadowViewProjection returns the matrix that maps world space into the
// light's shadow map, looking from Position toward Target.
func (l *PointLight) ShadowViewProjection() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	dir := l.Target.Sub(l.Position)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	if mgl32.Abs(dir.Normalize().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	far := l.Range
	if far <= l.ShadowNear {
		far = 100
	}
	view := mgl32.LookAtV(l.Position, l.Position.Add(dir), up)
	proj := mgl32.Perspective(mgl32.DegToRad(l.ShadowFOV), 1, l.ShadowNear, far)
	return proj.Mul4(view)
}
