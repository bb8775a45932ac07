package app

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// LightAnimator circles a light around the vertical axis once every 2π
// seconds of wall-clock time.
type LightAnimator struct {
	Radius float32
	Height float32

	// Clock returns the current time in seconds.
	Clock func() float64
}

func NewLightAnimator(radius, height float32) *LightAnimator {
	return &LightAnimator{
		Radius: radius,
		Height: height,
		Clock:  UnixSeconds,
	}
}

// UnixSeconds is wall-clock time in fractional seconds.
func UnixSeconds() float64 {
	return float64(time.Now().UnixMilli()) * 0.001
}

// Position returns the light position at time t seconds.
func (a *LightAnimator) Position(t float64) mgl32.Vec3 {
	// trig in float64: t is a Unix timestamp, too large for float32
	return mgl32.Vec3{
		float32(math.Sin(t)) * a.Radius,
		a.Height,
		float32(math.Cos(t)) * a.Radius,
	}
}

// Apply moves light to its position at t.
func (a *LightAnimator) Apply(light *scene.PointLight, t float64) {
	light.SetPosition(a.Position(t))
}

// Update moves light to its position now.
func (a *LightAnimator) Update(light *scene.PointLight) {
	a.Apply(light, a.Clock())
}
