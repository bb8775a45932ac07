package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestTransformMatrixOrder(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 0, 0}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	// scale, then rotate +X onto -Z, then translate
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	assertVec3(t, mgl32.Vec3{1, 0, -2}, p)
}

func TestIdentityTransform(t *testing.T) {
	assert.True(t, NewTransform().Matrix().ApproxEqual(mgl32.Ident4()))
}

func BenchmarkTransformMatrix(b *testing.B) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	for i := 0; i < b.N; i++ {
		_ = tr.Matrix()
	}
}
