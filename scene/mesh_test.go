package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desk-room/core"
)

var testColor = core.Hex(0x336699)

func TestCreateBoxGroups(t *testing.T) {
	box := CreateBox(2, 0.1, 1)
	require.Len(t, box.Vertices, 24)
	require.Len(t, box.Indices, 36)
	require.Len(t, box.Groups, FaceCount)

	for _, f := range AllFaces {
		g := box.Groups[f]
		assert.Equal(t, int(f), g.MaterialIndex)
		assert.Equal(t, 6, g.Count)
		assert.Equal(t, int(f), box.GroupOf(g.Start/3))
	}

	assertVec3(t, mgl32.Vec3{-1, -0.05, -0.5}, box.LocalAABB.Min)
	assertVec3(t, mgl32.Vec3{1, 0.05, 0.5}, box.LocalAABB.Max)
}

func TestCreateBoxOutwardWinding(t *testing.T) {
	box := CreateBox(1, 2, 3)
	for tri := 0; tri < len(box.Indices)/3; tri++ {
		a := box.Vertices[box.Indices[tri*3]]
		b := box.Vertices[box.Indices[tri*3+1]]
		c := box.Vertices[box.Indices[tri*3+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
		assertVec3(t, a.Normal, n)
		// every face vertex lies on the outward side of the centre
		assert.Greater(t, a.Position.Dot(a.Normal), float32(0))
	}
}

func TestDrawGroupsDefault(t *testing.T) {
	plane := CreatePlane(3.4, 2.3)
	groups := plane.DrawGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, Group{Start: 0, Count: 6}, groups[0])
	assert.Equal(t, 0, plane.GroupOf(1))
}

func TestAABBTransformed(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := mgl32.Translate3D(0, 2, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))
	out := box.Transformed(m)

	assert.InDelta(t, -1.4142, out.Min.X(), 1e-3)
	assert.InDelta(t, 1.4142, out.Max.X(), 1e-3)
	assert.InDelta(t, 1, out.Min.Y(), 1e-4)
	assert.InDelta(t, 3, out.Max.Y(), 1e-4)
}
