package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"desk-room/core"
)

func TestBuildFaceSetDistinctMaterials(t *testing.T) {
	wall := NewTexture("texture/wall-texture.jpg")
	fs := BuildFaceSet([FaceCount]FaceSpec{
		Textured(wall), Textured(wall), Flat(core.ColorBlack),
		Textured(wall), Textured(wall), Textured(wall),
	})

	seen := map[*Material]bool{}
	fs.Each(func(f Face, m *Material) {
		assert.False(t, seen[m], "face %s shares a material", f)
		seen[m] = true
	})

	assert.Same(t, wall, fs[FaceRight].Map)
	assert.Same(t, wall, fs[FaceBack].Map)
	assert.Nil(t, fs[FaceTop].Map)
	assert.Equal(t, core.ColorBlack, fs[FaceTop].Color)
}

func TestFaceSetWithCopies(t *testing.T) {
	base := UniformFaces(Flat(core.ColorBlack))
	screen := NewTexture("monitor-front.jpg")
	front := base.With(FaceFront, Textured(screen))

	assert.Nil(t, base[FaceFront].Map)
	assert.Same(t, screen, front[FaceFront].Map)
	assert.Same(t, base[FaceLeft], front[FaceLeft])
}

func TestFaceSetOnBox(t *testing.T) {
	fs := UniformFaces(Flat(core.ColorGrey)).With(FaceFront, Textured(NewTexture("front")))
	n := NewPrimitive("monitor", CreateBox(1, 0.6, 0.05), fs.Materials()...)

	box := n.Mesh
	for _, g := range box.Groups {
		assert.Same(t, fs[g.MaterialIndex], n.Material(g.MaterialIndex))
	}
	assert.Equal(t, "front", n.FaceMaterial(FaceFront).Map.Name)
}

func TestFaceString(t *testing.T) {
	assert.Equal(t, "front", FaceFront.String())
	assert.Equal(t, "Face(9)", Face(9).String())
}
