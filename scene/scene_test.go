package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleNodesAndTextures(t *testing.T) {
	s := NewScene()
	shared := NewTexture("texture/wall-texture.jpg")

	room := NewPrimitive("room", CreateBox(12, 5, 10), UniformFaces(Textured(shared)).Materials()...)
	hidden := NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(NewPrimitive("inside", CreateBox(1, 1, 1), NewTexturedMaterial("x", NewTexture("other"))))
	s.AddNode(room)
	s.AddNode(hidden)

	visible := s.GetVisibleNodes()
	assert.Equal(t, []*Node{room}, visible)
	assert.Equal(t, []*Texture{shared}, s.Textures())

	s.RemoveNode(room)
	assert.Empty(t, s.GetVisibleNodes())
}

func TestMaterialSetMapFlagsUpdate(t *testing.T) {
	m := NewTexturedMaterial("screen", NewTexture("a"))
	assert.False(t, m.NeedsUpdate)
	assert.False(t, m.Textured())

	next := solidTexture("b", 255, 0, 0, 255)
	m.SetMap(next)
	assert.True(t, m.NeedsUpdate)
	assert.True(t, m.Textured())
}
