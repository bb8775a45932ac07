package scene

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleDoc() *gltf.Document {
	doc := &gltf.Document{}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name: "plastic",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.2, 0.2, 0.2, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "body",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{"POSITION": pos},
			Indices:    gltf.Index(idx),
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "mouse", Children: []int{1}, Translation: [3]float64{0, 0, 0}, Scale: [3]float64{1, 1, 1}, Rotation: [4]float64{0, 0, 0, 1}},
		{Name: "shell", Mesh: gltf.Index(0), Translation: [3]float64{0, 2, 0}, Scale: [3]float64{1, 1, 1}, Rotation: [4]float64{0, 0, 0, 1}},
	}
	return doc
}

func TestConvertGLTF(t *testing.T) {
	root, err := convertGLTF(triangleDoc(), ".", "mouse.glb")
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	shell := root.Find("shell")
	require.NotNil(t, shell)
	require.NotNil(t, shell.Mesh)
	assert.Len(t, shell.Mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, shell.Mesh.Indices)
	assert.InDelta(t, 0.2, shell.Material(0).Color.R, 1e-6)
	assert.InDelta(t, 2, shell.WorldPosition().Y(), 1e-6)
}
