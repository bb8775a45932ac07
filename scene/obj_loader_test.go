package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# two objects
mtllib desk.mtl
o top
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
usemtl wood
f 1/1/1 2/2/1 3/3/1 4/4/1
o tri
v 0 0 0
v 0 1 0
v 0 0 1
f -3 -2 -1
`

const deskMTL = `newmtl wood
Kd 0.5 0.25 0
Ns 12
d 0.5
`

func TestParseOBJ(t *testing.T) {
	var libs []string
	root, err := parseOBJ(strings.NewReader(quadOBJ), "desk.obj", func(lib string) map[string]*Material {
		libs = append(libs, lib)
		mats, err := parseMTL(strings.NewReader(deskMTL), nil)
		require.NoError(t, err)
		return mats
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"desk.mtl"}, libs)
	assert.Equal(t, "desk.obj", root.Name)
	require.Len(t, root.Children, 2)

	top := root.Children[0]
	assert.Equal(t, "top", top.Name)
	assert.Len(t, top.Mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, top.Mesh.Indices)
	assert.Equal(t, mgl32.Vec2{1, 1}, top.Mesh.Vertices[2].UV)
	mat := top.Material(0)
	assert.Equal(t, "wood", mat.Name)
	assert.InDelta(t, 0.25, mat.Color.G, 1e-6)
	assert.InDelta(t, 0.5, mat.Color.A, 1e-6)
	assert.True(t, mat.Transparent)
	assert.InDelta(t, 12, mat.Shininess, 1e-6)

	// negative indices and generated normals
	tri := root.Children[1]
	require.Len(t, tri.Mesh.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, tri.Mesh.Vertices[1].Position)
	for _, v := range tri.Mesh.Vertices {
		assertVec3(t, mgl32.Vec3{1, 0, 0}, v.Normal)
	}
	// the triangle keeps the material set before its object statement
	assert.Same(t, mat, tri.Material(0))
}

func TestParseOBJErrors(t *testing.T) {
	_, err := parseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nf 1 2\n"), "bad", nil)
	assert.ErrorContains(t, err, "line 3")

	_, err = parseOBJ(strings.NewReader("v 0 0 0\nf 1 2 7\n"), "bad", nil)
	assert.ErrorContains(t, err, "out of range")

	_, err = parseOBJ(strings.NewReader("# empty\n"), "bad", nil)
	assert.ErrorContains(t, err, "no faces")
}

func TestLoadModelDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	root, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "tri.obj", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "obj-default", root.Children[0].Material(0).Name)

	_, err = LoadModel(filepath.Join(dir, "mouse.fbx"))
	assert.ErrorContains(t, err, "unsupported format")
}
