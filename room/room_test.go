package room

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desk-room/core"
	"desk-room/scene"
)

// handles returns one shared handle per path, like the asset loader.
type handles map[string]*scene.Texture

func (h handles) Texture(path string) *scene.Texture {
	if t, ok := h[path]; ok {
		return t
	}
	t := scene.NewTexture(path)
	h[path] = t
	return t
}

func near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestRoomShell(t *testing.T) {
	src := handles{}
	l := Build(src)

	room := l.Room
	require.Len(t, room.Materials, scene.FaceCount)
	near(t, mgl32.Vec3{1, 1, 0}, room.WorldPosition())
	assert.True(t, room.ReceiveShadow)
	assert.False(t, room.CastShadow)

	for _, f := range scene.AllFaces {
		assert.Equal(t, scene.BackSide, room.FaceMaterial(f).Side, "face %s", f)
	}
	assert.Same(t, src[WallTexture], room.FaceMaterial(scene.FaceRight).Map)
	assert.Same(t, src[FloorTexture], room.FaceMaterial(scene.FaceBottom).Map)
	assert.Nil(t, room.FaceMaterial(scene.FaceTop).Map)
	assert.Equal(t, core.ColorBlack, room.FaceMaterial(scene.FaceTop).Color)

	require.Same(t, room, l.Window.Parent)
	glass := l.Window.Material(0)
	assert.True(t, glass.Unlit)
	assert.True(t, glass.Transparent)
	near(t, mgl32.Vec3{1, 1.1, -4.9}, l.Window.WorldPosition())
}

func TestTableAndChair(t *testing.T) {
	l := Build(handles{})

	near(t, mgl32.Vec3{0, 0, -2}, l.FocalPoint())
	near(t, mgl32.Vec3{0, 0, -2}, l.Chair.WorldPosition())

	var legs []*scene.Node
	for _, c := range l.Table.Children {
		if c.Name == "table_leg" {
			legs = append(legs, c)
		}
	}
	require.Len(t, legs, 4)
	for _, leg := range legs[1:] {
		assert.Same(t, legs[0].Mesh, leg.Mesh)
		assert.Same(t, legs[0].Material(0), leg.Material(0))
	}
	near(t, mgl32.Vec3{1.8, -1, -1.2}, legs[3].WorldPosition())

	chairLeg := l.Chair.Find("chair_leg")
	require.NotNil(t, chairLeg)
	assert.Nil(t, chairLeg.FaceMaterial(scene.FaceTop).Map)
	assert.Equal(t, core.ColorGrey, chairLeg.FaceMaterial(scene.FaceBottom).Color)
	assert.NotNil(t, chairLeg.FaceMaterial(scene.FaceFront).Map)
}

func TestComputerFaces(t *testing.T) {
	src := handles{}
	l := Build(src)

	assert.Same(t, src[CPUFrontTexture], l.CPU.FaceMaterial(scene.FaceFront).Map)
	assert.Same(t, src[CPUBackTexture], l.CPU.FaceMaterial(scene.FaceBack).Map)
	assert.Same(t, src[CPUSideTexture], l.CPU.FaceMaterial(scene.FaceTop).Map)
	assert.Same(t, src[KeyboardTexture], l.Keyboard.FaceMaterial(scene.FaceTop).Map)
	assert.Same(t, src[CPUSideTexture], l.Keyboard.FaceMaterial(scene.FaceFront).Map)

	require.Len(t, l.MonitorImages, 4)
	assert.Same(t, l.MonitorImages[0], l.Monitor.FaceMaterial(scene.FaceFront).Map)
	assert.Same(t, src[CPUSideTexture], l.Monitor.FaceMaterial(scene.FaceBack).Map)
	near(t, mgl32.Vec3{0, 0.8, -2.5}, l.Monitor.WorldPosition())
	assert.Same(t, l.MonitorGroup, l.Monitor.Parent)
	assert.Same(t, l.Table, l.MonitorGroup.Parent)
}

func TestShadowFlags(t *testing.T) {
	l := Build(handles{})
	l.Root.Traverse(func(n *scene.Node) {
		if n.Mesh == nil || n == l.Room || n == l.Window {
			return
		}
		assert.True(t, n.CastShadow, n.Name)
		assert.True(t, n.ReceiveShadow, n.Name)
	})
	assert.True(t, l.Light.CastShadow)
	assert.Equal(t, 1024, l.Light.ShadowSize)
	assert.Equal(t, float32(30), l.Light.Intensity)
	assert.Equal(t, float32(100), l.Light.Range)
}

func TestAttachMouse(t *testing.T) {
	l := Build(handles{})
	assert.Nil(t, l.Mouse)
	assert.Nil(t, l.Root.Find("mouse"))

	model := scene.NewGroup("mouse.glb")
	body := scene.NewPrimitive("body", scene.CreateBox(10, 5, 20), scene.NewMaterial("plastic", core.ColorBlack))
	body.SetPosition(mgl32.Vec3{100, 0, 0})
	model.Add(body)

	l.AttachMouse(model)
	require.NotNil(t, l.Mouse)
	assert.Same(t, l.Table, l.Mouse.Parent)
	assert.True(t, body.CastShadow)
	assert.True(t, body.ReceiveShadow)
	near(t, mgl32.Vec3{1.8, 0.1, -1.3}, body.WorldPosition())

	l.AttachMouse(nil)
	assert.Same(t, l.Mouse, l.Root.Find("mouse"))
}

func TestSceneCarriesLight(t *testing.T) {
	l := Build(handles{})
	s := l.Scene()
	assert.Equal(t, []*scene.PointLight{l.Light}, s.Lights)
	assert.Same(t, l.Root, s.Root.Children[0])
	assert.NotEmpty(t, s.Textures())
}
