// Package room assembles the desk room scene: the room shell with its
// window, the table with the computer on it, the chair and the light.
package room

import (
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
	"desk-room/scene"
)

// Layout is the assembled room with handles to the parts that input
// handling and animation need.
type Layout struct {
	Root *scene.Node

	Room   *scene.Node
	Window *scene.Node

	Table        *scene.Node
	Chair        *scene.Node
	CPU          *scene.Node
	Keyboard     *scene.Node
	MonitorGroup *scene.Node
	Monitor      *scene.Node
	Mouse        *scene.Node // nil until AttachMouse

	Light *scene.PointLight

	// MonitorImages is the cycle of images for the monitor's front face;
	// the first is shown initially.
	MonitorImages []*scene.Texture
}

// Build creates the full room. Textures are requested from src but may
// still be loading; the scene is valid either way.
func Build(src TextureSource) *Layout {
	l := &Layout{Root: scene.NewGroup("Root")}

	l.Room, l.Window = buildShell(src)
	l.Table = buildTable(src)
	l.Chair = buildChair(src)

	l.CPU = buildCPU(src)
	l.Keyboard = buildKeyboard(src)
	l.Table.Add(l.CPU, l.Keyboard)

	for _, p := range MonitorImages {
		l.MonitorImages = append(l.MonitorImages, src.Texture(p))
	}
	l.MonitorGroup, l.Monitor = buildMonitor(src, l.MonitorImages[0])
	l.Table.Add(l.MonitorGroup)

	l.Root.Add(l.Room, l.Table, l.Chair)

	l.Light = scene.NewPointLight(core.ColorWhite, 30, 100)
	l.Light.SetPosition(mgl32.Vec3{10, 0, 10})
	l.Light.CastShadow = true
	l.Light.ShadowSize = 1024
	l.Light.Target = l.FocalPoint()
	return l
}

// FocalPoint is where the keyboard orbit camera looks: the table origin.
func (l *Layout) FocalPoint() mgl32.Vec3 {
	return l.Table.WorldPosition()
}

// AttachMouse scales and places a loaded mouse model on the table and
// enables shadows on all of its meshes.
func (l *Layout) AttachMouse(model *scene.Node) {
	if model == nil {
		return
	}
	wrapper := scene.NewGroup("mouse")
	wrapper.SetUniformScale(0.01)
	wrapper.SetPosition(mgl32.Vec3{0.8, 0.1, 0.7})
	wrapper.Add(model)
	wrapper.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			n.SetShadows(true, true)
		}
	})
	l.Table.Add(wrapper)
	l.Mouse = wrapper
}

// Scene wraps the layout in a scene with its light.
func (l *Layout) Scene() *scene.Scene {
	s := scene.NewScene()
	s.AddNode(l.Root)
	s.AddLight(l.Light)
	return s
}
