package room

import (
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
	"desk-room/scene"
)

// box creates a shadowed box primitive at pos.
func box(name string, w, h, d float32, pos mgl32.Vec3, faces scene.FaceSet) *scene.Node {
	n := scene.NewPrimitive(name, scene.CreateBox(w, h, d), faces.Materials()...)
	n.SetPosition(pos)
	n.SetShadows(true, true)
	return n
}

func buildShell(src TextureSource) (*scene.Node, *scene.Node) {
	wall := scene.Textured(src.Texture(WallTexture))
	faces := scene.BuildFaceSet([scene.FaceCount]scene.FaceSpec{
		wall,
		wall,
		scene.Flat(core.ColorBlack),
		scene.Textured(src.Texture(FloorTexture)),
		wall,
		wall,
	})
	faces.Each(func(_ scene.Face, m *scene.Material) {
		m.Side = scene.BackSide
	})

	shell := scene.NewPrimitive("room", scene.CreateBox(12, 5, 10), faces.Materials()...)
	shell.SetPosition(mgl32.Vec3{1, 1, 0})
	shell.ReceiveShadow = true

	glass := scene.NewTexturedMaterial("window", src.Texture(WindowTexture))
	glass.Unlit = true
	glass.Transparent = true
	window := scene.NewPrimitive("window", scene.CreatePlane(3.4, 2.3), glass)
	window.SetPosition(mgl32.Vec3{0, 0.1, -4.9})
	shell.Add(window)

	return shell, window
}

// makeLeg returns a table leg at pos. All legs share geometry and material.
func makeLeg(pos mgl32.Vec3, mesh *scene.Mesh, mat *scene.Material) *scene.Node {
	leg := scene.NewPrimitive("table_leg", mesh, mat)
	leg.SetPosition(pos)
	leg.SetShadows(true, true)
	return leg
}

func buildTable(src TextureSource) *scene.Node {
	wood := src.Texture(TableTexture)

	table := scene.NewGroup("table")
	table.SetPosition(mgl32.Vec3{0, 0, -2})

	top := scene.NewPrimitive("table_top", scene.CreateBox(4, 0.2, 2), scene.NewTexturedMaterial("table_top", wood))
	top.SetShadows(true, true)
	table.Add(top)

	legMesh := scene.CreateBox(0.2, 2, 0.2)
	legMat := scene.NewTexturedMaterial("table_leg", wood)
	for _, p := range []mgl32.Vec3{
		{-1.8, -1, -0.8},
		{1.8, -1, -0.8},
		{-1.8, -1, 0.8},
		{1.8, -1, 0.8},
	} {
		table.Add(makeLeg(p, legMesh, legMat))
	}
	return table
}

func buildChair(src TextureSource) *scene.Node {
	fabric := src.Texture(ChairTexture)

	chair := scene.NewGroup("chair")
	chair.SetPosition(mgl32.Vec3{0, 0, -2})

	seat := scene.NewPrimitive("chair_seat", scene.CreateBox(0.9, 0.1, 1), scene.NewTexturedMaterial("chair_seat", fabric))
	seat.SetPosition(mgl32.Vec3{0, -0.5, 1})
	seat.SetShadows(true, true)

	back := scene.NewPrimitive("chair_back", scene.CreateBox(0.9, 1.1, 0.1), scene.NewTexturedMaterial("chair_back", fabric))
	back.SetPosition(mgl32.Vec3{0, 0, 1.5})
	back.SetShadows(true, true)

	chair.Add(seat, back)

	grey := scene.Flat(core.ColorGrey)
	legFaces := scene.UniformFaces(scene.Textured(fabric)).
		With(scene.FaceTop, grey).
		With(scene.FaceBottom, grey)
	legMesh := scene.CreateBox(0.1, 1, 0.1)
	for _, p := range []mgl32.Vec3{
		{-0.4, -1, 0.55},
		{0.4, -1, 0.55},
		{-0.4, -1, 1.5},
		{0.4, -1, 1.5},
	} {
		leg := scene.NewPrimitive("chair_leg", legMesh, legFaces.Materials()...)
		leg.SetPosition(p)
		leg.SetShadows(true, true)
		chair.Add(leg)
	}
	return chair
}

func buildCPU(src TextureSource) *scene.Node {
	faces := scene.UniformFaces(scene.Textured(src.Texture(CPUSideTexture))).
		With(scene.FaceFront, scene.Textured(src.Texture(CPUFrontTexture))).
		With(scene.FaceBack, scene.Textured(src.Texture(CPUBackTexture)))
	return box("cpu", 0.5, 1.3, 0.5, mgl32.Vec3{-1.5, 0.7, 0}, faces)
}

func buildKeyboard(src TextureSource) *scene.Node {
	faces := scene.UniformFaces(scene.Textured(src.Texture(CPUSideTexture))).
		With(scene.FaceTop, scene.Textured(src.Texture(KeyboardTexture)))
	return box("keyboard", 1.5, 0.05, 0.5, mgl32.Vec3{0, 0.12, 0.5}, faces)
}

func buildMonitor(src TextureSource, screen *scene.Texture) (*scene.Node, *scene.Node) {
	casing := src.Texture(CPUSideTexture)

	group := scene.NewGroup("monitor")

	faces := scene.UniformFaces(scene.Textured(casing)).With(scene.FaceFront, scene.Textured(screen))
	panel := box("monitor_panel", 2, 1.2, 0.1, mgl32.Vec3{0, 0.8, -0.5}, faces)

	base := scene.NewPrimitive("stand_base", scene.CreateBox(0.4, 0.05, 0.4), scene.NewTexturedMaterial("stand_base", casing))
	base.SetPosition(mgl32.Vec3{0, 0.1, -0.5})
	base.SetShadows(true, true)

	pole := scene.NewPrimitive("stand_pole", scene.CreateBox(0.05, 0.3, 0.05), scene.NewTexturedMaterial("stand_pole", casing))
	pole.SetPosition(mgl32.Vec3{0, 0.1, -0.5})
	pole.SetShadows(true, true)

	group.Add(panel, base, pole)
	return group, panel
}
