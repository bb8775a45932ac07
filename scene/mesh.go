package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
)

// Group is a contiguous index range drawn with Node.Materials[MaterialIndex].
type Group struct {
	Start         int
	Count         int
	MaterialIndex int
}

// Mesh holds CPU-side vertex/index data. Meshes are immutable after
// construction and may be shared by any number of nodes.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	// Groups splits Indices into per-material ranges. Empty means the whole
	// mesh uses material 0.
	Groups []Group

	LocalAABB AABB
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
	}
	return m
}

// DrawGroups returns Groups, or a single group covering every index.
func (m *Mesh) DrawGroups() []Group {
	if len(m.Groups) > 0 {
		return m.Groups
	}
	return []Group{{Start: 0, Count: len(m.Indices)}}
}

// GroupOf returns the material index of triangle tri.
func (m *Mesh) GroupOf(tri int) int {
	idx := tri * 3
	for _, g := range m.Groups {
		if idx >= g.Start && idx < g.Start+g.Count {
			return g.MaterialIndex
		}
	}
	return 0
}

func computeLocalAABB(vertices []core.Vertex) AABB {
	lo := vertices[0].Position
	hi := vertices[0].Position
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], v.Position[i])
			hi[i] = math32.Max(hi[i], v.Position[i])
		}
	}
	return AABB{Min: lo, Max: hi}
}

// Transformed returns the AABB enclosing the eight corners of a under m.
func (a AABB) Transformed(m mgl32.Mat4) AABB {
	out := AABB{
		Min: mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{a.Min.X(), a.Min.Y(), a.Min.Z()}
		if i&1 != 0 {
			corner[0] = a.Max.X()
		}
		if i&2 != 0 {
			corner[1] = a.Max.Y()
		}
		if i&4 != 0 {
			corner[2] = a.Max.Z()
		}
		p := mgl32.TransformCoordinate(corner, m)
		for k := 0; k < 3; k++ {
			out.Min[k] = math32.Min(out.Min[k], p[k])
			out.Max[k] = math32.Max(out.Max[k], p[k])
		}
	}
	return out
}

// boxFace describes one side of a box: outward normal and the two in-plane
// axes (u to the right, v up when looking at the face from outside).
type boxFace struct {
	normal, u, v mgl32.Vec3
}

// Face order matches the Face enum: +X, -X, +Y, -Y, +Z, -Z.
var boxFaces = [FaceCount]boxFace{
	FaceRight:  {normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	FaceLeft:   {normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	FaceTop:    {normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	FaceBottom: {normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	FaceFront:  {normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	FaceBack:   {normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// CreateBox generates a width x height x depth box centred on the origin.
// Each face is its own group, with MaterialIndex equal to its Face value,
// so a FaceSet can be bound directly.
func CreateBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	groups := make([]Group, 0, FaceCount)

	for f, bf := range boxFaces {
		base := uint32(len(vertices))
		center := bf.normal.Mul(absDot(bf.normal, half))
		du := bf.u.Mul(absDot(bf.u, half))
		dv := bf.v.Mul(absDot(bf.v, half))

		corners := [4]struct {
			su, sv float32
			uv     mgl32.Vec2
		}{
			{-1, -1, mgl32.Vec2{0, 0}},
			{1, -1, mgl32.Vec2{1, 0}},
			{1, 1, mgl32.Vec2{1, 1}},
			{-1, 1, mgl32.Vec2{0, 1}},
		}
		for _, c := range corners {
			vertices = append(vertices, core.Vertex{
				Position: center.Add(du.Mul(c.su)).Add(dv.Mul(c.sv)),
				Normal:   bf.normal,
				UV:       c.uv,
			})
		}

		groups = append(groups, Group{Start: len(indices), Count: 6, MaterialIndex: f})
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	m := CreateMeshFromData("Box", vertices, indices)
	m.Groups = groups
	return m
}

// CreatePlane generates a width x height quad in the XY plane facing +Z.
func CreatePlane(width, height float32) *Mesh {
	w, h := width/2, height/2
	normal := mgl32.Vec3{0, 0, 1}
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-w, -h, 0}, Normal: normal, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{w, -h, 0}, Normal: normal, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{w, h, 0}, Normal: normal, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-w, h, 0}, Normal: normal, UV: mgl32.Vec2{0, 1}},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return CreateMeshFromData("Plane", vertices, indices)
}

func absDot(axis, half mgl32.Vec3) float32 {
	return math32.Abs(axis.X())*half.X() + math32.Abs(axis.Y())*half.Y() + math32.Abs(axis.Z())*half.Z()
}
