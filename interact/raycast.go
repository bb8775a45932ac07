package interact

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Intersection is one ray hit on a primitive triangle.
type Intersection struct {
	Distance float32
	Point    mgl32.Vec3
	Node     *scene.Node
	// Group is the material index of the hit triangle; for boxes this is
	// the scene.Face that was hit.
	Group    int
	Triangle int
}

// Raycaster casts rays from the camera through screen positions.
type Raycaster struct {
	Ray Ray
}

// NDC converts a window position in pixels to normalized device
// coordinates, x right and y up, both in [-1, 1].
func NDC(x, y float64, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		float32(x/float64(width))*2 - 1,
		-float32(y/float64(height))*2 + 1,
	}
}

// SetFromCamera aims the ray from the camera through ndc.
func (r *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam *scene.Camera) {
	through := cam.Unproject(mgl32.Vec3{ndc.X(), ndc.Y(), 0.5})
	r.Ray = Ray{
		Origin:    cam.Position,
		Direction: through.Sub(cam.Position).Normalize(),
	}
}

// IntersectObjects tests the ray against nodes and all of their visible
// descendants and returns every hit, nearest first.
func (r *Raycaster) IntersectObjects(nodes []*scene.Node) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		r.intersectNode(n, &hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (r *Raycaster) intersectNode(n *scene.Node, hits *[]Intersection) {
	if n == nil || !n.Visible {
		return
	}
	if n.Mesh != nil {
		if _, ok := rayAABBIntersect(r.Ray, n.WorldAABB()); ok {
			r.intersectMesh(n, hits)
		}
	}
	for _, c := range n.Children {
		r.intersectNode(c, hits)
	}
}

// intersectMesh performs per-triangle intersection using Möller–Trumbore.
func (r *Raycaster) intersectMesh(n *scene.Node, hits *[]Intersection) {
	mesh := n.Mesh
	world := n.GetWorldMatrix()
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i]].Position, world)
		v1 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i+1]].Position, world)
		v2 := mgl32.TransformCoordinate(mesh.Vertices[mesh.Indices[i+2]].Position, world)

		t, ok := mollerTrumbore(r.Ray, v0, v1, v2)
		if !ok {
			continue
		}
		*hits = append(*hits, Intersection{
			Distance: t,
			Point:    r.Ray.At(t),
			Node:     n,
			Group:    mesh.GroupOf(i / 3),
			Triangle: i / 3,
		})
	}
}

// rayAABBIntersect is the slab test; it reports the entry distance.
func rayAABBIntersect(ray Ray, box scene.AABB) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for k := 0; k < 3; k++ {
		o, d := ray.Origin[k], ray.Direction[k]
		if math32.Abs(d) < 1e-12 {
			if o < box.Min[k] || o > box.Max[k] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (box.Min[k] - o) * inv
		t2 := (box.Max[k] - o) * inv
		tmin = math32.Max(tmin, math32.Min(t1, t2))
		tmax = math32.Min(tmax, math32.Max(t1, t2))
	}
	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}

func mollerTrumbore(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, false // parallel
	}

	f := 1 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
