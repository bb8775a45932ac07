package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawList is the per-frame partition of visible primitives.
type DrawList struct {
	Opaque      []*Node
	Transparent []*Node // sorted far to near
	Culled      int
}

// Transparent reports whether any of the node's materials blends.
func (n *Node) Transparent() bool {
	for _, m := range n.Materials {
		if m != nil && m.Transparent {
			return true
		}
	}
	return false
}

// BuildDrawList splits nodes into opaque and transparent lists. When cull is
// set, primitives whose world bounds fall outside the camera frustum are
// dropped and counted.
func BuildDrawList(nodes []*Node, cam *Camera, cull bool) DrawList {
	var dl DrawList
	var frustum Frustum
	if cull {
		frustum = FrustumFromVP(cam.GetViewProjectionMatrix())
	}

	depth := make(map[*Node]float32)
	for _, n := range nodes {
		if n.Mesh == nil {
			continue
		}
		if cull {
			if box := n.WorldAABB(); !box.IntersectsFrustum(&frustum) {
				dl.Culled++
				continue
			}
		}
		if n.Transparent() {
			depth[n] = distSq(n.WorldPosition(), cam.Position)
			dl.Transparent = append(dl.Transparent, n)
			continue
		}
		dl.Opaque = append(dl.Opaque, n)
	}

	sort.SliceStable(dl.Transparent, func(i, j int) bool {
		return depth[dl.Transparent[i]] > depth[dl.Transparent[j]]
	})
	return dl
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
