package scene

import "desk-room/core"

// Scene owns the node tree, the camera and the lights.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Lights     []*PointLight
	Ambient    core.Color
	Background core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewGroup("Root"),
		Ambient:    core.Color{R: 0.05, G: 0.05, B: 0.05, A: 1},
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

func (s *Scene) AddLight(light *PointLight) {
	s.Lights = append(s.Lights, light)
}

// GetVisibleNodes returns all primitives whose node and ancestors are visible.
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Mesh != nil {
			visible = append(visible, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Root)
	return visible
}

// Textures returns every distinct texture handle referenced by a visible
// primitive's materials.
func (s *Scene) Textures() []*Texture {
	seen := make(map[*Texture]bool)
	var out []*Texture
	for _, n := range s.GetVisibleNodes() {
		for _, m := range n.Materials {
			if m == nil || m.Map == nil || seen[m.Map] {
				continue
			}
			seen[m.Map] = true
			out = append(out, m.Map)
		}
	}
	return out
}
