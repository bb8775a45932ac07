package scene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is an element of the scene graph. A node without a Mesh is a group;
// a node with a Mesh is a primitive drawn with Materials. Every node has at
// most one parent, so the graph is always a tree.
type Node struct {
	Name      string
	Transform Transform
	Parent    *Node
	Children  []*Node
	Visible   bool
	Id        uint32

	Mesh *Mesh
	// Materials holds one entry for single-material meshes, or one entry per
	// mesh group (see FaceSet for boxes).
	Materials []*Material

	CastShadow    bool
	ReceiveShadow bool

	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

var nodeIdCounter atomic.Uint32

func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Transform:        NewTransform(),
		Visible:          true,
		Id:               nodeIdCounter.Add(1),
		worldMatrixDirty: true,
	}
}

// NewGroup returns an empty node used only to position its children.
func NewGroup(name string) *Node {
	return NewNode(name)
}

// NewPrimitive returns a drawable node.
func NewPrimitive(name string, mesh *Mesh, materials ...*Material) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	n.Materials = materials
	return n
}

func (n *Node) IsGroup() bool {
	return n.Mesh == nil
}

// Add appends children in order, detaching each from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

func (n *Node) GetWorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		local := n.Transform.Matrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.GetWorldMatrix().Mul4(local)
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.GetWorldMatrix().Col(3).Vec3()
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos mgl32.Vec3) {
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetRotation(rot mgl32.Quat) {
	n.Transform.Rotation = rot
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

// SetUniformScale scales all three axes by s.
func (n *Node) SetUniformScale(s float32) {
	n.SetScale(mgl32.Vec3{s, s, s})
}

func (n *Node) SetShadows(cast, receive bool) {
	n.CastShadow = cast
	n.ReceiveShadow = receive
}

// Material returns the material drawn for mesh group i, falling back to
// the first material when the node has a single one.
func (n *Node) Material(i int) *Material {
	if len(n.Materials) == 0 {
		return nil
	}
	if i < 0 || i >= len(n.Materials) {
		return n.Materials[0]
	}
	return n.Materials[i]
}

// FaceMaterial returns the material bound to face f of a box primitive.
func (n *Node) FaceMaterial(f Face) *Material {
	return n.Material(int(f))
}

// Traverse visits n and all descendants depth-first, parents first.
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
