package scene

import (
	"fmt"

	"desk-room/core"
)

// Face names one side of a box primitive. The numeric value is the index
// into a FaceSet and the box mesh group of that side.
type Face int

const (
	FaceRight Face = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack

	FaceCount = 6
)

var faceNames = [FaceCount]string{"right", "left", "top", "bottom", "front", "back"}

func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// AllFaces lists faces in set order.
var AllFaces = [FaceCount]Face{FaceRight, FaceLeft, FaceTop, FaceBottom, FaceFront, FaceBack}

// FaceSpec describes the material of one face: a texture or a flat color.
type FaceSpec struct {
	Texture *Texture
	Color   core.Color
}

func Textured(tex *Texture) FaceSpec {
	return FaceSpec{Texture: tex, Color: core.ColorWhite}
}

func Flat(color core.Color) FaceSpec {
	return FaceSpec{Color: color}
}

func (s FaceSpec) material(f Face) *Material {
	name := "face_" + f.String()
	if s.Texture != nil {
		return NewTexturedMaterial(name, s.Texture)
	}
	return NewMaterial(name, s.Color)
}

// FaceSet is the per-face material table of a box.
type FaceSet [FaceCount]*Material

// BuildFaceSet creates one material per face from specs given in
// right, left, top, bottom, front, back order. Slots never share a
// Material, only texture handles.
func BuildFaceSet(specs [FaceCount]FaceSpec) FaceSet {
	var fs FaceSet
	for _, f := range AllFaces {
		fs[f] = specs[f].material(f)
	}
	return fs
}

// UniformFaces builds a set whose six faces all follow spec.
func UniformFaces(spec FaceSpec) FaceSet {
	return BuildFaceSet([FaceCount]FaceSpec{spec, spec, spec, spec, spec, spec})
}

// With returns a copy of fs with face f replaced by a new material for spec.
func (fs FaceSet) With(f Face, spec FaceSpec) FaceSet {
	fs[f] = spec.material(f)
	return fs
}

// Each applies fn to every face material.
func (fs FaceSet) Each(fn func(Face, *Material)) {
	for _, f := range AllFaces {
		fn(f, fs[f])
	}
}

// Materials returns the set as a slice indexed by Face.
func (fs FaceSet) Materials() []*Material {
	out := make([]*Material, FaceCount)
	copy(out, fs[:])
	return out
}
