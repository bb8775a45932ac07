package scene

import "desk-room/core"

// Side selects which triangle faces are rendered.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material describes surface appearance for a primitive or one of its faces.
type Material struct {
	Name string
	// Color is multiplied with Map when Map is set, otherwise used flat.
	Color core.Color
	// Map is a shared texture handle; nil means flat color.
	Map *Texture

	Side        Side
	Unlit       bool // skip lighting, output raw color/texture
	Transparent bool // alpha blended

	Specular  float32
	Shininess float32

	// NeedsUpdate asks the backend to refresh GPU state bound to this
	// material (e.g. after Map is rebound). The backend clears it.
	NeedsUpdate bool
}

// NewMaterial creates a lit material with the given flat color.
func NewMaterial(name string, color core.Color) *Material {
	return &Material{
		Name:      name,
		Color:     color,
		Specular:  0.2,
		Shininess: 24,
	}
}

// NewTexturedMaterial creates a lit material sampling tex.
func NewTexturedMaterial(name string, tex *Texture) *Material {
	m := NewMaterial(name, core.ColorWhite)
	m.Map = tex
	return m
}

// SetMap rebinds the texture and flags the material for re-upload.
func (m *Material) SetMap(tex *Texture) {
	m.Map = tex
	m.NeedsUpdate = true
}

// Textured reports whether the material samples a texture with pixel data.
func (m *Material) Textured() bool {
	return m.Map != nil && m.Map.Loaded()
}
