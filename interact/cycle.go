package interact

import "desk-room/scene"

// TextureCycle steps through a fixed, non-empty list of images.
type TextureCycle struct {
	index    int
	textures []*scene.Texture
}

func NewTextureCycle(textures []*scene.Texture) *TextureCycle {
	return &TextureCycle{textures: textures}
}

func (c *TextureCycle) Index() int {
	return c.index
}

func (c *TextureCycle) Len() int {
	return len(c.textures)
}

// Current returns the image at the current index, or nil for an empty list.
func (c *TextureCycle) Current() *scene.Texture {
	if len(c.textures) == 0 {
		return nil
	}
	return c.textures[c.index]
}

// Advance moves to (index+1) mod N and returns the new current image.
func (c *TextureCycle) Advance() *scene.Texture {
	if len(c.textures) == 0 {
		return nil
	}
	c.index = (c.index + 1) % len(c.textures)
	return c.textures[c.index]
}
