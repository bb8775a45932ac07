package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"desk-room/scene"
)

type glTexture struct {
	id      uint32
	version uint32
}

// textureCache maps shared texture handles to GL texture objects. Uploads
// happen lazily on first bind and again whenever the handle's Version moves.
type textureCache struct {
	entries map[*scene.Texture]*glTexture
}

func newTextureCache() *textureCache {
	return &textureCache{entries: make(map[*scene.Texture]*glTexture)}
}

// bind returns the GL id for tex, uploading it if needed. It returns 0 when
// tex is nil or has no pixels yet.
func (c *textureCache) bind(tex *scene.Texture) uint32 {
	if !tex.Loaded() {
		return 0
	}
	e, ok := c.entries[tex]
	if !ok {
		e = &glTexture{}
		gl.GenTextures(1, &e.id)
		c.entries[tex] = e
	}
	if e.version != tex.Version || e.version == 0 {
		upload(e.id, tex)
		e.version = tex.Version
	}
	return e.id
}

// refresh forces a re-upload of tex on the next bind.
func (c *textureCache) refresh(tex *scene.Texture) {
	if e, ok := c.entries[tex]; ok {
		e.version = 0
	}
}

func (c *textureCache) destroy() {
	for tex, e := range c.entries {
		gl.DeleteTextures(1, &e.id)
		delete(c.entries, tex)
	}
}

func upload(id uint32, tex *scene.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows are tightly packed RGBA8.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(tex.Width), int32(tex.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&tex.Pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
}
