package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Texture is a handle to decoded image data, identified by its source path.
// A handle may exist before its pixels arrive; Loaded reports whether they
// have. Handles are shared read-only by any number of materials.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format, rows ordered bottom-to-top as OpenGL expects.
	Pixels []byte
	// Version increases each time Pixels is replaced.
	Version uint32
}

// NewTexture returns an empty handle for name.
func NewTexture(name string) *Texture {
	return &Texture{Name: name}
}

func (t *Texture) Loaded() bool {
	return t != nil && len(t.Pixels) > 0
}

// SetImage replaces the pixel data. img must already be in GL row order
// (see DecodeImage).
func (t *Texture) SetImage(img *image.RGBA) {
	b := img.Bounds()
	t.Width = b.Dx()
	t.Height = b.Dy()
	t.Pixels = img.Pix
	t.Version++
}

// DecodeImage decodes a PNG, JPEG, WebP or BMP stream and returns it as
// RGBA8 flipped vertically for upload.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return transform.FlipV(clone.AsRGBA(img)), nil
}

// DecodeImageFile is DecodeImage on a file path.
func DecodeImageFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	return img, nil
}

// LoadTexture reads an image file synchronously into a new handle.
func LoadTexture(path string) (*Texture, error) {
	img, err := DecodeImageFile(path)
	if err != nil {
		return nil, err
	}
	tex := NewTexture(path)
	tex.SetImage(img)
	return tex, nil
}

func decodeImageBytes(name string, data []byte) (*Texture, error) {
	img, err := DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", name, err)
	}
	tex := NewTexture(name)
	tex.SetImage(img)
	return tex, nil
}
