package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRowPNG encodes a 1x2 image: red on top, blue below.
// solidTexture is a loaded 1x1 handle of one color.
func solidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}, Version: 1}
}

func twoRowPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImageFlipsRows(t *testing.T) {
	img, err := DecodeImage(bytes.NewReader(twoRowPNG(t)))
	require.NoError(t, err)

	// first row in memory is the bottom of the picture
	assert.Equal(t, []uint8{0, 0, 255, 255}, img.Pix[0:4])
	assert.Equal(t, []uint8{255, 0, 0, 255}, img.Pix[4:8])
}

func TestLoadTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, twoRowPNG(t), 0o644))

	tex, err := LoadTexture(path)
	require.NoError(t, err)
	assert.True(t, tex.Loaded())
	assert.Equal(t, 1, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, uint32(1), tex.Version)
}

func TestLoadTextureErrors(t *testing.T) {
	_, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestUnloadedHandle(t *testing.T) {
	tex := NewTexture("pending")
	assert.False(t, tex.Loaded())
	var nilTex *Texture
	assert.False(t, nilTex.Loaded())
}
