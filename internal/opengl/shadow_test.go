package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"desk-room/core"
	"desk-room/scene"
)

func TestShadowSizeFollowsLight(t *testing.T) {
	light := scene.NewPointLight(core.ColorWhite, 30, 100)
	assert.Equal(t, int32(512), shadowSize(light, 2048))

	light.ShadowSize = 1024
	assert.Equal(t, int32(1024), shadowSize(light, 512))

	light.ShadowSize = 0
	assert.Equal(t, int32(512), shadowSize(light, 512))
	assert.Equal(t, int32(256), shadowSize(nil, 256))
}
