package room

import "desk-room/scene"

// TextureSource hands out shared texture handles by asset path.
type TextureSource interface {
	Texture(path string) *scene.Texture
}

// Asset paths, relative to the asset directory.
const (
	WallTexture     = "texture/wall-texture.jpg"
	FloorTexture    = "texture/floor-texture.webp"
	WindowTexture   = "texture/window-texture.jpg"
	TableTexture    = "texture/table-texture.jpg"
	ChairTexture    = "texture/chair.jpg"
	CPUFrontTexture = "texture/cpu-front.jpg"
	CPUBackTexture  = "texture/cpu-back.png"
	CPUSideTexture  = "texture/cpu-side.jpg"
	KeyboardTexture = "texture/keyboard-top.png"

	MouseModel = "model/mouse.glb"
)

// MonitorImages are shown on the monitor in click order.
var MonitorImages = []string{
	"texture/monitor-front.jpg",
	"texture/monitor-front-1.jpg",
	"texture/monitor-front-2.png",
	"texture/monitor-front-3.jpg",
}
