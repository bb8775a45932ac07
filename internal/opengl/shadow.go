package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/scene"
)

// ShadowMap is the depth target of a point light's shadow pass. It follows
// the light it is prepared for: the resolution tracks PointLight.ShadowSize
// and LightVP looks from the light toward PointLight.Target.
type ShadowMap struct {
	FBO      uint32
	DepthTex uint32
	Size     int32
	LightVP  mgl32.Mat4
}

func NewShadowMap(size int) (*ShadowMap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shadow map size must be positive, got %d", size)
	}
	sm := &ShadowMap{LightVP: mgl32.Ident4()}
	if err := sm.allocate(int32(size)); err != nil {
		return nil, err
	}
	return sm, nil
}

// shadowSize picks the resolution for light, keeping current when the
// light does not ask for one.
func shadowSize(light *scene.PointLight, current int32) int32 {
	if light == nil || light.ShadowSize <= 0 {
		return current
	}
	return int32(light.ShadowSize)
}

// Prepare resizes the depth target to the light's ShadowSize if needed and
// records the light's view-projection.
func (sm *ShadowMap) Prepare(light *scene.PointLight) error {
	if size := shadowSize(light, sm.Size); size != sm.Size {
		sm.release()
		if err := sm.allocate(size); err != nil {
			return fmt.Errorf("resize shadow map to %d: %w", size, err)
		}
	}
	sm.LightVP = light.ShadowViewProjection()
	return nil
}

// Texel is the size of one shadow map texel in texture coordinates.
func (sm *ShadowMap) Texel() float32 {
	return 1 / float32(sm.Size)
}

func (sm *ShadowMap) allocate(size int32) error {
	sm.Size = size

	gl.GenTextures(1, &sm.DepthTex)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, size, size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	for param, value := range map[uint32]int32{
		gl.TEXTURE_MIN_FILTER:   gl.LINEAR,
		gl.TEXTURE_MAG_FILTER:   gl.LINEAR,
		gl.TEXTURE_WRAP_S:       gl.CLAMP_TO_BORDER,
		gl.TEXTURE_WRAP_T:       gl.CLAMP_TO_BORDER,
		gl.TEXTURE_COMPARE_MODE: gl.COMPARE_REF_TO_TEXTURE,
		gl.TEXTURE_COMPARE_FUNC: gl.LEQUAL,
	} {
		gl.TexParameteri(gl.TEXTURE_2D, param, value)
	}
	// outside the light's frustum counts as lit
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.release()
		return fmt.Errorf("shadow framebuffer incomplete: status=0x%X", status)
	}
	return nil
}

func (sm *ShadowMap) release() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTex != 0 {
		gl.DeleteTextures(1, &sm.DepthTex)
		sm.DepthTex = 0
	}
}

func (sm *ShadowMap) Destroy() {
	sm.release()
}
