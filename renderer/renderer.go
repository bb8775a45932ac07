package renderer

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"desk-room/internal/opengl"
	"desk-room/scene"
)

// Stats describes the most recent frame.
type Stats struct {
	Objects   int
	Triangles int
	Culled    int
	Shadowed  int
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl             *opengl.Renderer
	FrustumCulling bool
	ShadowsEnabled bool // enable via EnableShadows()

	width, height int
	stats         Stats
}

// NewRenderEngine initialises the OpenGL backend. The window's context must
// be current on the calling thread.
func NewRenderEngine(width, height int) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	re := &RenderEngine{gl: glRenderer, FrustumCulling: true}
	re.SetSize(width, height)
	return re, nil
}

// EnableShadows creates the shadow map FBO at size x size.
func (re *RenderEngine) EnableShadows(size int) error {
	if err := re.gl.EnableShadows(size); err != nil {
		return fmt.Errorf("shadows: %w", err)
	}
	re.ShadowsEnabled = true
	slog.Debug("shadows enabled", "size", size)
	return nil
}

// SetSize updates the drawing buffer size.
func (re *RenderEngine) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.width, re.height = width, height
	re.gl.SetViewport(width, height)
}

// Render draws s from cam: a depth pass from the first shadow-casting light,
// then opaque primitives, then transparent ones far to near.
func (re *RenderEngine) Render(s *scene.Scene, cam *scene.Camera) error {
	if s == nil || cam == nil {
		return fmt.Errorf("no scene or camera")
	}

	var light *scene.PointLight
	if len(s.Lights) > 0 {
		light = s.Lights[0]
	}

	nodes := s.GetVisibleNodes()
	var stats Stats

	lightVP := mgl32.Ident4()
	doShadows := false
	if re.ShadowsEnabled && light != nil && light.CastShadow {
		lightVP, doShadows = re.gl.BeginShadowPass(light)
	}
	if doShadows {
		for _, node := range nodes {
			if node.Mesh == nil || !node.CastShadow {
				continue
			}
			re.gl.DrawMeshShadow(node.Mesh, lightVP.Mul4(node.GetWorldMatrix()))
			stats.Shadowed++
		}
		re.gl.EndShadowPass()
	}

	re.gl.BeginFrame(opengl.FrameParams{
		Background: s.Background,
		Ambient:    s.Ambient,
		CameraPos:  cam.Position,
		Light:      light,
		LightVP:    lightVP,
		HasShadows: doShadows,
	})

	dl := scene.BuildDrawList(nodes, cam, re.FrustumCulling)
	viewProj := cam.GetViewProjectionMatrix()
	for _, list := range [][]*scene.Node{dl.Opaque, dl.Transparent} {
		for _, node := range list {
			re.gl.DrawNode(node, viewProj)
			stats.Objects++
			stats.Triangles += len(node.Mesh.Indices) / 3
		}
	}
	re.gl.EndFrame()

	stats.Culled = dl.Culled
	re.stats = stats
	return nil
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() Stats {
	return re.stats
}

// ReleaseMesh frees the GPU buffers of a mesh that left the scene.
func (re *RenderEngine) ReleaseMesh(mesh *scene.Mesh) {
	re.gl.ReleaseMesh(mesh)
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}
