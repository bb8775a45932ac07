package opengl

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
	"desk-room/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer is the OpenGL rendering backend. All methods must be called on
// the thread that owns the GL context.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc           int32
	modelLoc         int32
	normalMatrixLoc  int32
	lightViewProjLoc int32

	ambientColorLoc int32
	cameraPosLoc    int32

	// Point light
	hasLightLoc       int32
	lightPosLoc       int32
	lightColorLoc     int32
	lightIntensityLoc int32
	lightRangeLoc     int32

	// Material
	matColorLoc     int32
	matSpecularLoc  int32
	matShininessLoc int32
	unlitLoc        int32
	colorTexLoc     int32
	hasTextureLoc   int32

	// Shadow map uniforms (main shader)
	shadowMapLoc     int32
	hasShadowsLoc    int32
	receiveShadowLoc int32
	shadowTexelLoc   int32

	// Shadow depth shader
	shadowProg        uint32
	shadowLightMVPLoc int32

	shadowMap *ShadowMap

	// Stored viewport for restoring after shadow pass
	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
	textures  *textureCache
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader: %w", err)
	}
	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	loc := func(p uint32, name string) int32 {
		return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
	}

	r := &Renderer{
		program:    prog,
		shadowProg: shadowProg,

		mvpLoc:           loc(prog, "mvp"),
		modelLoc:         loc(prog, "model"),
		normalMatrixLoc:  loc(prog, "normalMatrix"),
		lightViewProjLoc: loc(prog, "lightViewProj"),

		ambientColorLoc: loc(prog, "ambientColor"),
		cameraPosLoc:    loc(prog, "cameraPos"),

		hasLightLoc:       loc(prog, "hasLight"),
		lightPosLoc:       loc(prog, "lightPos"),
		lightColorLoc:     loc(prog, "lightColor"),
		lightIntensityLoc: loc(prog, "lightIntensity"),
		lightRangeLoc:     loc(prog, "lightRange"),

		matColorLoc:     loc(prog, "matColor"),
		matSpecularLoc:  loc(prog, "matSpecular"),
		matShininessLoc: loc(prog, "matShininess"),
		unlitLoc:        loc(prog, "unlit"),
		colorTexLoc:     loc(prog, "colorTex"),
		hasTextureLoc:   loc(prog, "hasTexture"),

		shadowMapLoc:     loc(prog, "shadowMap"),
		hasShadowsLoc:    loc(prog, "hasShadows"),
		receiveShadowLoc: loc(prog, "receiveShadow"),
		shadowTexelLoc:   loc(prog, "shadowTexel"),

		shadowLightMVPLoc: loc(shadowProg, "lightMVP"),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
		textures:  newTextureCache(),
	}

	// Texture units: color=0, shadowMap=1
	gl.UseProgram(prog)
	gl.Uniform1i(r.colorTexLoc, 0)
	gl.Uniform1i(r.shadowMapLoc, 1)
	ident := mgl32.Ident4()
	gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &ident[0])

	return r, nil
}

// SetViewport resizes the OpenGL viewport and stores the dimensions for
// restoring after the shadow pass.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// EnableShadows creates the depth FBO.
func (r *Renderer) EnableShadows(size int) error {
	if r.shadowMap != nil {
		if r.shadowMap.Size == int32(size) {
			return nil
		}
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	sm, err := NewShadowMap(size)
	if err != nil {
		return err
	}
	r.shadowMap = sm
	return nil
}

// BeginShadowPass fits the shadow map to light, binds it for depth-only
// drawing and returns the light's view-projection. ok is false when there
// is no shadow map or it could not be resized.
func (r *Renderer) BeginShadowPass(light *scene.PointLight) (lightVP mgl32.Mat4, ok bool) {
	if r.shadowMap == nil || light == nil {
		return mgl32.Ident4(), false
	}
	if err := r.shadowMap.Prepare(light); err != nil {
		slog.Error("shadow pass skipped", "light", light.Name, "err", err)
		r.shadowMap = nil
		return mgl32.Ident4(), false
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.shadowMap.FBO)
	gl.Viewport(0, 0, r.shadowMap.Size, r.shadowMap.Size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.UseProgram(r.shadowProg)
	return r.shadowMap.LightVP, true
}

// DrawMeshShadow draws a mesh into the depth buffer.
func (r *Renderer) DrawMeshShadow(mesh *scene.Mesh, lightMVP mgl32.Mat4) {
	if r.shadowMap == nil {
		return
	}
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}
	gl.UniformMatrix4fv(r.shadowLightMVPLoc, 1, false, &lightMVP[0])
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// EndShadowPass restores the default framebuffer and viewport.
func (r *Renderer) EndShadowPass() {
	if r.shadowMap == nil {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// FrameParams are the per-frame uniforms of the main pass.
type FrameParams struct {
	Background core.Color
	Ambient    core.Color
	CameraPos  mgl32.Vec3
	Light      *scene.PointLight // nil for ambient only
	LightVP    mgl32.Mat4
	HasShadows bool
}

// BeginFrame clears the default framebuffer and sets per-frame lighting,
// camera and shadow uniforms.
func (r *Renderer) BeginFrame(p FrameParams) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
	gl.ClearColor(p.Background.R, p.Background.G, p.Background.B, p.Background.A)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.ambientColorLoc, p.Ambient.R, p.Ambient.G, p.Ambient.B)
	gl.Uniform3f(r.cameraPosLoc, p.CameraPos.X(), p.CameraPos.Y(), p.CameraPos.Z())

	if l := p.Light; l != nil {
		gl.Uniform1i(r.hasLightLoc, 1)
		gl.Uniform3f(r.lightPosLoc, l.Position.X(), l.Position.Y(), l.Position.Z())
		gl.Uniform3f(r.lightColorLoc, l.Color.R, l.Color.G, l.Color.B)
		gl.Uniform1f(r.lightIntensityLoc, l.Intensity)
		gl.Uniform1f(r.lightRangeLoc, l.Range)
	} else {
		gl.Uniform1i(r.hasLightLoc, 0)
	}

	lightVP := p.LightVP
	gl.UniformMatrix4fv(r.lightViewProjLoc, 1, false, &lightVP[0])
	if p.HasShadows && r.shadowMap != nil {
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.shadowMap.DepthTex)
		gl.Uniform1i(r.hasShadowsLoc, 1)
		gl.Uniform1f(r.shadowTexelLoc, r.shadowMap.Texel())
	} else {
		gl.Uniform1i(r.hasShadowsLoc, 0)
	}
}

// DrawNode draws every material group of a primitive node.
func (r *Renderer) DrawNode(node *scene.Node, viewProj mgl32.Mat4) {
	gpu := r.ensureUploaded(node.Mesh)
	if gpu == nil {
		return
	}

	model := node.GetWorldMatrix()
	mvp := viewProj.Mul4(model)
	normal := model.Mat3().Inv().Transpose()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
	gl.UniformMatrix3fv(r.normalMatrixLoc, 1, false, &normal[0])
	gl.Uniform1i(r.receiveShadowLoc, boolToInt(node.ReceiveShadow))

	gl.BindVertexArray(gpu.VAO)
	for _, g := range node.Mesh.DrawGroups() {
		mat := node.Material(g.MaterialIndex)
		if mat == nil || g.Count == 0 {
			continue
		}
		r.applyMaterial(mat)
		gl.DrawElements(gl.TRIANGLES, int32(g.Count), gl.UNSIGNED_INT, gl.PtrOffset(g.Start*4))
	}
	gl.BindVertexArray(0)
}

// applyMaterial sets material uniforms, face culling and blending, and
// binds the material's texture.
func (r *Renderer) applyMaterial(mat *scene.Material) {
	gl.Uniform4f(r.matColorLoc, mat.Color.R, mat.Color.G, mat.Color.B, mat.Color.A)
	gl.Uniform1f(r.matSpecularLoc, mat.Specular)
	gl.Uniform1f(r.matShininessLoc, mat.Shininess)
	gl.Uniform1i(r.unlitLoc, boolToInt(mat.Unlit))

	switch mat.Side {
	case scene.FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	if mat.Transparent {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
	} else {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}

	if mat.NeedsUpdate {
		r.textures.refresh(mat.Map)
		mat.NeedsUpdate = false
	}
	if id := r.textures.bind(mat.Map); id != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, id)
		gl.Uniform1i(r.hasTextureLoc, 1)
	} else {
		gl.Uniform1i(r.hasTextureLoc, 0)
	}
}

// EndFrame resets state changed by materials.
func (r *Renderer) EndFrame() {
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, mesh)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	r.textures.destroy()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.shadowProg != 0 {
		gl.DeleteProgram(r.shadowProg)
	}
	gl.DeleteProgram(r.program)
}

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Position))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Normal))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(v.UV))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	return gpu
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
