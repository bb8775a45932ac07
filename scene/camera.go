package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera. Orientation is kept separately from
// position, so moving the camera does not re-aim it; call LookAt for that.
type Camera struct {
	Position    mgl32.Vec3
	FOV         float32 // vertical field of view in degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// orientation maps camera space to world space (rotation only).
	orientation mgl32.Mat4
	target      mgl32.Vec3
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		orientation: mgl32.Ident4(),
		target:      mgl32.Vec3{0, 0, -1},
	}
}

// UpdateAspectRatio sets width/height; a zero height is ignored.
func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *Camera) SetPosition(pos mgl32.Vec3) {
	c.Position = pos
}

// LookAt orients the camera toward target with world +Y as up.
func (c *Camera) LookAt(target mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	forward := target.Sub(c.Position)
	if forward.Len() == 0 {
		return
	}
	if mgl32.Abs(forward.Normalize().Dot(up)) > 0.9999 {
		up = mgl32.Vec3{0, 0, -1}
	}
	view := mgl32.LookAtV(c.Position, target, up)
	c.orientation = view.Mat3().Transpose().Mat4()
	c.target = target
}

// Target returns the point passed to the most recent LookAt.
func (c *Camera) Target() mgl32.Vec3 {
	return c.target
}

func (c *Camera) GetForward() mgl32.Vec3 {
	return c.orientation.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
}

func (c *Camera) GetRight() mgl32.Vec3 {
	return c.orientation.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	return c.orientation.Transpose().Mul4(translation)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewProjectionMatrix() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

// Unproject maps normalized device coordinates (x, y in [-1,1], z in
// [-1,1] near to far) to world space.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(ndc, c.GetViewProjectionMatrix().Inv())
}
