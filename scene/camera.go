package scene

import (
	"fmt"

	"github.com/achilleasa/go-restir/types"
	"github.com/go-gl/mathgl/mgl32"
)

// Stores the ray directions at the four corners of the camera frustrum. It is
// used as a shortcut for generating per pixel rays via interpolation of the
// corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// The camera type controls the scene camera.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	Near float32
	Far  float32

	ViewMat  mgl32.Mat4
	ProjMat  mgl32.Mat4
	Frustrum Frustrum

	aspect float32
}

// Create a camera at the origin looking down -Z.
func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:  mgl32.Ident4(),
		ProjMat:  mgl32.Ident4(),
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
		Near:     0.1,
		Far:      1000,
		aspect:   1,
	}
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.aspect = aspect
	c.ProjMat = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
	c.Update()
}

// Rebuild the view matrix and frustrum after moving the camera.
func (c *Camera) Update() {
	c.ViewMat = mgl32.LookAtV(c.Position.Mgl(), c.LookAt.Mgl(), c.Up.Mgl())
	c.updateFrustrum()
}

// Get the combined view-projection matrix.
func (c *Camera) ViewProjMat() mgl32.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat)
}

// Get the inverse view-projection matrix.
func (c *Camera) InvViewProjMat() mgl32.Mat4 {
	return c.ViewProjMat().Inv()
}

// Get the unit view direction.
func (c *Camera) Forward() types.Vec3 {
	return c.LookAt.Sub(c.Position).Normalize()
}

// Get the view-space depth of a world-space point.
func (c *Camera) Depth(p types.Vec3) float32 {
	return p.Sub(c.Position).Dot(c.Forward())
}

// Rotate the camera position around the Up axis through its look-at point.
func (c *Camera) Orbit(degrees float32) {
	q := mgl32.QuatRotate(mgl32.DegToRad(degrees), c.Up.Normalize().Mgl())
	offset := q.Rotate(c.Position.Sub(c.LookAt).Mgl())
	c.Position = c.LookAt.Add(types.FromMgl(offset))
	c.Update()
}

// Get a unit direction for a primary ray through the point (px, py) of a
// frameW x frameH image. Pixel centers sit at half-integer coordinates and
// row 0 is the top of the image.
func (c *Camera) RayDir(px, py float32, frameW, frameH uint32) types.Vec3 {
	u := px / float32(frameW)
	v := py / float32(frameH)
	top := c.Frustrum[0].Add(c.Frustrum[1].Sub(c.Frustrum[0]).Mul(u))
	bottom := c.Frustrum[2].Add(c.Frustrum[3].Sub(c.Frustrum[2]).Mul(u))
	return top.Add(bottom.Sub(top).Mul(v)).Normalize()
}

// Generate a ray vector for each corner of the camera frustrum by
// multiplying clip space vectors for each corner with the inv proj/view
// matrix, applying perspective and subtracting the camera eye position.
func (c *Camera) updateFrustrum() {
	invProjViewMat := c.InvViewProjMat()
	corners := [4]mgl32.Vec4{
		{-1, 1, -1, 1},
		{1, 1, -1, 1},
		{-1, -1, -1, 1},
		{1, -1, -1, 1},
	}
	for i, corner := range corners {
		v := invProjViewMat.Mul4x1(corner)
		c.Frustrum[i] = types.FromMgl(v.Mul(1.0 / v[3]).Vec3()).Sub(c.Position)
	}
}
