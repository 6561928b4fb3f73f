package renderer

import (
	"math"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// nearPlane is the camera-space z a vertex must lie beyond (toward -Z) to be projected
const nearPlane = -1e-6

// Camera maps between image coordinates and world space for a pinhole camera
// looking down its local -Z axis
type Camera struct {
	origin        core.Vec3
	rotation      mgl64.Mat3
	worldToCamera mgl64.Mat4
	focalLength   float64
	halfWidth     float64
	halfHeight    float64
}

// NewCamera creates a camera from a scene's transform, focal length and image size
func NewCamera(s *scene.Scene) *Camera {
	return &Camera{
		origin:        s.CameraPosition(),
		rotation:      s.CameraRotation(),
		worldToCamera: s.WorldToCamera(),
		focalLength:   s.FocalLength,
		halfWidth:     float64(s.Width) / 2,
		halfHeight:    float64(s.Height) / 2,
	}
}

// Origin returns the camera position in world space
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Direction returns the unit world-space direction through the continuous
// image position (px, py), where (0, 0) is the top-left corner of the image
func (c *Camera) Direction(px, py float64) core.Vec3 {
	cameraSpace := mgl64.Vec3{px - c.halfWidth, c.halfHeight - py, -c.focalLength}
	return core.Vec3FromMGL(c.rotation.Mul3x1(cameraSpace)).Normalize()
}

// Project maps a world-space point to integer pixel coordinates and an
// inverse depth (-1/z, larger is nearer). ok is false for points on or
// behind the camera plane.
func (c *Camera) Project(p core.Vec3) (x, y, depth float64, ok bool) {
	cp := c.worldToCamera.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	z := cp[2]
	if z >= nearPlane {
		return 0, 0, 0, false
	}

	sx := c.focalLength * cp[0] / -z
	sy := c.focalLength * cp[1] / -z
	return math.Floor(sx + c.halfWidth), math.Floor(c.halfHeight - sy), -1 / z, true
}
