package scene

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraFromAngles builds a camera-to-world transform from a position and
// Euler angles in radians. Rotation is applied X first, then Y, then Z.
func CameraFromAngles(position, angles core.Vec3) mgl64.Mat4 {
	rotation := mgl64.HomogRotate3DZ(angles.Z).
		Mul4(mgl64.HomogRotate3DY(angles.Y)).
		Mul4(mgl64.HomogRotate3DX(angles.X))
	return mgl64.Translate3D(position.X, position.Y, position.Z).Mul4(rotation)
}

// LookAt builds a camera-to-world transform for a camera at eye facing target.
// The camera looks down its local -Z axis with up as its local +Y.
func LookAt(eye, target, up core.Vec3) mgl64.Mat4 {
	view := mgl64.LookAtV(eye.MGL(), target.MGL(), up.MGL())
	return view.Inv()
}
