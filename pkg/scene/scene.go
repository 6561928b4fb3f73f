package scene

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// Scene contains all the elements needed for rendering one frame.
// It is shared read-only by every ray traced for the frame.
type Scene struct {
	Name    string
	Objects []Object // Index position is the object id
	Lights  []Light

	Camera      mgl64.Mat4 // Camera space to world space
	FocalLength float64    // Image plane distance in pixels
	Width       int        // Output width in pixels
	Height      int        // Output height in pixels
}

// NewScene creates an empty scene with an identity camera at the origin
// looking down -Z
func NewScene(name string, width, height int, focalLength float64) *Scene {
	return &Scene{
		Name:        name,
		Camera:      mgl64.Ident4(),
		FocalLength: focalLength,
		Width:       width,
		Height:      height,
	}
}

// AddObject appends an object and returns its object id
func (s *Scene) AddObject(obj Object) int {
	s.Objects = append(s.Objects, obj)
	return len(s.Objects) - 1
}

// AddLight appends a light
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// CameraPosition returns the translation column of the camera transform
func (s *Scene) CameraPosition() core.Vec3 {
	return core.Vec3FromMGL(s.Camera.Col(3).Vec3())
}

// CameraRotation returns the rotation block of the camera transform
func (s *Scene) CameraRotation() mgl64.Mat3 {
	return s.Camera.Mat3()
}

// WorldToCamera returns the inverse camera transform
func (s *Scene) WorldToCamera() mgl64.Mat4 {
	return s.Camera.Inv()
}

// TriangleCount returns the total number of triangles across all objects
func (s *Scene) TriangleCount() int {
	count := 0
	for i := range s.Objects {
		count += s.Objects[i].TriangleCount()
	}
	return count
}
