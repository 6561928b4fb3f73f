package integrator

import (
	"math"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// singularDeterminant is the threshold below which the barycentric system is
// treated as having no solution (ray parallel to the triangle plane)
const singularDeterminant = 1e-12

// RayHit describes the surface a traced ray terminated on
type RayHit struct {
	Point     core.Vec3
	Normal    core.Vec3 // Unit shading normal
	Direction core.Vec3 // Direction of the ray segment that produced this hit
	Distance  float64   // Distance along the final ray segment

	// PrimaryDistance is the distance from the camera to the first surface,
	// before any mirror bounce
	PrimaryDistance float64

	U, V   float64
	Colour scene.Colour // Material colour or sampled texel

	ObjectID   int
	TriangleID int
	Depth      int // Mirror bounces followed before this hit
	Mirror     bool
}

// SolveTriangle solves origin + t*dir = v0 + u*e0 + v*e1 for (t, u, v).
// ok is false when the system is singular.
func SolveTriangle(tri *scene.Triangle, origin, dir core.Vec3) (t, u, v float64, ok bool) {
	e0, e1 := tri.Edges()
	m := mgl64.Mat3FromCols(dir.Negate().MGL(), e0.MGL(), e1.MGL())
	if math.Abs(m.Det()) < singularDeterminant {
		return 0, 0, 0, false
	}

	x := m.Inv().Mul3x1(origin.Subtract(tri.Vertices[0]).MGL())
	return x[0], x[1], x[2], true
}

func insideTriangle(u, v float64) bool {
	return u >= 0 && u <= 1 && v >= 0 && v <= 1 && u+v <= 1
}

// closestT scans every triangle of every object for the nearest hit with
// epsilon < t < limit. Ties keep the earlier triangle.
func closestT(origin, dir core.Vec3, objects []scene.Object, epsilon, limit float64) (t, u, v float64, objectID, triangleID int, found bool) {
	t = limit
	for i := range objects {
		obj := &objects[i]
		for j := range obj.Triangles {
			ct, cu, cv, ok := SolveTriangle(&obj.Triangles[j], origin, dir)
			if !ok || !insideTriangle(cu, cv) || ct <= epsilon || ct >= t {
				continue
			}
			t, u, v = ct, cu, cv
			objectID, triangleID = i, j
			found = true
		}
	}
	return t, u, v, objectID, triangleID, found
}

// ClosestIntersection returns the nearest hit in front of origin along the
// unit direction dir, with shading inputs resolved at the hit.
func ClosestIntersection(origin, dir core.Vec3, objects []scene.Object, epsilon float64) (RayHit, bool) {
	t, u, v, objectID, triangleID, found := closestT(origin, dir, objects, epsilon, math.Inf(1))
	if !found {
		return RayHit{}, false
	}

	obj := &objects[objectID]
	tri := &obj.Triangles[triangleID]

	hit := RayHit{
		Point:      origin.Add(dir.Multiply(t)),
		Normal:     tri.InterpolateNormal(u, v).Normalize(),
		Direction:  dir,
		Distance:   t,
		U:          u,
		V:          v,
		Colour:     tri.Material.Colour,
		ObjectID:   objectID,
		TriangleID: triangleID,
		Mirror:     tri.Material.IsMirror,
	}
	if tri.HasTexCoords && obj.Texture != nil {
		hit.Colour = obj.Texture.Sample(tri.InterpolateTexCoord(u, v))
	}
	return hit, true
}
