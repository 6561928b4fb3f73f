package scene

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
)

// Object is a named group of triangles with an optional bound texture.
// Its index in Scene.Objects is its stable object id.
type Object struct {
	Name      string
	Triangles []Triangle
	Texture   *Texture
}

// NewObject creates an object from a triangle list
func NewObject(name string, triangles []Triangle) Object {
	return Object{Name: name, Triangles: triangles}
}

// ComputeVertexNormals sets each vertex normal to the average face normal of
// every triangle in the object that shares the vertex position.
func (o *Object) ComputeVertexNormals() {
	sums := make(map[core.Vec3]core.Vec3)
	counts := make(map[core.Vec3]int)
	for i := range o.Triangles {
		tri := &o.Triangles[i]
		for _, v := range tri.Vertices {
			sums[v] = sums[v].Add(tri.Normal)
			counts[v]++
		}
	}

	for i := range o.Triangles {
		tri := &o.Triangles[i]
		var normals [3]core.Vec3
		for k, v := range tri.Vertices {
			normals[k] = sums[v].Multiply(1.0 / float64(counts[v]))
		}
		tri.SetVertexNormals(normals[0], normals[1], normals[2])
	}
}

// TriangleCount returns the number of triangles in the object
func (o *Object) TriangleCount() int {
	return len(o.Triangles)
}

// Light is a spherical area light approximated by its centre
type Light struct {
	Position core.Vec3
	Radius   float64   // Area-light proxy used for penumbra estimation
	Colour   core.Vec3 // Per-channel weight in [0, 1]
	Strength float64   // Scalar power fed into the inverse-square falloff
}

// NewLight creates a white light
func NewLight(position core.Vec3, radius, strength float64) Light {
	return Light{
		Position: position,
		Radius:   radius,
		Colour:   core.NewVec3(1, 1, 1),
		Strength: strength,
	}
}
