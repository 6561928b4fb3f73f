package scene

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
)

// Colour is an 8-bit RGB material colour
type Colour struct {
	Name    string
	R, G, B int
}

// NewColour creates an unnamed colour
func NewColour(r, g, b int) Colour {
	return Colour{R: r, G: g, B: b}
}

// Vec3 returns the colour channels as a vector in [0, 255]
func (c Colour) Vec3() core.Vec3 {
	return core.NewVec3(float64(c.R), float64(c.G), float64(c.B))
}

// Pack returns the colour as a 0xAARRGGBB pixel
func (c Colour) Pack() uint32 {
	return core.PackRGB(c.R, c.G, c.B)
}

// Material holds the surface properties resolved once at load time
type Material struct {
	Name     string
	Colour   Colour
	IsMirror bool // Surface reflects incoming rays
	IsGlass  bool // Parsed from the scene but not used by any shading path
}

// NewMaterial creates a plain diffuse material
func NewMaterial(name string, colour Colour) Material {
	return Material{Name: name, Colour: colour}
}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	Vertices [3]core.Vec3
	Material Material

	// Normal is the raw cross product of the two edges. It is not normalised.
	Normal core.Vec3

	VertexNormals    [3]core.Vec3
	HasVertexNormals bool

	TexCoords    [3]core.Vec2
	HasTexCoords bool
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material Material) Triangle {
	return Triangle{
		Vertices: [3]core.Vec3{v0, v1, v2},
		Material: material,
		Normal:   v1.Subtract(v0).Cross(v2.Subtract(v0)),
	}
}

// SetVertexNormals attaches per-vertex normals for smooth shading
func (t *Triangle) SetVertexNormals(n0, n1, n2 core.Vec3) {
	t.VertexNormals = [3]core.Vec3{n0, n1, n2}
	t.HasVertexNormals = true
}

// SetTexCoords attaches per-vertex texture coordinates
func (t *Triangle) SetTexCoords(t0, t1, t2 core.Vec2) {
	t.TexCoords = [3]core.Vec2{t0, t1, t2}
	t.HasTexCoords = true
}

// Edges returns the two edges sharing vertex 0
func (t *Triangle) Edges() (e0, e1 core.Vec3) {
	return t.Vertices[1].Subtract(t.Vertices[0]), t.Vertices[2].Subtract(t.Vertices[0])
}

// InterpolateNormal returns the shading normal at barycentric (u, v).
// Weights u, v and 1-u-v apply to vertices 1, 2 and 0. Without vertex
// normals the face normal is used across the whole triangle.
func (t *Triangle) InterpolateNormal(u, v float64) core.Vec3 {
	if !t.HasVertexNormals {
		return t.Normal
	}
	w := 1 - u - v
	return t.VertexNormals[1].Multiply(u).
		Add(t.VertexNormals[2].Multiply(v)).
		Add(t.VertexNormals[0].Multiply(w))
}

// InterpolateTexCoord returns the texture coordinate at barycentric (u, v)
func (t *Triangle) InterpolateTexCoord(u, v float64) core.Vec2 {
	w := 1 - u - v
	return t.TexCoords[1].Multiply(u).
		Add(t.TexCoords[2].Multiply(v)).
		Add(t.TexCoords[0].Multiply(w))
}
