package scene

import (
	"math"
	"testing"

	"github.com/df07/go-triangle-raytracer/pkg/core"
)

const tolerance = 1e-9

func vecClose(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestNewTriangle_FaceNormalIsNotNormalized(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 3, 0),
		NewMaterial("grey", NewColour(128, 128, 128)),
	)

	expected := core.NewVec3(0, 0, 6)
	if tri.Normal != expected {
		t.Errorf("Expected raw cross product %v, got %v", expected, tri.Normal)
	}
}

func TestTriangle_InterpolateNormal(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), Material{})

	// Face normal is used uniformly without vertex normals
	if got := tri.InterpolateNormal(0.3, 0.3); got != tri.Normal {
		t.Errorf("Expected face normal %v, got %v", tri.Normal, got)
	}

	n0 := core.NewVec3(1, 0, 0)
	n1 := core.NewVec3(0, 1, 0)
	n2 := core.NewVec3(0, 0, 1)
	tri.SetVertexNormals(n0, n1, n2)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"vertex 0", 0, 0, n0},
		{"vertex 1", 1, 0, n1},
		{"vertex 2", 0, 1, n2},
		{"centroid", 1.0 / 3, 1.0 / 3, core.NewVec3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.InterpolateNormal(tt.u, tt.v)
			if !vecClose(got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTriangle_InterpolateTexCoord(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), Material{})
	tri.SetTexCoords(core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1))

	got := tri.InterpolateTexCoord(0.25, 0.5)
	if math.Abs(got.X-0.25) > tolerance || math.Abs(got.Y-0.5) > tolerance {
		t.Errorf("Expected (0.25, 0.5), got %v", got)
	}
}

func TestTexture_Sample(t *testing.T) {
	// 2x2 texture: top row red, green; bottom row blue, white
	red := NewColour(255, 0, 0)
	green := NewColour(0, 255, 0)
	blue := NewColour(0, 0, 255)
	white := NewColour(255, 255, 255)
	tex := NewTexture(2, 2, []Colour{red, green, blue, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected Colour
	}{
		{"top left", core.NewVec2(0.1, 0.9), red},
		{"top right", core.NewVec2(0.9, 0.9), green},
		{"bottom left", core.NewVec2(0.1, 0.1), blue},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"u=1 clamps to last column", core.NewVec2(1.0, 0.9), green},
		{"negative coordinates clamp", core.NewVec2(-3, 5), red},
		{"large coordinates clamp", core.NewVec2(7, -2), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.uv); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTexture_EmptyIsBlack(t *testing.T) {
	tex := NewTexture(0, 0, nil)
	if got := tex.Sample(core.NewVec2(0.5, 0.5)); got != (Colour{}) {
		t.Errorf("Expected zero colour, got %v", got)
	}
}

func TestObject_ComputeVertexNormals(t *testing.T) {
	// Two triangles folded along the shared edge (0,0,0)-(0,1,0)
	mat := Material{}
	a := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0), mat)
	b := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0), mat)
	obj := NewObject("fold", []Triangle{a, b})

	obj.ComputeVertexNormals()

	for i, tri := range obj.Triangles {
		if !tri.HasVertexNormals {
			t.Fatalf("Triangle %d should have vertex normals", i)
		}
	}

	// The shared vertex averages both face normals
	shared := obj.Triangles[0].VertexNormals[0]
	expected := a.Normal.Add(b.Normal).Multiply(0.5)
	if !vecClose(shared, expected, tolerance) {
		t.Errorf("Expected shared normal %v, got %v", expected, shared)
	}

	// An unshared vertex keeps its own face normal
	if got := obj.Triangles[0].VertexNormals[2]; !vecClose(got, a.Normal, tolerance) {
		t.Errorf("Expected unshared normal %v, got %v", a.Normal, got)
	}
}

func TestCameraFromAngles(t *testing.T) {
	pos := core.NewVec3(0.2, -2.5, -2.8)
	x, y, z := 0.3, -0.7, 1.1
	m := CameraFromAngles(pos, core.NewVec3(x, y, z))

	cx, sx := math.Cos(x), math.Sin(x)
	cy, sy := math.Cos(y), math.Sin(y)
	cz, sz := math.Cos(z), math.Sin(z)

	// Row-major reference rotation Rz * Ry * Rx
	expected := [3][3]float64{
		{cy * cz, -cx*sz + sx*sy*cz, sx*sz + cx*sy*cz},
		{cy * sz, cx*cz + sx*sy*sz, -sx*cz + cx*sy*sz},
		{-sy, sx * cy, cx * cy},
	}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if math.Abs(m.At(row, col)-expected[row][col]) > 1e-12 {
				t.Errorf("m[%d][%d]: expected %f, got %f", row, col, expected[row][col], m.At(row, col))
			}
		}
	}

	s := &Scene{Camera: m}
	if got := s.CameraPosition(); !vecClose(got, pos, tolerance) {
		t.Errorf("Expected camera position %v, got %v", pos, got)
	}
}

func TestLookAt(t *testing.T) {
	eye := core.NewVec3(0, 0, 5)
	s := &Scene{Camera: LookAt(eye, core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))}

	if got := s.CameraPosition(); !vecClose(got, eye, 1e-9) {
		t.Errorf("Expected camera position %v, got %v", eye, got)
	}

	// Camera-space forward (-Z) must map to the direction of the target
	forward := core.Vec3FromMGL(s.CameraRotation().Mul3x1(core.NewVec3(0, 0, -1).MGL()))
	if !vecClose(forward, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected forward (0,0,-1), got %v", forward)
	}

	s.Camera = LookAt(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	forward = core.Vec3FromMGL(s.CameraRotation().Mul3x1(core.NewVec3(0, 0, -1).MGL()))
	if !vecClose(forward, core.NewVec3(-1, 0, 0), 1e-9) {
		t.Errorf("Expected forward (-1,0,0), got %v", forward)
	}
}

func TestScene_WorldToCamera(t *testing.T) {
	s := NewScene("test", 10, 10, 5)
	s.Camera = CameraFromAngles(core.NewVec3(1, 2, 3), core.NewVec3(0.1, 0.2, 0.3))

	product := s.Camera.Mul4(s.WorldToCamera())
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			expected := 0.0
			if row == col {
				expected = 1
			}
			if math.Abs(product.At(row, col)-expected) > 1e-9 {
				t.Errorf("Expected identity at [%d][%d], got %f", row, col, product.At(row, col))
			}
		}
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name, 0, 0)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Width <= 0 || s.Height <= 0 || s.FocalLength <= 0 {
				t.Errorf("Invalid dimensions %dx%d focal %f", s.Width, s.Height, s.FocalLength)
			}
			if s.TriangleCount() == 0 {
				t.Error("Expected at least one triangle")
			}
			if len(s.Lights) == 0 {
				t.Error("Expected at least one light")
			}
			if BuiltinDescription(name) == "" {
				t.Error("Expected a description")
			}
		})
	}

	if _, err := Builtin("nonexistent", 0, 0); err == nil {
		t.Error("Expected error for unknown scene")
	}

	s, _ := Builtin("cornell", 100, 50)
	if s.Width != 100 || s.Height != 50 {
		t.Errorf("Expected requested size 100x50, got %dx%d", s.Width, s.Height)
	}
}

func TestCornellScene_WallsFaceInward(t *testing.T) {
	s := NewCornellScene(64, 64)
	centre := core.NewVec3(0, 1, -2)

	for id, obj := range s.Objects[:5] {
		for _, tri := range obj.Triangles {
			toCentre := centre.Subtract(tri.Vertices[0])
			if tri.Normal.Dot(toCentre) <= 0 {
				t.Errorf("Object %d (%s) has a triangle facing away from the box centre", id, obj.Name)
			}
		}
	}
}

func TestNewBox_NormalsFaceOutward(t *testing.T) {
	lo := core.NewVec3(-1, -2, -3)
	hi := core.NewVec3(1, 2, 3)
	box := NewBox("box", lo, hi, Material{})

	if len(box.Triangles) != 12 {
		t.Fatalf("Expected 12 triangles, got %d", len(box.Triangles))
	}

	centre := lo.Add(hi).Multiply(0.5)
	for i, tri := range box.Triangles {
		outward := tri.Vertices[0].Subtract(centre)
		if tri.Normal.Dot(outward) <= 0 {
			t.Errorf("Triangle %d faces inward", i)
		}
	}
}

func TestMaterialFlags(t *testing.T) {
	s := NewCornellScene(64, 64)
	var mirrors, glass int
	for _, obj := range s.Objects {
		for _, tri := range obj.Triangles {
			if tri.Material.IsMirror {
				mirrors++
			}
			if tri.Material.IsGlass {
				glass++
			}
		}
	}
	if mirrors != 12 || glass != 12 {
		t.Errorf("Expected 12 mirror and 12 glass triangles, got %d and %d", mirrors, glass)
	}
}
