package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-triangle-raytracer/pkg/core"
)

// builtinScene constructs a scene at the requested output size
type builtinScene struct {
	description   string
	defaultWidth  int
	defaultHeight int
	build         func(width, height int) *Scene
}

var builtins = map[string]builtinScene{
	"triangle": {
		description:   "single triangle at z=-5 lit from above and in front",
		defaultWidth:  64,
		defaultHeight: 64,
		build:         NewTriangleScene,
	},
	"cornell": {
		description:   "Cornell box with a mirror block and a glass-flagged block",
		defaultWidth:  320,
		defaultHeight: 320,
		build:         NewCornellScene,
	},
	"mirrors": {
		description:   "two parallel mirrors facing each other around a coloured triangle",
		defaultWidth:  240,
		defaultHeight: 160,
		build:         NewMirrorScene,
	},
}

// BuiltinNames returns the names of every built-in scene in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinDescription returns the one-line description of a built-in scene
func BuiltinDescription(name string) string {
	return builtins[name].description
}

// Builtin creates a built-in scene by name. Zero dimensions select the scene's defaults.
func Builtin(name string, width, height int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", name)
	}
	if width <= 0 {
		width = b.defaultWidth
	}
	if height <= 0 {
		height = b.defaultHeight
	}
	return b.build(width, height), nil
}

// NewTriangleScene creates a single camera-facing triangle with one white light
func NewTriangleScene(width, height int) *Scene {
	s := NewScene("triangle", width, height, float64(width))

	mat := NewMaterial("Orange", NewColour(230, 140, 40))
	tri := NewTriangle(
		core.NewVec3(-1, -1, -5),
		core.NewVec3(1, -1, -5),
		core.NewVec3(0, 1, -5),
		mat,
	)
	s.AddObject(NewObject("triangle", []Triangle{tri}))
	s.AddLight(NewLight(core.NewVec3(0, 2, -3), 0, 150))

	return s
}

// NewCornellScene creates a Cornell box with coloured walls and two blocks
func NewCornellScene(width, height int) *Scene {
	s := NewScene("cornell", width, height, 1.1*float64(width))
	s.Camera = CameraFromAngles(core.NewVec3(0, 1, 1.2), core.Vec3{})

	white := NewMaterial("White", NewColour(190, 190, 190))
	crimson := NewMaterial("Crimson", NewColour(170, 20, 20))
	green := NewMaterial("Green", NewColour(30, 120, 40))

	mirror := NewMaterial("Yellow", NewColour(220, 200, 60))
	mirror.IsMirror = true
	glass := NewMaterial("Red", NewColour(200, 60, 60))
	glass.IsGlass = true

	// Walls enclose x=[-1,1], y=[0,2], z=[-3,-1] with normals facing inward
	s.AddObject(NewObject("floor", Quad(
		core.NewVec3(-1, 0, -1), core.NewVec3(1, 0, -1), core.NewVec3(1, 0, -3), core.NewVec3(-1, 0, -3), white)))
	s.AddObject(NewObject("ceiling", Quad(
		core.NewVec3(-1, 2, -1), core.NewVec3(-1, 2, -3), core.NewVec3(1, 2, -3), core.NewVec3(1, 2, -1), white)))
	s.AddObject(NewObject("back wall", Quad(
		core.NewVec3(-1, 0, -3), core.NewVec3(1, 0, -3), core.NewVec3(1, 2, -3), core.NewVec3(-1, 2, -3), white)))
	s.AddObject(NewObject("left wall", Quad(
		core.NewVec3(-1, 0, -1), core.NewVec3(-1, 0, -3), core.NewVec3(-1, 2, -3), core.NewVec3(-1, 2, -1), crimson)))
	s.AddObject(NewObject("right wall", Quad(
		core.NewVec3(1, 0, -1), core.NewVec3(1, 2, -1), core.NewVec3(1, 2, -3), core.NewVec3(1, 0, -3), green)))

	s.AddObject(NewBox("tall block", core.NewVec3(-0.7, 0, -2.6), core.NewVec3(-0.2, 1.2, -2.1), mirror))
	s.AddObject(NewBox("short block", core.NewVec3(0.2, 0, -1.9), core.NewVec3(0.7, 0.6, -1.4), glass))

	s.AddLight(NewLight(core.NewVec3(0, 1.85, -2), 0.3, 40))

	return s
}

// NewMirrorScene creates two parallel mirrors at z=-5 and z=+5 facing each other
func NewMirrorScene(width, height int) *Scene {
	s := NewScene("mirrors", width, height, float64(width)/2)

	mirror := NewMaterial("Yellow", NewColour(200, 200, 200))
	mirror.IsMirror = true
	blue := NewMaterial("Blue", NewColour(40, 80, 220))

	s.AddObject(NewObject("front mirror", Quad(
		core.NewVec3(-20, -20, -5), core.NewVec3(20, -20, -5), core.NewVec3(20, 20, -5), core.NewVec3(-20, 20, -5), mirror)))
	s.AddObject(NewObject("rear mirror", Quad(
		core.NewVec3(-20, -20, 5), core.NewVec3(-20, 20, 5), core.NewVec3(20, 20, 5), core.NewVec3(20, -20, 5), mirror)))

	tri := NewTriangle(core.NewVec3(1, -1, -2), core.NewVec3(3, -1, -2), core.NewVec3(2, 1, -2), blue)
	s.AddObject(NewObject("marker", []Triangle{tri}))

	s.AddLight(NewLight(core.NewVec3(0, 3, 0), 0.2, 120))

	return s
}

// Quad splits the quad a-b-c-d into two triangles sharing the a-c diagonal
func Quad(a, b, c, d core.Vec3, material Material) []Triangle {
	return []Triangle{
		NewTriangle(a, b, c, material),
		NewTriangle(a, c, d, material),
	}
}

// NewBox creates an axis-aligned box object with outward-facing normals
func NewBox(name string, lo, hi core.Vec3, material Material) Object {
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z
	v := core.NewVec3

	var triangles []Triangle
	triangles = append(triangles, Quad(v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), v(x1, y0, z0), material)...) // -Z
	triangles = append(triangles, Quad(v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1), material)...) // +Z
	triangles = append(triangles, Quad(v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0), material)...) // -X
	triangles = append(triangles, Quad(v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), v(x1, y0, z1), material)...) // +X
	triangles = append(triangles, Quad(v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1), material)...) // -Y
	triangles = append(triangles, Quad(v(x0, y1, z0), v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), material)...) // +Y

	return NewObject(name, triangles)
}
