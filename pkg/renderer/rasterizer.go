package renderer

import (
	"math"
	"sort"
	"time"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// RasterConfig contains configuration for the scanline preview
type RasterConfig struct {
	Wireframe  bool   // Draw triangle edges instead of filling
	Background uint32 // Packed colour of uncovered pixels
}

// DefaultRasterConfig returns a filled preview on black
func DefaultRasterConfig() RasterConfig {
	return RasterConfig{Background: Black}
}

// DepthBuffer stores the inverse depth of the nearest surface drawn at each
// pixel. It is cleared to 0; larger values are nearer the camera.
type DepthBuffer struct {
	width  int
	height int
	depth  []float64
}

// NewDepthBuffer creates a cleared depth buffer
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{width: width, height: height, depth: make([]float64, width*height)}
}

// Test reports whether depth at (x, y) is nearer than what is stored and, if
// so, stores it. Coordinates outside the buffer always fail.
func (d *DepthBuffer) Test(x, y int, depth float64) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	i := y*d.width + x
	if depth <= d.depth[i] {
		return false
	}
	d.depth[i] = depth
	return true
}

// At returns the stored depth at (x, y)
func (d *DepthBuffer) At(x, y int) float64 {
	return d.depth[y*d.width+x]
}

// projected is a vertex in pixel coordinates with inverse depth
type projected struct {
	x, y, depth float64
}

// Rasterizer draws a flat-coloured, depth-tested preview of a scene with no
// lighting, shadows or textures
type Rasterizer struct {
	scene  *scene.Scene
	config RasterConfig
	logger core.Logger
}

// NewRasterizer creates a rasterizer. A nil logger is silent.
func NewRasterizer(s *scene.Scene, config RasterConfig, logger core.Logger) *Rasterizer {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Rasterizer{scene: s, config: config, logger: logger}
}

// Render draws every triangle of every object into a new frame
func (r *Rasterizer) Render() (*Frame, RenderStats, error) {
	if err := validateScene(r.scene); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := r.scene.Width, r.scene.Height
	stats := RenderStats{Width: width, Height: height, TotalPixels: width * height, Workers: 1}
	start := time.Now()

	frame := NewFrame(width, height)
	frame.Fill(r.config.Background)
	depth := NewDepthBuffer(width, height)
	camera := NewCamera(r.scene)

	for i := range r.scene.Objects {
		for _, tri := range r.scene.Objects[i].Triangles {
			var verts [3]projected
			visible := true
			for k, v := range tri.Vertices {
				x, y, d, ok := camera.Project(v)
				if !ok {
					visible = false
					break
				}
				verts[k] = projected{x, y, d}
			}
			if !visible {
				stats.TrianglesCulled++
				continue
			}

			colour := tri.Material.Colour.Pack()
			if r.config.Wireframe {
				drawLine(frame, depth, verts[0], verts[1], colour)
				drawLine(frame, depth, verts[1], verts[2], colour)
				drawLine(frame, depth, verts[2], verts[0], colour)
			} else {
				fillTriangle(frame, depth, verts, colour)
			}
			stats.TrianglesDrawn++
		}
	}

	stats.addPhase("raster", start)
	r.logger.Printf("Rasterised %d triangles (%d culled) in %v\n", stats.TrianglesDrawn, stats.TrianglesCulled, stats.Total)
	return frame, stats, nil
}

// lerp interpolates from a to b at y, returning a when the edge is horizontal
func lerp(a, b projected, y float64) (x, depth float64) {
	dy := b.y - a.y
	if dy == 0 {
		return a.x, a.depth
	}
	t := (y - a.y) / dy
	return a.x + (b.x-a.x)*t, a.depth + (b.depth-a.depth)*t
}

// fillTriangle scan-converts a triangle: vertices are sorted by y, the long
// edge runs top to bottom, and the short edges switch at the middle vertex
func fillTriangle(frame *Frame, depth *DepthBuffer, v [3]projected, colour uint32) {
	sort.Slice(v[:], func(i, j int) bool { return v[i].y < v[j].y })
	top, mid, bottom := v[0], v[1], v[2]

	y0 := max(top.y, 0)
	y1 := min(bottom.y, float64(frame.Height-1))
	for y := y0; y <= y1; y++ {
		xa, da := lerp(top, bottom, y)
		var xb, db float64
		if y < mid.y {
			xb, db = lerp(top, mid, y)
		} else {
			xb, db = lerp(mid, bottom, y)
		}
		if xa > xb {
			xa, xb = xb, xa
			da, db = db, da
		}

		fillSpan(frame, depth, int(y), xa, xb, da, db, colour)
	}
}

// fillSpan writes pixels ceil(xl)..floor(xr) on row y, interpolating depth across the span
func fillSpan(frame *Frame, depth *DepthBuffer, y int, xl, xr, dl, dr float64, colour uint32) {
	first := max(int(math.Ceil(xl)), 0)
	last := min(int(math.Floor(xr)), frame.Width-1)
	span := xr - xl

	for x := first; x <= last; x++ {
		d := dl
		if span > 0 {
			d = dl + (dr-dl)*(float64(x)-xl)/span
		}
		if depth.Test(x, y, d) {
			frame.Set(x, y, colour)
		}
	}
}

// drawLine steps along the longer axis of a segment one pixel at a time,
// interpolating depth. The segment is clipped to the frame first so a vertex
// projected far off screen costs nothing.
func drawLine(frame *Frame, depth *DepthBuffer, a, b projected, colour uint32) {
	dx, dy := b.x-a.x, b.y-a.y
	t0, t1, ok := clipSegment(a, dx, dy, float64(frame.Width), float64(frame.Height))
	if !ok {
		return
	}

	steps := math.Max(math.Abs(dx), math.Abs(dy)) * (t1 - t0)
	if steps < 1 {
		t := t0
		x, y := int(math.Round(a.x+dx*t)), int(math.Round(a.y+dy*t))
		if depth.Test(x, y, a.depth+(b.depth-a.depth)*t) {
			frame.Set(x, y, colour)
		}
		return
	}

	for i := 0.0; i <= steps; i++ {
		t := t0 + (t1-t0)*i/steps
		x := int(math.Round(a.x + dx*t))
		y := int(math.Round(a.y + dy*t))
		if depth.Test(x, y, a.depth+(b.depth-a.depth)*t) {
			frame.Set(x, y, colour)
		}
	}
}

// clipSegment returns the parameter range of a+t·(dx,dy), t in [0,1], that
// lies between the first and last pixel centres of the frame (Liang-Barsky)
func clipSegment(a projected, dx, dy, width, height float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	edges := [4][2]float64{
		{-dx, a.x},             // left
		{dx, width - 1 - a.x},  // right
		{-dy, a.y},             // top
		{dy, height - 1 - a.y}, // bottom
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}
