package scene

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
)

// Texture is a decoded RGB image used for nearest-neighbour lookups
type Texture struct {
	Width  int
	Height int
	Pixels []Colour // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a new texture
func NewTexture(width, height int, pixels []Colour) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the texel at (x, y), clamped to the texture bounds
func (t *Texture) At(x, y int) Colour {
	if t.Width <= 0 || t.Height <= 0 {
		return Colour{}
	}
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}

// Sample looks up the texel under uv by truncation.
// V=0 is the bottom row, V=1 is the top (image origin is top-left).
func (t *Texture) Sample(uv core.Vec2) Colour {
	x := int(uv.X * float64(t.Width))
	y := int((1.0 - uv.Y) * float64(t.Height))
	return t.At(x, y)
}
