package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-triangle-raytracer/pkg/core"
)

// Black is an opaque black pixel
const Black uint32 = 0xFF000000

// Frame is a rendered image of packed 0xAARRGGBB pixels
type Frame struct {
	Width  int
	Height int
	Pixels []uint32 // Row-major: Pixels[y*Width + x]
}

// NewFrame creates a frame filled with opaque black
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
	f.Fill(Black)
	return f
}

// Fill sets every pixel to the same value
func (f *Frame) Fill(pixel uint32) {
	for i := range f.Pixels {
		f.Pixels[i] = pixel
	}
}

// At returns the pixel at (x, y)
func (f *Frame) At(x, y int) uint32 {
	return f.Pixels[y*f.Width+x]
}

// Set writes the pixel at (x, y). Coordinates outside the frame are ignored.
func (f *Frame) Set(x, y int, pixel uint32) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Pixels[y*f.Width+x] = pixel
}

// RGBA converts the frame to a standard library image
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := core.UnpackRGB(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}
