package renderer

import "github.com/df07/go-triangle-raytracer/pkg/core"

// FrameBuffers holds the per-sub-sample state of one frame, laid out as a
// supersampled image of (Width*Size) x (Height*Size) entries in row-major order.
//
// The trace phase writes every field except Screen, each slot exactly once.
// The shadow phase reads them and writes only Screen. The blend phase reads Screen.
type FrameBuffers struct {
	Width, Height int // Output image size in pixels
	Size          int // Sub-samples per pixel along each axis

	Colour     []core.Vec3 // Surface colour in [0, 255] after reflection attenuation
	Brightness []core.Vec3 // Per-channel lit brightness
	Occlusion  []float64   // Occlusion fraction, 1 when unobstructed or missed
	Depth      []float64   // Primary-ray hit distance
	LightSize  []float64   // Dominant light radius projected onto the sub-sample grid
	Alignment  []float64   // Normal dot light direction for the dominant light
	Screen     []core.Vec3 // Resolved sub-sample colour in [0, 255]
}

// NewFrameBuffers allocates buffers for a width x height image with size x size sub-samples
func NewFrameBuffers(width, height, size int) *FrameBuffers {
	n := width * size * height * size
	b := &FrameBuffers{
		Width:      width,
		Height:     height,
		Size:       size,
		Colour:     make([]core.Vec3, n),
		Brightness: make([]core.Vec3, n),
		Occlusion:  make([]float64, n),
		Depth:      make([]float64, n),
		LightSize:  make([]float64, n),
		Alignment:  make([]float64, n),
		Screen:     make([]core.Vec3, n),
	}
	for i := range b.Occlusion {
		b.Occlusion[i] = 1
	}
	return b
}

// SubWidth returns the width of the supersampled grid
func (b *FrameBuffers) SubWidth() int {
	return b.Width * b.Size
}

// SubHeight returns the height of the supersampled grid
func (b *FrameBuffers) SubHeight() int {
	return b.Height * b.Size
}

// Index returns the slot of sub-sample grid position (sx, sy)
func (b *FrameBuffers) Index(sx, sy int) int {
	return sy*b.SubWidth() + sx
}

// SampleIndex returns the slot of sample k inside pixel (x, y)
func (b *FrameBuffers) SampleIndex(x, y, k int) int {
	return b.Index(x*b.Size+k%b.Size, y*b.Size+k/b.Size)
}
