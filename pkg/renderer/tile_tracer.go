package renderer

import (
	"image"

	"github.com/df07/go-triangle-raytracer/pkg/integrator"
)

// TileTracer runs the trace phase for tiles of output pixels, writing each
// sub-sample's surface, lighting and shadow state into shared frame buffers
type TileTracer struct {
	integrator *integrator.Integrator
	camera     *Camera
	pattern    SamplePattern
	lightScale float64 // Converts a light radius to sub-sample grid units
	lights     int
}

// NewTileTracer creates a tile tracer
func NewTileTracer(in *integrator.Integrator, camera *Camera, pattern SamplePattern, focalLength float64, lights int) *TileTracer {
	return &TileTracer{
		integrator: in,
		camera:     camera,
		pattern:    pattern,
		lightScale: focalLength * float64(pattern.Size),
		lights:     lights,
	}
}

// TraceBounds traces every sub-sample of the pixels within bounds. Tiles have
// non-overlapping bounds, so concurrent calls write disjoint buffer slots.
func (tt *TileTracer) TraceBounds(bounds image.Rectangle, b *FrameBuffers) TraceStats {
	var stats TraceStats
	origin := tt.camera.Origin()
	shader := tt.integrator.Shader()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			for k, offset := range tt.pattern.Offsets {
				idx := b.SampleIndex(i, j, k)
				dir := tt.camera.Direction(float64(i)+0.5+offset.DX, float64(j)+0.5+offset.DY)
				stats.SubSamples++

				sample, ok := tt.integrator.Evaluate(origin, dir)
				if !ok {
					b.Occlusion[idx] = 1
					continue
				}

				hit := sample.Hit
				b.Colour[idx] = hit.Colour.Vec3().Multiply(shader.Attenuation(hit.Depth))
				b.Brightness[idx] = sample.Illumination.Multiplier
				b.Occlusion[idx] = sample.Shadow.Occlusion
				b.Depth[idx] = hit.PrimaryDistance
				b.LightSize[idx] = sample.Shadow.LightRadius * tt.lightScale
				b.Alignment[idx] = sample.Shadow.Alignment

				stats.Hits++
				stats.ShadowRays += tt.lights
				stats.Reflections += hit.Depth
			}
		}
	}

	return stats
}
