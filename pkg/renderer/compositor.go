package renderer

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/integrator"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// CompositorConfig contains configuration for supersampled ray tracing
type CompositorConfig struct {
	Pattern    SamplePattern     // Sub-pixel sample positions and blend weights
	Shading    integrator.Config // Lighting and reflection constants
	TileSize   int               // Size of each trace tile in pixels
	NumWorkers int               // Number of parallel workers (0 = use CPU count)

	// Shadowed brightness is scaled by ShadowBase + ShadowRange*(1-strength)
	// and never drops below ShadowFloor
	ShadowBase  float64
	ShadowRange float64
	ShadowFloor float64

	MaxPenumbraRadius float64 // Upper bound on the penumbra search radius, in sub-samples
}

// DefaultCompositorConfig returns the standard 3x3 tent-filtered configuration
func DefaultCompositorConfig() CompositorConfig {
	return CompositorConfig{
		Pattern:           TentSamplePattern(),
		Shading:           integrator.DefaultConfig(),
		TileSize:          32,
		NumWorkers:        0, // Auto-detect CPU count
		ShadowBase:        0.4,
		ShadowRange:       0.6,
		ShadowFloor:       0.2,
		MaxPenumbraRadius: 48,
	}
}

// Compositor renders a frame in three phases: trace every sub-sample, widen
// shadows into soft penumbrae in screen space, then blend sub-samples into pixels.
// Each phase completes over the whole frame before the next begins.
type Compositor struct {
	scene  *scene.Scene
	config CompositorConfig
	logger core.Logger
}

// NewCompositor creates a compositor for one scene. A nil logger is silent.
func NewCompositor(s *scene.Scene, config CompositorConfig, logger core.Logger) *Compositor {
	if logger == nil {
		logger = core.NopLogger()
	}
	return &Compositor{scene: s, config: config, logger: logger}
}

// Render produces one frame
func (c *Compositor) Render() (*Frame, RenderStats, error) {
	if err := validateScene(c.scene); err != nil {
		return nil, RenderStats{}, err
	}
	if err := c.config.Pattern.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := c.scene.Width, c.scene.Height
	stats := RenderStats{Width: width, Height: height, TotalPixels: width * height}
	buffers := NewFrameBuffers(width, height, c.config.Pattern.Size)

	c.logger.Printf("Tracing %dx%d with %d sub-samples per pixel (%s pattern, %d triangles, %d lights)...\n",
		width, height, c.config.Pattern.Count(), c.config.Pattern.Name, c.scene.TriangleCount(), len(c.scene.Lights))

	start := time.Now()
	if err := c.trace(buffers, &stats); err != nil {
		return nil, RenderStats{}, err
	}
	stats.addPhase("trace", start)

	start = time.Now()
	c.widenShadows(buffers)
	stats.addPhase("shadows", start)

	start = time.Now()
	frame := BlendFrame(buffers, c.config.Pattern)
	stats.addPhase("blend", start)

	c.logger.Printf("Frame completed in %v (%d rays, %.1f%% hits, %d reflections)\n",
		stats.Total, stats.Trace.SubSamples, 100*stats.HitRatio(), stats.Trace.Reflections)

	return frame, stats, nil
}

// trace fills every sub-sample slot using the worker pool and returns once
// all tiles have reported back
func (c *Compositor) trace(buffers *FrameBuffers, stats *RenderStats) error {
	in := integrator.NewIntegrator(c.scene, c.config.Shading)
	tracer := NewTileTracer(in, NewCamera(c.scene), c.config.Pattern, c.scene.FocalLength, len(c.scene.Lights))

	tiles := NewTileGrid(c.scene.Width, c.scene.Height, c.config.TileSize)
	pool := NewWorkerPool(tracer, len(tiles), c.config.NumWorkers)
	pool.Start()
	defer pool.Stop()

	stats.Workers = pool.GetNumWorkers()
	stats.Tiles = len(tiles)

	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID, Buffers: buffers})
	}

	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.Trace.Add(result.Stats)
	}
	return firstErr
}

// widenShadows resolves every sub-sample into Screen, splitting rows of the
// supersampled grid across goroutines. It only reads the fields written by trace.
func (c *Compositor) widenShadows(b *FrameBuffers) {
	rows := b.SubHeight()
	workers := c.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			for sy := first; sy < rows; sy += workers {
				c.resolveRow(b, sy)
			}
		}(w)
	}
	wg.Wait()
}

func (c *Compositor) resolveRow(b *FrameBuffers, sy int) {
	for sx := 0; sx < b.SubWidth(); sx++ {
		idx := b.Index(sx, sy)
		strength := ShadowStrength(b, sx, sy, c.config.MaxPenumbraRadius)
		multiplier := c.config.ShadowBase + c.config.ShadowRange*(1-strength)
		b.Screen[idx] = c.resolve(b.Colour[idx], b.Brightness[idx], multiplier)
	}
}

// resolve lights a surface colour, never letting a channel's brightness fall
// below the shadow floor
func (c *Compositor) resolve(colour, brightness core.Vec3, multiplier float64) core.Vec3 {
	floor := c.config.ShadowFloor
	lit := core.NewVec3(
		math.Max(floor, brightness.X*multiplier),
		math.Max(floor, brightness.Y*multiplier),
		math.Max(floor, brightness.Z*multiplier),
	)
	return colour.MultiplyVec(lit).Clamp(0, 255)
}

// BlendFrame averages each pixel's resolved sub-samples using the pattern weights
func BlendFrame(b *FrameBuffers, pattern SamplePattern) *Frame {
	frame := NewFrame(b.Width, b.Height)
	total := pattern.TotalWeight()

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			var sum core.Vec3
			for k, offset := range pattern.Offsets {
				sum = sum.Add(b.Screen[b.SampleIndex(x, y, k)].Multiply(offset.Weight))
			}
			frame.Set(x, y, core.PackVec3(sum.Multiply(1/total)))
		}
	}

	return frame
}
