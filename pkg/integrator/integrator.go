package integrator

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// Config holds the shading and tracing constants shared by every ray in a frame
type Config struct {
	Ambient               float64 // Brightness floor applied after summing all lights
	Shininess             float64 // Specular exponent
	MaxReflectionDepth    int     // Mirror bounces followed before the hit is used as-is
	ReflectionAttenuation float64 // Brightness factor applied once per bounce
	Epsilon               float64 // Minimum hit distance, guards against self-intersection
}

// DefaultConfig returns the standard shading constants
func DefaultConfig() Config {
	return Config{
		Ambient:               0.2,
		Shininess:             10,
		MaxReflectionDepth:    4,
		ReflectionAttenuation: 0.8,
		Epsilon:               1e-3,
	}
}

// Integrator traces rays through a scene and evaluates direct lighting and
// shadowing at the surfaces they terminate on. It holds no per-ray state and
// is safe for concurrent use.
type Integrator struct {
	config  Config
	scene   *scene.Scene
	shader  *Shader
	shadows *ShadowEstimator
}

// NewIntegrator creates an integrator for one scene
func NewIntegrator(s *scene.Scene, config Config) *Integrator {
	return &Integrator{
		config:  config,
		scene:   s,
		shader:  NewShader(config),
		shadows: NewShadowEstimator(s.Objects, config.Epsilon),
	}
}

// Config returns the integrator's shading constants
func (in *Integrator) Config() Config {
	return in.config
}

// Shader returns the shader used for direct lighting
func (in *Integrator) Shader() *Shader {
	return in.shader
}

// Shadows returns the shadow estimator used for occlusion queries
func (in *Integrator) Shadows() *ShadowEstimator {
	return in.shadows
}

// Trace follows a ray from origin along the unit direction dir, reflecting off
// mirror surfaces until it lands on a non-mirror surface or the bounce limit is
// reached. A ray that escapes the scene, including after a reflection, is a miss.
func (in *Integrator) Trace(origin, dir core.Vec3) (RayHit, bool) {
	primary := 0.0
	for depth := 0; ; depth++ {
		hit, ok := ClosestIntersection(origin, dir, in.scene.Objects, in.config.Epsilon)
		if !ok {
			return RayHit{}, false
		}
		if depth == 0 {
			primary = hit.Distance
		}
		hit.Depth = depth
		hit.PrimaryDistance = primary

		if !hit.Mirror || depth >= in.config.MaxReflectionDepth {
			return hit, true
		}

		dir = dir.Reflect(hit.Normal).Normalize()
		origin = hit.Point
	}
}

// Sample is the fully evaluated result of one primary ray
type Sample struct {
	Hit          RayHit
	Illumination Illumination
	Shadow       ShadowSample
}

// Evaluate traces a primary ray and, on a hit, computes its lighting and
// shadow terms against every light in the scene
func (in *Integrator) Evaluate(origin, dir core.Vec3) (Sample, bool) {
	hit, ok := in.Trace(origin, dir)
	if !ok {
		return Sample{}, false
	}
	return Sample{
		Hit:          hit,
		Illumination: in.shader.Illuminate(hit, in.scene.Lights),
		Shadow:       in.shadows.Estimate(hit.Point, hit.Normal, in.scene.Lights),
	}, true
}
