package integrator

import (
	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// ShadowSample is the shadow state of one hit against its dominant light
type ShadowSample struct {
	// Occlusion is the nearest blocker distance divided by the distance to the
	// light. 1 means the light is unobstructed.
	Occlusion float64

	LightRadius float64 // Radius of the light producing the strongest shadow
	Alignment   float64 // Normal dot light direction; negative faces away
}

// ShadowEstimator casts shadow rays against every triangle in the scene.
// No object is excluded so meshes may shadow themselves.
type ShadowEstimator struct {
	objects []scene.Object
	epsilon float64
}

// NewShadowEstimator creates a shadow estimator over a fixed object list
func NewShadowEstimator(objects []scene.Object, epsilon float64) *ShadowEstimator {
	return &ShadowEstimator{objects: objects, epsilon: epsilon}
}

// Occlusion returns the occlusion fraction of the segment from point to lightPos
func (e *ShadowEstimator) Occlusion(point, lightPos core.Vec3) float64 {
	toLight := lightPos.Subtract(point)
	length := toLight.Length()
	if length < e.epsilon {
		// The light sits on the surface
		return 1
	}

	t, _, _, _, _, blocked := closestT(point, toLight.Multiply(1/length), e.objects, e.epsilon, length)
	if !blocked {
		return 1
	}
	return t / length
}

// Estimate evaluates every light and keeps the one casting the strongest
// shadow, that is, the smallest occlusion fraction
func (e *ShadowEstimator) Estimate(point, normal core.Vec3, lights []scene.Light) ShadowSample {
	result := ShadowSample{Occlusion: 1, Alignment: 1}
	n := normal.Normalize()

	for i, light := range lights {
		occlusion := e.Occlusion(point, light.Position)
		if i > 0 && occlusion >= result.Occlusion {
			continue
		}
		result = ShadowSample{
			Occlusion:   occlusion,
			LightRadius: light.Radius,
			Alignment:   n.Dot(light.Position.Subtract(point).Normalize()),
		}
	}
	return result
}
