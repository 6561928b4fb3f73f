package integrator

import (
	"math"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// Illumination is the direct-light result for one hit
type Illumination struct {
	Brightness float64   // Diffuse plus specular sum after the ambient floor, in [Ambient, 1]
	Multiplier core.Vec3 // Accumulated light colour weight scaled by Brightness
}

// Shader evaluates diffuse, specular and ambient lighting at a surface hit
type Shader struct {
	config Config
}

// NewShader creates a shader
func NewShader(config Config) *Shader {
	return &Shader{config: config}
}

// Illuminate sums every light's contribution at the hit. With no lights the
// colour weight is white, so the result is the ambient floor on every channel.
func (s *Shader) Illuminate(hit RayHit, lights []scene.Light) Illumination {
	if len(lights) == 0 {
		return Illumination{
			Brightness: s.config.Ambient,
			Multiplier: core.NewVec3(1, 1, 1).Multiply(s.config.Ambient),
		}
	}

	brightness := 0.0
	weight := core.Vec3{}
	for _, light := range lights {
		brightness += s.Diffuse(hit, light)
		brightness += s.Specular(hit, light)
		weight = weight.Add(light.Colour)
	}
	weight = weight.Clamp(0, 1)

	brightness = math.Max(s.config.Ambient, math.Min(1, brightness))
	return Illumination{
		Brightness: brightness,
		Multiplier: weight.Multiply(brightness),
	}
}

// Diffuse returns the Lambert term scaled by inverse-square falloff
func (s *Shader) Diffuse(hit RayHit, light scene.Light) float64 {
	toLight := light.Position.Subtract(hit.Point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return 0
	}

	cosine := math.Max(0, hit.Normal.Normalize().Dot(toLight.Normalize()))
	return cosine * light.Strength / (4 * math.Pi * distSq)
}

// Specular returns the Phong highlight of a light seen along the hit's incoming ray
func (s *Shader) Specular(hit RayHit, light scene.Light) float64 {
	incident := hit.Point.Subtract(light.Position)
	reflected := incident.Reflect(hit.Normal.Normalize()).Normalize()
	alignment := reflected.Dot(hit.Direction.Normalize().Negate())
	return math.Pow(math.Max(0, alignment), s.config.Shininess)
}

// Attenuation returns the brightness factor for a hit reached after depth
// mirror bounces
func (s *Shader) Attenuation(depth int) float64 {
	return math.Pow(s.config.ReflectionAttenuation, float64(depth))
}
