package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// blockerAt returns a large horizontal quad at height z
func blockerAt(z float64) scene.Object {
	return scene.NewObject("blocker", scene.Quad(
		core.NewVec3(-5, -5, z), core.NewVec3(5, -5, z), core.NewVec3(5, 5, z), core.NewVec3(-5, 5, z),
		scene.NewMaterial("grey", scene.NewColour(128, 128, 128))))
}

func TestShadowEstimator_Occlusion(t *testing.T) {
	estimator := NewShadowEstimator([]scene.Object{blockerAt(4)}, 1e-3)

	tests := []struct {
		name     string
		point    core.Vec3
		light    core.Vec3
		expected float64
	}{
		{"unobstructed beside the blocker", core.NewVec3(20, 0.1, 0), core.NewVec3(20, 0.1, 10), 1},
		{"blocked at 40 percent", core.NewVec3(0.3, 0.1, 0), core.NewVec3(0.3, 0.1, 10), 0.4},
		{"light below the blocker", core.NewVec3(0.3, 0.1, 0), core.NewVec3(0.3, 0.1, 3), 1},
		{"light on the surface", core.NewVec3(0.3, 0.1, 0), core.NewVec3(0.3, 0.1, 0), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimator.Occlusion(tt.point, tt.light)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestShadowEstimator_Monotonicity(t *testing.T) {
	// Light at z=2 over a blocker at z=1. The surface point starts just under
	// the blocker and moves further away, then out from under it entirely.
	estimator := NewShadowEstimator([]scene.Object{blockerAt(1)}, 1e-3)
	light := core.NewVec3(0.3, 0.1, 2)

	points := []core.Vec3{
		core.NewVec3(0.3, 0.1, 0.99),
		core.NewVec3(0.3, 0.1, 0.5),
		core.NewVec3(0.3, 0.1, 0),
		core.NewVec3(0.3, 0.1, -2),
		core.NewVec3(0.3, 0.1, -10),
		core.NewVec3(0.3, 0.1, -100),
		core.NewVec3(40, 0.1, 0.5),
	}

	previous := -1.0
	for i, p := range points {
		occlusion := estimator.Occlusion(p, light)
		if occlusion < 0 || occlusion > 1 {
			t.Fatalf("Point %d: occlusion %f out of range", i, occlusion)
		}
		if occlusion < previous {
			t.Errorf("Point %d: occlusion decreased from %f to %f", i, previous, occlusion)
		}
		previous = occlusion
	}

	if first := estimator.Occlusion(points[0], light); first > 0.02 {
		t.Errorf("Expected nearly full shadow just under the blocker, got %f", first)
	}
	if previous != 1 {
		t.Errorf("Expected the final unobstructed point to reach 1, got %f", previous)
	}
}

func TestShadowEstimator_SelfShadowing(t *testing.T) {
	// A closed box shadows its own interior faces
	box := scene.NewBox("box", core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), scene.Material{})
	estimator := NewShadowEstimator([]scene.Object{box}, 1e-3)

	occlusion := estimator.Occlusion(core.NewVec3(0.1, 0.2, -1), core.NewVec3(0.1, 0.2, 5))
	if math.Abs(occlusion-2.0/6.0) > 1e-9 {
		t.Errorf("Expected the top face to block at 1/3, got %f", occlusion)
	}
}

func TestShadowEstimator_Estimate(t *testing.T) {
	estimator := NewShadowEstimator([]scene.Object{blockerAt(4)}, 1e-3)
	point := core.NewVec3(0.3, 0.1, 0)
	up := core.NewVec3(0, 0, 1)

	t.Run("no lights", func(t *testing.T) {
		got := estimator.Estimate(point, up, nil)
		expected := ShadowSample{Occlusion: 1, LightRadius: 0, Alignment: 1}
		if got != expected {
			t.Errorf("Expected %+v, got %+v", expected, got)
		}
	})

	t.Run("strongest shadow dominates", func(t *testing.T) {
		lit := scene.NewLight(core.NewVec3(0.3, 0.1, 3), 0.1, 10)
		blocked := scene.NewLight(core.NewVec3(0.3, 0.1, 10), 0.5, 10)

		got := estimator.Estimate(point, up, []scene.Light{lit, blocked})
		if math.Abs(got.Occlusion-0.4) > 1e-9 {
			t.Errorf("Expected occlusion 0.4, got %f", got.Occlusion)
		}
		if got.LightRadius != 0.5 {
			t.Errorf("Expected the blocked light's radius 0.5, got %f", got.LightRadius)
		}
		if math.Abs(got.Alignment-1) > 1e-9 {
			t.Errorf("Expected alignment 1, got %f", got.Alignment)
		}
	})

	t.Run("surface facing away", func(t *testing.T) {
		below := scene.NewLight(core.NewVec3(0.3, 0.1, -3), 0.2, 10)

		got := estimator.Estimate(point, up, []scene.Light{below})
		if got.Alignment >= 0 {
			t.Errorf("Expected negative alignment, got %f", got.Alignment)
		}
		if got.Occlusion != 1 {
			t.Errorf("Expected unobstructed occlusion, got %f", got.Occlusion)
		}
	})
}
