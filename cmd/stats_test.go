package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/df07/go-triangle-raytracer/pkg/renderer"
)

func TestFormatRenderStats(t *testing.T) {
	traced := renderer.RenderStats{
		Width: 64, Height: 32, Workers: 4, Tiles: 2,
		Trace: renderer.TraceStats{SubSamples: 100, Hits: 25, ShadowRays: 25, Reflections: 3},
		Phases: []renderer.PhaseTiming{
			{Name: "trace", Duration: 30 * time.Millisecond},
			{Name: "shadows", Duration: 10 * time.Millisecond},
		},
		Total: 40 * time.Millisecond,
	}
	rasterised := renderer.RenderStats{
		Width: 8, Height: 8, Workers: 1, TrianglesDrawn: 5, TrianglesCulled: 2,
		Phases: []renderer.PhaseTiming{{Name: "raster", Duration: time.Millisecond}},
		Total:  time.Millisecond,
	}

	tests := []struct {
		name     string
		stats    renderer.RenderStats
		expected []string
		absent   []string
	}{
		{"traced", traced, []string{"trace", "shadows", "75.0 %", "TOTAL", "64x32", "25 (25.0 %)", "Reflections"}, []string{"Triangles drawn"}},
		{"rasterised", rasterised, []string{"raster", "100.0 %", "Triangles drawn", "Triangles culled"}, []string{"Shadow rays"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatRenderStats(tt.stats)
			for _, s := range tt.expected {
				if !strings.Contains(out, s) {
					t.Errorf("Expected %q in\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("Did not expect %q in\n%s", s, out)
				}
			}
		})
	}
}
