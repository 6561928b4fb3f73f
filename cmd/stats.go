package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-triangle-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

// formatRenderStats renders per-phase timings and ray counters as two tables
func formatRenderStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Phase", "Time", "% of frame"})
	for _, phase := range stats.Phases {
		share := 0.0
		if stats.Total > 0 {
			share = 100 * float64(phase.Duration) / float64(stats.Total)
		}
		table.Append([]string{phase.Name, phase.Duration.String(), fmt.Sprintf("%02.1f %%", share)})
	}
	table.SetFooter([]string{"TOTAL", stats.Total.String(), ""})
	table.Render()

	counters := tablewriter.NewWriter(&buf)
	counters.SetAutoFormatHeaders(false)
	counters.SetHeader([]string{"Counter", "Value"})
	rows := [][]string{
		{"Frame", fmt.Sprintf("%dx%d", stats.Width, stats.Height)},
		{"Workers", fmt.Sprintf("%d", stats.Workers)},
	}
	if stats.Trace.SubSamples > 0 {
		rows = append(rows,
			[]string{"Tiles", fmt.Sprintf("%d", stats.Tiles)},
			[]string{"Sub-samples", fmt.Sprintf("%d", stats.Trace.SubSamples)},
			[]string{"Primary hits", fmt.Sprintf("%d (%02.1f %%)", stats.Trace.Hits, 100*stats.HitRatio())},
			[]string{"Shadow rays", fmt.Sprintf("%d", stats.Trace.ShadowRays)},
			[]string{"Reflections", fmt.Sprintf("%d", stats.Trace.Reflections)},
		)
	} else {
		rows = append(rows,
			[]string{"Triangles drawn", fmt.Sprintf("%d", stats.TrianglesDrawn)},
			[]string{"Triangles culled", fmt.Sprintf("%d", stats.TrianglesCulled)},
		)
	}
	counters.AppendBulk(rows)
	counters.Render()

	return buf.String()
}

func displayRenderStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", formatRenderStats(stats))
}
