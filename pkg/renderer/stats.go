package renderer

import "time"

// TraceStats counts the rays traced for one tile
type TraceStats struct {
	SubSamples  int // Primary rays traced
	Hits        int // Primary rays that reached a surface
	ShadowRays  int // Rays cast toward lights
	Reflections int // Mirror bounces followed
}

// Add accumulates another tile's counters
func (ts *TraceStats) Add(other TraceStats) {
	ts.SubSamples += other.SubSamples
	ts.Hits += other.Hits
	ts.ShadowRays += other.ShadowRays
	ts.Reflections += other.Reflections
}

// PhaseTiming records the wall time spent in one render phase
type PhaseTiming struct {
	Name     string
	Duration time.Duration
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	TotalPixels   int
	Trace         TraceStats

	TrianglesDrawn  int // Rasterizer only
	TrianglesCulled int // Rasterizer only: triangles crossing the camera plane

	Workers int
	Tiles   int
	Phases  []PhaseTiming
	Total   time.Duration
}

// addPhase appends a timed phase and extends the total
func (rs *RenderStats) addPhase(name string, start time.Time) {
	d := time.Since(start)
	rs.Phases = append(rs.Phases, PhaseTiming{Name: name, Duration: d})
	rs.Total += d
}

// HitRatio returns the fraction of primary rays that hit a surface
func (rs RenderStats) HitRatio() float64 {
	if rs.Trace.SubSamples == 0 {
		return 0
	}
	return float64(rs.Trace.Hits) / float64(rs.Trace.SubSamples)
}
