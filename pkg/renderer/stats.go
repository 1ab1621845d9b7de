package renderer

import (
	"sync/atomic"
	"time"
)

// TraceStats counts the rays an Engine has traced so far
type TraceStats struct {
	PrimaryRays    int64 // Rays traced at depth 0
	SecondaryRays  int64 // Reflected and refracted rays
	ShadowRays     int64 // Occlusion tests towards lights
	MissingNormals int64 // Hits whose surface reported no normal
}

// traceCounters is the lock-free accumulator behind TraceStats
type traceCounters struct {
	primary        atomic.Int64
	secondary      atomic.Int64
	shadow         atomic.Int64
	missingNormals atomic.Int64
}

func (tc *traceCounters) snapshot() TraceStats {
	return TraceStats{
		PrimaryRays:    tc.primary.Load(),
		SecondaryRays:  tc.secondary.Load(),
		ShadowRays:     tc.shadow.Load(),
		MissingNormals: tc.missingNormals.Load(),
	}
}

// RenderStats contains statistics about one call to Render
type RenderStats struct {
	TotalPixels    int           // Pixels written to the sink
	TotalSamples   int           // Camera rays traced
	SkippedSamples int           // Jitter samples the camera had no ray for
	Tiles          int           // Tiles rendered
	Trace          TraceStats    // Ray counts accumulated during this render
	Duration       time.Duration // Wall-clock render time
}

// AverageSamples returns the mean number of camera rays per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// tileStats is what one tile reports back to Render
type tileStats struct {
	pixels  int
	samples int
	skipped int
}

func (ts *tileStats) add(other tileStats) {
	ts.pixels += other.pixels
	ts.samples += other.samples
	ts.skipped += other.skipped
}

// diff returns the counts accumulated since before
func (s TraceStats) diff(before TraceStats) TraceStats {
	return TraceStats{
		PrimaryRays:    s.PrimaryRays - before.PrimaryRays,
		SecondaryRays:  s.SecondaryRays - before.SecondaryRays,
		ShadowRays:     s.ShadowRays - before.ShadowRays,
		MissingNormals: s.MissingNormals - before.MissingNormals,
	}
}
