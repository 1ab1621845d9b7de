package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Render traces every pixel into sink. Each pixel averages SamplesPerPixel
// jittered camera rays (a box filter). Tiles are spread over the worker
// pool; cancelling ctx stops new tiles from starting.
func (e *Engine) Render(ctx context.Context, sink Sink) (RenderStats, error) {
	if err := e.config.Validate(); err != nil {
		return RenderStats{}, err
	}
	camera := e.scene.GetCamera()
	if camera == nil {
		return RenderStats{}, fmt.Errorf("scene has no camera")
	}

	start := time.Now()
	before := e.Stats()

	tiles := NewTileGrid(e.config.Width, e.config.Height, e.config.TileSize, e.config.Seed)
	pool := NewWorkerPool(e.config.NumWorkers)

	var mu sync.Mutex
	var totals tileStats
	err := pool.Run(ctx, tiles, func(tile *Tile) error {
		ts := e.renderTile(camera, tile, sink)
		mu.Lock()
		totals.add(ts)
		mu.Unlock()
		return nil
	})

	stats := RenderStats{
		TotalPixels:    totals.pixels,
		TotalSamples:   totals.samples,
		SkippedSamples: totals.skipped,
		Tiles:          len(tiles),
		Trace:          e.Stats().diff(before),
		Duration:       time.Since(start),
	}
	if err != nil {
		return stats, fmt.Errorf("render interrupted: %w", err)
	}
	return stats, nil
}

// renderTile renders the pixels inside one tile using the tile's own generator
func (e *Engine) renderTile(camera *Camera, tile *Tile, sink Sink) tileStats {
	var ts tileStats
	width := float64(e.config.Width)
	height := float64(e.config.Height)

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			colorAccum := core.Color{}
			taken := 0
			for s := 0; s < e.config.SamplesPerPixel; s++ {
				u := (float64(i) + tile.Random.Float64()) / width
				v := (float64(j) + tile.Random.Float64()) / height

				ray, ok := camera.GetRay(u, v)
				if !ok {
					ts.skipped++
					continue
				}
				colorAccum = colorAccum.Add(e.Trace(ray, 1.0, 0))
				taken++
			}

			if taken > 0 {
				colorAccum = colorAccum.Multiply(1.0 / float64(taken))
			}
			sink.Set(i, j, colorAccum)
			ts.pixels++
			ts.samples += taken
		}
	}
	return ts
}
