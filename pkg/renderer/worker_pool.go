package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 uses the CPU count.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls render once per tile. It stops handing out tiles once ctx is
// cancelled or a render call fails, and returns the first error.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(tile *Tile) error) error {
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if groupCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return render(tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
