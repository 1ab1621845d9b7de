package renderer

import (
	"fmt"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Jittered rays averaged per pixel
	MaxDepth        int   // Maximum reflection/refraction depth
	TileSize        int   // Edge length of a square render tile
	NumWorkers      int   // Parallel tile workers (0 = use CPU count)
	Seed            int64 // Base seed for the per-tile jitter generators
}

// DefaultRenderConfig returns the classic settings: 512x512, five samples
// per pixel and a recursion depth of four.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           512,
		Height:          512,
		SamplesPerPixel: 5,
		MaxDepth:        4,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Merge returns c with every non-zero field of override applied. MaxDepth
// of zero is a valid setting, so callers that need it assign it directly.
func (c RenderConfig) Merge(override RenderConfig) RenderConfig {
	if override.Width != 0 {
		c.Width = override.Width
	}
	if override.Height != 0 {
		c.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		c.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		c.MaxDepth = override.MaxDepth
	}
	if override.TileSize != 0 {
		c.TileSize = override.TileSize
	}
	if override.NumWorkers != 0 {
		c.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		c.Seed = override.Seed
	}
	return c
}

// Validate reports the first setting that cannot be rendered
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}
