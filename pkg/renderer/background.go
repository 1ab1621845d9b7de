package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Background colours rays that miss every model
type Background interface {
	Color(ray core.Ray) core.Color
}

// DefaultBackgroundColor is the sky blue used when a scene sets none
var DefaultBackgroundColor = core.NewColor(0.2, 0.7, 0.8)

// SolidBackground returns one colour for every direction
type SolidBackground struct {
	Value core.Color
}

// NewSolidBackground creates a solid background
func NewSolidBackground(c core.Color) *SolidBackground {
	return &SolidBackground{Value: c}
}

func (b *SolidBackground) Color(ray core.Ray) core.Color {
	return b.Value
}

// GradientBackground blends from Bottom to Top with the ray's Y direction
type GradientBackground struct {
	Top    core.Color
	Bottom core.Color
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Color) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

func (b *GradientBackground) Color(ray core.Ray) core.Color {
	// Map direction Y from [-1,1] to [0,1]
	t := 0.5 * (ray.Direction.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// TextureBackground looks the ray direction up in an equirectangular
// environment image. Pixels are row-major with row 0 at the top (+Y).
type TextureBackground struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewTextureBackground creates an environment-map background
func NewTextureBackground(width, height int, pixels []core.Color) *TextureBackground {
	return &TextureBackground{Width: width, Height: height, Pixels: pixels}
}

// Color uses nearest-neighbour lookup
func (b *TextureBackground) Color(ray core.Ray) core.Color {
	if b.Width <= 0 || b.Height <= 0 || len(b.Pixels) < b.Width*b.Height {
		return core.Color{}
	}

	d := ray.Direction
	u := 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, d.Y))) / math.Pi

	x := min(max(int(u*float64(b.Width)), 0), b.Width-1)
	y := min(max(int(v*float64(b.Height)), 0), b.Height-1)
	return b.Pixels[y*b.Width+x]
}
