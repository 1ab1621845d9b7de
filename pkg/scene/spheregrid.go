package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a scene with a gridSize x gridSize grid of
// shiny spheres coloured by position
func NewSphereGridScene(gridSize int) *Scene {
	s := NewScene(mustCamera(
		core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		50, 16.0/9.0,
	))
	s.Config.Width = 800
	s.Config.Height = 450
	s.Background = NewSkyBackground()

	// A bright sun-like light, high and to the side
	s.AddLight(core.NewVec3(20, 25, 20), core.NewColor(0.9, 0.88, 0.85))

	ground := material.NewMaterial(
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.5, 0.5, 0.5), core.Color{},
		core.NewColor(0.15, 0.15, 0.15), core.Color{}, -1, 1)
	s.AddModel("ground", geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), ground)

	// Fit the grid into a 9x9 area around the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(max(gridSize-1, 1))
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05 // Near gray
	maxChroma := 0.25 // Vivid

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across X, chroma across Z
			hue := float64(i) / float64(max(gridSize-1, 1)) * 360.0
			chroma := minChroma + float64(j)/float64(max(gridSize-1, 1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			// Alternate between glossy and mirror-like finishes
			mirror := 0.1 + 0.3*float64((i+j)%3)/2.0
			mat := material.NewMaterial(
				color.Multiply(0.2), color, core.NewColor(0.6, 0.6, 0.6),
				core.NewColor(mirror, mirror, mirror), core.Color{}, -1, 50)

			s.AddModel("grid sphere", geometry.NewSphere(core.NewVec3(x, sphereRadius, z), sphereRadius), mat)
		}
	}

	return s
}
