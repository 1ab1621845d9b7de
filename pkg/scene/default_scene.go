package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewSkyBackground returns the blue-to-white sky used by the outdoor scenes
func NewSkyBackground() renderer.Background {
	return renderer.NewGradientBackground(
		core.NewColor(0.5, 0.7, 1.0), // Light blue
		core.NewColor(1.0, 1.0, 1.0), // White horizon
	)
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	s := NewScene(mustCamera(
		core.NewVec3(0, 0.75, 2.5), // Position camera higher and farther back
		core.NewVec3(0, 0.5, -1),   // Look at the sphere center
		60, 16.0/9.0,
	))
	s.Config.Width = 640
	s.Config.Height = 360
	s.Background = NewSkyBackground()

	s.AddLight(core.NewVec3(5, 8, 5), core.NewColor(0.8, 0.8, 0.8))
	s.AddLight(core.NewVec3(-4, 6, 2), core.NewColor(0.3, 0.3, 0.3))

	// Create materials
	ground := material.NewMaterial(
		core.NewColor(0.1, 0.1, 0.02), core.NewColor(0.48, 0.48, 0.1), core.Color{},
		core.NewColor(0.05, 0.05, 0.05), core.Color{}, -1, 1)
	red := material.NewMaterial(
		core.NewColor(0.13, 0.05, 0.04), core.NewColor(0.65, 0.25, 0.2), core.NewColor(0.5, 0.5, 0.5),
		core.Color{}, core.Color{}, -1, 32)
	silver := material.NewMaterial(
		core.NewColor(0.05, 0.05, 0.05), core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.8, 0.8, 0.8),
		core.NewColor(0.8, 0.8, 0.8), core.Color{}, -1, 200)
	gold := material.NewMaterial(
		core.NewColor(0.08, 0.06, 0.02), core.NewColor(0.4, 0.3, 0.1), core.NewColor(0.8, 0.6, 0.2),
		core.NewColor(0.5, 0.4, 0.15), core.Color{}, -1, 60)
	glass := material.NewMaterial(
		core.Color{}, core.Color{}, core.NewColor(0.6, 0.6, 0.6),
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.9, 0.9, 0.9), 1.5, 120)
	blue := material.NewMaterial(
		core.NewColor(0.02, 0.04, 0.1), core.NewColor(0.1, 0.2, 0.5), core.NewColor(0.3, 0.3, 0.3),
		core.Color{}, core.Color{}, -1, 16)

	s.AddModel("ground", geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), ground)
	s.AddModel("center sphere", geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), red)
	s.AddModel("left sphere", geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), silver)
	s.AddModel("right sphere", geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), gold)
	s.AddModel("glass sphere", geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25), glass)

	// Blue sphere seen through a glass shell
	s.AddModel("glass shell", geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25), glass)
	s.AddModel("blue core", geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.15), blue)

	return s
}
