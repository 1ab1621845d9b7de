package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box with polygon walls, a
// rotated block and a glass sphere lit by a single point light
func NewCornellScene() *Scene {
	s := NewScene(mustCamera(
		core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		core.NewVec3(278, 278, 0),    // Look at the center of the box
		40, 1.0,
	))
	s.Config.Width = 400
	s.Config.Height = 400
	s.Ambient = core.NewColor(0.1, 0.1, 0.1)
	s.Background = renderer.NewSolidBackground(core.Color{}) // Black outside the box

	s.AddLight(core.NewVec3(278, 540, 278), core.NewColor(0.9, 0.9, 0.85))

	white := matte(core.NewColor(0.73, 0.73, 0.73))
	red := matte(core.NewColor(0.65, 0.05, 0.05))
	green := matte(core.NewColor(0.12, 0.45, 0.15))

	n := cornellBoxSize
	walls := []struct {
		name    string
		corners [4]core.Point
		mat     *material.Material
	}{
		{"floor", [4]core.Point{{}, {Z: n}, {X: n, Z: n}, {X: n}}, white},
		{"ceiling", [4]core.Point{{Y: n}, {X: n, Y: n}, {X: n, Y: n, Z: n}, {Y: n, Z: n}}, white},
		{"back wall", [4]core.Point{{Z: n}, {Y: n, Z: n}, {X: n, Y: n, Z: n}, {X: n, Z: n}}, white},
		{"left wall", [4]core.Point{{X: n}, {X: n, Z: n}, {X: n, Y: n, Z: n}, {X: n, Y: n}}, red},
		{"right wall", [4]core.Point{{}, {Y: n}, {Y: n, Z: n}, {Z: n}}, green},
	}
	for _, wall := range walls {
		s.AddModel(wall.name, mustPolygon(wall.corners[:]), wall.mat)
	}

	// Tall block turned 15 degrees about the vertical axis
	angle := 15 * math.Pi / 180
	xAxis := core.NewVec3(math.Cos(angle), 0, math.Sin(angle))
	block := geometry.NewBox(core.NewVec3(368, 165, 351), xAxis, core.NewVec3(0, 1, 0), 165, 165, 330)
	s.AddModel("tall block", block, white)

	glass := material.NewMaterial(
		core.Color{}, core.Color{}, core.NewColor(0.7, 0.7, 0.7),
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.9, 0.9, 0.9), 1.5, 150)
	s.AddModel("glass sphere", geometry.NewSphere(core.NewVec3(185, 90, 170), 90), glass)

	return s
}

func mustPolygon(points []core.Point) *geometry.Polygon {
	poly, err := geometry.NewPolygon(points)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in polygon: %v", err))
	}
	return poly
}

// matte returns a diffuse material whose ambient response follows its colour
func matte(kd core.Color) *material.Material {
	return material.NewMaterial(kd.Multiply(0.3), kd, core.Color{}, core.Color{}, core.Color{}, -1, 1)
}
