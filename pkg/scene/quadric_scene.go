package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Canonical quadrics centred on the origin. Scenes size and place them
// through model transformations.
var (
	// UnitSphereQuadric is x² + y² + z² = 1
	UnitSphereQuadric = geometry.QuadricCoefficients{A: 1, E: 1, H: 1, J: -1}
	// UnitCylinderQuadric is x² + z² = 1, open along Y
	UnitCylinderQuadric = geometry.QuadricCoefficients{A: 1, H: 1, J: -1}
	// UnitConeQuadric is x² + z² = y², a double cone along Y
	UnitConeQuadric = geometry.QuadricCoefficients{A: 1, E: -1, H: 1}
	// HyperboloidQuadric is x² + z² - y² = 1, one sheet
	HyperboloidQuadric = geometry.QuadricCoefficients{A: 1, E: -1, H: 1, J: -1}
)

// NewQuadricScene creates a scene of quadric surfaces: an ellipsoid made
// by non-uniformly scaling a sphere, a cylinder, a cone and a hyperboloid
func NewQuadricScene() *Scene {
	s := NewScene(mustCamera(core.NewVec3(0, 1.5, 6), core.NewVec3(0, 1, 0), 60, 16.0/9.0))
	s.Config.Width = 640
	s.Config.Height = 360
	s.Background = NewSkyBackground()

	s.AddLight(core.NewVec3(3, 6, 4), core.NewColor(0.8, 0.8, 0.8))
	s.AddLight(core.NewVec3(-4, 3, 3), core.NewColor(0.25, 0.25, 0.3))

	gray := material.NewMaterial(
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.5, 0.5, 0.5), core.Color{},
		core.NewColor(0.2, 0.2, 0.2), core.Color{}, -1, 1)
	red := material.NewMaterial(
		core.NewColor(0.15, 0.03, 0.03), core.NewColor(0.8, 0.2, 0.2), core.NewColor(0.5, 0.5, 0.5),
		core.Color{}, core.Color{}, -1, 30)
	blue := material.NewMaterial(
		core.NewColor(0.03, 0.03, 0.15), core.NewColor(0.2, 0.2, 0.8), core.NewColor(0.4, 0.4, 0.4),
		core.Color{}, core.Color{}, -1, 20)
	green := material.NewMaterial(
		core.NewColor(0.03, 0.15, 0.03), core.NewColor(0.2, 0.7, 0.2), core.NewColor(0.4, 0.4, 0.4),
		core.NewColor(0.1, 0.1, 0.1), core.Color{}, -1, 20)
	glass := material.NewMaterial(
		core.Color{}, core.Color{}, core.NewColor(0.6, 0.6, 0.6),
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.85, 0.85, 0.85), 1.5, 100)

	s.AddModel("ground", geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), gray)

	// Sphere stretched into a 1.2 x 0.6 x 0.6 ellipsoid resting on the ground
	s.AddTransformedModel("ellipsoid", geometry.NewQuadric(UnitSphereQuadric), red,
		mustTransform(core.NewScaleTranslate(core.NewVec3(1.2, 0.6, 0.6), core.NewVec3(-2.2, 0.6, -0.5))))

	// Thin glass cylinder, infinite along Y
	s.AddTransformedModel("cylinder", geometry.NewQuadric(UnitCylinderQuadric), glass,
		mustTransform(core.NewScaleTranslate(core.NewVec3(0.4, 1, 0.4), core.NewVec3(0, 0, 0.5))))

	// Cone with its apex hanging above the ground
	s.AddTransformedModel("cone", geometry.NewQuadric(UnitConeQuadric), blue,
		mustTransform(core.NewScaleTranslate(core.NewVec3(0.5, 1, 0.5), core.NewVec3(2.2, 1.5, -1))))

	s.AddTransformedModel("hyperboloid", geometry.NewQuadric(HyperboloidQuadric), green,
		mustTransform(core.NewScaleTranslate(core.NewVec3(0.3, 0.6, 0.3), core.NewVec3(0.9, 1, -3))))

	return s
}
