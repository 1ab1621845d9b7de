package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is an isotropic point source with no falloff
type PointLight struct {
	Center    core.Point
	Intensity core.Color
}

// NewPointLight creates a point light
func NewPointLight(center core.Point, intensity core.Color) *PointLight {
	return &PointLight{Center: center, Intensity: intensity}
}

// RayToLight returns the shadow ray from p to the light. Its Length is the
// distance to the light, so any hit closer than that occludes it.
func (l *PointLight) RayToLight(p core.Point) core.Ray {
	return core.NewRay(p, l.Center.Subtract(p))
}
