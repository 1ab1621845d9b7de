package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LightSample is an unoccluded light as seen from a shading point.
// Direction points from the point towards the light.
type LightSample struct {
	Intensity core.Color
	Direction core.Vec3
}

// Shade evaluates the Phong model at a surface point. view points away from
// the surface towards the viewer. ambient, reflected and refracted are
// optional and only contribute when non-nil.
func (m *Material) Shade(normal, view core.Vec3, lights []LightSample, ambient, reflected, refracted *core.Color) core.Color {
	if view.Dot(normal) < 0 {
		normal = normal.Negate()
	}

	color := core.Color{}
	for _, light := range lights {
		cosTheta := light.Direction.Dot(normal)
		if cosTheta < 0 {
			continue
		}
		color = color.Add(m.Kd.MultiplyVec(light.Intensity).Multiply(cosTheta))

		mirrored := normal.Multiply(2 * cosTheta).Subtract(light.Direction)
		if cosAlpha := mirrored.Dot(view); cosAlpha > 0 {
			color = color.Add(m.Ks.MultiplyVec(light.Intensity).Multiply(math.Pow(cosAlpha, m.SpecularCoeff)))
		}
	}

	if ambient != nil {
		color = color.Add(m.Ka.MultiplyVec(*ambient))
	}
	if reflected != nil {
		color = color.Add(m.Krg.MultiplyVec(*reflected))
	}
	if refracted != nil {
		color = color.Add(m.Ktg.MultiplyVec(*refracted))
	}
	return color
}
