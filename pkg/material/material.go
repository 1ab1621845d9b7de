package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong coefficients of a surface together with its
// optical properties. Materials are immutable and shared by pointer between
// models.
type Material struct {
	Ka  core.Color // ambient reflectance
	Kd  core.Color // diffuse reflectance
	Ks  core.Color // specular reflectance
	Krg core.Color // global (mirror) reflection weight
	Ktg core.Color // global transmission weight

	// RefractiveIndex of the medium behind the surface. Negative means opaque.
	RefractiveIndex float64

	// SpecularCoeff is the Phong exponent
	SpecularCoeff float64
}

// NewMaterial creates a material from its Phong and optical coefficients
func NewMaterial(ka, kd, ks, krg, ktg core.Color, refractiveIndex, specularCoeff float64) *Material {
	return &Material{
		Ka:              ka,
		Kd:              kd,
		Ks:              ks,
		Krg:             krg,
		Ktg:             ktg,
		RefractiveIndex: refractiveIndex,
		SpecularCoeff:   specularCoeff,
	}
}

// Default returns a black, opaque material with a unit Phong exponent
func Default() *Material {
	return &Material{RefractiveIndex: -1, SpecularCoeff: 1}
}

// IsRefractive reports whether light can be transmitted through the surface
func (m *Material) IsRefractive() bool {
	return m.RefractiveIndex >= 0
}

// TransmissionIndex returns the refractive index on the far side of the
// surface for a ray travelling along incident. A ray entering the surface
// (incident·normal < 0) passes into the material; a ray leaving it passes
// back into air. Opaque materials have no transmission side.
func (m *Material) TransmissionIndex(incident, normal core.Vec3) (float64, bool) {
	if !m.IsRefractive() {
		return 0, false
	}
	if incident.Dot(normal) < 0 {
		return m.RefractiveIndex, true
	}
	return 1.0, true
}
