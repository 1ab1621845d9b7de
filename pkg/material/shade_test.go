package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestShade_DiffuseAndSpecular(t *testing.T) {
	m := &Material{
		Kd:            core.NewColor(0.5, 0.25, 0),
		Ks:            core.NewColor(0.1, 0.1, 0.1),
		SpecularCoeff: 8,
	}
	normal := core.NewVec3(0, 1, 0)
	lights := []LightSample{{Intensity: core.NewColor(1, 1, 1), Direction: normal}}

	// Light and viewer both straight above: cos(theta) = cos(alpha) = 1
	result := m.Shade(normal, normal, lights, nil, nil, nil)
	expected := core.NewColor(0.6, 0.35, 0.1)
	if !result.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestShade_LambertCosine(t *testing.T) {
	m := &Material{Kd: core.NewColor(1, 1, 1), SpecularCoeff: 1}
	normal := core.NewVec3(0, 1, 0)
	lightDir := core.NewVec3(1, 1, 0).Normalize()
	lights := []LightSample{{Intensity: core.NewColor(2, 2, 2), Direction: lightDir}}

	// Viewer placed off the mirror lobe so only the diffuse term remains
	view := core.NewVec3(1, 1, 0).Normalize()
	result := m.Shade(normal, view, lights, nil, nil, nil)

	expected := 2 * math.Cos(math.Pi/4)
	if math.Abs(result.X-expected) > 1e-9 {
		t.Errorf("Expected %f, got %f", expected, result.X)
	}
}

func TestShade_SkipsLightsBelowHorizon(t *testing.T) {
	m := &Material{Kd: core.NewColor(1, 1, 1), Ks: core.NewColor(1, 1, 1), SpecularCoeff: 1}
	normal := core.NewVec3(0, 1, 0)
	lights := []LightSample{{Intensity: core.NewColor(1, 1, 1), Direction: core.NewVec3(0, -1, 0)}}

	result := m.Shade(normal, normal, lights, nil, nil, nil)
	if !result.IsZero() {
		t.Errorf("Expected black for light behind the surface, got %v", result)
	}
}

func TestShade_FlipsNormalTowardViewer(t *testing.T) {
	m := &Material{Kd: core.NewColor(1, 1, 1), SpecularCoeff: 1}
	up := core.NewVec3(0, 1, 0)
	lights := []LightSample{{Intensity: core.NewColor(1, 1, 1), Direction: up}}

	// Normal points away from the viewer and the light, the point is seen from above
	result := m.Shade(up.Negate(), up, lights, nil, nil, nil)
	if math.Abs(result.X-1) > 1e-9 {
		t.Errorf("Expected flipped normal to receive light, got %v", result)
	}
}

func TestShade_GlobalTerms(t *testing.T) {
	m := &Material{
		Ka:            core.NewColor(0.1, 0, 0),
		Krg:           core.NewColor(0, 0.5, 0),
		Ktg:           core.NewColor(0, 0, 0.25),
		SpecularCoeff: 1,
	}
	normal := core.NewVec3(0, 1, 0)
	ambient := core.NewColor(1, 1, 1)
	reflected := core.NewColor(1, 1, 1)
	refracted := core.NewColor(1, 1, 1)

	tests := []struct {
		name      string
		ambient   *core.Color
		reflected *core.Color
		refracted *core.Color
		expected  core.Color
	}{
		{"none", nil, nil, nil, core.NewColor(0, 0, 0)},
		{"ambient only", &ambient, nil, nil, core.NewColor(0.1, 0, 0)},
		{"all", &ambient, &reflected, &refracted, core.NewColor(0.1, 0.5, 0.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Shade(normal, normal, nil, tt.ambient, tt.reflected, tt.refracted)
			if !result.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
