package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_RayToLight(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(1, 1, 1))

	tests := []struct {
		name      string
		point     core.Point
		direction core.Vec3
		length    float64
	}{
		{"Directly below", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10},
		{"Off to the side", core.NewVec3(6, 2, 0), core.NewVec3(-0.6, 0.8, 0), 10},
		{"Above the light", core.NewVec3(0, 13, 0), core.NewVec3(0, -1, 0), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := light.RayToLight(tt.point)
			if ray.Origin != tt.point {
				t.Errorf("Expected origin %v, got %v", tt.point, ray.Origin)
			}
			if !ray.Direction.ApproxEqual(tt.direction, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
			if math.Abs(ray.Length-tt.length) > 1e-12 {
				t.Errorf("Expected length %f, got %f", tt.length, ray.Length)
			}
			if !ray.End().ApproxEqual(light.Center, 1e-9) {
				t.Errorf("Expected ray to end at the light, got %v", ray.End())
			}
		})
	}
}
