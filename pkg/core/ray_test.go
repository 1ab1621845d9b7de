package core

import (
	"math"
	"testing"
)

func TestNewRay_NormalizesDirectionAndKeepsLength(t *testing.T) {
	tests := []struct {
		name      string
		direction Vec3
		length    float64
	}{
		{"unit direction", NewVec3(0, 0, -1), 1},
		{"long direction", NewVec3(0, 3, 4), 5},
		{"short direction", NewVec3(0.001, 0, 0), 0.001},
		{"oblique direction", NewVec3(1, 2, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(NewVec3(1, 2, 3), tt.direction)

			if math.Abs(ray.Direction.Length()-1) > 1e-9 {
				t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
			}
			if math.Abs(ray.Length-tt.length) > 1e-9 {
				t.Errorf("Expected length %f, got %f", tt.length, ray.Length)
			}
		})
	}
}

func TestRay_AtAndEnd(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -4))

	if p := ray.At(2); !p.ApproxEqual(NewVec3(0, 0, -2), 1e-12) {
		t.Errorf("Expected (0,0,-2), got %v", p)
	}
	if p := ray.End(); !p.ApproxEqual(NewVec3(0, 0, -4), 1e-12) {
		t.Errorf("Expected (0,0,-4), got %v", p)
	}
}
