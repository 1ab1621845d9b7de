package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestQuadric_Intersect(t *testing.T) {
	unitSphere := NewQuadric(QuadricCoefficients{A: 1, E: 1, H: 1, J: -1})
	cylinder := NewQuadric(QuadricCoefficients{A: 1, E: 1, J: -1})
	// 2·D·x + J = 0 with D=0.5, J=-1 is the plane x=1
	plane := NewQuadric(QuadricCoefficients{D: 0.5, J: -1})

	tests := []struct {
		name      string
		quadric   *Quadric
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{"Unit sphere head on", unitSphere, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), true, 4},
		{"Unit sphere miss", unitSphere, core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1)), false, 0},
		{"Unit sphere behind", unitSphere, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), false, 0},
		{"Unit sphere from inside", unitSphere, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), true, 1},
		{"Cylinder side", cylinder, core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)), true, 4},
		{"Cylinder along axis", cylinder, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), false, 0},
		{"Linear plane", plane, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), true, 1},
		{"Linear plane behind", plane, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(-1, 0, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, _, hit := tt.quadric.Intersect(tt.ray)
			if hit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t (t=%f)", tt.shouldHit, hit, dist)
			}
			if hit && math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, dist)
			}
		})
	}
}

func TestQuadric_NormalIsGradient(t *testing.T) {
	unitSphere := NewQuadric(QuadricCoefficients{A: 1, E: 1, H: 1, J: -1})

	p := core.NewVec3(0, 1, 1).Normalize()
	normal, ok := unitSphere.Normal(p)
	if !ok {
		t.Fatal("Expected normal on the surface")
	}
	if !normal.Direction.ApproxEqual(p, 1e-9) {
		t.Errorf("Expected normal %v, got %v", p, normal.Direction)
	}

	if unitSphere.IsOnSurface(core.NewVec3(0, 0, 1.1)) {
		t.Error("Expected point outside tolerance to be off the surface")
	}
	// |pᵀMp| = 0.002 is inside the wider quadric tolerance
	if !unitSphere.IsOnSurface(core.NewVec3(0, 0, 1.001)) {
		t.Error("Expected point within tolerance to be on the surface")
	}
}
