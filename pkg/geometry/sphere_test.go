package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits sphere head on",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 4.0,
		},
		{
			name:      "Ray misses sphere",
			ray:       core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray points away from sphere",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray from inside takes far side",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Unnormalized direction still reports unit distance",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -10)),
			shouldHit: true,
			expectedT: 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, part, hit := sphere.Intersect(tt.ray)
			if hit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, hit)
			}
			if !hit {
				return
			}
			if math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, dist)
			}
			if part != Shape(sphere) {
				t.Errorf("Expected the sphere itself as the hit part")
			}
		})
	}
}

func TestSphere_NormalIsOutward(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	sphere := NewSphere(center, 2)

	points := []core.Point{
		core.NewVec3(3, 2, 3),
		core.NewVec3(1, 0, 3),
		center.Add(core.NewVec3(1, 1, 1).Normalize().Multiply(2)),
	}
	for _, p := range points {
		normal, ok := sphere.Normal(p)
		if !ok {
			t.Fatalf("Expected normal at %v", p)
		}
		if normal.Direction.Dot(p.Subtract(center)) <= 0 {
			t.Errorf("Expected outward normal at %v, got %v", p, normal.Direction)
		}
		if math.Abs(normal.Direction.Length()-1) > 1e-9 {
			t.Errorf("Expected unit normal, got length %f", normal.Direction.Length())
		}
		if normal.Origin != p {
			t.Errorf("Expected normal anchored at %v, got %v", p, normal.Origin)
		}
	}

	if _, ok := sphere.Normal(center); ok {
		t.Error("Expected no normal at the centre")
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5)
	box, ok := sphere.BoundingBox()
	if !ok {
		t.Fatal("Expected sphere to be bounded")
	}
	if box.Min != core.NewVec3(0.5, 1.5, 2.5) || box.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Expected [0.5,1.5,2.5]-[1.5,2.5,3.5], got %v-%v", box.Min, box.Max)
	}
}
