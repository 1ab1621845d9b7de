package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPolygon_IsOnSurface(t *testing.T) {
	// L-shaped hexagon in the XY plane, counter-clockwise
	poly, err := NewPolygon([]core.Point{
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(2, 1, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(1, 2, 0),
		core.NewVec3(0, 2, 0),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		point    core.Point
		expected bool
	}{
		{"Inside lower arm", core.NewVec3(1.5, 0.4, 0), true},
		{"Inside upper arm", core.NewVec3(0.5, 1.5, 0), true},
		{"Inside corner", core.NewVec3(0.5, 0.5, 0), true},
		{"Near reference point", core.NewVec3(1, 0.0005, 0), true},
		{"In the notch", core.NewVec3(1.5, 1.5, 0), false},
		{"Outside", core.NewVec3(3, 0.5, 0), false},
		{"Off the plane", core.NewVec3(0.5, 0.5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := poly.IsOnSurface(tt.point); result != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, result)
			}
		})
	}
}

func TestPolygon_IntersectAndNormal(t *testing.T) {
	square, err := NewPolygon([]core.Point{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(-1, 0, 1),
		core.NewVec3(1, 0, 1),
		core.NewVec3(1, 0, -1),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	dist, part, ok := square.Intersect(core.NewRay(core.NewVec3(0.3, 2, 0.3), core.NewVec3(0, -1, 0)))
	if !ok {
		t.Fatal("Expected ray to hit the square")
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", dist)
	}
	if part != Shape(square) {
		t.Error("Expected the polygon as hit part")
	}

	normal, ok := square.Normal(core.NewVec3(0.3, 0, 0.3))
	if !ok {
		t.Fatal("Expected normal on the square")
	}
	if !normal.Direction.ApproxEqual(core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected normal (0,1,0), got %v", normal.Direction)
	}

	if _, _, ok := square.Intersect(core.NewRay(core.NewVec3(3, 2, 0), core.NewVec3(0, -1, 0))); ok {
		t.Error("Expected ray outside the outline to miss")
	}
}

func TestPolygon_RejectsOffPlaneVertices(t *testing.T) {
	poly, err := NewPolygon([]core.Point{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0.5, 1.5, 2),
		core.NewVec3(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if poly.Rejected() != 1 {
		t.Errorf("Expected 1 rejected vertex, got %d", poly.Rejected())
	}
	// Four kept vertices plus the closing repeat of the first
	if len(poly.Vertices) != 5 {
		t.Errorf("Expected 5 outline vertices, got %d", len(poly.Vertices))
	}
	if poly.Vertices[len(poly.Vertices)-1] != poly.Vertices[0] {
		t.Error("Expected outline to be closed")
	}
}

func TestPolygon_TooFewVertices(t *testing.T) {
	if _, err := NewPolygon([]core.Point{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)}); err == nil {
		t.Error("Expected error for fewer than 3 vertices")
	}
}
