package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestBox_HasTwelveOutwardFaces(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	box := NewBox(center, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 2, 3, 4)

	if box.Faces().Len() != 12 {
		t.Fatalf("Expected 12 triangles, got %d", box.Faces().Len())
	}
	for i, part := range box.Faces().Parts {
		tri := part.(*Triangle)
		centroid := tri.V0.Add(tri.V1).Add(tri.V2).Multiply(1.0 / 3.0)
		if tri.FaceNormal().Dot(centroid.Subtract(center)) <= 0 {
			t.Errorf("Face %d normal %v points inward", i, tri.FaceNormal())
		}
	}
}

func TestBox_Intersect(t *testing.T) {
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 2, 1, 4)

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		// breadth runs along z = x cross y
		{"Front face", core.NewRay(core.NewVec3(0.1, 0.2, 5), core.NewVec3(0, 0, -1)), true, 4.5, core.NewVec3(0, 0, 1)},
		{"Back face", core.NewRay(core.NewVec3(0.1, 0.2, -5), core.NewVec3(0, 0, 1)), true, 4.5, core.NewVec3(0, 0, -1)},
		{"Top face", core.NewRay(core.NewVec3(0.3, 10, 0.1), core.NewVec3(0, -1, 0)), true, 8, core.NewVec3(0, 1, 0)},
		{"Right face", core.NewRay(core.NewVec3(5, 0.3, 0.1), core.NewVec3(-1, 0, 0)), true, 4, core.NewVec3(1, 0, 0)},
		{"Miss", core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1)), false, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, part, ok := box.Intersect(tt.ray)
			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, dist)
			}
			if _, isTriangle := part.(*Triangle); !isTriangle {
				t.Errorf("Expected a triangle as hit part, got %T", part)
			}

			normal, ok := box.Normal(tt.ray.At(dist))
			if !ok {
				t.Fatal("Expected normal at hit point")
			}
			if !normal.Direction.ApproxEqual(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, normal.Direction)
			}
		})
	}
}

func TestBox_RotatedAxes(t *testing.T) {
	// Rotated 45 degrees about y; the x hint need not be unit length
	box := NewBox(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 2), core.NewVec3(0, 1, 0), 2, 2, 2)

	// Along the rotated length axis the face is 1 unit from the centre
	dir := core.NewVec3(-1, 0, -1)
	origin := core.NewVec3(5, 0, 5)
	dist, _, ok := box.Intersect(core.NewRay(origin, dir))
	if !ok {
		t.Fatal("Expected hit along rotated axis")
	}
	expected := origin.Length() - 1
	if math.Abs(dist-expected) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expected, dist)
	}
}
