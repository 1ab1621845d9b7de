package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCamera_GetRay(t *testing.T) {
	camera, err := NewCamera(mgl64.Ident4(), 2.0, 90)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		u, v      float64
		direction core.Vec3
	}{
		{"Centre", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Top right", 1, 0, core.NewVec3(1, 0.5, -1).Normalize()},
		{"Bottom left", 0, 1, core.NewVec3(-1, -0.5, -1).Normalize()},
		{"Right edge", 1, 0.5, core.NewVec3(1, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, ok := camera.GetRay(tt.u, tt.v)
			if !ok {
				t.Fatal("Expected a ray")
			}
			if !ray.Origin.ApproxEqual(core.Vec3{}, 1e-12) {
				t.Errorf("Expected origin at camera centre, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEqual(tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_OutOfRange(t *testing.T) {
	camera, err := NewCamera(mgl64.Ident4(), 1.0, 60)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	coords := [][2]float64{{-0.01, 0.5}, {0.5, -0.01}, {1.01, 0.5}, {0.5, 1.01}}
	for _, c := range coords {
		if _, ok := camera.GetRay(c[0], c[1]); ok {
			t.Errorf("Expected no ray for (%f, %f)", c[0], c[1])
		}
	}
	for _, c := range [][2]float64{{0, 0}, {1, 1}} {
		if _, ok := camera.GetRay(c[0], c[1]); !ok {
			t.Errorf("Expected a ray for boundary (%f, %f)", c[0], c[1])
		}
	}
}

func TestCamera_FromRowsTranslation(t *testing.T) {
	camera, err := NewCameraFromRows([16]float64{
		1, 0, 0, 1,
		0, 1, 0, 2,
		0, 0, 1, 5,
		0, 0, 0, 1,
	}, 1.0, 60)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray, _ := camera.GetRay(0.5, 0.5)
	if !ray.Origin.ApproxEqual(core.NewVec3(1, 2, 5), 1e-12) {
		t.Errorf("Expected origin (1,2,5), got %v", ray.Origin)
	}
	if !ray.Direction.ApproxEqual(core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected direction (0,0,-1), got %v", ray.Direction)
	}
}

func TestNewLookAtCamera(t *testing.T) {
	camera, err := NewLookAtCamera(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 90, 1.0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray, _ := camera.GetRay(0.5, 0.5)
	if !ray.Origin.ApproxEqual(core.NewVec3(5, 0, 0), 1e-9) {
		t.Errorf("Expected origin (5,0,0), got %v", ray.Origin)
	}
	if !ray.Direction.ApproxEqual(core.NewVec3(-1, 0, 0), 1e-9) {
		t.Errorf("Expected direction (-1,0,0), got %v", ray.Direction)
	}

	// Looking down -X with +Y up puts -Z on the right of the image
	ray, _ = camera.GetRay(1, 0.5)
	expected := core.NewVec3(-1, 0, -1).Normalize()
	if !ray.Direction.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected right edge direction %v, got %v", expected, ray.Direction)
	}
}

func TestNewLookAtCamera_InvalidUp(t *testing.T) {
	tests := []struct {
		name string
		to   core.Point
		up   core.Vec3
	}{
		{"Looking straight down", core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)},
		{"Looking straight up", core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0)},
		{"Zero up", core.NewVec3(0, 0, -5), core.Vec3{}},
		{"Target coincides", core.Vec3{}, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLookAtCamera(core.Vec3{}, tt.to, tt.up, 60, 1); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestCamera_ProjectInvertsGetRay(t *testing.T) {
	camera, err := NewLookAtCamera(core.NewVec3(1, 2, 6), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 50, 1.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, uv := range [][2]float64{{0.5, 0.5}, {0.1, 0.8}, {0.9, 0.2}} {
		ray, _ := camera.GetRay(uv[0], uv[1])
		u, v, ok := camera.Project(ray.At(7))
		if !ok {
			t.Fatalf("Expected point in front of camera to project")
		}
		if math.Abs(u-uv[0]) > 1e-9 || math.Abs(v-uv[1]) > 1e-9 {
			t.Errorf("Expected (%f, %f), got (%f, %f)", uv[0], uv[1], u, v)
		}
	}

	behind := camera.Position().Add(camera.Position().Normalize())
	if _, _, ok := camera.Project(behind); ok {
		t.Error("Expected point behind the camera not to project")
	}
}

func TestNewCamera_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		m    mgl64.Mat4
		ar   float64
		fov  float64
	}{
		{"Zero aspect", mgl64.Ident4(), 0, 60},
		{"Zero fov", mgl64.Ident4(), 1, 0},
		{"Straight angle fov", mgl64.Ident4(), 1, 180},
		{"Singular matrix", mgl64.Mat4{}, 1, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCamera(tt.m, tt.ar, tt.fov); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
