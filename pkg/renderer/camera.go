package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera looking down -Z in its own frame. Rays are
// generated in camera space and carried into the world by a 4x4
// camera-to-world matrix (column-vector convention).
type Camera struct {
	CameraToWorld mgl64.Mat4
	AspectRatio   float64
	FOV           float64 // horizontal field of view in degrees

	worldToCamera mgl64.Mat4
	xCorrection   float64 // tan(fov/2)
	yCorrection   float64 // tan(fov/2) / aspect
}

// NewCamera creates a camera from a camera-to-world matrix, an aspect ratio
// (width/height) and a horizontal field of view in degrees.
func NewCamera(cameraToWorld mgl64.Mat4, aspectRatio, fovDegrees float64) (*Camera, error) {
	if aspectRatio <= 0 {
		return nil, fmt.Errorf("aspect ratio must be positive, got %g", aspectRatio)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("field of view must be in (0, 180) degrees, got %g", fovDegrees)
	}
	if math.Abs(cameraToWorld.Det()) < 1e-12 {
		return nil, fmt.Errorf("camera transformation is singular")
	}

	xCorrection := math.Tan(fovDegrees * math.Pi / 360)
	return &Camera{
		CameraToWorld: cameraToWorld,
		AspectRatio:   aspectRatio,
		FOV:           fovDegrees,
		worldToCamera: cameraToWorld.Inv(),
		xCorrection:   xCorrection,
		yCorrection:   xCorrection / aspectRatio,
	}, nil
}

// WithAspectRatio returns a copy of the camera with a new aspect ratio. The
// horizontal field of view is kept.
func (c *Camera) WithAspectRatio(aspectRatio float64) (*Camera, error) {
	return NewCamera(c.CameraToWorld, aspectRatio, c.FOV)
}

// NewCameraFromRows creates a camera from 16 row-major matrix entries, the
// layout scene files use. The translation sits in entries 3, 7 and 11.
func NewCameraFromRows(rows [16]float64, aspectRatio, fovDegrees float64) (*Camera, error) {
	m := mgl64.Mat4FromRows(
		mgl64.Vec4{rows[0], rows[1], rows[2], rows[3]},
		mgl64.Vec4{rows[4], rows[5], rows[6], rows[7]},
		mgl64.Vec4{rows[8], rows[9], rows[10], rows[11]},
		mgl64.Vec4{rows[12], rows[13], rows[14], rows[15]},
	)
	return NewCamera(m, aspectRatio, fovDegrees)
}

// NewLookAtCamera creates a camera at from, looking at to
func NewLookAtCamera(from, to, up core.Point, fovDegrees, aspectRatio float64) (*Camera, error) {
	if from.Subtract(to).LengthSquared() == 0 {
		return nil, fmt.Errorf("camera position and target coincide")
	}
	forward := to.Subtract(from).Normalize()
	if forward.Cross(up.Normalize()).ApproxEqual(core.Vec3{}, core.ParallelEpsilon) {
		return nil, fmt.Errorf("camera up vector must not be zero or parallel to the view direction")
	}
	view := mgl64.LookAtV(toMgl(from), toMgl(to), toMgl(up))
	return NewCamera(view.Inv(), aspectRatio, fovDegrees)
}

// GetRay returns the world-space ray through normalized image coordinates
// (u, v). u runs left to right and v top to bottom, both in [0, 1].
// Coordinates outside that range have no ray.
func (c *Camera) GetRay(u, v float64) (core.Ray, bool) {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return core.Ray{}, false
	}

	x := (2*u - 1) * c.xCorrection
	y := (1 - 2*v) * c.yCorrection

	origin := c.toWorld(core.Vec3{})
	target := c.toWorld(core.NewVec3(x, y, -1))
	return core.NewRay(origin, target.Subtract(origin)), true
}

// Project maps a world point back to image coordinates. ok is false for
// points level with or behind the camera; u and v may fall outside [0, 1]
// for points outside the field of view.
func (c *Camera) Project(p core.Point) (u, v float64, ok bool) {
	local := transformPoint(c.worldToCamera, p)
	if local.Z >= 0 {
		return 0, 0, false
	}
	x := local.X / -local.Z / c.xCorrection
	y := local.Y / -local.Z / c.yCorrection
	return (x + 1) / 2, (1 - y) / 2, true
}

// Position returns the camera centre in world space
func (c *Camera) Position() core.Point {
	return c.toWorld(core.Vec3{})
}

func (c *Camera) toWorld(p core.Point) core.Point {
	return transformPoint(c.CameraToWorld, p)
}

// transformPoint applies m to p in homogeneous coordinates
func transformPoint(m mgl64.Mat4, p core.Point) core.Point {
	r := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return core.NewVec3(r[0]/r[3], r[1]/r[3], r[2]/r[3])
	}
	return core.NewVec3(r[0], r[1], r[2])
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
