package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices. The
// outward normal follows the right-hand rule over V0, V1, V2.
type Triangle struct {
	V0, V1, V2 core.Point
	plane      Plane
	area       float64
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point) *Triangle {
	return &Triangle{
		V0:    v0,
		V1:    v1,
		V2:    v2,
		plane: *NewPlane(v0, v0.Subtract(v1).Cross(v0.Subtract(v2))),
		area:  triangleArea(v0, v1, v2),
	}
}

func triangleArea(a, b, c core.Point) float64 {
	return a.Subtract(b).Cross(a.Subtract(c)).Length() / 2
}

// Intersect hits the supporting plane and keeps the hit if it falls inside
// the triangle.
func (t *Triangle) Intersect(ray core.Ray) (float64, Shape, bool) {
	dist, _, ok := t.plane.Intersect(ray)
	if !ok || !t.IsOnSurface(ray.At(dist)) {
		return 0, nil, false
	}
	return dist, t, true
}

// IsOnSurface uses the area test: p is inside when the three sub-triangles it
// forms with the edges add up to the triangle's own area.
func (t *Triangle) IsOnSurface(p core.Point) bool {
	sum := triangleArea(t.V0, t.V1, p) + triangleArea(t.V0, t.V2, p) + triangleArea(t.V1, t.V2, p)
	diff := sum - t.area
	return diff <= core.SurfaceEpsilon && diff >= -core.SurfaceEpsilon
}

// Normal returns the triangle's normal anchored at p
func (t *Triangle) Normal(p core.Point) (core.Ray, bool) {
	if !t.IsOnSurface(p) {
		return core.Ray{}, false
	}
	return core.Ray{Origin: p, Direction: t.plane.N, Length: 1}, true
}

// BoundingBox returns the bounds of the three vertices
func (t *Triangle) BoundingBox() (AABB, bool) {
	return NewAABBFromPoints(t.V0, t.V1, t.V2), true
}

// FaceNormal returns the unit normal of the triangle
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.plane.N
}
