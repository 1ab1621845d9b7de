package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is an infinite plane through Point with unit normal N
type Plane struct {
	Point core.Point
	N     core.Vec3
}

// NewPlane creates a plane through point facing along normal. The normal
// does not need to be unit length.
func NewPlane(point core.Point, normal core.Vec3) *Plane {
	return &Plane{Point: point, N: normal.Normalize()}
}

// Intersect returns the distance to the plane. Rays within ParallelEpsilon
// of parallel never hit, and neither do planes behind the origin.
func (p *Plane) Intersect(ray core.Ray) (float64, Shape, bool) {
	cosTheta := ray.Direction.Dot(p.N)
	if math.Abs(cosTheta) <= core.ParallelEpsilon {
		return 0, nil, false
	}
	t := p.Point.Subtract(ray.Origin).Dot(p.N) / cosTheta
	if t < 0 {
		return 0, nil, false
	}
	return t, p, true
}

// IsOnSurface reports whether q is within SurfaceEpsilon of the plane
func (p *Plane) IsOnSurface(q core.Point) bool {
	return math.Abs(p.Point.Subtract(q).Dot(p.N)) <= core.SurfaceEpsilon
}

// Normal returns the plane normal anchored at q
func (p *Plane) Normal(q core.Point) (core.Ray, bool) {
	if !p.IsOnSurface(q) {
		return core.Ray{}, false
	}
	return core.Ray{Origin: q, Direction: p.N, Length: 1}, true
}

// BoundingBox reports the plane as unbounded
func (p *Plane) BoundingBox() (AABB, bool) {
	return AABB{}, false
}
