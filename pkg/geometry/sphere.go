package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Intersect projects the centre onto the ray and measures the half chord.
// A ray starting inside the sphere takes the far root.
func (s *Sphere) Intersect(ray core.Ray) (float64, Shape, bool) {
	toCenter := s.Center.Subtract(ray.Origin)
	distance := toCenter.Length()
	projection := toCenter.Dot(ray.Direction)

	// Outside and facing away
	if distance > s.Radius && projection <= 0 {
		return 0, nil, false
	}

	perpSquared := distance*distance - projection*projection
	radiusSquared := s.Radius * s.Radius
	if perpSquared > radiusSquared {
		return 0, nil, false
	}

	halfChord := math.Sqrt(radiusSquared - perpSquared)
	t := projection - halfChord
	if t < 0 {
		t = projection + halfChord
	}
	if t < 0 {
		return 0, nil, false
	}
	return t, s, true
}

// IsOnSurface reports whether p is within SurfaceEpsilon of the sphere
func (s *Sphere) IsOnSurface(p core.Point) bool {
	return math.Abs(p.Subtract(s.Center).Length()-s.Radius) <= core.SurfaceEpsilon
}

// Normal returns the outward normal at p
func (s *Sphere) Normal(p core.Point) (core.Ray, bool) {
	if !s.IsOnSurface(p) {
		return core.Ray{}, false
	}
	return core.NewRay(p, p.Subtract(s.Center)), true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (AABB, bool) {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Subtract(radius), s.Center.Add(radius)), true
}
