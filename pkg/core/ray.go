package core

// Ray represents a ray with an origin and a unit direction.
//
// Length keeps the magnitude of the direction vector the ray was built from,
// so a ray from a point towards a light doubles as the segment to that light.
type Ray struct {
	Origin    Point
	Direction Vec3
	Length    float64
}

// NewRay creates a ray from origin along direction. The direction is
// normalized and its original magnitude is stored in Length.
func NewRay(origin Point, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		Length:    direction.Length(),
	}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// End returns the point Length units along the ray
func (r Ray) End() Point {
	return r.At(r.Length)
}
