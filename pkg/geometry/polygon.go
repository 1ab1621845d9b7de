package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Polygon is a planar polygon with counter-clockwise vertices. The first
// three vertices fix the plane; later vertices that do not lie in it are
// dropped.
type Polygon struct {
	// Vertices is the closed outline: the first vertex is repeated at the end
	Vertices []core.Point
	plane    *Plane
	rejected int
}

// NewPolygon creates a polygon from at least three vertices
func NewPolygon(points []core.Point) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(points))
	}

	p0, p1, p2 := points[0], points[1], points[2]
	poly := &Polygon{
		Vertices: []core.Point{p0, p1, p2},
		plane:    NewPlane(p0, p0.Subtract(p1).Cross(p0.Subtract(p2))),
	}
	for _, p := range points[3:] {
		if !poly.plane.IsOnSurface(p) {
			poly.rejected++
			continue
		}
		poly.Vertices = append(poly.Vertices, p)
	}
	poly.Vertices = append(poly.Vertices, p0)
	return poly, nil
}

// Rejected returns how many input vertices were dropped for lying off the plane
func (p *Polygon) Rejected() int {
	return p.rejected
}

// Intersect hits the supporting plane and keeps the hit if it falls inside
// the outline.
func (p *Polygon) Intersect(ray core.Ray) (float64, Shape, bool) {
	dist, _, ok := p.plane.Intersect(ray)
	if !ok || !p.IsOnSurface(ray.At(dist)) {
		return 0, nil, false
	}
	return dist, p, true
}

// IsOnSurface casts an in-plane ray from q away from a reference point on the
// first edge and counts how many edges it crosses. An odd count is inside.
func (p *Polygon) IsOnSurface(q core.Point) bool {
	if !p.plane.IsOnSurface(q) {
		return false
	}

	reference := p.Vertices[0].Add(p.Vertices[1]).Multiply(0.5)
	if reference.Subtract(q).Length() <= core.SurfaceEpsilon {
		reference = p.Vertices[1].Add(p.Vertices[2]).Multiply(0.5)
	}

	dir := q.Subtract(reference).Normalize()
	across := dir.Cross(p.plane.N).Normalize()

	crossings := 0
	for i := 0; i < len(p.Vertices)-1; i++ {
		x, y := p.Vertices[i], p.Vertices[i+1]

		denom := x.Subtract(y).Dot(across)
		if denom == 0 {
			continue
		}
		t := q.Subtract(y).Dot(across) / denom
		if t <= 0 || t >= 1 {
			continue
		}

		crossing := x.Multiply(t).Add(y.Multiply(1 - t))
		if crossing.Subtract(q).Dot(dir) < 0 {
			continue
		}
		crossings++
	}

	return crossings%2 == 1
}

// Normal returns the polygon's normal anchored at q
func (p *Polygon) Normal(q core.Point) (core.Ray, bool) {
	if !p.IsOnSurface(q) {
		return core.Ray{}, false
	}
	return core.Ray{Origin: q, Direction: p.plane.N, Length: 1}, true
}

// BoundingBox returns the bounds of the outline
func (p *Polygon) BoundingBox() (AABB, bool) {
	return NewAABBFromPoints(p.Vertices...), true
}
