package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// QuadricCoefficients are the ten coefficients of
//
//	Ax² + 2Bxy + 2Cxz + 2Dx + Ey² + 2Fyz + 2Gy + Hz² + 2Iz + J = 0
type QuadricCoefficients struct {
	A, B, C, D, E, F, G, H, I, J float64
}

// Quadric is a general second-degree surface pᵀMp = 0 in homogeneous
// coordinates, with M the symmetric matrix
//
//	| A B C D |
//	| B E F G |
//	| C F H I |
//	| D G I J |
type Quadric struct {
	Coefficients QuadricCoefficients
	M            mgl64.Mat4
}

// NewQuadric creates a quadric from its coefficients
func NewQuadric(q QuadricCoefficients) *Quadric {
	return &Quadric{
		Coefficients: q,
		M: mgl64.Mat4FromRows(
			mgl64.Vec4{q.A, q.B, q.C, q.D},
			mgl64.Vec4{q.B, q.E, q.F, q.G},
			mgl64.Vec4{q.C, q.F, q.H, q.I},
			mgl64.Vec4{q.D, q.G, q.I, q.J},
		),
	}
}

// augment lifts v into homogeneous coordinates with w as the fourth component.
// Points take w=1, directions w=0.
func augment(v core.Vec3, w float64) mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, w}
}

// form evaluates the bilinear form aᵀMb
func (q *Quadric) form(a, b mgl64.Vec4) float64 {
	return a.Dot(q.M.Mul4x1(b))
}

// Intersect substitutes the ray into pᵀMp = 0 and returns the smallest
// non-negative root.
func (q *Quadric) Intersect(ray core.Ray) (float64, Shape, bool) {
	origin := augment(ray.Origin, 1)
	direction := augment(ray.Direction, 0)

	a := q.form(direction, direction)
	b := q.form(direction, origin) + q.form(origin, direction)
	c := q.form(origin, origin)

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return 0, nil, false
	}
	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 {
		return 0, nil, false
	}
	return t, q, true
}

// IsOnSurface reports whether |pᵀMp| is within QuadricSurfaceTolerance
func (q *Quadric) IsOnSurface(p core.Point) bool {
	h := augment(p, 1)
	return math.Abs(q.form(h, h)) <= core.QuadricSurfaceTolerance
}

// Normal returns the normalized gradient of the quadric at p
func (q *Quadric) Normal(p core.Point) (core.Ray, bool) {
	if !q.IsOnSurface(p) {
		return core.Ray{}, false
	}
	c := q.Coefficients
	gradient := core.NewVec3(
		2*(c.A*p.X+c.B*p.Y+c.C*p.Z+c.D),
		2*(c.B*p.X+c.E*p.Y+c.F*p.Z+c.G),
		2*(c.C*p.X+c.F*p.Y+c.H*p.Z+c.I),
	)
	return core.NewRay(p, gradient), true
}

// BoundingBox reports quadrics as unbounded; closed ones like ellipsoids are
// better expressed as a transformed sphere when culling matters.
func (q *Quadric) BoundingBox() (AABB, bool) {
	return AABB{}, false
}
