package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shape is a surface described in its own local frame. Shapes know nothing
// about materials or transformations; a Model places them in the world.
type Shape interface {
	// Intersect returns the smallest non-negative distance along ray at which
	// it meets the surface, and the primitive that was hit. For composite
	// shapes the part is the innermost child rather than the composite itself.
	Intersect(ray core.Ray) (float64, Shape, bool)

	// Normal returns the outward unit normal anchored at p, or false when p
	// does not lie on the surface.
	Normal(p core.Point) (core.Ray, bool)

	// IsOnSurface reports whether p lies on the surface within tolerance
	IsOnSurface(p core.Point) bool

	// BoundingBox returns the local-frame bounds, or false for unbounded
	// shapes such as planes and general quadrics.
	BoundingBox() (AABB, bool)
}
