package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Collection groups shapes that share one transform. Intersection is the
// nearest hit over all parts; the hit part is reported rather than the
// collection.
//
// When every part is bounded the collection keeps their combined bounds,
// expanded by SurfaceEpsilon, and skips the part scan for rays that miss it.
type Collection struct {
	Parts   []Shape
	bounds  AABB
	bounded bool
}

// NewCollection creates a collection from the given parts
func NewCollection(parts ...Shape) *Collection {
	c := &Collection{bounded: true}
	for _, part := range parts {
		c.Add(part)
	}
	return c
}

// Add appends a part. Collections must not be modified while rendering.
func (c *Collection) Add(part Shape) {
	box, ok := part.BoundingBox()
	switch {
	case !ok:
		c.bounded = false
	case len(c.Parts) == 0:
		c.bounds = box.Expand(core.SurfaceEpsilon)
	default:
		c.bounds = c.bounds.Union(box.Expand(core.SurfaceEpsilon))
	}
	c.Parts = append(c.Parts, part)
}

// Len returns the number of direct parts
func (c *Collection) Len() int {
	return len(c.Parts)
}

// Intersect returns the nearest hit over all parts
func (c *Collection) Intersect(ray core.Ray) (float64, Shape, bool) {
	if len(c.Parts) == 0 {
		return 0, nil, false
	}
	if c.bounded && !c.bounds.Hit(ray, 0, math.Inf(1)) {
		return 0, nil, false
	}

	closest := math.Inf(1)
	var closestPart Shape
	for _, part := range c.Parts {
		t, hitPart, ok := part.Intersect(ray)
		if ok && t < closest {
			closest = t
			closestPart = hitPart
		}
	}
	if closestPart == nil {
		return 0, nil, false
	}
	return closest, closestPart, true
}

// partAt returns the first part whose surface contains p
func (c *Collection) partAt(p core.Point) (Shape, bool) {
	for _, part := range c.Parts {
		if part.IsOnSurface(p) {
			return part, true
		}
	}
	return nil, false
}

// IsOnSurface reports whether any part contains p
func (c *Collection) IsOnSurface(p core.Point) bool {
	_, ok := c.partAt(p)
	return ok
}

// Normal delegates to the first part containing p
func (c *Collection) Normal(p core.Point) (core.Ray, bool) {
	part, ok := c.partAt(p)
	if !ok {
		return core.Ray{}, false
	}
	return part.Normal(p)
}

// BoundingBox returns the union of the part bounds when all parts are bounded
func (c *Collection) BoundingBox() (AABB, bool) {
	if !c.bounded || len(c.Parts) == 0 {
		return AABB{}, false
	}
	return c.bounds, true
}
