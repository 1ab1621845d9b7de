package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max core.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	mins := [3]float64{aabb.Min.X, aabb.Min.Y, aabb.Min.Z}
	maxs := [3]float64{aabb.Max.X, aabb.Max.Y, aabb.Max.Z}
	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	direction := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		// Ray parallel to this slab
		if math.Abs(direction[axis]) < 1e-8 {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction[axis]
		t1 := (mins[axis] - origin[axis]) * invDirection
		t2 := (maxs[axis] - origin[axis]) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() core.Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() core.Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := core.NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
