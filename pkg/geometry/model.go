package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Model places a shape in the world with a material and a transformation.
// The shape's queries run in model space; Model converts rays, points and
// normals between the two frames.
type Model struct {
	Name      string
	Shape     Shape
	Material  *material.Material
	Transform core.Transformation
}

// Hit describes the nearest intersection of a world ray with a model
type Hit struct {
	Model *Model
	// Part is the primitive that was hit, which differs from Model.Shape for
	// collections and boxes
	Part Shape
	// Distance is measured in world space from the ray origin
	Distance float64
}

// NewModel creates a model. A nil material is replaced by material.Default().
func NewModel(name string, shape Shape, mat *material.Material, transform core.Transformation) *Model {
	if mat == nil {
		mat = material.Default()
	}
	return &Model{Name: name, Shape: shape, Material: mat, Transform: transform}
}

// Intersect transforms ray into model space, intersects the shape there and
// reports the distance back in world units. Non-uniform scaling changes
// lengths, so the local t cannot be reused directly.
func (m *Model) Intersect(ray core.Ray) (Hit, bool) {
	if m.Transform.IsIdentity() {
		t, part, ok := m.Shape.Intersect(ray)
		if !ok {
			return Hit{}, false
		}
		return Hit{Model: m, Part: part, Distance: t}, true
	}

	local := core.NewRay(m.Transform.PointToModel(ray.Origin), m.Transform.VectorToModel(ray.Direction))
	t, part, ok := m.Shape.Intersect(local)
	if !ok {
		return Hit{}, false
	}
	world := m.Transform.PointToWorld(local.At(t))
	return Hit{Model: m, Part: part, Distance: world.Subtract(ray.Origin).Length()}, true
}

// Normal returns the world-space outward normal of part at a world point.
// The normal goes back through the inverse-transpose so it stays
// perpendicular to the surface under non-uniform scaling.
func (m *Model) Normal(part Shape, p core.Point) (core.Ray, bool) {
	if part == nil {
		part = m.Shape
	}
	n, ok := part.Normal(m.Transform.PointToModel(p))
	if !ok {
		return core.Ray{}, false
	}
	if m.Transform.IsIdentity() {
		return core.Ray{Origin: p, Direction: n.Direction, Length: 1}, true
	}
	return core.Ray{Origin: p, Direction: m.Transform.NormalToWorld(n.Direction), Length: 1}, true
}

// IsOnSurface reports whether a world point lies on the model's surface
func (m *Model) IsOnSurface(p core.Point) bool {
	return m.Shape.IsOnSurface(m.Transform.PointToModel(p))
}

// Primitives counts the leaf shapes making up the model
func (m *Model) Primitives() int {
	return countPrimitives(m.Shape)
}

func countPrimitives(s Shape) int {
	switch shape := s.(type) {
	case *Collection:
		n := 0
		for _, part := range shape.Parts {
			n += countPrimitives(part)
		}
		return n
	case *Box:
		return shape.faces.Len()
	default:
		return 1
	}
}
