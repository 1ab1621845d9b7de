package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Box is an oriented cuboid built from twelve triangles.
//
// XAxis runs along the length, YAxis along the height and ZAxis along the
// breadth. The axes are orthonormalized from the x and y hints given to
// NewBox.
type Box struct {
	Center                  core.Point
	XAxis, YAxis, ZAxis     core.Vec3
	Length, Breadth, Height float64
	faces                   *Collection
}

// NewBox creates a box centred at center. x fixes the length axis and y, made
// perpendicular to it, the height axis.
func NewBox(center core.Point, x, y core.Vec3, length, breadth, height float64) *Box {
	ax := x.Normalize()
	az := ax.Cross(y).Normalize()
	ay := az.Cross(ax).Normalize()

	b := &Box{
		Center:  center,
		XAxis:   ax,
		YAxis:   ay,
		ZAxis:   az,
		Length:  length,
		Breadth: breadth,
		Height:  height,
		faces:   NewCollection(),
	}

	corner := func(sx, sy, sz float64) core.Point {
		return center.
			Add(ax.Multiply(sx * length / 2)).
			Add(ay.Multiply(sy * height / 2)).
			Add(az.Multiply(sz * breadth / 2))
	}

	// Each face as four corners going round its outline
	faces := [6][4]core.Point{
		{corner(-1, 1, 1), corner(1, 1, 1), corner(1, 1, -1), corner(-1, 1, -1)},     // top
		{corner(-1, -1, 1), corner(1, -1, 1), corner(1, -1, -1), corner(-1, -1, -1)}, // bottom
		{corner(-1, 1, 1), corner(1, 1, 1), corner(1, -1, 1), corner(-1, -1, 1)},     // front
		{corner(-1, 1, -1), corner(1, 1, -1), corner(1, -1, -1), corner(-1, -1, -1)}, // back
		{corner(-1, 1, 1), corner(-1, 1, -1), corner(-1, -1, -1), corner(-1, -1, 1)}, // left
		{corner(1, 1, 1), corner(1, 1, -1), corner(1, -1, -1), corner(1, -1, 1)},     // right
	}
	for _, f := range faces {
		b.faces.Add(b.outwardTriangle(f[0], f[1], f[2]))
		b.faces.Add(b.outwardTriangle(f[0], f[2], f[3]))
	}
	return b
}

// outwardTriangle orders the vertices so the normal points away from the centre
func (b *Box) outwardTriangle(p0, p1, p2 core.Point) *Triangle {
	t := NewTriangle(p0, p1, p2)
	centroid := p0.Add(p1).Add(p2).Multiply(1.0 / 3.0)
	if t.FaceNormal().Dot(centroid.Subtract(b.Center)) < 0 {
		return NewTriangle(p0, p2, p1)
	}
	return t
}

// Faces returns the twelve triangles making up the box
func (b *Box) Faces() *Collection {
	return b.faces
}

// Intersect returns the nearest face hit; the part is the triangle
func (b *Box) Intersect(ray core.Ray) (float64, Shape, bool) {
	return b.faces.Intersect(ray)
}

// IsOnSurface reports whether p lies on any face
func (b *Box) IsOnSurface(p core.Point) bool {
	return b.faces.IsOnSurface(p)
}

// Normal returns the outward normal of the face containing p
func (b *Box) Normal(p core.Point) (core.Ray, bool) {
	return b.faces.Normal(p)
}

// BoundingBox returns the bounds of the faces
func (b *Box) BoundingBox() (AABB, bool) {
	return b.faces.BoundingBox()
}
