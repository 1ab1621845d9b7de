package core

import "math"

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Point is a position in space. It behaves exactly like a Vec3.
type Point = Vec3

// Color is an RGB triple. Channels are linear and unbounded until written out.
type Color = Vec3

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Vec3{X: r, Y: g, Z: b}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{0, 0, 0}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// Min returns the component-wise minimum of two vectors
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of two vectors
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// IsZero reports whether every component is exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ApproxEqual reports whether two vectors differ by at most tolerance per component
func (v Vec3) ApproxEqual(other Vec3, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}
