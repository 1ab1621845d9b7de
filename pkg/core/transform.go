package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularRatio is the smallest |det| / max|m_ij|³ accepted for a linear part.
// The determinant is compared against the matrix's own scale, so a uniform
// shrink to mesh units is not mistaken for a singular matrix.
const singularRatio = 1e-12

// Transformation is an affine map between a model's local frame and world
// space, written in row-vector form:
//
//	world = model·ModelToWorld + ModelOffset
//	model = world·WorldToModel + WorldOffset
//
// WorldToModel is the inverse of ModelToWorld and WorldOffset is
// -ModelOffset·WorldToModel.
type Transformation struct {
	ModelToWorld mgl64.Mat3
	WorldToModel mgl64.Mat3
	ModelOffset  Vec3
	WorldOffset  Vec3
}

// IdentityTransformation leaves points, vectors and normals unchanged
var IdentityTransformation = Transformation{
	ModelToWorld: mgl64.Ident3(),
	WorldToModel: mgl64.Ident3(),
}

// NewTransformation builds a transformation from a model-to-world linear part
// and a translation. A singular linear part has no inverse and is rejected.
func NewTransformation(modelToWorld mgl64.Mat3, translation Vec3) (Transformation, error) {
	if isSingular(modelToWorld) {
		return Transformation{}, fmt.Errorf("transformation matrix is singular")
	}

	worldToModel := modelToWorld.Inv()
	return Transformation{
		ModelToWorld: modelToWorld,
		WorldToModel: worldToModel,
		ModelOffset:  translation,
		WorldOffset:  rowMul(translation, worldToModel).Negate(),
	}, nil
}

// NewTransformationFromRows builds a transformation from a row-major 3x3
// linear part, the layout used by scene files.
func NewTransformationFromRows(rows [9]float64, translation Vec3) (Transformation, error) {
	m := mgl64.Mat3FromRows(
		mgl64.Vec3{rows[0], rows[1], rows[2]},
		mgl64.Vec3{rows[3], rows[4], rows[5]},
		mgl64.Vec3{rows[6], rows[7], rows[8]},
	)
	return NewTransformation(m, translation)
}

// NewScaleTranslate is a convenience for axis-aligned scaling followed by a
// translation.
func NewScaleTranslate(scale, translation Vec3) (Transformation, error) {
	return NewTransformation(mgl64.Diag3(mgl64.Vec3{scale.X, scale.Y, scale.Z}), translation)
}

// Then returns the transformation that applies t first and next second.
// It is how a mesh's own frame is placed under a model transform.
func (t Transformation) Then(next Transformation) (Transformation, error) {
	return NewTransformation(
		t.ModelToWorld.Mul3(next.ModelToWorld),
		next.PointToWorld(t.ModelOffset),
	)
}

// PointToModel maps a world-space point into the model frame
func (t Transformation) PointToModel(p Point) Point {
	return rowMul(p, t.WorldToModel).Add(t.WorldOffset)
}

// PointToWorld maps a model-space point into world space
func (t Transformation) PointToWorld(p Point) Point {
	return rowMul(p, t.ModelToWorld).Add(t.ModelOffset)
}

// VectorToModel maps a world-space direction into the model frame (no translation)
func (t Transformation) VectorToModel(v Vec3) Vec3 {
	return rowMul(v, t.WorldToModel)
}

// VectorToWorld maps a model-space direction into world space (no translation)
func (t Transformation) VectorToWorld(v Vec3) Vec3 {
	return rowMul(v, t.ModelToWorld)
}

// NormalToWorld maps a model-space normal into world space using the
// inverse-transpose of the linear part, so it stays perpendicular to the
// transformed surface. The result is normalized.
func (t Transformation) NormalToWorld(n Vec3) Vec3 {
	return rowMul(n, t.WorldToModel.Transpose()).Normalize()
}

// NormalToModel is the inverse of NormalToWorld
func (t Transformation) NormalToModel(n Vec3) Vec3 {
	return rowMul(n, t.ModelToWorld.Transpose()).Normalize()
}

// IsIdentity reports whether the transformation is exactly the identity
func (t Transformation) IsIdentity() bool {
	return t.ModelToWorld == mgl64.Ident3() && t.ModelOffset.IsZero()
}

func isSingular(m mgl64.Mat3) bool {
	scale := 0.0
	for _, v := range m {
		scale = math.Max(scale, math.Abs(v))
	}
	if scale == 0 {
		return true
	}
	return math.Abs(m.Det())/(scale*scale*scale) < singularRatio
}

// rowMul computes the row vector v·m
func rowMul(v Vec3, m mgl64.Mat3) Vec3 {
	r := m.Transpose().Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{r[0], r[1], r[2]}
}
