package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle collections,
// each placed in the world through a model transformation
func NewTriangleMeshScene() *Scene {
	s := NewScene(mustCamera(core.NewVec3(0, 2, 6), core.NewVec3(0, 1, 0), 60, 16.0/9.0))
	s.Config.Width = 640
	s.Config.Height = 360
	s.Background = NewSkyBackground()

	// Main overhead light and a dimmer cool fill
	s.AddLight(core.NewVec3(2, 6, 3), core.NewColor(0.8, 0.75, 0.7))
	s.AddLight(core.NewVec3(-3, 4, 2), core.NewColor(0.3, 0.35, 0.4))

	ground := material.NewMaterial(
		core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.6, 0.6, 0.6), core.Color{},
		core.NewColor(0.1, 0.1, 0.1), core.Color{}, -1, 1)
	s.AddModel("ground", geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), ground)

	red := material.NewMaterial(
		core.NewColor(0.1, 0.02, 0.02), core.NewColor(0.7, 0.15, 0.15), core.NewColor(0.6, 0.6, 0.6),
		core.NewColor(0.2, 0.2, 0.2), core.Color{}, -1, 40)
	blue := material.NewMaterial(
		core.NewColor(0.02, 0.03, 0.1), core.NewColor(0.2, 0.3, 0.8), core.NewColor(0.2, 0.2, 0.2),
		core.Color{}, core.Color{}, -1, 10)
	gold := material.NewMaterial(
		core.NewColor(0.08, 0.06, 0.02), core.NewColor(0.5, 0.4, 0.1), core.NewColor(0.9, 0.8, 0.5),
		core.NewColor(0.4, 0.3, 0.1), core.Color{}, -1, 80)

	// Box as 12 triangles, rotated to show three faces
	box := geometry.NewBox(core.Vec3{}, core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 1, 1, 1)
	s.AddTransformedModel("box", box, red, rotateY(math.Pi/6, core.NewVec3(-2, 0.5, 0)))

	addMeshModel(s, "pyramid", createPyramidMesh(1.5, 2.0), blue, rotateY(math.Pi/4, core.NewVec3(0, 1, 0)))
	addMeshModel(s, "icosahedron", createIcosahedronMesh(0.8), gold, rotateY(math.Pi/3, core.NewVec3(2, 0.8, 0)))

	return s
}

// addMeshModel places an in-memory mesh, composing its local frame with transform
func addMeshModel(s *Scene, name string, mesh *loaders.MeshData, mat *material.Material, transform core.Transformation) {
	coll, frame := MeshCollection(mesh)
	s.AddTransformedModel(name, coll, mat, mustTransform(frame.Then(transform)))
}

// rotateY rotates about the Y axis by theta radians, then translates
func rotateY(theta float64, translation core.Vec3) core.Transformation {
	// Rotate3DY is column-vector; the transformation is row-vector
	return mustTransform(core.NewTransformation(mgl64.Rotate3DY(theta).Transpose(), translation))
}

// createPyramidMesh creates a square pyramid centred on the origin
func createPyramidMesh(baseSize, height float64) *loaders.MeshData {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	return &loaders.MeshData{
		Vertices: []core.Vec3{
			core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
			core.NewVec3(+halfBase, -halfHeight, -halfBase), // 1: right-back
			core.NewVec3(+halfBase, -halfHeight, +halfBase), // 2: right-front
			core.NewVec3(-halfBase, -halfHeight, +halfBase), // 3: left-front
			core.NewVec3(0, +halfHeight, 0),                 // 4: apex
		},
		Faces: []int{
			// Base, facing down
			0, 1, 2, 0, 2, 3,
			// Sides, counter-clockwise seen from outside
			0, 4, 1,
			1, 4, 2,
			2, 4, 3,
			3, 4, 0,
		},
	}
}

// createIcosahedronMesh creates an icosahedron with its vertices on a
// sphere of the given radius around the origin
func createIcosahedronMesh(radius float64) *loaders.MeshData {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	raw := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(raw))
	for i, v := range raw {
		vertices[i] = v.Multiply(scale)
	}

	return &loaders.MeshData{
		Vertices: vertices,
		Faces: []int{
			// 5 faces around point 0
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			// 5 adjacent faces
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			// 5 faces around point 3
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			// 5 adjacent faces
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	}
}
