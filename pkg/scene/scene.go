package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultAmbient is the ambient light used when a scene does not set one
var DefaultAmbient = core.NewColor(0.2, 0.2, 0.2)

// Scene contains all the elements needed for rendering. It is built once
// and treated as read-only while rendering.
type Scene struct {
	Camera     *renderer.Camera
	Models     []*geometry.Model     // Objects in the scene
	Lights     []*lights.PointLight  // Lights in the scene
	Ambient    core.Color            // Ambient light intensity
	Background renderer.Background   // Colour of rays that hit nothing
	Config     renderer.RenderConfig // Default render settings for this scene

	// TracePoint is an optional pixel whose ray path should be reported
	TracePoint *[2]int

	// FixedAspect keeps the camera's aspect ratio when the image size is
	// overridden. Otherwise the camera is refitted to the rendered shape.
	FixedAspect bool
}

// NewScene creates an empty scene with the default ambient light,
// background and render settings
func NewScene(camera *renderer.Camera) *Scene {
	return &Scene{
		Camera:     camera,
		Models:     make([]*geometry.Model, 0),
		Lights:     make([]*lights.PointLight, 0),
		Ambient:    DefaultAmbient,
		Background: renderer.NewSolidBackground(renderer.DefaultBackgroundColor),
		Config:     renderer.DefaultRenderConfig(),
	}
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetModels returns every model in the scene
func (s *Scene) GetModels() []*geometry.Model { return s.Models }

// GetLights returns the point lights in the scene
func (s *Scene) GetLights() []*lights.PointLight { return s.Lights }

// GetAmbient returns the ambient light intensity
func (s *Scene) GetAmbient() core.Color { return s.Ambient }

// GetBackground returns the background, falling back to the default colour
func (s *Scene) GetBackground() renderer.Background {
	if s.Background == nil {
		return renderer.NewSolidBackground(renderer.DefaultBackgroundColor)
	}
	return s.Background
}

// AddModel places shape in the world with no transformation
func (s *Scene) AddModel(name string, shape geometry.Shape, mat *material.Material) *geometry.Model {
	return s.AddTransformedModel(name, shape, mat, core.IdentityTransformation)
}

// AddTransformedModel places shape in the world through transform
func (s *Scene) AddTransformedModel(name string, shape geometry.Shape, mat *material.Material, transform core.Transformation) *geometry.Model {
	model := geometry.NewModel(name, shape, mat, transform)
	s.Models = append(s.Models, model)
	return model
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(center core.Point, intensity core.Color) {
	s.Lights = append(s.Lights, lights.NewPointLight(center, intensity))
}

// AddMesh loads a PLY or glTF mesh and adds it as one triangle collection
// placed by transform
func (s *Scene) AddMesh(name, filename string, mat *material.Material, transform core.Transformation) (*geometry.Model, error) {
	mesh, err := loaders.LoadMesh(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	coll, frame := MeshCollection(mesh)
	placed, err := frame.Then(transform)
	if err != nil {
		return nil, fmt.Errorf("failed to place mesh: %w", err)
	}
	return s.AddTransformedModel(name, coll, mat, placed), nil
}

// MeshCollection turns an indexed mesh into a collection of triangles.
// Degenerate triangles are skipped.
//
// The triangle area test uses an absolute tolerance, so the triangles are
// stored in a local frame centred on the mesh and scaled until the shortest
// edge is one unit long. The returned frame maps that local frame back to
// mesh coordinates and must be composed with the model's own transform.
func MeshCollection(mesh *loaders.MeshData) (*geometry.Collection, core.Transformation) {
	var corners [][3]core.Vec3
	shortest := math.Inf(1)
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		if b.Subtract(a).Cross(c.Subtract(a)).IsZero() {
			continue
		}
		corners = append(corners, [3]core.Vec3{a, b, c})
		shortest = math.Min(shortest, b.Subtract(a).Length())
		shortest = math.Min(shortest, c.Subtract(b).Length())
		shortest = math.Min(shortest, a.Subtract(c).Length())
	}

	coll := geometry.NewCollection()
	if len(corners) == 0 {
		return coll, core.IdentityTransformation
	}

	var bounds geometry.AABB
	for i, tri := range corners {
		box := geometry.NewAABBFromPoints(tri[0], tri[1], tri[2])
		if i == 0 {
			bounds = box
		} else {
			bounds = bounds.Union(box)
		}
	}
	center := bounds.Center()
	scale := 1 / shortest

	local := func(v core.Vec3) core.Vec3 { return v.Subtract(center).Multiply(scale) }
	for _, tri := range corners {
		coll.Add(geometry.NewTriangle(local(tri[0]), local(tri[1]), local(tri[2])))
	}

	frame := mustTransform(core.NewScaleTranslate(core.NewVec3(shortest, shortest, shortest), center))
	return coll, frame
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, model := range s.Models {
		count += model.Primitives()
	}
	return count
}

// NewEngine creates a tracing engine over the scene with its own render
// settings merged with overrides. The camera is refitted to the final image
// shape first unless the scene fixes its aspect ratio.
func (s *Scene) NewEngine(overrides renderer.RenderConfig, logger core.Logger) *renderer.Engine {
	config := s.Config.Merge(overrides)
	s.fitCamera(config)
	return renderer.NewEngine(s, config, logger)
}

func (s *Scene) fitCamera(config renderer.RenderConfig) {
	if s.FixedAspect || s.Camera == nil || config.Width <= 0 || config.Height <= 0 {
		return
	}
	aspectRatio := float64(config.Width) / float64(config.Height)
	if math.Abs(aspectRatio-s.Camera.AspectRatio) < 1e-9 {
		return
	}
	if camera, err := s.Camera.WithAspectRatio(aspectRatio); err == nil {
		s.Camera = camera
	}
}

// mustCamera is used by the built-in scenes, whose camera parameters are
// constants known to be valid
func mustCamera(from, to core.Point, fov, aspectRatio float64) *renderer.Camera {
	camera, err := renderer.NewLookAtCamera(from, to, core.NewVec3(0, 1, 0), fov, aspectRatio)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in camera: %v", err))
	}
	return camera
}

// mustTransform is the built-in scene counterpart of mustCamera
func mustTransform(t core.Transformation, err error) core.Transformation {
	if err != nil {
		panic(fmt.Sprintf("invalid built-in transform: %v", err))
	}
	return t
}
