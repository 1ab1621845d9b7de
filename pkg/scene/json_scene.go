package scene

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// LoadJSONScene reads and builds a JSON scene file. Relative mesh and
// texture paths are resolved against the file's directory.
func LoadJSONScene(filename string, logger core.Logger) (*Scene, error) {
	desc, err := loaders.LoadSceneDescription(filename)
	if err != nil {
		return nil, err
	}
	s, err := BuildScene(desc, filepath.Dir(filename), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", filename, err)
	}
	return s, nil
}

// BuildScene turns a parsed description into a scene. Every model must
// build; an unknown material or model type is an error.
func BuildScene(desc *loaders.SceneDescription, baseDir string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	b := &sceneBuilder{baseDir: baseDir, logger: logger, materials: make(map[string]*material.Material)}

	s := NewScene(nil)
	if err := b.applyRender(s, desc.Render); err != nil {
		return nil, err
	}

	for _, md := range desc.Materials {
		b.materials[md.Name] = buildMaterial(md)
	}

	for i, md := range desc.Models {
		if err := b.addModel(s, i, md); err != nil {
			return nil, err
		}
	}

	for _, ld := range desc.Lights {
		s.AddLight(vec(ld.Location), vec(ld.Intensity))
	}

	camera, err := b.buildCamera(desc.Camera, s.Config)
	if err != nil {
		return nil, err
	}
	s.Camera = camera
	s.FixedAspect = desc.Camera.AspectRatio != 0

	if desc.Ambient != nil {
		s.Ambient = vec(*desc.Ambient)
	}
	if desc.Background != nil {
		bg, err := b.buildBackground(desc.Background)
		if err != nil {
			return nil, err
		}
		s.Background = bg
	}
	s.TracePoint = desc.TracePoint

	return s, nil
}

type sceneBuilder struct {
	baseDir   string
	logger    core.Logger
	materials map[string]*material.Material
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

// buildMaterial fills in the defaults for missing ri (opaque) and sc (1)
func buildMaterial(md loaders.MaterialDescription) *material.Material {
	def := material.Default()
	ri, sc := def.RefractiveIndex, def.SpecularCoeff
	if md.RefractiveIndex != nil {
		ri = *md.RefractiveIndex
	}
	if md.SpecularCoeff != nil {
		sc = *md.SpecularCoeff
	}
	return material.NewMaterial(vec(md.Ka), vec(md.Kd), vec(md.Ks), vec(md.Krg), vec(md.Ktg), ri, sc)
}

func (b *sceneBuilder) applyRender(s *Scene, rd *loaders.RenderDescription) error {
	if rd == nil {
		return nil
	}
	s.Config = s.Config.Merge(renderer.RenderConfig{
		Width:           rd.Width,
		Height:          rd.Height,
		SamplesPerPixel: rd.Samples,
	})
	if rd.MaxDepth != nil {
		s.Config.MaxDepth = *rd.MaxDepth
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("invalid render settings: %w", err)
	}
	return nil
}

func (b *sceneBuilder) addModel(s *Scene, index int, md loaders.ModelDescription) error {
	name := md.Name
	if name == "" {
		name = fmt.Sprintf("%s #%d", md.Type, index)
	}

	mat := material.Default()
	if md.Material != "" {
		var ok bool
		if mat, ok = b.materials[md.Material]; !ok {
			return fmt.Errorf("model %q: unknown material %q", name, md.Material)
		}
	}

	transform, err := buildTransform(md.Transform)
	if err != nil {
		return fmt.Errorf("model %q: %w", name, err)
	}

	if md.Type == "mesh" {
		if md.File == "" {
			return fmt.Errorf("model %q: mesh needs a file", name)
		}
		if _, err := s.AddMesh(name, b.resolve(md.File), mat, transform); err != nil {
			return fmt.Errorf("model %q: %w", name, err)
		}
		return nil
	}

	shape, err := b.buildShape(name, md)
	if err != nil {
		return fmt.Errorf("model %q: %w", name, err)
	}
	s.AddTransformedModel(name, shape, mat, transform)
	return nil
}

func buildTransform(td *loaders.TransformDescription) (core.Transformation, error) {
	if td == nil {
		return core.IdentityTransformation, nil
	}
	matrix := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if td.Matrix != nil {
		matrix = *td.Matrix
	}
	return core.NewTransformationFromRows(matrix, vec(td.Translation))
}

// buildShape builds the local-frame shape of one model or collection element
func (b *sceneBuilder) buildShape(name string, md loaders.ModelDescription) (geometry.Shape, error) {
	switch md.Type {
	case "sphere":
		if md.Center == nil || md.Radius <= 0 {
			return nil, fmt.Errorf("sphere needs center and a positive radius")
		}
		return geometry.NewSphere(vec(*md.Center), md.Radius), nil

	case "plane":
		if md.RaySrc == nil || md.RayNormal == nil || vec(*md.RayNormal).IsZero() {
			return nil, fmt.Errorf("plane needs ray_src and a non-zero ray_normal")
		}
		return geometry.NewPlane(vec(*md.RaySrc), vec(*md.RayNormal)), nil

	case "quadric":
		if len(md.QP) != 10 {
			return nil, fmt.Errorf("quadric needs 10 coefficients, got %d", len(md.QP))
		}
		q := md.QP
		return geometry.NewQuadric(geometry.QuadricCoefficients{
			A: q[0], B: q[1], C: q[2], D: q[3], E: q[4], F: q[5], G: q[6], H: q[7], I: q[8], J: q[9],
		}), nil

	case "triangle":
		if md.P1 == nil || md.P2 == nil || md.P3 == nil {
			return nil, fmt.Errorf("triangle needs p1, p2 and p3")
		}
		return geometry.NewTriangle(vec(*md.P1), vec(*md.P2), vec(*md.P3)), nil

	case "polygon":
		points := make([]core.Point, len(md.Points))
		for i, p := range md.Points {
			points[i] = vec(p)
		}
		poly, err := geometry.NewPolygon(points)
		if err != nil {
			return nil, err
		}
		if n := poly.Rejected(); n > 0 {
			b.logger.Printf("Warning: polygon %q: dropped %d vertices not in the plane of the first three\n", name, n)
		}
		return poly, nil

	case "box":
		if md.Center == nil || md.XAxis == nil || md.YAxis == nil {
			return nil, fmt.Errorf("box needs center, x_axis and y_axis")
		}
		if md.Length <= 0 || md.Breadth <= 0 || md.Height <= 0 {
			return nil, fmt.Errorf("box dimensions must be positive")
		}
		x, y := vec(*md.XAxis), vec(*md.YAxis)
		if x.Cross(y).IsZero() {
			return nil, fmt.Errorf("box axes must not be parallel")
		}
		return geometry.NewBox(vec(*md.Center), x, y, md.Length, md.Breadth, md.Height), nil

	case "collection":
		coll := geometry.NewCollection()
		for i, el := range md.Elements {
			if el.Transform != nil {
				return nil, fmt.Errorf("element %d: collection elements share the collection's transform", i)
			}
			part, err := b.buildShape(fmt.Sprintf("%s/%d", name, i), el)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			coll.Add(part)
		}
		return coll, nil

	case "mesh":
		return nil, fmt.Errorf("a mesh is placed in its own frame and cannot be a collection element")

	default:
		return nil, fmt.Errorf("unknown model type %q", md.Type)
	}
}

func (b *sceneBuilder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

// buildCamera builds either the matrix or the look-at form. A missing
// aspect ratio is taken from the image size.
func (b *sceneBuilder) buildCamera(cd *loaders.CameraDescription, config renderer.RenderConfig) (*renderer.Camera, error) {
	if cd == nil {
		return nil, fmt.Errorf("scene has no camera")
	}
	ar := cd.AspectRatio
	if ar == 0 {
		ar = float64(config.Width) / float64(config.Height)
	}

	var (
		camera *renderer.Camera
		err    error
	)
	if cd.Trans != nil {
		var rows [16]float64
		copy(rows[:], cd.Trans)
		camera, err = renderer.NewCameraFromRows(rows, ar, cd.FOV)
	} else {
		if cd.From == nil || cd.To == nil {
			return nil, fmt.Errorf("camera needs either trans or from/to")
		}
		up := core.NewVec3(0, 1, 0)
		if cd.Up != nil {
			up = vec(*cd.Up)
		}
		camera, err = renderer.NewLookAtCamera(vec(*cd.From), vec(*cd.To), up, cd.FOV, ar)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	return camera, nil
}

func (b *sceneBuilder) buildBackground(bd *loaders.BackgroundDescription) (renderer.Background, error) {
	switch bd.Type {
	case "", "solid":
		c := renderer.DefaultBackgroundColor
		if bd.Color != nil {
			c = vec(*bd.Color)
		}
		return renderer.NewSolidBackground(c), nil
	case "gradient":
		if bd.Top == nil || bd.Bottom == nil {
			return nil, fmt.Errorf("gradient background needs top and bottom")
		}
		return renderer.NewGradientBackground(vec(*bd.Top), vec(*bd.Bottom)), nil
	case "texture":
		img, err := loaders.LoadImage(b.resolve(bd.File))
		if err != nil {
			return nil, fmt.Errorf("background texture: %w", err)
		}
		return renderer.NewTextureBackground(img.Width, img.Height, img.Pixels), nil
	default:
		return nil, fmt.Errorf("unknown background type %q", bd.Type)
	}
}
