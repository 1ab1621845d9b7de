package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Model        string                 `json:"model,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	Path         []renderer.Segment     `json:"path"`
}

// InspectResult contains what the centre ray of a pixel hit
type InspectResult struct {
	Hit    bool
	Record geometry.Hit
	Point  core.Point
	Normal core.Vec3
	Path   renderer.PathResult
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a Phong material. The type is a summary of
// which global terms are active.
func (s *Server) extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"ka":              toArray(mat.Ka),
		"kd":              toArray(mat.Kd),
		"ks":              toArray(mat.Ks),
		"krg":             toArray(mat.Krg),
		"ktg":             toArray(mat.Ktg),
		"specularCoeff":   mat.SpecularCoeff,
		"refractiveIndex": mat.RefractiveIndex,
		"color":           hexColor(mat.Kd),
	}

	switch {
	case mat.IsRefractive() && !mat.Ktg.IsZero():
		return "transparent", properties
	case !mat.Krg.IsZero():
		return "reflective", properties
	default:
		return "phong", properties
	}
}

// extractGeometryInfo describes the primitive that was hit, in its model's
// local frame
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = toArray(geom.Point)
		properties["normal"] = toArray(geom.N)
		return "plane", properties

	case *geometry.Triangle:
		properties["vertices"] = [][3]float64{toArray(geom.V0), toArray(geom.V1), toArray(geom.V2)}
		return "triangle", properties

	case *geometry.Polygon:
		vertices := make([][3]float64, 0, len(geom.Vertices))
		for _, v := range geom.Vertices[:len(geom.Vertices)-1] {
			vertices = append(vertices, toArray(v))
		}
		properties["vertices"] = vertices
		return "polygon", properties

	case *geometry.Quadric:
		q := geom.Coefficients
		properties["coefficients"] = []float64{q.A, q.B, q.C, q.D, q.E, q.F, q.G, q.H, q.I, q.J}
		return "quadric", properties

	case *geometry.Box:
		properties["center"] = toArray(geom.Center)
		properties["length"] = geom.Length
		properties["breadth"] = geom.Breadth
		properties["height"] = geom.Height
		return "box", properties

	case *geometry.Collection:
		properties["parts"] = geom.Len()
		return "collection", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel traces the centre ray of pixel (x, y) and reports the first
// surface it meets together with the full ray tree
func inspectPixel(engine *renderer.Engine, camera *renderer.Camera, x, y int) (InspectResult, error) {
	config := engine.Config()
	path, ok := engine.TracePixel(x, y)
	if !ok {
		return InspectResult{}, fmt.Errorf("pixel (%d, %d) is outside the %dx%d image", x, y, config.Width, config.Height)
	}
	result := InspectResult{Path: path}

	ray, _ := camera.GetRay((float64(x)+0.5)/float64(config.Width), (float64(y)+0.5)/float64(config.Height))
	hit, isHit := engine.NearestHit(ray)
	if !isHit {
		return result, nil
	}

	result.Hit = true
	result.Record = hit
	result.Point = ray.At(hit.Distance)
	if normal, ok := hit.Model.Normal(hit.Part, result.Point); ok {
		result.Normal = normal.Direction
	}
	return result, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req.Scene, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	engine := s.newEngine(sceneObj, req, nil)

	result, err := inspectPixel(engine, sceneObj.Camera, pixelX, pixelY)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := InspectResponse{
		Hit:   result.Hit,
		Color: toArray(result.Path.Color),
		Path:  result.Path.Segments,
	}
	if result.Hit {
		model := result.Record.Model
		part := result.Record.Part
		if part == nil {
			part = model.Shape
		}
		materialType, materialProps := s.extractMaterialInfo(model.Material)
		geometryType, geometryProps := s.extractGeometryInfo(part)

		response.Model = model.Name
		response.MaterialType = materialType
		response.GeometryType = geometryType
		response.Point = toArray(result.Point)
		response.Normal = toArray(result.Normal)
		response.Distance = result.Record.Distance
		response.Properties = map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		}
	}

	writeJSON(w, http.StatusOK, response)
}
