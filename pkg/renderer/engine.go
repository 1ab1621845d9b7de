package renderer

import (
	"math"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetModels() []*geometry.Model
	GetLights() []*lights.PointLight
	GetAmbient() core.Color
	GetBackground() Background
}

// Engine is a Whitted-style recursive ray tracer over an immutable scene.
// Trace is safe for concurrent use.
type Engine struct {
	scene  Scene
	config RenderConfig
	logger core.Logger

	counters          traceCounters
	missingNormalOnce sync.Once
}

// NewEngine creates a tracing engine. A nil logger discards output.
func NewEngine(scene Scene, config RenderConfig, logger core.Logger) *Engine {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Engine{scene: scene, config: config, logger: logger}
}

// Config returns the engine's render configuration
func (e *Engine) Config() RenderConfig {
	return e.config
}

// Stats returns the ray counts accumulated since the engine was created
func (e *Engine) Stats() TraceStats {
	return e.counters.snapshot()
}

// Trace returns the colour seen along ray. refractiveIndex is the index of
// the medium the ray travels through and depth its recursion level; camera
// rays start at (1, 0).
func (e *Engine) Trace(ray core.Ray, refractiveIndex float64, depth int) core.Color {
	return e.trace(ray, refractiveIndex, depth, SegmentPrimary, nil)
}

// NearestHit scans every model and returns the closest intersection
func (e *Engine) NearestHit(ray core.Ray) (geometry.Hit, bool) {
	closest := geometry.Hit{Distance: math.Inf(1)}
	found := false
	for _, model := range e.scene.GetModels() {
		hit, ok := model.Intersect(ray)
		if ok && hit.Distance < closest.Distance {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// occluded reports whether anything sits between the shadow ray's origin
// and its end point
func (e *Engine) occluded(shadow core.Ray) bool {
	for _, model := range e.scene.GetModels() {
		if hit, ok := model.Intersect(shadow); ok && hit.Distance < shadow.Length {
			return true
		}
	}
	return false
}

func (e *Engine) trace(ray core.Ray, refractiveIndex float64, depth int, kind SegmentKind, path *pathRecorder) core.Color {
	if depth == 0 {
		e.counters.primary.Add(1)
	} else {
		e.counters.secondary.Add(1)
	}

	hit, ok := e.NearestHit(ray)
	if !ok {
		path.add(Segment{From: ray.Origin, To: ray.At(MissSegmentLength), Kind: kind, Depth: depth, Miss: true})
		return e.scene.GetBackground().Color(ray)
	}

	point := ray.At(hit.Distance)
	path.add(Segment{From: ray.Origin, To: point, Kind: kind, Depth: depth})

	normal, ok := hit.Model.Normal(hit.Part, point)
	if !ok {
		e.reportMissingNormal(hit, point)
		return core.Color{}
	}

	// Step off the surface towards the side the ray arrived from
	offset := core.OffsetEpsilon
	if normal.Direction.Dot(ray.Direction) > 0 {
		offset = -offset
	}
	shadingPoint := point.Add(normal.Direction.Multiply(offset))

	var samples []material.LightSample
	for _, light := range e.scene.GetLights() {
		shadow := light.RayToLight(shadingPoint)
		e.counters.shadow.Add(1)
		blocked := e.occluded(shadow)
		path.add(Segment{From: shadingPoint, To: light.Center, Kind: SegmentShadow, Depth: depth, Occluded: blocked})
		if !blocked {
			samples = append(samples, material.LightSample{Intensity: light.Intensity, Direction: shadow.Direction})
		}
	}

	mat := hit.Model.Material
	var reflected, refracted *core.Color
	if depth < e.config.MaxDepth {
		reflectedColor := e.trace(material.Reflect(ray, normal), refractiveIndex, depth+1, SegmentReflected, path)
		reflected = &reflectedColor

		if index, ok := mat.TransmissionIndex(ray.Direction, normal.Direction); ok {
			// Total internal reflection leaves the reflected ray to carry the energy
			if refractedRay, ok := material.Refract(ray, normal, refractiveIndex, index); ok {
				refractedColor := e.trace(refractedRay, index, depth+1, SegmentRefracted, path)
				refracted = &refractedColor
			}
		}
	}

	ambient := e.scene.GetAmbient()
	return mat.Shade(normal.Direction, ray.Direction.Negate(), samples, &ambient, reflected, refracted)
}

// reportMissingNormal counts hits without a normal and logs the first one
func (e *Engine) reportMissingNormal(hit geometry.Hit, point core.Point) {
	e.counters.missingNormals.Add(1)
	e.missingNormalOnce.Do(func() {
		e.logger.Printf("Warning: hit on model %q at %v has no surface normal; shading black\n", hit.Model.Name, point)
	})
}
