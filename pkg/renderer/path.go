package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MissSegmentLength is how far a ray that hits nothing is drawn
const MissSegmentLength = 20.0

// SegmentKind says which part of the recursion produced a segment
type SegmentKind int

const (
	SegmentPrimary SegmentKind = iota
	SegmentReflected
	SegmentRefracted
	SegmentShadow
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentPrimary:
		return "primary"
	case SegmentReflected:
		return "reflected"
	case SegmentRefracted:
		return "refracted"
	case SegmentShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// MarshalText lets segment kinds serialize as their names
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a name written by MarshalText
func (k *SegmentKind) UnmarshalText(text []byte) error {
	for kind := SegmentPrimary; kind <= SegmentShadow; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown segment kind %q", text)
}

// Segment is one straight piece of a traced ray tree
type Segment struct {
	From     core.Point  `json:"from"`
	To       core.Point  `json:"to"`
	Kind     SegmentKind `json:"kind"`
	Depth    int         `json:"depth"`
	Miss     bool        `json:"miss,omitempty"`     // ray left the scene
	Occluded bool        `json:"occluded,omitempty"` // shadow ray was blocked
}

// PathResult is the colour of a traced ray together with every segment the
// recursion followed, in trace order
type PathResult struct {
	Color    core.Color `json:"color"`
	Segments []Segment  `json:"segments"`
}

type pathRecorder struct {
	segments []Segment
}

// add is a no-op on a nil recorder so the hot path pays nothing
func (p *pathRecorder) add(s Segment) {
	if p == nil {
		return
	}
	p.segments = append(p.segments, s)
}

// TracePath traces a camera ray like Trace and also records the ray tree
func (e *Engine) TracePath(ray core.Ray) PathResult {
	rec := &pathRecorder{}
	c := e.trace(ray, 1.0, 0, SegmentPrimary, rec)
	return PathResult{Color: c, Segments: rec.segments}
}

// TracePixel traces the ray through the centre of pixel (x, y)
func (e *Engine) TracePixel(x, y int) (PathResult, bool) {
	camera := e.scene.GetCamera()
	if camera == nil || x < 0 || y < 0 || x >= e.config.Width || y >= e.config.Height {
		return PathResult{}, false
	}
	ray, ok := camera.GetRay((float64(x)+0.5)/float64(e.config.Width), (float64(y)+0.5)/float64(e.config.Height))
	if !ok {
		return PathResult{}, false
	}
	return e.TracePath(ray), true
}
