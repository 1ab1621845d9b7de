package preview

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// SegmentColors are the stroke colours used for each kind of ray
var SegmentColors = map[renderer.SegmentKind]color.RGBA{
	renderer.SegmentPrimary:   {255, 255, 255, 255},
	renderer.SegmentReflected: {255, 200, 0, 255},
	renderer.SegmentRefracted: {0, 200, 255, 255},
	renderer.SegmentShadow:    {255, 0, 255, 255},
}

// DrawPathOverlay draws the ray tree of one traced pixel over img. A primary
// ray projects to a single point, so it is marked with a ring at its hit.
// Blocked shadow rays are dashed. Segments with an end behind the camera are
// skipped.
func DrawPathOverlay(img *renderer.Image, camera *renderer.Camera, path renderer.PathResult) image.Image {
	dc := gg.NewContextForRGBA(img.ToRGBA())
	w, h := float64(img.Width), float64(img.Height)

	for _, seg := range path.Segments {
		dc.SetColor(SegmentColors[seg.Kind])

		if seg.Kind == renderer.SegmentPrimary {
			if seg.Miss {
				continue
			}
			if u, v, ok := camera.Project(seg.To); ok {
				dc.SetLineWidth(2)
				dc.DrawCircle(u*w, v*h, 5)
				dc.Stroke()
			}
			continue
		}

		u0, v0, ok0 := camera.Project(seg.From)
		u1, v1, ok1 := camera.Project(seg.To)
		if !ok0 || !ok1 {
			continue
		}

		if seg.Occluded {
			dc.SetDash(4, 4)
		} else {
			dc.SetDash()
		}
		dc.SetLineWidth(1.5)
		dc.DrawLine(u0*w, v0*h, u1*w, v1*h)
		dc.Stroke()
	}
	return dc.Image()
}
