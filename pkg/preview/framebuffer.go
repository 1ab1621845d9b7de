// Package preview shows rendered images in a terminal and draws traced ray
// paths over them.
package preview

import (
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Framebuffer is a small 8-bit copy of a render sized for a terminal.
// Each terminal row shows two framebuffer rows using half-block characters.
type Framebuffer struct {
	Width  int          // Width in pixels (same as terminal columns)
	Height int          // Height in pixels (2x terminal rows)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a transparent framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// SetPixel sets the pixel at (x, y); out of range coordinates are ignored
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the colour at (x, y), or transparent black if out of bounds
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Rows is the number of terminal rows needed to show the framebuffer
func (fb *Framebuffer) Rows() int {
	return (fb.Height + 1) / 2
}

// FromImage box-filters img down to cols pixels across. Terminal cells are
// about twice as tall as they are wide, which the half blocks cancel out, so
// the framebuffer keeps the image's aspect ratio. Images narrower than cols
// are copied at their own size.
func FromImage(img *renderer.Image, cols int) *Framebuffer {
	if cols <= 0 || cols > img.Width {
		cols = img.Width
	}
	rows := img.Height * cols / img.Width
	if rows < 1 {
		rows = 1
	}

	src := img.ToRGBA()
	fb := NewFramebuffer(cols, rows)
	for y := 0; y < rows; y++ {
		y0, y1 := span(y, rows, img.Height)
		for x := 0; x < cols; x++ {
			x0, x1 := span(x, cols, img.Width)

			var r, g, b, n int
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					c := src.RGBAAt(sx, sy)
					r += int(c.R)
					g += int(c.G)
					b += int(c.B)
					n++
				}
			}
			fb.SetPixel(x, y, color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255})
		}
	}
	return fb
}

// span returns the source range covered by destination index i when n
// destination pixels cover size source pixels. The range is never empty.
func span(i, n, size int) (int, int) {
	lo := i * size / n
	hi := (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}
