package preview

import (
	"fmt"
	"image/color"
	"io"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell is an upper half block with the top pixel as foreground
// and the pixel below as background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// String renders the framebuffer as lines of ANSI-styled half blocks
func (fb *Framebuffer) String() string {
	buf := uv.NewScreenBuffer(fb.Width, fb.Rows())
	fb.Draw(buf, buf.Bounds())
	return buf.Render()
}

// Render writes a terminal preview of img, cols characters wide
func Render(w io.Writer, img *renderer.Image, cols int) error {
	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("cannot preview an empty image")
	}
	_, err := fmt.Fprintln(w, FromImage(img, cols).String())
	return err
}

// rgbaToColor maps transparent pixels to no colour
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
