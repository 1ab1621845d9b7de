package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sink receives one colour per pixel. Set reports false for coordinates
// outside the image.
type Sink interface {
	Set(x, y int, c core.Color) bool
}

// Image is an in-memory floating point image with row 0 at the top.
// Distinct pixels may be set concurrently.
type Image struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// Set stores the colour of pixel (x, y)
func (img *Image) Set(x, y int, c core.Color) bool {
	if !img.inBounds(x, y) {
		return false
	}
	img.pixels[y*img.Width+x] = c
	return true
}

// Get returns the colour of pixel (x, y)
func (img *Image) Get(x, y int) (core.Color, bool) {
	if !img.inBounds(x, y) {
		return core.Color{}, false
	}
	return img.pixels[y*img.Width+x], true
}

// toByte clamps a channel to [0,1] and scales it to [0,255]
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// WritePPM writes the image as a binary PPM (P6)
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range img.pixels {
		if _, err := bw.Write([]byte{toByte(c.X), toByte(c.Y), toByte(c.Z)}); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}
	return bw.Flush()
}

// ToRGBA converts the image to 8-bit RGBA with the same clamping as WritePPM
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.pixels[y*img.Width+x]
			out.SetRGBA(x, y, color.RGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255})
		}
	}
	return out
}

// SavePPM writes the image to a PPM file
func (img *Image) SavePPM(path string) error {
	return saveWith(path, img.WritePPM)
}

// SavePNG writes the image to a PNG file
func (img *Image) SavePNG(path string) error {
	return saveWith(path, func(w io.Writer) error {
		return png.Encode(w, img.ToRGBA())
	})
}

func saveWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
