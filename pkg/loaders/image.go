package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageData contains loaded image data as a row-major colour array with
// row 0 at the top
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color
}

// LoadImage loads a PNG or JPEG image
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImage decodes a PNG or JPEG stream into colours in [0,1]
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
