package renderer

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// MaxChannelValue is the largest value written for a PPM channel
const MaxChannelValue = 255

// Image holds averaged linear colors in row-major order, top row first
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color at column x, row y (row 0 is the top)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the linear color at column x, row y
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// RGB returns the gamma-corrected 8-bit channels at column x, row y
func (img *Image) RGB(x, y int) [3]int {
	return QuantizeColor(img.At(x, y))
}

// QuantizeColor applies gamma 2 and maps each channel to floor(256 * clamp(c, 0, 0.999)).
// NaN channels map to 0.
func QuantizeColor(linear core.Vec3) [3]int {
	c := linear.Sqrt().Clamp(0.0, 0.999)
	return [3]int{quantize(c.X), quantize(c.Y), quantize(c.Z)}
}

func quantize(c float64) int {
	if math.IsNaN(c) {
		return 0
	}
	return int(256 * c)
}

// WritePPM encodes the image as a plain-text P3 pixmap
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", img.Width, img.Height, MaxChannelValue); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			rgb := img.RGB(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgb[0], rgb[1], rgb[2]); err != nil {
				return fmt.Errorf("write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}

// Variance returns the per-channel variance of the linear pixel colors, averaged
// over the three channels
func (img *Image) Variance() float64 {
	n := float64(len(img.Pixels))
	if n == 0 {
		return 0
	}

	var mean, meanSq core.Vec3
	for _, p := range img.Pixels {
		mean.AddInPlace(p)
		meanSq.AddInPlace(p.MultiplyVec(p))
	}
	mean = mean.Divide(n)
	meanSq = meanSq.Divide(n)

	variance := meanSq.Subtract(mean.MultiplyVec(mean))
	return (variance.X + variance.Y + variance.Z) / 3
}
