package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrUnknownFormat is returned by SaveImage for formats other than png and ppm
var ErrUnknownFormat = errors.New("unknown image format")

// ToneMap converts an averaged linear color to 8-bit RGBA.
// Gamma 2 (square root) is applied, then each channel is clamped to [0, 0.999]
// and scaled by 256 so that 1.0 maps to 255. NaN channels map to 0.
func ToneMap(c core.Color) color.RGBA {
	c = core.NewColor(nanToZero(c.X), nanToZero(c.Y), nanToZero(c.Z))
	c = c.GammaCorrect(2.0).Clamp(0.0, 0.999)

	return color.RGBA{
		R: uint8(256 * c.X),
		G: uint8(256 * c.Y),
		B: uint8(256 * c.Z),
		A: 255,
	}
}

func nanToZero(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	return nil
}

// WritePPM encodes img as an ASCII (P3) PPM, top row first
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing PPM: %w", err)
	}
	return nil
}

// SaveImage writes img to filename in the given format ("png" or "ppm")
func SaveImage(filename, format string, img image.Image) error {
	var encode func(io.Writer, image.Image) error
	switch format {
	case "png":
		encode = WritePNG
	case "ppm":
		encode = WritePPM
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
