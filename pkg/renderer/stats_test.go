package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestPixelStats_AveragesSamples(t *testing.T) {
	var ps PixelStats
	if got := ps.GetColor(); got != (core.Color{}) {
		t.Errorf("empty pixel color = %v, want black", got)
	}

	ps.AddSample(core.NewColor(1, 0, 0.5))
	ps.AddSample(core.NewColor(0, 1, 0.5))

	if ps.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", ps.SampleCount)
	}
	if got, want := ps.GetColor(), core.NewColor(0.5, 0.5, 0.5); got != want {
		t.Errorf("GetColor() = %v, want %v", got, want)
	}
}

func TestRenderStats_Finalize(t *testing.T) {
	var stats RenderStats
	stats.add(RenderStats{TotalPixels: 4, TotalSamples: 40, TilesRendered: 1})
	stats.add(RenderStats{TotalPixels: 2, TotalSamples: 20, TilesRendered: 1})
	stats.finalize()

	if stats.TotalPixels != 6 || stats.TotalSamples != 60 || stats.TilesRendered != 2 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.AverageSamples != 10 {
		t.Errorf("AverageSamples = %v, want 10", stats.AverageSamples)
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	// Red 0.2126, green 0.7152, blue 0.0722 and black average to 0.25
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	if math.Abs(avgLum-0.25) > 1e-4 {
		t.Errorf("Expected average luminosity %f, got %f", 0.25, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	if math.Abs(avgLum-1.0) > 1e-4 {
		t.Errorf("Expected average luminosity %f, got %f", 1.0, avgLum)
	}
}
