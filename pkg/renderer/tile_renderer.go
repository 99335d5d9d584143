package renderer

import (
	"context"
	"image"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// TileRenderer samples the pixels of one tile using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds takes SamplesPerPixel samples for every pixel within bounds.
// pixelStats is indexed [y][x] in image coordinates, where y grows downward;
// viewport v grows upward, so image row y samples scanline height-1-y.
// Tiles never overlap, so concurrent calls can share pixelStats.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) (RenderStats, error) {
	config := tr.scene.SamplingConfig
	camera := tr.scene.Camera
	world := tr.scene.World

	uScale := float64(max(1, config.Width-1))
	vScale := float64(max(1, config.Height-1))

	stats := RenderStats{
		TotalPixels:   bounds.Dx() * bounds.Dy(),
		TilesRendered: 1,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Abandon the tile between rows once the render is cancelled
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		j := config.Height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			for s := 0; s < config.SamplesPerPixel; s++ {
				u := (float64(i) + sampler.Get1D()) / uScale
				v := (float64(j) + sampler.Get1D()) / vScale
				ray := camera.GetRay(u, v, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, world, config.MaxDepth, sampler))
			}
			stats.TotalSamples += config.SamplesPerPixel
		}
	}

	return stats, nil
}
