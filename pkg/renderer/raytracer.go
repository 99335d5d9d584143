package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig controls how the sample grid is split across workers
type RenderConfig struct {
	TileSize   int   // Edge length of square tiles in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile N draws from the stream seeded with Seed+N
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// MergeRenderConfig returns base with every non-zero field of override applied.
// A zero Seed in override keeps base's seed; callers taking an explicit seed
// from the user assign it after merging.
func MergeRenderConfig(base, override RenderConfig) RenderConfig {
	result := base
	if override.TileSize != 0 {
		result.TileSize = override.TileSize
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Raytracer drives the full sample grid for a scene
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render samples every pixel of the scene in parallel tiles and returns the tone-mapped image.
// The result depends only on the scene and Seed, never on the number of workers.
// A cancelled context abandons the render and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	samplingConfig := rt.scene.SamplingConfig
	if err := samplingConfig.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	if rt.config.TileSize <= 0 {
		return nil, RenderStats{}, fmt.Errorf("tile size must be positive, got %d", rt.config.TileSize)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	width, height := samplingConfig.Width, samplingConfig.Height
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	pool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %q at %dx%d, %d samples/pixel, depth %d (%d tiles, %d workers)...\n",
		rt.scene.Name, width, height, samplingConfig.SamplesPerPixel, samplingConfig.MaxDepth,
		len(tiles), pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     taskID,
			PixelStats: pixelStats,
		})
	}

	var stats RenderStats
	var renderErr error
	for done := 1; done <= len(tiles); done++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
				cancel() // stop the remaining tiles early
			}
			continue
		}
		stats.add(result.Stats)

		// Report every tenth of the grid
		if done*10/len(tiles) != (done-1)*10/len(tiles) {
			rt.logger.Printf("  %3d%% (%d/%d tiles)\n", done*100/len(tiles), done, len(tiles))
		}
	}
	pool.Stop()

	if renderErr != nil {
		rt.logger.Printf("Render of %q abandoned: %v\n", rt.scene.Name, renderErr)
		return nil, RenderStats{}, renderErr
	}

	stats.Duration = time.Since(startTime)
	stats.finalize()
	rt.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Duration, stats.AverageSamples)

	return assembleImage(pixelStats, width, height), stats, nil
}

// assembleImage averages and tone maps every pixel
func assembleImage(pixelStats [][]PixelStats, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ToneMap(pixelStats[y][x].GetColor()))
		}
	}
	return img
}
