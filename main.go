package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// scenesDir holds the JSON scene files addressable as "json:<name>"
const scenesDir = "scenes"

// Config holds the command line options
type Config struct {
	SceneType string
	SceneFile string
	Width     int
	Samples   int
	Depth     int
	Workers   int
	TileSize  int
	Seed      int64
	Format    string
	Out       string
	List      bool
	Help      bool
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene: a built-in ID, 'json:<name>' from the scenes directory, or a .json path")
	flag.StringVar(&config.SceneFile, "file", "", "Load the scene from this JSON file (overrides -scene)")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels; height follows the camera aspect ratio (0 = scene default)")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.Depth, "depth", 0, "Maximum scatter depth per path (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&config.TileSize, "tile", 0, "Tile edge length in pixels (0 = default)")
	flag.Int64Var(&config.Seed, "seed", 42, "Random seed for scene generation and sampling")
	flag.StringVar(&config.Format, "format", "png", "Output format: 'png' or 'ppm'")
	flag.StringVar(&config.Out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flag.BoolVar(&config.List, "list", false, "List available scenes and exit")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if config.List {
		if err := listScenes(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Weekend Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Run with -list to include the scene files in ./scenes.")
}

func listScenes() error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Printf("%-24s %-20s %s\n", info.ID, info.DisplayName, info.Description)
	}
	return nil
}

// run renders the configured scene and writes the image
func run(ctx context.Context, config Config, logger core.Logger) error {
	sceneType := config.SceneType
	if config.SceneFile != "" {
		sceneType = config.SceneFile
	}

	selectedScene, err := createScene(sceneType, config.Seed)
	if err != nil {
		return err
	}
	if err := applyOverrides(selectedScene, config); err != nil {
		return err
	}

	renderConfig := renderer.MergeRenderConfig(renderer.DefaultRenderConfig(), renderer.RenderConfig{
		TileSize:   config.TileSize,
		NumWorkers: config.Workers,
	})
	// Seed 0 is a real seed, not "unset"
	renderConfig.Seed = config.Seed
	pathTracer := integrator.NewPathTracingIntegrator(integrator.DefaultBackground())
	raytracer := renderer.NewRaytracer(selectedScene, pathTracer, renderConfig, logger)

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := config.Out
	if filename == "" {
		outputDir := createOutputDir(sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		filename = outputFilename(outputDir, config.Format, time.Now())
	}

	if err := renderer.SaveImage(filename, config.Format, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s (%d samples in %v)\n", filename, stats.TotalSamples, stats.Duration)
	return nil
}

// createScene resolves a scene by built-in ID, "json:<name>" or JSON file path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	return loaders.ResolveScene(sceneType, scenesDir, seed)
}

// applyOverrides folds the command line image settings into the scene
func applyOverrides(s *scene.Scene, config Config) error {
	if config.Width < 0 || config.Samples < 0 || config.Depth < 0 {
		return fmt.Errorf("width, samples and depth must not be negative")
	}
	if config.Width > 0 {
		s.SetWidth(config.Width)
	}
	s.SamplingConfig = scene.MergeSamplingConfig(s.SamplingConfig, scene.SamplingConfig{
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.Depth,
	})
	return s.SamplingConfig.Validate()
}

// createOutputDir names the per-scene output directory
func createOutputDir(sceneType string) string {
	return filepath.Join("output", loaders.SceneName(sceneType))
}

func outputFilename(dir, format string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format))
}
