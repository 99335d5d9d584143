package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	width, height, tileSize := 10, 7, 4
	tiles := NewTileGrid(width, height, tileSize, 42)

	if len(tiles) != 6 {
		t.Fatalf("expected 6 tiles (3x2), got %d", len(tiles))
	}

	coverage := make([][]int, height)
	for y := range coverage {
		coverage[y] = make([]int, width)
	}
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("tile %d has ID %d", i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				coverage[y][x]++
			}
		}
	}
	for y := range coverage {
		for x := range coverage[y] {
			if coverage[y][x] != 1 {
				t.Errorf("pixel (%d,%d) covered %d times", x, y, coverage[y][x])
			}
		}
	}

	// The last tile is clipped to the image edge
	if want := image.Rect(8, 4, 10, 7); tiles[5].Bounds != want {
		t.Errorf("last tile bounds = %v, want %v", tiles[5].Bounds, want)
	}
}

func TestNewTile_SeedsFromBaseAndID(t *testing.T) {
	tile := NewTile(3, image.Rect(0, 0, 1, 1), 100)
	reference := core.NewSeededSampler(103)

	for i := 0; i < 5; i++ {
		if got, want := tile.Sampler.Get1D(), reference.Get1D(); got != want {
			t.Fatalf("draw %d: got %v, want %v", i, got, want)
		}
	}
}
