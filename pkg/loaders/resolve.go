package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// ResolveScene builds a scene from a built-in ID, "json:<name>" (a file in scenesDir)
// or a path ending in .json. The seed only affects built-in scenes with random content.
func ResolveScene(id, scenesDir string, seed int64) (*scene.Scene, error) {
	if id == "" {
		return nil, fmt.Errorf("no scene specified")
	}

	path := ""
	if name, ok := strings.CutPrefix(id, "json:"); ok {
		path = filepath.Join(scenesDir, name+".json")
	} else if strings.HasSuffix(id, ".json") {
		path = id
	}

	if path == "" {
		return scene.Lookup(id, seed)
	}

	s, err := LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return s, nil
}

// SceneName returns the short name used for output paths:
// "json:foo" and "dir/foo.json" both become "foo".
func SceneName(id string) string {
	if name, ok := strings.CutPrefix(id, "json:"); ok {
		return name
	}
	if strings.HasSuffix(id, ".json") {
		return strings.TrimSuffix(filepath.Base(id), ".json")
	}
	return id
}
