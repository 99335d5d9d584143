package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownScene is returned by Lookup for names that are not built in
var ErrUnknownScene = errors.New("unknown scene")

type builtin struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtins = []builtin{
	{
		info: SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse, hollow glass and metal spheres on a ground sphere"},
		build: func(int64) *Scene {
			return NewDefaultScene()
		},
	},
	{
		info:  SceneInfo{ID: "random", Name: "Random Spheres", Description: "Three feature spheres in a field of small random spheres"},
		build: func(seed int64) *Scene { return NewRandomScene(seed) },
	},
	{
		info:  SceneInfo{ID: "motion", Name: "Motion Blur", Description: "Random sphere field with diffuse spheres moving during the exposure"},
		build: func(seed int64) *Scene { return NewMotionBlurScene(seed) },
	},
	{
		info: SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"},
		build: func(int64) *Scene {
			return NewSphereGridScene()
		},
	},
}

// BuiltinScenes lists the scenes that can be built by ID
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = "Built-in Scenes"
		info.Type = "builtin"
		infos = append(infos, info)
	}
	return infos
}

// Lookup builds the built-in scene with the given ID.
// The seed only affects scenes with random content.
func Lookup(id string, seed int64) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}
