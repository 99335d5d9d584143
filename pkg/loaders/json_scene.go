package loaders

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tidwall/gjson"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// ErrInvalidScene wraps every structural problem found in a scene description
var ErrInvalidScene = errors.New("invalid scene")

// LoadSceneFile loads a JSON scene description from disk
func LoadSceneFile(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return LoadScene(file)
}

// LoadScene reads a JSON scene description.
//
// Materials are declared once under "materials" and referenced by name from
// "objects", so many spheres share one material value.
func LoadScene(r io.Reader) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return ParseScene(data)
}

// ParseScene builds a scene from JSON bytes
func ParseScene(data []byte) (*scene.Scene, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidScene)
	}
	doc := gjson.ParseBytes(data)

	cameraConfig, err := parseCamera(doc.Get("camera"))
	if err != nil {
		return nil, err
	}

	samplingConfig, err := parseRender(doc.Get("render"), cameraConfig.AspectRatio)
	if err != nil {
		return nil, err
	}

	name := doc.Get("name").String()
	if name == "" {
		name = "json"
	}
	s := scene.New(name, cameraConfig, samplingConfig)

	materials, err := parseMaterials(doc.Get("materials"))
	if err != nil {
		return nil, err
	}

	for i, obj := range doc.Get("objects").Array() {
		shape, err := parseObject(obj, materials)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)
	}

	return s, nil
}

// parseCamera overlays the given fields onto the default camera
func parseCamera(cam gjson.Result) (geometry.CameraConfig, error) {
	config := geometry.DefaultCameraConfig()
	if !cam.Exists() {
		return config, nil
	}
	if !cam.IsObject() {
		return config, fmt.Errorf("%w: camera must be an object", ErrInvalidScene)
	}

	vectors := []struct {
		key string
		dst *core.Vec3
	}{
		{"lookFrom", &config.LookFrom},
		{"lookAt", &config.LookAt},
		{"up", &config.Up},
	}
	for _, v := range vectors {
		if field := cam.Get(v.key); field.Exists() {
			vec, err := parseVec3(field)
			if err != nil {
				return config, fmt.Errorf("camera %s: %w", v.key, err)
			}
			*v.dst = vec
		}
	}

	numbers := []struct {
		key string
		dst *float64
	}{
		{"vfov", &config.VFov},
		{"aspectRatio", &config.AspectRatio},
		{"aperture", &config.Aperture},
		{"focusDistance", &config.FocusDistance},
		{"time0", &config.Time0},
		{"time1", &config.Time1},
	}
	for _, n := range numbers {
		if field := cam.Get(n.key); field.Exists() {
			if field.Type != gjson.Number {
				return config, fmt.Errorf("%w: camera %s must be a number", ErrInvalidScene, n.key)
			}
			*n.dst = field.Float()
		}
	}

	if config.AspectRatio <= 0 {
		return config, fmt.Errorf("%w: camera aspectRatio must be positive", ErrInvalidScene)
	}

	return config, nil
}

// parseRender reads image size and sampling settings; height defaults from the aspect ratio
func parseRender(render gjson.Result, aspectRatio float64) (scene.SamplingConfig, error) {
	config := scene.DefaultSamplingConfig()
	config.Height = max(1, int(float64(config.Width)/aspectRatio))
	if !render.Exists() {
		return config, nil
	}

	for _, key := range []string{"width", "height", "samplesPerPixel", "maxDepth"} {
		if field := render.Get(key); field.Exists() && field.Type != gjson.Number {
			return config, fmt.Errorf("%w: render %s must be a number", ErrInvalidScene, key)
		}
	}

	if width := render.Get("width"); width.Exists() {
		config.Width = int(width.Int())
		config.Height = max(1, int(float64(config.Width)/aspectRatio))
	}
	if height := render.Get("height"); height.Exists() {
		config.Height = int(height.Int())
	}
	if spp := render.Get("samplesPerPixel"); spp.Exists() {
		config.SamplesPerPixel = int(spp.Int())
	}
	if depth := render.Get("maxDepth"); depth.Exists() {
		config.MaxDepth = int(depth.Int())
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return config, nil
}

// parseMaterials builds the named material table
func parseMaterials(materials gjson.Result) (map[string]core.Material, error) {
	table := make(map[string]core.Material)
	if !materials.Exists() {
		return table, nil
	}
	if !materials.IsObject() {
		return nil, fmt.Errorf("%w: materials must be an object keyed by name", ErrInvalidScene)
	}

	var parseErr error
	materials.ForEach(func(key, value gjson.Result) bool {
		mat, err := ParseMaterial(value)
		if err != nil {
			parseErr = fmt.Errorf("material %q: %w", key.String(), err)
			return false
		}
		table[key.String()] = mat
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return table, nil
}

// parseObject builds a sphere or moving sphere bound to a named material
func parseObject(obj gjson.Result, materials map[string]core.Material) (core.Shape, error) {
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: object must be a JSON object", ErrInvalidScene)
	}

	matName := obj.Get("material").String()
	mat, ok := materials[matName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown material %q", ErrInvalidScene, matName)
	}

	radius, err := requireNumber(obj, "radius")
	if err != nil {
		return nil, err
	}
	// Negative radii are allowed (hollow glass); zero yields NaN normals
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: radius must be a non-zero finite number", ErrInvalidScene)
	}

	switch objType := obj.Get("type").String(); objType {
	case "sphere":
		center, err := requireVec3(obj, "center")
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, radius, mat), nil

	case "movingSphere":
		center0, err := requireVec3(obj, "center0")
		if err != nil {
			return nil, err
		}
		center1, err := requireVec3(obj, "center1")
		if err != nil {
			return nil, err
		}
		time0, err := requireNumber(obj, "time0")
		if err != nil {
			return nil, err
		}
		time1, err := requireNumber(obj, "time1")
		if err != nil {
			return nil, err
		}
		return geometry.NewMovingSphere(center0, center1, time0, time1, radius, mat), nil

	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidScene, objType)
	}
}

func requireNumber(obj gjson.Result, key string) (float64, error) {
	field := obj.Get(key)
	if field.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidScene, key)
	}
	return field.Float(), nil
}

func requireVec3(obj gjson.Result, key string) (core.Vec3, error) {
	field := obj.Get(key)
	if !field.Exists() {
		return core.Vec3{}, fmt.Errorf("%w: missing %s", ErrInvalidScene, key)
	}
	vec, err := parseVec3(field)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("%s: %w", key, err)
	}
	return vec, nil
}

// parseVec3 reads a three-number JSON array
func parseVec3(field gjson.Result) (core.Vec3, error) {
	if !field.IsArray() {
		return core.Vec3{}, fmt.Errorf("%w: expected [x, y, z]", ErrInvalidScene)
	}
	values := field.Array()
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidScene, len(values))
	}
	for _, v := range values {
		if v.Type != gjson.Number {
			return core.Vec3{}, fmt.Errorf("%w: component %q is not a number", ErrInvalidScene, v.Raw)
		}
	}
	return core.NewVec3(values[0].Float(), values[1].Float(), values[2].Float()), nil
}
