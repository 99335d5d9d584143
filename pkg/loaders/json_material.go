package loaders

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ParseMaterial builds a material from its JSON description:
//
//	{"type": "lambertian", "albedo": [r, g, b]}
//	{"type": "metal", "albedo": [r, g, b], "fuzz": 0.3}
//	{"type": "dielectric", "refractiveIndex": 1.5}
func ParseMaterial(desc gjson.Result) (core.Material, error) {
	if !desc.IsObject() {
		return nil, fmt.Errorf("%w: material must be an object", ErrInvalidScene)
	}

	switch matType := desc.Get("type").String(); matType {
	case "lambertian":
		albedo, err := requireVec3(desc, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil

	case "metal":
		albedo, err := requireVec3(desc, "albedo")
		if err != nil {
			return nil, err
		}
		// fuzz is optional; a missing value is a mirror
		fuzz := 0.0
		if field := desc.Get("fuzz"); field.Exists() {
			if fuzz, err = requireNumber(desc, "fuzz"); err != nil {
				return nil, err
			}
		}
		return material.NewMetal(albedo, fuzz), nil

	case "dielectric":
		ir, err := requireNumber(desc, "refractiveIndex")
		if err != nil {
			return nil, err
		}
		if ir <= 0 {
			return nil, fmt.Errorf("%w: refractiveIndex must be positive", ErrInvalidScene)
		}
		return material.NewDielectric(ir), nil

	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, matType)
	}
}
