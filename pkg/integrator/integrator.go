package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world,
	// following at most depth scatter events.
	RayColor(ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Color
}
