package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ShadowAcneEpsilon is the smallest ray parameter accepted as a hit.
// It keeps scattered rays from re-hitting the surface they start on.
const ShadowAcneEpsilon = 0.001

// BackgroundConfig is the vertical sky gradient seen by rays that escape the scene
type BackgroundConfig struct {
	TopColor    core.Color // Color straight up
	BottomColor core.Color // Color straight down
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() BackgroundConfig {
	return BackgroundConfig{
		TopColor:    core.NewColor(0.5, 0.7, 1.0),
		BottomColor: core.NewColor(1.0, 1.0, 1.0),
	}
}

// PathTracingIntegrator implements unidirectional path tracing with a depth cutoff
type PathTracingIntegrator struct {
	background BackgroundConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background BackgroundConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		background: background,
	}
}

// RayColor computes the color for a single ray.
// Each bounce multiplies the material attenuation into the path throughput; the path ends
// in the background on a miss, or black on absorption or when depth runs out.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewColor(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.BackgroundColor(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Color{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached; no more light is gathered
	return core.Color{}
}

// BackgroundColor returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.background.BottomColor.Lerp(pt.background.TopColor, t)
}
