package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	rayIn := core.NewRayAtTime(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -3), 0.3)
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// A mirror must not consume randomness
	scatter, didScatter := metal.Scatter(rayIn, hit, noSampler{})
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if scatter.Scattered.Direction != expected {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.Scattered.Time != 0.3 {
		t.Errorf("Expected time 0.3, got %f", scatter.Scattered.Time)
	}
}

func TestMetal_FuzzPerturbsReflection(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.5)
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// (0.75, 0.5, 0.5) maps to the in-sphere point (0.5, 0, 0)
	scatter, didScatter := metal.Scatter(rayIn, hit, newSequenceSampler(0.75, 0.5, 0.5))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}
	expected := core.NewVec3(0.25, 1, 0)
	if scatter.Scattered.Direction != expected {
		t.Errorf("Expected %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzIntoSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 1.0)
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// Grazing ray; the perturbation (0, -0.9, 0) drives the reflection into the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	_, didScatter := metal.Scatter(rayIn, hit, newSequenceSampler(0.5, 0.05, 0.5))
	if didScatter {
		t.Error("Expected absorption when fuzz pushes reflection below the surface")
	}
}
