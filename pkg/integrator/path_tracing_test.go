package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// noSampler fails the test if any random value is drawn
type noSampler struct{}

func (noSampler) Get1D() float64   { panic("unexpected random draw") }
func (noSampler) Get2D() core.Vec2 { panic("unexpected random draw") }
func (noSampler) Get3D() core.Vec3 { panic("unexpected random draw") }

// absorber swallows every ray
type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{Attenuation: core.NewColor(1, 1, 1)}, false
}

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestPathTracing_BackgroundGradient(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"Straight up is sky blue", core.NewVec3(0, 1, 0), core.NewColor(0.5, 0.7, 1.0)},
		{"Straight down is white", core.NewVec3(0, -1, 0), core.NewColor(1, 1, 1)},
		{"Horizon is the midpoint", core.NewVec3(1, 0, 0), core.NewColor(0.75, 0.85, 1.0)},
		{"Unnormalized direction", core.NewVec3(0, 10, 0), core.NewColor(0.5, 0.7, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			got := pt.RayColor(ray, world, 50, noSampler{})
			if diff := cmp.Diff(tt.expected, got, approx); diff != "" {
				t.Errorf("color mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathTracing_SkyEndpointIsExact(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), geometry.NewShapeList(), 50, noSampler{})
	if got != core.NewColor(0.5, 0.7, 1.0) {
		t.Errorf("Expected exactly (0.5, 0.7, 1.0), got %v", got)
	}
}

func TestPathTracing_ZeroDepthIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	worlds := map[string]core.Shape{
		"empty":   geometry.NewShapeList(),
		"diffuse": geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))),
	}

	for name, world := range worlds {
		t.Run(name, func(t *testing.T) {
			for _, dir := range []core.Vec3{core.NewVec3(0, 1, 0), core.NewVec3(0, 0, -1)} {
				got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), world, 0, noSampler{})
				if got != (core.Color{}) {
					t.Errorf("Expected black at depth 0, got %v", got)
				}
			}
		})
	}
}

func TestPathTracing_Absorption(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, absorber{}))

	got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, 50, noSampler{})
	if got != (core.Color{}) {
		t.Errorf("Expected black for absorbed ray, got %v", got)
	}
}

func TestPathTracing_MirrorReflectsBackground(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	albedo := core.NewColor(0.8, 0.6, 0.2)
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(albedo, 0)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Reflected straight back along +z, which sees the horizon color
	expected := albedo.MultiplyVec(core.NewColor(0.75, 0.85, 1.0))

	first := pt.RayColor(ray, world, 50, noSampler{})
	if diff := cmp.Diff(expected, first, approx); diff != "" {
		t.Errorf("color mismatch (-want +got):\n%s", diff)
	}

	second := pt.RayColor(ray, world, 50, noSampler{})
	if first != second {
		t.Errorf("Tracing the same ray twice differed: %v vs %v", first, second)
	}
}

func TestPathTracing_DepthExhaustionInsideMirror(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMetal(core.NewColor(1, 1, 1), 0)))

	// The ray bounces between opposite walls forever and is cut off
	got := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), world, 50, noSampler{})
	if got != (core.Color{}) {
		t.Errorf("Expected black after depth exhaustion, got %v", got)
	}

	// With one bounce of budget the ray never reaches the sky either
	got = pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), world, 1, noSampler{})
	if got != (core.Color{}) {
		t.Errorf("Expected black with a single bounce, got %v", got)
	}
}

func TestPathTracing_DepthOneSeesOnlyDirectBackground(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(core.NewColor(1, 1, 1), 0)))

	hitRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if got := pt.RayColor(hitRay, world, 1, noSampler{}); got != (core.Color{}) {
		t.Errorf("Expected black when the only bounce is spent on the hit, got %v", got)
	}
	if got := pt.RayColor(hitRay, world, 2, noSampler{}); got == (core.Color{}) {
		t.Error("Expected background after one reflection with depth 2")
	}
}

// recursiveRayColor is the textbook recursive estimator used as a reference
func recursiveRayColor(pt *PathTracingIntegrator, ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Color {
	if depth <= 0 {
		return core.Color{}
	}
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundColor(ray)
	}
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}
	return scatter.Attenuation.MultiplyVec(recursiveRayColor(pt, scatter.Scattered, world, depth-1, sampler))
}

func TestPathTracing_MatchesRecursiveEstimator(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	)

	loopSampler := core.NewSeededSampler(99)
	recSampler := core.NewSeededSampler(99)
	dirSampler := core.NewSeededSampler(5)

	for i := 0; i < 500; i++ {
		dir := core.NewVec3(core.RandomRange(dirSampler, -1, 1), core.RandomRange(dirSampler, -0.5, 0.5), -1)
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)

		got := pt.RayColor(ray, world, 10, loopSampler)
		want := recursiveRayColor(pt, ray, world, 10, recSampler)
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Fatalf("loop and recursive estimators disagree (-want +got):\n%s", diff)
		}
	}
}

func TestPathTracing_ColorsStayFinite(t *testing.T) {
	pt := NewPathTracingIntegrator(DefaultBackground())
	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)
	sampler := core.NewSeededSampler(7)

	for i := 0; i < 2000; i++ {
		dir := core.RandomUnitVector(sampler)
		c := pt.RayColor(core.NewRay(core.NewVec3(13, 2, 3), dir), world, 50, sampler)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
				t.Fatalf("Color component out of range: %v", c)
			}
		}
	}
}
