package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// randomSceneCamera frames the random sphere field from a low angle
func randomSceneCamera(aperture float64, time0, time1 float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      aperture,
		FocusDistance: 10.0,
		Time0:         time0,
		Time1:         time1,
	}
}

// NewRandomScene creates the final scene: three large feature spheres among a field
// of small random spheres. The same seed always produces the same scene.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := randomSceneCamera(0.1, 0, 0)
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := New("random", cameraConfig, DefaultSamplingConfig())
	s.SetWidth(600)
	populateRandomField(s, core.NewSeededSampler(seed), false)
	return s
}

// NewMotionBlurScene is the random scene with its diffuse spheres bouncing upward
// while the shutter is open over [0, 1].
func NewMotionBlurScene(seed int64, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := randomSceneCamera(0.0, 0, 1)
	cameraConfig.AspectRatio = 16.0 / 9.0
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := New("motion", cameraConfig, DefaultSamplingConfig())
	s.SetWidth(400)
	populateRandomField(s, core.NewSeededSampler(seed), true)
	return s
}

// populateRandomField adds the ground, the 22x22 grid of small spheres and the three feature spheres
func populateRandomField(s *Scene, sampler core.Sampler, moving bool) {
	groundMaterial := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	// Shared by every small glass sphere
	glass := material.NewDielectric(1.5)
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			// Keep the small spheres clear of the big metal one
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				diffuse := material.NewLambertian(albedo)
				if moving {
					center2 := center.Add(core.NewVec3(0, core.RandomRange(sampler, 0, 0.5), 0))
					s.Add(geometry.NewMovingSphere(center, center2, 0.0, 1.0, 0.2, diffuse))
				} else {
					s.Add(geometry.NewSphere(center, 0.2, diffuse))
				}
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)
}
