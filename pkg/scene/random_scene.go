package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// RandomSceneSeed fixes the layout of the random scene so its name always means the same image
const RandomSceneSeed = 1

// NewRandomScene creates a ground sphere covered by a grid of small random spheres
// plus three large ones: glass, diffuse and mirror
func NewRandomScene() *Scene {
	sampler := core.NewSeededSampler(RandomSceneSeed)

	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	clearance := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			// Keep the space around the big metal sphere clear
			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec(sampler, 0, 1).MultiplyVec(core.RandomVec(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec(sampler, 0.5, 1)
				mat = material.NewMetal(albedo, core.RandomRange(sampler, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	s := &Scene{
		Name: "random",
		Camera: renderer.CameraConfig{
			Center:        core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20.0,
			AspectRatio:   3.0 / 2.0,
			Aperture:      0.1,
			FocusDistance: 10.0,
		},
		World: world,
		Sampling: renderer.SamplingConfig{
			SamplesPerPixel: 50,
			MaxDepth:        50,
		},
	}
	s.SetWidth(600)
	return s
}
