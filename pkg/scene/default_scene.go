package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewDefaultScene creates a ground sphere with a diffuse, a hollow glass and a metal sphere
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 0.0, // Focus on the look-at point
	}

	// Create materials
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		// Hollow glass: the inner sphere has a negative radius so its normals face inward
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)

	s := &Scene{
		Name:   "default",
		Camera: cameraConfig,
		World:  world,
		Sampling: renderer.SamplingConfig{
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}
	s.SetWidth(400)
	return s
}

// NewTwoSpheresScene is a small sphere resting on a huge ground sphere, seen through
// a 4x2 viewport one unit down -z
func NewTwoSpheresScene() *Scene {
	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	s := &Scene{
		Name: "two-spheres",
		Camera: renderer.CameraConfig{
			Center:        core.NewVec3(0, 0, 0),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          90.0,
			AspectRatio:   2.0,
			Aperture:      0.0,
			FocusDistance: 1.0,
		},
		World: geometry.NewList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
		),
		Sampling: renderer.SamplingConfig{
			SamplesPerPixel: 10,
			MaxDepth:        10,
		},
	}
	s.SetWidth(400)
	return s
}
