package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of every trace. It keeps a scattered ray from
// re-hitting the surface it left because of floating-point error.
const ShadowAcneEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray from world.
	// depth is the remaining bounce budget.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3
}

// Gradient is the sky seen by rays that escape the scene. It blends linearly from
// Horizon (straight down) to Zenith (straight up).
type Gradient struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// DefaultSky returns the white-to-sky-blue background
func DefaultSky() Gradient {
	return Gradient{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background color for a ray direction
func (g Gradient) Color(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return g.Horizon.Multiply(1.0 - t).Add(g.Zenith.Multiply(t))
}
