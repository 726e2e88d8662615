package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// NormalIntegrator shades each hit with its surface normal mapped into [0,1]^3.
// It ignores materials and depth beyond the first hit, which makes it useful for
// checking geometry and camera setup.
type NormalIntegrator struct {
	Background Gradient
}

// NewNormalIntegrator creates a normal-shading integrator with the default sky
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{Background: DefaultSky()}
}

// RayColor returns 0.5*(normal+1) at the closest hit, or the sky on a miss
func (ni *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return ni.Background.Color(ray.Direction)
	}

	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
