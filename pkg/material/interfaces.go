package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material describes how a surface scatters light. The set of materials is closed:
// Lambertian, Metal and Dielectric. Materials are small immutable values and are
// copied into every shape and hit record that uses them.
type Material interface {
	// Scatter returns the attenuation and outgoing ray for rayIn striking hit,
	// or false if the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Kind returns a short name for the material, used in logs and scene files
	Kind() string

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the outward-facing side
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must point out of the surface (for a sphere, along the sign of its radius).
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
