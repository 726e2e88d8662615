package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape. A negative radius keeps the same surface but
// flips the outward normal inward, which is how hollow glass shells are built.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Roots solves |O + tD - C|^2 = r^2 using the half-b form and returns both
// roots in ascending order. ok is false when the ray misses the sphere.
func (s *Sphere) Roots(ray core.Ray) (t0, t1 float64, ok bool) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	near, far, ok := s.Roots(ray)
	if !ok {
		return nil, false
	}

	// Try the closer intersection point first
	root := near
	if root <= tMin || root >= tMax {
		root = far
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	hitRecord.SetFaceNormal(ray, s.OutwardNormal(hitRecord.Point))

	return hitRecord, true
}

// OutwardNormal returns the geometric normal at surface point p. Dividing by the
// signed radius points it inward for negative radii.
func (s *Sphere) OutwardNormal(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Divide(s.Radius)
}
