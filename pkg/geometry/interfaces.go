package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the intersection with the smallest t strictly inside (tMin, tMax),
// or false when there is none.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
