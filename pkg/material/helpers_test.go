package material

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
)

// constantSampler returns the same value for every dimension
type constantSampler struct{ v float64 }

func (s constantSampler) Get1D() float64 { return s.v }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.v, s.v)
}
func (s constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.v, s.v, s.v)
}
