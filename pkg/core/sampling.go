package core

import (
	"math"
	"math/rand"
)

// MaxRejectionAttempts bounds every rejection-sampling loop. The acceptance rate of
// the ball sampler is about 52%, so hitting this limit means the sampler is broken.
const MaxRejectionAttempts = 10000

// Vec2 is a pair of sample values
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a uniform value in [minVal, maxVal)
func RandomRange(sampler Sampler, minVal, maxVal float64) float64 {
	return minVal + (maxVal-minVal)*sampler.Get1D()
}

// RandomVec returns a vector uniformly distributed in the box [minVal, maxVal]^3
func RandomVec(sampler Sampler, minVal, maxVal float64) Vec3 {
	u := sampler.Get3D()
	return NewVec3(
		minVal+(maxVal-minVal)*u.X,
		minVal+(maxVal-minVal)*u.Y,
		minVal+(maxVal-minVal)*u.Z,
	)
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit ball
// using rejection sampling from the [-1,1]^3 cube.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		p := RandomVec(sampler, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	panic(newSamplingInvariant("RandomInUnitSphere"))
}

// RandomInUnitDisk returns a point uniformly distributed inside the unit disk in the
// z=0 plane using rejection sampling (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for i := 0; i < MaxRejectionAttempts; i++ {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
	panic(newSamplingInvariant("RandomInUnitDisk"))
}

// RandomUnitVector returns a uniform direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return SampleOnUnitSphere(sampler.Get2D())
}

// SampleOnUnitSphere maps two uniform values to a uniform point on the unit sphere:
// azimuth = 2*pi*u, z = 2*v - 1, r = sqrt(1 - z^2)
func SampleOnUnitSphere(sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	z := 2.0*sample.Y - 1.0
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
