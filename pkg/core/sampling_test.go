package core

import (
	"errors"
	"math"
	"testing"
)

// stuckSampler always returns the same value, which lets tests drive rejection loops
// into their attempt limit.
type stuckSampler struct{ v float64 }

func (s stuckSampler) Get1D() float64 { return s.v }
func (s stuckSampler) Get2D() Vec2    { return NewVec2(s.v, s.v) }
func (s stuckSampler) Get3D() Vec3    { return NewVec3(s.v, s.v, s.v) }

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1 {
			t.Fatalf("point %v outside unit ball", p)
		}
		mean.AddInPlace(p)
	}
	mean = mean.Divide(n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected mean near origin, got %v", mean)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 5000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("disk sample has z=%f", p.Z)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("point %v outside unit disk", p)
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	sampler := NewSeededSampler(42)
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("unit vector %v has length %f", v, v.Length())
		}
		mean.AddInPlace(v)
	}
	if mean.Divide(n).Length() > 0.02 {
		t.Errorf("unit vectors are not uniformly spread, mean %v", mean.Divide(n))
	}
}

func TestSampleOnUnitSphere_Poles(t *testing.T) {
	if p := SampleOnUnitSphere(NewVec2(0, 1)); math.Abs(p.Z-1) > 1e-12 {
		t.Errorf("Expected north pole, got %v", p)
	}
	if p := SampleOnUnitSphere(NewVec2(0.25, 0)); math.Abs(p.Z+1) > 1e-12 {
		t.Errorf("Expected south pole, got %v", p)
	}
}

func TestRandomVec_Bounds(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		v := RandomVec(sampler, 0.5, 1)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0.5 || c > 1 {
				t.Fatalf("component %f outside [0.5, 1]", c)
			}
		}
	}
}

func TestRejectionSampling_PanicsWhenExhausted(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Sampler) Vec3
	}{
		{"unit sphere", RandomInUnitSphere},
		{"unit disk", RandomInUnitDisk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok {
					t.Fatalf("Expected panic with error, got %v", r)
				}
				var invariant *InvariantError
				if !errors.As(err, &invariant) {
					t.Errorf("Expected *InvariantError, got %T", err)
				}
				if !errors.Is(err, ErrSamplingExhausted) {
					t.Errorf("Expected ErrSamplingExhausted, got %v", err)
				}
			}()

			// 0.99 maps to the corner (0.98, 0.98, 0.98), which is always rejected
			tt.fn(stuckSampler{v: 0.99})
		})
	}
}
