package renderer

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// constantSampler returns the same value for every dimension
type constantSampler struct{ v float64 }

func (s constantSampler) Get1D() float64 { return s.v }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.v, s.v)
}
func (s constantSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.v, s.v, s.v)
}

// recordingLogger keeps every formatted message
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}
