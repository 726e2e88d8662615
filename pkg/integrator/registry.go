package integrator

import (
	"fmt"
	"sort"
)

var constructors = map[string]func() Integrator{
	"path":   func() Integrator { return NewPathTracingIntegrator() },
	"normal": func() Integrator { return NewNormalIntegrator() },
}

// New returns the integrator registered under name
func New(name string) (Integrator, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator %q (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Names returns the registered integrator names in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
