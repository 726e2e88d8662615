package scene

import (
	"fmt"
	"sort"
)

var builtins = map[string]func() *Scene{
	"default":     NewDefaultScene,
	"random":      NewRandomScene,
	"two-spheres": NewTwoSpheresScene,
}

// New builds the built-in scene registered under name
func New(name string) (*Scene, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownScene, name, List())
	}
	return ctor(), nil
}

// List returns the built-in scene names in sorted order
func List() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
