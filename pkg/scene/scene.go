package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a scene name is not registered
	ErrUnknownScene = errors.New("unknown scene")

	// ErrInvalidConfig wraps every scene validation failure
	ErrInvalidConfig = errors.New("invalid scene")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name     string
	Camera   renderer.CameraConfig
	World    *geometry.List
	Sampling renderer.SamplingConfig
}

// Validate checks the camera, sampling settings and world before a render starts
func (s *Scene) Validate() error {
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("%w %q: camera: %w", ErrInvalidConfig, s.Name, err)
	}
	if err := s.Sampling.Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidConfig, s.Name, err)
	}
	if s.World == nil || s.World.Len() == 0 {
		return fmt.Errorf("%w %q: world has no shapes", ErrInvalidConfig, s.Name)
	}
	return nil
}

// SetWidth changes the image width and derives the height from the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.Sampling.Width = width
	s.Sampling.Height = HeightFor(width, s.Camera.AspectRatio)
}

// HeightFor returns the image height for width at aspectRatio, at least one row
func HeightFor(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	height := int(float64(width) / aspectRatio)
	if height < 1 {
		height = 1
	}
	return height
}

// GetPrimitiveCount returns the number of spheres in the world
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// NewRaytracer validates the scene and builds a raytracer for it
func (s *Scene) NewRaytracer() (*renderer.Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return renderer.NewRaytracer(s.World, renderer.NewCamera(s.Camera), s.Sampling)
}
