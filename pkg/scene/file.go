package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Color is a linear RGB triple in a scene file. It is written as [r, g, b] and
// read from either that form or an SVG colour name such as "steelblue".
type Color core.Vec3

// MarshalJSON writes the color as a three-element array
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{c.X, c.Y, c.Z})
}

// UnmarshalJSON accepts [r, g, b] or a colour name
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown colour name %q", name)
		}
		*c = Color{X: float64(rgba.R) / 255, Y: float64(rgba.G) / 255, Z: float64(rgba.B) / 255}
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("colour must be [r, g, b] or a name: %w", err)
	}
	*c = Color{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	return nil
}

// Point is a position or direction written as [x, y, z]
type Point core.Vec3

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{p.X, p.Y, p.Z})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var xyz [3]float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return fmt.Errorf("point must be [x, y, z]: %w", err)
	}
	*p = Point{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// File is the on-disk form of a Scene
type File struct {
	Name     string       `json:"name"`
	Camera   CameraFile   `json:"camera"`
	Sampling SamplingFile `json:"sampling"`
	Spheres  []SphereFile `json:"spheres"`
}

// CameraFile mirrors renderer.CameraConfig
type CameraFile struct {
	Center        Point   `json:"center"`
	LookAt        Point   `json:"lookAt"`
	Up            Point   `json:"up"`
	VFov          float64 `json:"vfov"`
	AspectRatio   float64 `json:"aspectRatio"`
	Aperture      float64 `json:"aperture,omitempty"`
	FocusDistance float64 `json:"focusDistance,omitempty"`
}

// SamplingFile mirrors renderer.SamplingConfig. A zero height is derived from
// the width and the camera aspect ratio.
type SamplingFile struct {
	Width           int `json:"width"`
	Height          int `json:"height,omitempty"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

// SphereFile is one sphere and its material
type SphereFile struct {
	Center   Point        `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// MaterialFile holds the parameters of any material; Type selects which apply
type MaterialFile struct {
	Type            string  `json:"type"`
	Albedo          *Color  `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene file %s: %w", path, err)
	}

	s, err := f.Scene()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as indented JSON
func Save(path string, s *Scene) error {
	f, err := ToFile(s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write scene file: %w", err)
	}
	return nil
}

// Scene converts the file form into a validated Scene
func (f File) Scene() (*Scene, error) {
	world := geometry.NewList()
	for i, sf := range f.Spheres {
		// Negative radii are hollow shells; zero has no surface normal
		if sf.Radius == 0 {
			return nil, fmt.Errorf("%w %q: sphere %d: radius must be non-zero", ErrInvalidConfig, f.Name, i)
		}
		mat, err := sf.Material.material()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(geometry.NewSphere(core.Vec3(sf.Center), sf.Radius, mat))
	}

	s := &Scene{
		Name: f.Name,
		Camera: renderer.CameraConfig{
			Center:        core.Vec3(f.Camera.Center),
			LookAt:        core.Vec3(f.Camera.LookAt),
			Up:            core.Vec3(f.Camera.Up),
			VFov:          f.Camera.VFov,
			AspectRatio:   f.Camera.AspectRatio,
			Aperture:      f.Camera.Aperture,
			FocusDistance: f.Camera.FocusDistance,
		},
		World: world,
		Sampling: renderer.SamplingConfig{
			Width:           f.Sampling.Width,
			Height:          f.Sampling.Height,
			SamplesPerPixel: f.Sampling.SamplesPerPixel,
			MaxDepth:        f.Sampling.MaxDepth,
		},
	}
	if s.Sampling.Height == 0 {
		s.SetWidth(s.Sampling.Width)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (mf MaterialFile) material() (material.Material, error) {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	if mf.Albedo != nil {
		albedo = core.Vec3(*mf.Albedo)
	}

	switch mf.Type {
	case "lambertian":
		return material.NewLambertian(albedo), nil
	case "metal":
		return material.NewMetal(albedo, mf.Fuzz), nil
	case "dielectric":
		if mf.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive refractiveIndex, got %g", mf.RefractiveIndex)
		}
		return material.NewDielectric(mf.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mf.Type)
	}
}

// ToFile converts a Scene into its file form. Only spheres can be written.
func ToFile(s *Scene) (File, error) {
	f := File{
		Name: s.Name,
		Camera: CameraFile{
			Center:        Point(s.Camera.Center),
			LookAt:        Point(s.Camera.LookAt),
			Up:            Point(s.Camera.Up),
			VFov:          s.Camera.VFov,
			AspectRatio:   s.Camera.AspectRatio,
			Aperture:      s.Camera.Aperture,
			FocusDistance: s.Camera.FocusDistance,
		},
		Sampling: SamplingFile{
			Width:           s.Sampling.Width,
			Height:          s.Sampling.Height,
			SamplesPerPixel: s.Sampling.SamplesPerPixel,
			MaxDepth:        s.Sampling.MaxDepth,
		},
	}

	if s.World == nil {
		return f, nil
	}
	for i, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return File{}, fmt.Errorf("shape %d: cannot save %T", i, shape)
		}
		f.Spheres = append(f.Spheres, SphereFile{
			Center:   Point(sphere.Center),
			Radius:   sphere.Radius,
			Material: materialFile(sphere.Material),
		})
	}
	return f, nil
}

func materialFile(mat material.Material) MaterialFile {
	mf := MaterialFile{Type: mat.Kind()}
	switch m := mat.(type) {
	case material.Lambertian:
		albedo := Color(m.Albedo)
		mf.Albedo = &albedo
	case material.Metal:
		albedo := Color(m.Albedo)
		mf.Albedo = &albedo
		mf.Fuzz = m.Fuzzness
	case material.Dielectric:
		mf.RefractiveIndex = m.RefractiveIndex
	}
	return mf
}
