package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

func writeSceneFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write scene file: %v", err)
	}
	return path
}

func TestSaveLoadDefaultScene(t *testing.T) {
	original := NewDefaultScene()
	path := filepath.Join(t.TempDir(), "default.json")

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want, _ := ToFile(original)
	got, err := ToFile(loaded)
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("scene changed on disk (-want +got):\n%s", diff)
	}
}

func TestLoadColourNames(t *testing.T) {
	path := writeSceneFile(t, `{
  "name": "named",
  "camera": {"center": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "vfov": 90, "aspectRatio": 2},
  "sampling": {"width": 40, "samplesPerPixel": 4, "maxDepth": 5},
  "spheres": [
    {"center": [0, 0, -1], "radius": 0.5, "material": {"type": "lambertian", "albedo": "Red"}},
    {"center": [1, 0, -1], "radius": 0.5, "material": {"type": "metal", "albedo": [0.8, 0.6, 0.2], "fuzz": 3}},
    {"center": [-1, 0, -1], "radius": -0.4, "material": {"type": "dielectric", "refractiveIndex": 1.5}}
  ]
}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Sampling.Height != 20 {
		t.Errorf("Expected height derived from aspect ratio, got %d", s.Sampling.Height)
	}
	if s.World.Len() != 3 {
		t.Fatalf("Expected 3 spheres, got %d", s.World.Len())
	}

	spheres := make([]*geometry.Sphere, 0, s.World.Len())
	for _, shape := range s.World.Shapes {
		spheres = append(spheres, shape.(*geometry.Sphere))
	}

	red := spheres[0].Material
	if diff := cmp.Diff(material.NewLambertian(core.NewVec3(1, 0, 0)), red); diff != "" {
		t.Errorf("named colour mismatch (-want +got):\n%s", diff)
	}

	// Fuzz is clamped by the metal constructor
	metal := spheres[1].Material.(material.Metal)
	if metal.Fuzzness != 1.0 {
		t.Errorf("Expected fuzz clamped to 1, got %f", metal.Fuzzness)
	}

	if r := spheres[2].Radius; r != -0.4 {
		t.Errorf("Expected negative radius to survive loading, got %f", r)
	}
}

func TestLoadErrors(t *testing.T) {
	camera := `"camera": {"center": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "vfov": 90, "aspectRatio": 2}`
	sampling := `"sampling": {"width": 40, "samplesPerPixel": 4, "maxDepth": 5}`

	tests := []struct {
		name     string
		contents string
		errText  string
	}{
		{"not json", `{`, "parse scene file"},
		{"unknown colour", `{` + camera + `,` + sampling + `, "spheres": [{"center": [0,0,-1], "radius": 1, "material": {"type": "lambertian", "albedo": "notacolour"}}]}`, "unknown colour name"},
		{"unknown material", `{` + camera + `,` + sampling + `, "spheres": [{"center": [0,0,-1], "radius": 1, "material": {"type": "plastic"}}]}`, "unknown material type"},
		{"glass without index", `{` + camera + `,` + sampling + `, "spheres": [{"center": [0,0,-1], "radius": 1, "material": {"type": "dielectric"}}]}`, "refractiveIndex"},
		{"malformed point", `{` + camera + `,` + sampling + `, "spheres": [{"center": "up", "radius": 1, "material": {"type": "lambertian"}}]}`, "point must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSceneFile(t, tt.contents))
			if err == nil || !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}

	pointSphere := `{` + camera + `,` + sampling + `, "spheres": [{"center": [0,0,-1], "radius": 0, "material": {"type": "lambertian"}}]}`
	if _, err := Load(writeSceneFile(t, pointSphere)); !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), "radius must be non-zero") {
		t.Errorf("Expected ErrInvalidConfig for a zero radius, got %v", err)
	}

	empty := `{` + camera + `,` + sampling + `, "spheres": []}`
	if _, err := Load(writeSceneFile(t, empty)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for an empty world, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
