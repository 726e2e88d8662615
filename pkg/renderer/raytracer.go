package renderer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// DefaultSeed seeds the sampler of a new Raytracer, so renders are reproducible
// unless the caller picks another seed
const DefaultSeed = 42

// ErrInvalidConfig is wrapped by every sampling configuration error
var ErrInvalidConfig = errors.New("invalid sampling config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Validate checks the preconditions of a render
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

// DefaultLogger implements core.Logger by writing to stderr, keeping stdout free
// for image data
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer handles the rendering process. It is single-threaded and owns its
// sampler; use one Raytracer per goroutine.
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	config     SamplingConfig
	integrator integrator.Integrator
	sampler    core.Sampler
	logger     core.Logger
}

// NewRaytracer creates a raytracer using path tracing and a sampler seeded with DefaultSeed
func NewRaytracer(world geometry.Shape, camera *Camera, config SamplingConfig) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, errors.New("raytracer needs a world")
	}
	if camera == nil {
		return nil, errors.New("raytracer needs a camera")
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(),
		sampler:    core.NewSeededSampler(DefaultSeed),
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// SetSampler replaces the random source
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger enables progress reporting. A nil logger disables it.
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

func (rt *Raytracer) logf(format string, args ...interface{}) {
	if rt.logger != nil {
		rt.logger.Printf(format, args...)
	}
}

// renderPixel averages SamplesPerPixel jittered samples for pixel (i, j), where
// j counts rows from the bottom of the image
func (rt *Raytracer) renderPixel(i, j int) core.Vec3 {
	var stats PixelStats

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(i) + rt.sampler.Get1D()) / float64(rt.config.Width)
		t := (float64(j) + rt.sampler.Get1D()) / float64(rt.config.Height)

		ray := rt.camera.GetRay(s, t, rt.sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler, rt.config.MaxDepth))
	}

	return stats.GetColor()
}

// RenderPass renders the full image once with multi-sampling
func (rt *Raytracer) RenderPass() (*Image, RenderStats) {
	img, stats, _ := rt.RenderPassContext(context.Background())
	return img, stats
}

// RenderPassContext is RenderPass with cancellation checked before every scanline.
// A cancelled render returns no image and the context's error.
func (rt *Raytracer) RenderPassContext(ctx context.Context) (*Image, RenderStats, error) {
	startTime := time.Now()
	img := NewImage(rt.config.Width, rt.config.Height)

	// Scanlines run top to bottom, so j counts down from the top row
	for j := rt.config.Height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			rt.logf("Render cancelled with %d scanlines remaining\n", j+1)
			return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", err)
		}
		rt.logf("Scanlines remaining: %d\n", j+1)
		for i := 0; i < rt.config.Width; i++ {
			img.Set(i, rt.config.Height-1-j, rt.renderPixel(i, j))
		}
	}
	rt.logf("Done.\n")

	totalPixels := rt.config.Width * rt.config.Height
	return img, RenderStats{
		TotalPixels:    totalPixels,
		TotalSamples:   totalPixels * rt.config.SamplesPerPixel,
		AverageSamples: float64(rt.config.SamplesPerPixel),
		Duration:       time.Since(startTime),
	}, nil
}
