package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "\nAvailable scenes: %v\nAvailable integrators: %v\n", scene.List(), integrator.Names())
			return
		}
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run renders one image as configured by args and the environment. Progress and
// status go to stderr; stdout only ever carries image data.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, cfg)

	raytracer, err := selectedScene.NewRaytracer()
	if err != nil {
		return err
	}
	integ, err := integrator.New(cfg.Integrator)
	if err != nil {
		return err
	}
	raytracer.SetIntegrator(integ)
	raytracer.SetSampler(core.NewSeededSampler(cfg.Seed))
	raytracer.SetLogger(renderer.NewDefaultLogger())

	sampling := raytracer.Config()
	log.Printf("Rendering %q (%d spheres) at %dx%d, %d samples, depth %d, %s integrator, seed %d",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), sampling.Width, sampling.Height,
		sampling.SamplesPerPixel, sampling.MaxDepth, cfg.Integrator, cfg.Seed)

	img, stats, err := raytracer.RenderPassContext(ctx)
	if err != nil {
		return err
	}
	log.Printf("Render completed in %v (%d samples over %d pixels)", stats.Duration, stats.TotalSamples, stats.TotalPixels)

	data, err := output.Encode(img)
	if err != nil {
		return err
	}

	now := time.Now()
	path := cfg.OutputPath
	if path == "" {
		path = output.DefaultPath(selectedScene.Name, now)
	}
	if err := output.Write(path, data, stdout); err != nil {
		return err
	}
	if path != output.Stdout {
		log.Printf("Render saved as %s", path)
	}

	if cfg.S3.Enabled() {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return err
		}
		uploader.SetLogger(log.Default())

		key := cfg.S3.Key
		if key == "" {
			key = output.DefaultKey(selectedScene.Name, now)
		}
		if err := uploader.Upload(ctx, key, data); err != nil {
			return err
		}
	}
	return nil
}

// createScene loads the scene file when one is given, otherwise the named built-in scene
func createScene(cfg *config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return scene.Load(cfg.SceneFile)
	}
	return scene.New(cfg.SceneName)
}

// applyOverrides replaces scene defaults with any non-zero values from cfg
func applyOverrides(s *scene.Scene, cfg *config.Config) {
	if cfg.Width > 0 {
		s.SetWidth(cfg.Width)
	}
	if cfg.SamplesPerPixel > 0 {
		s.Sampling.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		s.Sampling.MaxDepth = cfg.MaxDepth
	}
}
