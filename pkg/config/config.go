// Package config assembles a render configuration from built-in defaults, an
// optional .env file, the process environment and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// DefaultEnvFile is read when present; a missing default file is not an error
const DefaultEnvFile = ".env"

// ErrInvalid wraps every configuration error
var ErrInvalid = errors.New("invalid configuration")

// S3Config holds the destination for uploaded renders. Uploads are disabled
// when Bucket is empty.
type S3Config struct {
	Bucket    string
	Key       string // Object key; derived from the scene name when empty
	Region    string
	Endpoint  string // Custom endpoint for S3-compatible stores
	AccessKey string
	SecretKey string
}

// Enabled reports whether renders should be uploaded
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Config is the complete run configuration. Zero Width, SamplesPerPixel and
// MaxDepth keep the values of the selected scene.
type Config struct {
	SceneName       string
	SceneFile       string // JSON scene file; takes priority over SceneName
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Integrator      string
	OutputPath      string // "-" writes to stdout, empty picks a timestamped file
	S3              S3Config
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		SceneName:  "default",
		Seed:       42,
		Integrator: "path",
		S3:         S3Config{Region: "us-east-1"},
	}
}

// setting binds one configuration value to its flag and environment variable.
// Settings without a flag name are read from the environment only.
type setting struct {
	flag  string
	env   string
	usage string
	set   func(c *Config, value string) error
}

var settings = []setting{
	{"scene", "PT_SCENE", "Built-in scene name", func(c *Config, v string) error { c.SceneName = v; return nil }},
	{"scene-file", "PT_SCENE_FILE", "JSON scene file (overrides -scene)", func(c *Config, v string) error { c.SceneFile = v; return nil }},
	{"width", "PT_WIDTH", "Image width in pixels; height follows the camera aspect ratio", intSetter(func(c *Config, n int) { c.Width = n })},
	{"samples", "PT_SAMPLES", "Samples per pixel", intSetter(func(c *Config, n int) { c.SamplesPerPixel = n })},
	{"depth", "PT_DEPTH", "Maximum ray bounce depth", intSetter(func(c *Config, n int) { c.MaxDepth = n })},
	{"seed", "PT_SEED", "Random seed; the same seed renders the same image", func(c *Config, v string) error {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Seed = seed
		return nil
	}},
	{"integrator", "PT_INTEGRATOR", "Light transport: path or normal", func(c *Config, v string) error { c.Integrator = v; return nil }},
	{"out", "PT_OUTPUT", "Output PPM path, or - for stdout", func(c *Config, v string) error { c.OutputPath = v; return nil }},
	{"s3-bucket", "S3_BUCKET", "Upload the render to this S3 bucket", func(c *Config, v string) error { c.S3.Bucket = v; return nil }},
	{"s3-key", "S3_KEY", "Object key for the upload", func(c *Config, v string) error { c.S3.Key = v; return nil }},
	{"s3-region", "S3_REGION", "S3 region", func(c *Config, v string) error { c.S3.Region = v; return nil }},
	{"s3-endpoint", "S3_ENDPOINT", "Custom S3 endpoint", func(c *Config, v string) error { c.S3.Endpoint = v; return nil }},
	{"", "S3_ACCESS_KEY", "", func(c *Config, v string) error { c.S3.AccessKey = v; return nil }},
	{"", "S3_SECRET_KEY", "", func(c *Config, v string) error { c.S3.SecretKey = v; return nil }},
}

func intSetter(assign func(*Config, int)) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		assign(c, n)
		return nil
	}
}

// Load parses args (without the program name) and layers the result over the
// .env file, the environment and the defaults. It returns flag.ErrHelp when
// -help is given.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	envFile := fs.String("env", DefaultEnvFile, "Path to a .env file")
	for _, s := range settings {
		if s.flag != "" {
			fs.String(s.flag, "", s.usage+" (env "+s.env+")")
		}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()

	dotenv, err := readEnvFile(*envFile, isFlagSet(fs, "env"))
	if err != nil {
		return nil, err
	}
	for _, s := range settings {
		if v, ok := dotenv[s.env]; ok {
			if err := s.set(&cfg, v); err != nil {
				return nil, fmt.Errorf("%w: %s in %s: %v", ErrInvalid, s.env, *envFile, err)
			}
		}
	}

	for _, s := range settings {
		if v, ok := os.LookupEnv(s.env); ok {
			if err := s.set(&cfg, v); err != nil {
				return nil, fmt.Errorf("%w: environment %s: %v", ErrInvalid, s.env, err)
			}
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		for _, s := range settings {
			if s.flag == f.Name && flagErr == nil {
				if err := s.set(&cfg, f.Value.String()); err != nil {
					flagErr = fmt.Errorf("%w: -%s: %v", ErrInvalid, f.Name, err)
				}
			}
		}
	})
	if flagErr != nil {
		return nil, flagErr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readEnvFile returns the variables in path. A missing file is only an error
// when the path was asked for explicitly.
func readEnvFile(path string, explicit bool) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: read env file: %w", ErrInvalid, err)
	}
	return values, nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// Validate rejects negative sizes and unknown integrators
func (c Config) Validate() error {
	switch {
	case c.Width < 0:
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalid, c.Width)
	case c.SamplesPerPixel < 0:
		return fmt.Errorf("%w: samples must not be negative, got %d", ErrInvalid, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: depth must not be negative, got %d", ErrInvalid, c.MaxDepth)
	case c.SceneName == "" && c.SceneFile == "":
		return fmt.Errorf("%w: no scene selected", ErrInvalid)
	case !slices.Contains(integrator.Names(), c.Integrator):
		return fmt.Errorf("%w: unknown integrator %q (available: %v)", ErrInvalid, c.Integrator, integrator.Names())
	}
	return nil
}
