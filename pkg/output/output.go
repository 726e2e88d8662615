// Package output delivers finished renders as P3 pixmaps to a local file,
// stdout, or an S3 bucket.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// ContentType is the media type of a P3 pixmap
const ContentType = "image/x-portable-pixmap"

// Stdout is the output path that selects standard output
const Stdout = "-"

// Encode renders img into an in-memory P3 stream
func Encode(img *renderer.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := img.WritePPM(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultKey returns <scene>/render_<timestamp>.ppm, used as the S3 object key
func DefaultKey(sceneName string, now time.Time) string {
	return fmt.Sprintf("%s/render_%s.ppm", sceneName, now.Format("20060102_150405"))
}

// DefaultPath returns the local file for a render taken at now, under output/
func DefaultPath(sceneName string, now time.Time) string {
	return filepath.Join("output", filepath.FromSlash(DefaultKey(sceneName, now)))
}

// Write sends data to path, or to stdout when path is Stdout. Parent
// directories are created as needed.
func Write(path string, data []byte, stdout io.Writer) error {
	if path == Stdout {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write image to stdout: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
