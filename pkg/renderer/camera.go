package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ErrInvalidCamera is wrapped by every camera configuration error
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains the parameters of a thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up vector
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus; 0 uses |Center - LookAt|
}

// Validate reports configurations that cannot produce a camera basis
func (c CameraConfig) Validate() error {
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("%w: vertical field of view must be in (0, 180), got %g", ErrInvalidCamera, c.VFov)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", ErrInvalidCamera, c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("%w: aperture must not be negative, got %g", ErrInvalidCamera, c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("%w: focus distance must not be negative, got %g", ErrInvalidCamera, c.FocusDistance)
	}
	w := c.Center.Subtract(c.LookAt)
	if w.LengthSquared() == 0 {
		return fmt.Errorf("%w: center and look-at point coincide", ErrInvalidCamera)
	}
	if c.Up.Cross(w).LengthSquared() == 0 {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
}

// NewCamera derives the camera basis from config
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	// w points back toward the viewer
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(2 * halfWidth * focusDistance)
	vertical := v.Multiply(2 * halfHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1 and
// (0,0) is the lower-left corner. With a non-zero aperture the origin is jittered
// across the lens disk and the ray is aimed at the matching focus-plane point.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	offset := core.Vec3{}
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
