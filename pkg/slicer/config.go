// Package slicer computes horizontal cross-sections of triangle geometry
// and rasterizes each cross-section into a binary mask image, one image per
// printed layer.
//
// The pipeline is: merge solids into a world-space triangle list (pkg/mesh),
// schedule the slice plane heights from the geometry's Z extent, then for
// each plane intersect every triangle with the plane, stitch the resulting
// segments into closed polygon loops, and scan-fill the loops onto a
// fixed-size canvas. Planes never mutate shared state, so they are
// dispatched across a worker pool.
package slicer

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultEpsilon is the tolerance used for plane-side classification,
// intersection point deduplication and point key quantization.
const DefaultEpsilon = 1e-6

// Config holds the slicing parameters. The pixel and physical canvas sizes
// describe the printer's masked LCD; SliceThickness is the layer height in
// model units.
type Config struct {
	PixelX int // canvas width in pixels
	PixelY int // canvas height in pixels

	PhysicalX float64 // physical canvas width, model units
	PhysicalY float64 // physical canvas height, model units

	SliceThickness float64 // layer height, model units

	Epsilon float64        // float tolerance; 0 selects DefaultEpsilon
	Workers int            // worker goroutines; <= 0 selects runtime.NumCPU()
	Log     *logrus.Logger // nil selects logrus.StandardLogger()
}

type checkFunc func(c *Config) error

// Validate checks the hard preconditions that cannot be worked around
// mid-run: canvas and physical dimensions and the slice thickness must all
// be positive, and the epsilon override must not be negative. The first
// violation is returned.
func (c *Config) Validate() error {
	checks := []checkFunc{
		checkPixels,
		checkPhysical,
		checkThickness,
		checkEpsilon,
	}

	for _, check := range checks {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

func checkPixels(c *Config) error {
	if c.PixelX <= 0 || c.PixelY <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.PixelX, c.PixelY)
	}
	return nil
}

func checkPhysical(c *Config) error {
	if c.PhysicalX <= 0 || c.PhysicalY <= 0 {
		return fmt.Errorf("physical size must be positive, got %gx%g", c.PhysicalX, c.PhysicalY)
	}
	return nil
}

func checkThickness(c *Config) error {
	if c.SliceThickness <= 0 {
		return fmt.Errorf("slice thickness must be positive, got %g", c.SliceThickness)
	}
	return nil
}

func checkEpsilon(c *Config) error {
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must not be negative, got %g", c.Epsilon)
	}
	return nil
}
