package slicer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chazu/lamina/pkg/mesh"
)

// Layer is one slice of the model: its position in the plane schedule, the
// plane height, and the binary mask of the cross-section at that height.
// Mask pixels are 0 outside the cross-section and 255 inside.
type Layer struct {
	Index int         // position in the plane schedule
	Z     float64     // plane height, model units
	Image *image.Gray // pixelX x pixelY mask
}

// Slicer slices merged triangle geometry into per-layer mask images.
type Slicer struct {
	cfg     Config
	workers int
	log     *logrus.Logger
}

// New validates the configuration and returns a Slicer.
func New(cfg Config) (*Slicer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("slicer: %w", err)
	}
	if cfg.Epsilon == 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Slicer{cfg: cfg, workers: workers, log: log}, nil
}

// Slice merges the solids into a world-space snapshot and processes every
// scheduled plane, bottom up. Layers come back in ascending Z order; a
// plane whose cross-section is empty produces no layer, so the result is
// not necessarily one layer per scheduled height. Empty input geometry
// yields an empty result.
//
// Planes are distributed over a worker pool. Cancellation of ctx is
// observed between planes and surfaces as ctx.Err().
func (s *Slicer) Slice(ctx context.Context, solids []mesh.Solid) ([]Layer, error) {
	triangles := mesh.Merge(solids)
	heights := planHeights(mesh.BoundsOf(triangles), s.cfg.SliceThickness)
	if len(heights) == 0 {
		return nil, nil
	}

	// Workers read only the shared triangle list and write only their own
	// result slots, so no locks are needed.
	images := make([]*image.Gray, len(heights))
	tasks := make(chan int, len(heights))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				if ctx.Err() != nil {
					continue // drain the queue after cancellation
				}
				images[i] = s.slicePlane(triangles, heights[i])
			}
		}()
	}
	for i := range heights {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layers := make([]Layer, 0, len(heights))
	for i, img := range images {
		if img == nil {
			continue
		}
		layers = append(layers, Layer{Index: i, Z: heights[i], Image: img})
	}
	return layers, nil
}

// slicePlane runs intersection, assembly and rasterization for one plane.
// It returns nil when the plane has no cross-section.
func (s *Slicer) slicePlane(tris []mesh.Triangle, z float64) *image.Gray {
	segs := collectSegments(tris, z, s.cfg.Epsilon, s.log)
	if len(segs) == 0 {
		return nil
	}
	polys := assemblePolygons(segs, s.cfg.Epsilon)
	if len(polys) == 0 {
		return nil
	}
	return rasterize(polys, s.cfg)
}
