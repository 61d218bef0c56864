package slicer

import (
	"github.com/chazu/lamina/pkg/mesh"
)

// planHeights returns the ordered slice plane heights minZ, minZ+t, ...
// while the value is <= maxZ. The sequence always starts exactly at minZ; it
// lands on maxZ only when the Z extent divides evenly by the thickness, and
// there is no special-cased final partial layer. Empty bounds yield no
// heights.
func planHeights(b mesh.Bounds, thickness float64) []float64 {
	if b.Empty() {
		return nil
	}
	var heights []float64
	for z := b.Min.Z; z <= b.Max.Z; z += thickness {
		heights = append(heights, z)
	}
	return heights
}
