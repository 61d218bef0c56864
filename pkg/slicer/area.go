package slicer

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PolygonArea returns the unsigned area of a polygon's (x, y) footprint via
// the shoelace formula. The Z coordinate is ignored; assembled loops lie in
// a single slicing plane. Fewer than three vertices have zero area.
func PolygonArea(poly []v3.Vec) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}
