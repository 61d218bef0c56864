package slicer

import (
	"cmp"
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"

	"github.com/chazu/lamina/pkg/mesh"
)

// segment is one plane-triangle intersection: a pair of points lying on the
// slicing plane. Segments live only as long as one plane's processing.
type segment struct {
	a, b v3.Vec
}

// intersectTriangle returns the intersection points of one triangle with
// the horizontal plane at height z. A vertex within eps of the plane counts
// as on-plane.
//
// The result has 0 points (no intersection), 2 points (a segment, the
// regular case), or more than 2 points (degenerate: the triangle lies in or
// nearly in the plane, or several edges graze it). The caller decides what
// to do with the degenerate case.
func intersectTriangle(t mesh.Triangle, z, eps float64) []v3.Vec {
	var d [3]float64
	var positive, negative, onPlane bool
	for i, v := range t.V {
		d[i] = v.Z - z
		switch {
		case d[i] > eps:
			positive = true
		case d[i] < -eps:
			negative = true
		default:
			onPlane = true
		}
	}

	// All vertices strictly on one side and none on the plane: no
	// intersection.
	if !onPlane && !(positive && negative) {
		return nil
	}

	var points []v3.Vec
	for i := 0; i < 3; i++ {
		p1, p2 := t.V[i], t.V[(i+1)%3]
		d1, d2 := d[i], d[(i+1)%3]

		switch {
		case (d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps):
			// The edge crosses the plane: interpolate the crossing.
			f := d1 / (d1 - d2)
			points = append(points, p1.Add(p2.Sub(p1).MulScalar(f)))
		case math.Abs(d1) <= eps && math.Abs(d2) <= eps:
			// The whole edge lies in the plane.
			points = append(points, p1, p2)
		case math.Abs(d1) <= eps:
			points = append(points, p1)
		case math.Abs(d2) <= eps:
			points = append(points, p2)
		}
	}

	return dedupPoints(points, eps)
}

// dedupPoints sorts points lexicographically by (x, y, z) and collapses
// consecutive points closer than eps.
func dedupPoints(points []v3.Vec, eps float64) []v3.Vec {
	slices.SortFunc(points, func(a, b v3.Vec) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})
	return slices.CompactFunc(points, func(a, b v3.Vec) bool {
		return a.Sub(b).Length() < eps
	})
}

// collectSegments intersects every triangle with the plane at z and keeps
// the 2-point results as segments. Triangles intersecting in more than two
// points (in-plane or nearly so) contribute nothing: on a manifold mesh
// their cross-section boundary is already produced by the neighboring
// triangles. Single-point grazes are ignored.
func collectSegments(tris []mesh.Triangle, z, eps float64, log *logrus.Logger) []segment {
	var segs []segment
	for _, t := range tris {
		points := intersectTriangle(t, z, eps)
		switch {
		case len(points) == 2:
			segs = append(segs, segment{a: points[0], b: points[1]})
		case len(points) > 2:
			log.Debugf("slicer: dropping triangle with %d intersection points at z=%g", len(points), z)
		}
	}
	return segs
}
