package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds is an axis-aligned bounding box. Empty geometry is represented by
// the +Inf/-Inf sentinel corners, so extending an empty Bounds with any
// point needs no special case. Min <= Max holds componentwise whenever the
// bounds are non-empty.
type Bounds struct {
	Min v3.Vec
	Max v3.Vec
}

// EmptyBounds returns the sentinel bounds of empty geometry.
func EmptyBounds() Bounds {
	return Bounds{
		Min: v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Empty reports whether the bounds contain no geometry.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the bounds to include the point p.
func (b Bounds) Extend(p v3.Vec) Bounds {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}

// BoundsOf computes the bounding box of a triangle list. An empty list
// yields the empty sentinel bounds.
func BoundsOf(tris []Triangle) Bounds {
	b := EmptyBounds()
	for _, t := range tris {
		for _, v := range t.V {
			b = b.Extend(v)
		}
	}
	return b
}
