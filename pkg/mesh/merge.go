package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid pairs a triangle mesh with the 4x4 model matrix that places it in
// the world frame. The mesh itself is never mutated by the slicing pipeline.
type Solid struct {
	Mesh   *Mesh
	Matrix sdf.M44
}

// NewSolid returns a Solid placed with the identity model matrix.
func NewSolid(m *Mesh) Solid {
	return Solid{Mesh: m, Matrix: sdf.Identity3d()}
}

// Merge applies each solid's model matrix to its triangles and returns one
// flat world-space triangle list. Vertices get the full point transform;
// normals get the direction transform (translation does not apply) and are
// re-normalized, since non-uniform scale breaks normal orthogonality. A
// degenerate matrix is accepted as-is: normal quality degrades silently
// rather than failing the run.
//
// The returned slice is a fresh snapshot of the input geometry. Callers may
// keep mutating their scene while a slicing run reads the merged list.
func Merge(solids []Solid) []Triangle {
	var merged []Triangle
	for _, s := range solids {
		if s.Mesh == nil || s.Mesh.IsEmpty() {
			continue
		}
		for _, t := range s.Mesh.Triangles() {
			var out Triangle
			for j, v := range t.V {
				out.V[j] = s.Matrix.MulPosition(v)
			}
			out.N = mulDirection(s.Matrix, t.N).Normalize()
			merged = append(merged, out)
		}
	}
	return merged
}

// mulDirection applies only the linear part of an affine matrix:
// M*(v;0) == M*(v;1) - M*(0;1).
func mulDirection(m sdf.M44, v v3.Vec) v3.Vec {
	return m.MulPosition(v).Sub(m.MulPosition(v3.Vec{}))
}
