// Package mesh defines the triangle mesh data structures handed to the
// slicing pipeline and the transform stage that merges placed solids into
// one world-space triangle list.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Triangle is a single triangle: three vertices and one face normal.
// Triangles produced by Merge are world-space and treated as immutable.
type Triangle struct {
	V [3]v3.Vec // vertices
	N v3.Vec    // face normal
}

// Mesh is a triangle mesh as produced by a tessellator or mesh loader.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which solid this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangles expands the indexed mesh into a flat triangle list. The face
// normal is taken from the triangle's first vertex; tessellators store one
// face normal replicated per vertex.
func (m *Mesh) Triangles() []Triangle {
	tris := make([]Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		var t Triangle
		for j := 0; j < 3; j++ {
			vi := int(m.Indices[i+j]) * 3
			t.V[j] = v3.Vec{
				X: float64(m.Vertices[vi]),
				Y: float64(m.Vertices[vi+1]),
				Z: float64(m.Vertices[vi+2]),
			}
		}
		ni := int(m.Indices[i]) * 3
		if ni+2 < len(m.Normals) {
			t.N = v3.Vec{
				X: float64(m.Normals[ni]),
				Y: float64(m.Normals[ni+1]),
				Z: float64(m.Normals[ni+2]),
			}
		}
		tris = append(tris, t)
	}
	return tris
}

// FromTriangles builds a non-indexed mesh from a triangle list, replicating
// each face normal across the triangle's three vertices. It is the inverse
// of Triangles and is mainly useful for constructing test geometry.
func FromTriangles(tris []Triangle, name string) *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 0, len(tris)*9),
		Normals:  make([]float32, 0, len(tris)*9),
		Indices:  make([]uint32, 0, len(tris)*3),
		PartName: name,
	}
	for i, t := range tris {
		for j := 0; j < 3; j++ {
			v := t.V[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(t.N.X), float32(t.N.Y), float32(t.N.Z))
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m
}
