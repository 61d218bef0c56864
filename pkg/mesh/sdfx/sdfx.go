// Package sdfx builds triangle meshes from github.com/deadsy/sdfx solids.
// It gives the slicing pipeline a geometry source that needs no mesh files:
// demos and tests model a part as an SDF and tessellate it here.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lamina/pkg/mesh"
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// ToMesh converts an SDF solid to a triangle mesh using marching cubes.
// cells <= 0 selects DefaultMeshCells.
func ToMesh(s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &mesh.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}

// Box returns a box with the given dimensions, centered at the origin. The
// rasterizer maps the model origin to the canvas center, so origin-centered
// solids land in the middle of the build plate.
func Box(x, y, z float64) sdf.SDF3 {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return s
}

// Cylinder returns a cylinder with the given height and radius, centered at
// the origin with its axis along Z.
func Cylinder(height, radius float64) sdf.SDF3 {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return s
}
