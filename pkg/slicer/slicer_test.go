package slicer

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lamina/pkg/mesh"
)

// cubeTriangles returns the 12 triangles of an axis-aligned cube of the
// given side length, centered at the origin, with outward face normals.
func cubeTriangles(side float64) []mesh.Triangle {
	h := side / 2

	v000 := v3.Vec{X: -h, Y: -h, Z: -h}
	v100 := v3.Vec{X: h, Y: -h, Z: -h}
	v110 := v3.Vec{X: h, Y: h, Z: -h}
	v010 := v3.Vec{X: -h, Y: h, Z: -h}
	v001 := v3.Vec{X: -h, Y: -h, Z: h}
	v101 := v3.Vec{X: h, Y: -h, Z: h}
	v111 := v3.Vec{X: h, Y: h, Z: h}
	v011 := v3.Vec{X: -h, Y: h, Z: h}

	face := func(a, b, c, d, n v3.Vec) []mesh.Triangle {
		return []mesh.Triangle{
			{V: [3]v3.Vec{a, b, c}, N: n},
			{V: [3]v3.Vec{a, c, d}, N: n},
		}
	}

	var tris []mesh.Triangle
	tris = append(tris, face(v000, v100, v110, v010, v3.Vec{Z: -1})...) // bottom
	tris = append(tris, face(v001, v101, v111, v011, v3.Vec{Z: 1})...)  // top
	tris = append(tris, face(v000, v100, v101, v001, v3.Vec{Y: -1})...) // front
	tris = append(tris, face(v010, v110, v111, v011, v3.Vec{Y: 1})...)  // back
	tris = append(tris, face(v000, v010, v011, v001, v3.Vec{X: -1})...) // left
	tris = append(tris, face(v100, v110, v111, v101, v3.Vec{X: 1})...)  // right
	return tris
}

func cubeMesh(side float64) *mesh.Mesh {
	return mesh.FromTriangles(cubeTriangles(side), "cube")
}

func testConfig() Config {
	return Config{
		PixelX: 200, PixelY: 200,
		PhysicalX: 20, PhysicalY: 20,
		SliceThickness: 2.5,
		Workers:        2,
		Log:            quietLogger(),
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero pixel width", func(c *Config) { c.PixelX = 0 }},
		{"negative pixel height", func(c *Config) { c.PixelY = -10 }},
		{"zero physical width", func(c *Config) { c.PhysicalX = 0 }},
		{"negative physical height", func(c *Config) { c.PhysicalY = -1 }},
		{"zero thickness", func(c *Config) { c.SliceThickness = 0 }},
		{"negative thickness", func(c *Config) { c.SliceThickness = -0.1 }},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1e-6 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := testConfig()
			c.mut(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected a configuration error")
			}
		})
	}

	if _, err := New(testConfig()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestCubeMidplaneLoop(t *testing.T) {
	// A cube of side 10 sliced at z=0 yields exactly one closed loop whose
	// shoelace area is the face area, 100.
	tris := cubeTriangles(10)

	segs := collectSegments(tris, 0, DefaultEpsilon, quietLogger())
	if len(segs) == 0 {
		t.Fatal("expected intersection segments at the midplane")
	}
	polys := assemblePolygons(segs, DefaultEpsilon)
	if len(polys) != 1 {
		t.Fatalf("expected 1 loop, got %d", len(polys))
	}
	if area := PolygonArea(polys[0]); math.Abs(area-100) > 1e-3 {
		t.Errorf("loop area = %v, expected 100 within 1e-3", area)
	}
	for _, p := range polys[0] {
		if math.Abs(p.Z) > DefaultEpsilon {
			t.Errorf("loop vertex %v not on the slicing plane", p)
		}
	}
}

func TestSliceCube(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	layers, err := s.Slice(context.Background(), []mesh.Solid{mesh.NewSolid(cubeMesh(10))})
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	// Heights -5, -2.5, 0, 2.5, 5: every plane cuts the cube.
	if len(layers) != 5 {
		t.Fatalf("expected 5 layers, got %d", len(layers))
	}
	for i, layer := range layers {
		if layer.Index != i {
			t.Errorf("layer %d has Index %d", i, layer.Index)
		}
		wantZ := -5 + 2.5*float64(i)
		if layer.Z != wantZ {
			t.Errorf("layer %d Z = %v, expected %v", i, layer.Z, wantZ)
		}
		if layer.Image == nil {
			t.Fatalf("layer %d has no image", i)
		}
		if got := layer.Image.Bounds().Dx(); got != 200 {
			t.Errorf("layer %d width = %d, expected 200", i, got)
		}
		// The cube straddles the canvas center on every layer.
		if layer.Image.GrayAt(100, 100).Y != 0xff {
			t.Errorf("layer %d center pixel not filled", i)
		}
	}
}

func TestSliceSkipsEmptyPlanes(t *testing.T) {
	// Two small cubes with a vertical gap: planes inside the gap have no
	// cross-section and must be absent from the output, not blank.
	cube := cubeMesh(2)
	solids := []mesh.Solid{
		{Mesh: cube, Matrix: sdf.Translate3d(v3.Vec{Z: 1})}, // occupies z 0..2
		{Mesh: cube, Matrix: sdf.Translate3d(v3.Vec{Z: 7})}, // occupies z 6..8
	}

	cfg := testConfig()
	cfg.SliceThickness = 1
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	layers, err := s.Slice(context.Background(), solids)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	wantZ := []float64{0, 1, 2, 6, 7, 8}
	if len(layers) != len(wantZ) {
		t.Fatalf("expected %d layers, got %d", len(wantZ), len(layers))
	}
	for i, layer := range layers {
		if layer.Z != wantZ[i] {
			t.Errorf("layer %d Z = %v, expected %v", i, layer.Z, wantZ[i])
		}
		if layer.Index != int(wantZ[i]) {
			t.Errorf("layer %d Index = %d, expected %d", i, layer.Index, int(wantZ[i]))
		}
	}
}

func TestSliceEmptyGeometry(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	layers, err := s.Slice(context.Background(), nil)
	if err != nil {
		t.Fatalf("Slice of no solids failed: %v", err)
	}
	if len(layers) != 0 {
		t.Errorf("expected no layers, got %d", len(layers))
	}

	layers, err = s.Slice(context.Background(), []mesh.Solid{mesh.NewSolid(&mesh.Mesh{})})
	if err != nil {
		t.Fatalf("Slice of empty mesh failed: %v", err)
	}
	if len(layers) != 0 {
		t.Errorf("expected no layers from an empty mesh, got %d", len(layers))
	}
}

func TestSliceIdempotent(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	solids := []mesh.Solid{mesh.NewSolid(cubeMesh(10))}

	first, err := s.Slice(context.Background(), solids)
	if err != nil {
		t.Fatalf("first Slice failed: %v", err)
	}
	second, err := s.Slice(context.Background(), solids)
	if err != nil {
		t.Fatalf("second Slice failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("layer counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Z != second[i].Z {
			t.Errorf("layer %d Z differs: %v vs %v", i, first[i].Z, second[i].Z)
		}
		if !bytes.Equal(first[i].Image.Pix, second[i].Image.Pix) {
			t.Errorf("layer %d masks are not bit-identical", i)
		}
	}
}

func TestSliceCancelled(t *testing.T) {
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Slice(ctx, []mesh.Solid{mesh.NewSolid(cubeMesh(10))})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPolygonArea(t *testing.T) {
	sq := []v3.Vec{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	if area := PolygonArea(sq); math.Abs(area-100) > 1e-12 {
		t.Errorf("square area = %v, expected 100", area)
	}

	// Orientation must not matter.
	rev := []v3.Vec{sq[3], sq[2], sq[1], sq[0]}
	if area := PolygonArea(rev); math.Abs(area-100) > 1e-12 {
		t.Errorf("reversed square area = %v, expected 100", area)
	}

	trig := []v3.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	if area := PolygonArea(trig); math.Abs(area-50) > 1e-12 {
		t.Errorf("triangle area = %v, expected 50", area)
	}

	if area := PolygonArea(sq[:2]); area != 0 {
		t.Errorf("degenerate polygon area = %v, expected 0", area)
	}
}
