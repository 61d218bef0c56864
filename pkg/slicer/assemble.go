package slicer

import (
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// pointKey is a point's (x, y) snapped to the epsilon grid. Two points
// within epsilon of each other collapse to the same key, which is what lets
// intersection points computed independently by adjacent triangles be
// recognized as the same polygon vertex despite floating-point noise. The
// collapse is lossy by design.
type pointKey struct {
	x, y int64
}

// quantize maps a point to its grid key.
func quantize(p v3.Vec, eps float64) pointKey {
	scale := 1.0 / eps
	return pointKey{
		x: int64(math.Round(p.X * scale)),
		y: int64(math.Round(p.Y * scale)),
	}
}

func comparePointKeys(a, b pointKey) int {
	if a.x != b.x {
		if a.x < b.x {
			return -1
		}
		return 1
	}
	switch {
	case a.y < b.y:
		return -1
	case a.y > b.y:
		return 1
	}
	return 0
}

// edgeKey identifies an undirected edge between two point keys. Traversing
// A->B marks B->A visited as well.
type edgeKey struct {
	a, b pointKey
}

func newEdgeKey(a, b pointKey) edgeKey {
	if comparePointKeys(b, a) < 0 {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// assemblePolygons stitches the unordered intersection segments of one
// plane into closed polygon loops. Nodes are quantized point keys; for
// every segment both directed adjacency entries are recorded along with one
// representative real-valued coordinate per key. A walk starts from every
// unvisited edge and keeps moving to a neighbor that is neither the node it
// just arrived from nor reachable only over an already-visited edge. Walks
// that return to their start key with at least three distinct vertices
// become loops; open chains are discarded.
//
// Well-formed manifold meshes produce non-branching intersection graphs
// (every node has exactly two edges), which is why this greedy single pass
// suffices instead of a full Eulerian-circuit decomposition. Non-manifold
// input is not repaired; its non-closing chains simply drop out. Start keys
// are visited in sorted order, so loop discovery is deterministic.
func assemblePolygons(segs []segment, eps float64) [][]v3.Vec {
	coords := make(map[pointKey]v3.Vec)
	adjacency := make(map[pointKey][]pointKey)

	for _, s := range segs {
		ka, kb := quantize(s.a, eps), quantize(s.b, eps)
		if _, ok := coords[ka]; !ok {
			coords[ka] = s.a
		}
		if _, ok := coords[kb]; !ok {
			coords[kb] = s.b
		}
		adjacency[ka] = append(adjacency[ka], kb)
		adjacency[kb] = append(adjacency[kb], ka)
	}

	starts := make([]pointKey, 0, len(adjacency))
	for k := range adjacency {
		starts = append(starts, k)
	}
	slices.SortFunc(starts, comparePointKeys)

	visited := make(map[edgeKey]bool)
	var polygons [][]v3.Vec

	for _, start := range starts {
		for _, next := range adjacency[start] {
			if visited[newEdgeKey(start, next)] {
				continue
			}
			visited[newEdgeKey(start, next)] = true

			keys := []pointKey{start}
			current := next
			closed := false

			for {
				keys = append(keys, current)
				if current == start {
					closed = true
					break
				}

				prev := keys[len(keys)-2]
				found := false
				for _, n := range adjacency[current] {
					if n == prev {
						continue
					}
					ek := newEdgeKey(current, n)
					if visited[ek] {
						continue
					}
					visited[ek] = true
					current = n
					found = true
					break
				}
				if !found {
					// Open chain: no way to continue, discard the walk.
					break
				}
			}

			// A closed walk repeats the start key, so a triangle is 4 keys.
			if !closed || len(keys) < 4 {
				continue
			}
			keys = keys[:len(keys)-1]

			poly := make([]v3.Vec, len(keys))
			for i, k := range keys {
				poly[i] = coords[k]
			}
			polygons = append(polygons, poly)
		}
	}

	return polygons
}
