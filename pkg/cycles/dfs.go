package cycles

import "github.com/ritzau/cycle-detector/pkg/adjacency"

// DFS detects cycles with a depth-first search that tracks which vertices are on the
// current path. An edge into an on-path vertex is a back-edge and closes a cycle.
//
// Roots and neighbours are taken in ascending index order, so the reported cycle is
// the first back-edge met in that order. The cycle is always simple.
type DFS struct {
	m *adjacency.Matrix
}

// NewDFS creates a DFS detector that owns a copy of m
func NewDFS(m *adjacency.Matrix) *DFS {
	return &DFS{m: m.Clone()}
}

// Algorithm implements Detector
func (d *DFS) Algorithm() Algorithm {
	return AlgorithmDFS
}

// DetectCycle implements Detector
func (d *DFS) DetectCycle() (Result, error) {
	search := newPathSearch(d.m.AdjacencyLists(), nil)

	for v := 0; v < d.m.Size(); v++ {
		if search.visited[v] {
			continue
		}
		if cycle := search.from(v); cycle != nil {
			return checked(d.m, AlgorithmDFS, Cyclic(cycle))
		}
	}

	return Acyclic(), nil
}
