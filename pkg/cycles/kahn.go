package cycles

import (
	"fmt"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/logging"
)

// Kahn detects cycles by topological sorting. Vertices whose in-degree never drops to
// zero are left over; every one of them lies on a cycle or downstream of one.
// A depth-first search restricted to those leftovers then recovers a concrete cycle.
//
// Which cycle is reported when several exist is implementation-defined: it follows from
// searching the leftover vertices from the lowest index, neighbours ascending.
type Kahn struct {
	m *adjacency.Matrix
}

// NewKahn creates a Kahn detector that owns a copy of m
func NewKahn(m *adjacency.Matrix) *Kahn {
	return &Kahn{m: m.Clone()}
}

// Algorithm implements Detector
func (k *Kahn) Algorithm() Algorithm {
	return AlgorithmKahn
}

// DetectCycle implements Detector
func (k *Kahn) DetectCycle() (Result, error) {
	order, inDegree, succ := k.sort()
	if len(order) == k.m.Size() {
		return Acyclic(), nil
	}

	cycle, err := k.reconstruct(succ, inDegree)
	if err != nil {
		return Result{}, err
	}

	return checked(k.m, AlgorithmKahn, Cyclic(cycle))
}

// TopologicalOrder returns Kahn's order for an acyclic graph, or a *CycleError
// holding the cycle DetectCycle would report.
func (k *Kahn) TopologicalOrder() ([]int, error) {
	order, inDegree, succ := k.sort()
	if len(order) == k.m.Size() {
		return order, nil
	}

	cycle, err := k.reconstruct(succ, inDegree)
	if err != nil {
		return nil, err
	}

	return nil, &CycleError{Cycle: cycle}
}

// sort runs Kahn's algorithm. It returns the topological order of the removable vertices,
// the residual in-degrees and the successor lists it worked from.
func (k *Kahn) sort() ([]int, []int, [][]int) {
	n := k.m.Size()
	succ := k.m.AdjacencyLists()

	inDegree := make([]int, n)
	for _, targets := range succ {
		for _, w := range targets {
			inDegree[w]++
		}
	}

	// The queue is never popped destructively, so it doubles as the order
	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	for head := 0; head < len(queue); head++ {
		v := queue[head]
		for _, w := range succ[v] {
			inDegree[w]--
			if inDegree[w] == 0 {
				queue = append(queue, w)
			}
		}
	}

	return queue, inDegree, succ
}

// reconstruct finds a cycle among the vertices with residual in-degree.
// A root whose reachable leftovers hold no back-edge (it sits downstream of a cycle)
// is skipped in favour of the next unvisited leftover.
func (k *Kahn) reconstruct(succ [][]int, inDegree []int) ([]int, error) {
	n := len(succ)
	inCycle := make([]bool, n)
	marked := 0
	for v := 0; v < n; v++ {
		if inDegree[v] > 0 {
			inCycle[v] = true
			marked++
		}
	}

	search := newPathSearch(succ, inCycle)
	for v := 0; v < n; v++ {
		if !inCycle[v] || search.visited[v] {
			continue
		}
		if cycle := search.from(v); cycle != nil {
			return cycle, nil
		}
		logging.Trace("kahn: no cycle reachable from residual root", "root", v)
	}

	return nil, fmt.Errorf("%w: no back-edge among %d residual vertices", ErrInternalInconsistency, marked)
}
