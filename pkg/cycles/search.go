package cycles

// pathSearch is an iterative depth-first search that stops at the first back-edge.
// Successor lists must be in ascending order; vertices are visited in the same order
// a recursive search would visit them.
type pathSearch struct {
	succ    [][]int
	allowed []bool // nil allows every vertex
	visited []bool
	onPath  []bool
	parent  []int
}

type frame struct {
	v    int
	next int // index into succ[v] of the next edge to examine
}

func newPathSearch(succ [][]int, allowed []bool) *pathSearch {
	n := len(succ)
	s := &pathSearch{
		succ:    succ,
		allowed: allowed,
		visited: make([]bool, n),
		onPath:  make([]bool, n),
		parent:  make([]int, n),
	}
	for i := range s.parent {
		s.parent[i] = -1
	}
	return s
}

func (s *pathSearch) allows(v int) bool {
	return s.allowed == nil || s.allowed[v]
}

// from explores everything reachable from root. It returns the closed walk formed by
// the first edge into a vertex on the current path, or nil if no such edge is reachable.
func (s *pathSearch) from(root int) []int {
	s.visited[root] = true
	s.onPath[root] = true
	stack := []frame{{v: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		v := top.v

		if top.next == len(s.succ[v]) {
			// All edges examined: v leaves the path but stays visited
			s.onPath[v] = false
			stack = stack[:len(stack)-1]
			continue
		}

		w := s.succ[v][top.next]
		top.next++

		if !s.allows(w) {
			continue
		}

		switch {
		case !s.visited[w]:
			s.parent[w] = v
			s.visited[w] = true
			s.onPath[w] = true
			stack = append(stack, frame{v: w})
		case s.onPath[w]:
			return s.closeWalk(v, w)
		}
		// Visited and off the path: an edge into a finished subtree, nothing to do
	}

	return nil
}

// closeWalk turns the back-edge v -> w into [w, ..., v, w] using the parent chain
func (s *pathSearch) closeWalk(v, w int) []int {
	var walk []int
	for curr := v; curr != w; curr = s.parent[curr] {
		walk = append(walk, curr)
	}
	walk = append(walk, w)

	for i, j := 0, len(walk)-1; i < j; i, j = i+1, j-1 {
		walk[i], walk[j] = walk[j], walk[i]
	}

	return append(walk, w)
}
