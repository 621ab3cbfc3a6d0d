package adjacency

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
)

// ErrInvalidInput is returned when a matrix is not square or holds values other than 0/1
var ErrInvalidInput = errors.New("invalid adjacency matrix")

// Matrix is an immutable directed graph stored as a dense N×N edge relation
type Matrix struct {
	n     int
	edges []bool // row-major, edges[i*n+j] is the edge i -> j
}

// New builds a matrix from 0/1 rows. The input is copied.
func New(rows [][]int) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, edges: make([]bool, n*n)}

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d", ErrInvalidInput, i, len(row), n)
		}
		for j, cell := range row {
			switch cell {
			case 0:
			case 1:
				m.edges[i*n+j] = true
			default:
				return nil, fmt.Errorf("%w: cell (%d,%d) is %d, expected 0 or 1", ErrInvalidInput, i, j, cell)
			}
		}
	}

	return m, nil
}

// FromBools builds a matrix from boolean rows. The input is copied.
func FromBools(rows [][]bool) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, edges: make([]bool, n*n)}

	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d", ErrInvalidInput, i, len(row), n)
		}
		copy(m.edges[i*n:(i+1)*n], row)
	}

	return m, nil
}

// MustNew is like New but panics on invalid input. Intended for fixed data.
func MustNew(rows [][]int) *Matrix {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Size returns the number of vertices
func (m *Matrix) Size() int {
	return m.n
}

// HasEdge reports whether the edge from -> to exists. Out-of-range vertices have no edges.
func (m *Matrix) HasEdge(from, to int) bool {
	if from < 0 || to < 0 || from >= m.n || to >= m.n {
		return false
	}
	return m.edges[from*m.n+to]
}

// Successors returns the out-neighbours of v in ascending order
func (m *Matrix) Successors(v int) []int {
	var succ []int
	for j := 0; j < m.n; j++ {
		if m.edges[v*m.n+j] {
			succ = append(succ, j)
		}
	}
	return succ
}

// AdjacencyLists returns the successors of every vertex, each list in ascending order
func (m *Matrix) AdjacencyLists() [][]int {
	lists := make([][]int, m.n)
	for i := 0; i < m.n; i++ {
		lists[i] = m.Successors(i)
	}
	return lists
}

// EdgeCount returns the number of directed edges, self-loops included
func (m *Matrix) EdgeCount() int {
	count := 0
	for _, e := range m.edges {
		if e {
			count++
		}
	}
	return count
}

// Rows returns a fresh 0/1 copy of the matrix
func (m *Matrix) Rows() [][]int {
	rows := make([][]int, m.n)
	for i := range rows {
		rows[i] = make([]int, m.n)
		for j := 0; j < m.n; j++ {
			if m.edges[i*m.n+j] {
				rows[i][j] = 1
			}
		}
	}
	return rows
}

// Clone returns an independent copy of the matrix
func (m *Matrix) Clone() *Matrix {
	edges := make([]bool, len(m.edges))
	copy(edges, m.edges)
	return &Matrix{n: m.n, edges: edges}
}

// Directed returns the matrix as a gonum directed graph with node IDs equal to vertex indices.
// gonum simple graphs cannot hold self edges, so self-loops are left out.
func (m *Matrix) Directed() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := 0; i < m.n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if i != j && m.edges[i*m.n+j] {
				g.SetEdge(g.NewEdge(g.Node(int64(i)), g.Node(int64(j))))
			}
		}
	}
	return g
}

// MarshalJSON encodes the matrix as nested 0/1 arrays
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

// UnmarshalJSON decodes nested 0/1 arrays, validating shape and values
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	parsed, err := New(rows)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
