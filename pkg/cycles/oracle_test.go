package cycles

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"gonum.org/v1/gonum/graph/topo"
)

// randomRows builds an n×n 0/1 matrix where each cell is set with probability p
func randomRows(rng *rand.Rand, n int, p float64) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
		for j := range rows[i] {
			if rng.Float64() < p {
				rows[i][j] = 1
			}
		}
	}
	return rows
}

// hasCycle answers the question with gonum. Its simple graphs drop self-loops,
// so those are checked separately.
func hasCycle(m *adjacency.Matrix) bool {
	for v := 0; v < m.Size(); v++ {
		if m.HasEdge(v, v) {
			return true
		}
	}
	_, err := topo.Sort(m.Directed())
	return err != nil
}

func TestDetectors_AgreeWithTopoSort(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		n := rng.IntN(9)
		p := []float64{0.05, 0.15, 0.3}[i%3]
		m := adjacency.MustNew(randomRows(rng, n, p))
		want := hasCycle(m)
		components := StronglyConnected(m)

		for _, d := range []Detector{NewKahn(m), NewDFS(m)} {
			got, err := d.DetectCycle()
			if err != nil {
				t.Fatalf("%s on %v: DetectCycle() error = %v", d.Algorithm(), m.Rows(), err)
			}

			if got.Cyclic != want {
				t.Fatalf("%s on %v: cyclic = %v, want %v", d.Algorithm(), m.Rows(), got.Cyclic, want)
			}
			if !got.Cyclic {
				if len(got.Cycle) != 0 {
					t.Fatalf("%s on %v: acyclic result with cycle %v", d.Algorithm(), m.Rows(), got.Cycle)
				}
				continue
			}

			if err := Verify(m, got.Cycle); err != nil {
				t.Fatalf("%s on %v: %v", d.Algorithm(), m.Rows(), err)
			}

			// A cycle always lies inside one strongly connected component
			if !insideOneComponent(got.Vertices(), components) {
				t.Fatalf("%s on %v: cycle %v spans components %v", d.Algorithm(), m.Rows(), got.Cycle, components)
			}
		}

		if want != (len(components) > 0) {
			t.Fatalf("StronglyConnected on %v = %v, cyclic = %v", m.Rows(), components, want)
		}
	}
}

func insideOneComponent(vertices []int, components [][]int) bool {
	for _, c := range components {
		all := true
		for _, v := range vertices {
			if !slices.Contains(c, v) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
