package cycles

import (
	"fmt"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
)

// Verify checks that cycle is a closed walk of m: at least two entries, the last equal
// to the first, and every consecutive pair an edge. A self-loop on v is [v, v].
func Verify(m *adjacency.Matrix, cycle []int) error {
	if len(cycle) < 2 {
		return fmt.Errorf("%w: %v is too short", ErrInvalidCycle, cycle)
	}

	if cycle[0] != cycle[len(cycle)-1] {
		return fmt.Errorf("%w: %v does not return to %d", ErrInvalidCycle, cycle, cycle[0])
	}

	for i := 0; i+1 < len(cycle); i++ {
		if !m.HasEdge(cycle[i], cycle[i+1]) {
			return fmt.Errorf("%w: missing edge %d -> %d", ErrInvalidCycle, cycle[i], cycle[i+1])
		}
	}

	return nil
}
