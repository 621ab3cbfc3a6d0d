package cycles

import (
	"errors"
	"slices"
	"testing"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
)

func TestKahn_LowestResidualVertexDownstreamOfCycle(t *testing.T) {
	// 1 <-> 2 feeds 0, so 0 keeps in-degree but reaches no cycle
	m := adjacency.MustNew([][]int{
		{0, 0, 0},
		{0, 0, 1},
		{1, 1, 0},
	})

	got, err := NewKahn(m).DetectCycle()
	if err != nil {
		t.Fatalf("DetectCycle() error = %v", err)
	}

	if !slices.Equal(got.Cycle, []int{1, 2, 1}) {
		t.Errorf("Expected cycle [1 2 1], got %v", got.Cycle)
	}
}

func TestKahn_CrossEdgeIsNotACycle(t *testing.T) {
	// 0 -> 1 -> 3 and 0 -> 2 -> 3 form a diamond below the cycle 4 <-> 5.
	// The second visit to 3 is a cross edge and must not be reported.
	m := adjacency.MustNew([][]int{
		{0, 1, 1, 0, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 1, 0},
	})

	got, err := NewKahn(m).DetectCycle()
	if err != nil {
		t.Fatalf("DetectCycle() error = %v", err)
	}

	if !slices.Equal(got.Cycle, []int{4, 5, 4}) {
		t.Errorf("Expected cycle [4 5 4], got %v", got.Cycle)
	}
}

func TestKahn_TopologicalOrder(t *testing.T) {
	m := adjacency.MustNew([][]int{
		{0, 1, 1, 0},
		{0, 0, 0, 1},
		{0, 0, 0, 1},
		{0, 0, 0, 0},
	})

	order, err := NewKahn(m).TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder() error = %v", err)
	}

	if !slices.Equal(order, []int{0, 1, 2, 3}) {
		t.Errorf("Expected order [0 1 2 3], got %v", order)
	}
}

func TestKahn_TopologicalOrderOnCycle(t *testing.T) {
	m := adjacency.MustNew([][]int{
		{0, 1},
		{1, 0},
	})

	order, err := NewKahn(m).TopologicalOrder()
	if order != nil {
		t.Errorf("Expected no order, got %v", order)
	}

	if !errors.Is(err, ErrCyclic) {
		t.Fatalf("Expected ErrCyclic, got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Expected *CycleError, got %T", err)
	}
	if !slices.Equal(cycleErr.Cycle, []int{0, 1, 0}) {
		t.Errorf("Expected cycle [0 1 0], got %v", cycleErr.Cycle)
	}
}

func TestKahn_ReconstructWithoutCycleIsInconsistent(t *testing.T) {
	// Hand the reconstruction a residual marking that holds no cycle
	k := NewKahn(adjacency.MustNew([][]int{
		{0, 1},
		{0, 0},
	}))

	_, err := k.reconstruct([][]int{{1}, {}}, []int{1, 1})
	if !errors.Is(err, ErrInternalInconsistency) {
		t.Errorf("Expected ErrInternalInconsistency, got %v", err)
	}
}
