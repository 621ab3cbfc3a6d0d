package cycles

import (
	"errors"
	"fmt"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
)

var (
	// ErrInvalidInput is returned when the matrix is not square or has cells outside {0,1}
	ErrInvalidInput = adjacency.ErrInvalidInput

	// ErrInternalInconsistency signals a detector logic fault, never a data problem
	ErrInternalInconsistency = errors.New("internal inconsistency in cycle detection")

	// ErrUnknownAlgorithm is returned for an algorithm name other than kahn or dfs
	ErrUnknownAlgorithm = errors.New("unknown cycle detection algorithm")

	// ErrInvalidCycle is returned by Verify for a sequence that is not a closed walk of the graph
	ErrInvalidCycle = errors.New("not a closed walk of the graph")

	// ErrCyclic is matched by *CycleError
	ErrCyclic = errors.New("graph contains a cycle")
)

// CycleError is returned when an operation needs an acyclic graph but got a cyclic one
type CycleError struct {
	Cycle []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCyclic, FormatCycle(e.Cycle))
}

// Is lets errors.Is(err, ErrCyclic) match
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclic
}
