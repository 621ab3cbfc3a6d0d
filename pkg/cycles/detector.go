package cycles

import (
	"fmt"
	"strings"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
)

// Algorithm names a detection strategy
type Algorithm string

const (
	AlgorithmKahn Algorithm = "kahn"
	AlgorithmDFS  Algorithm = "dfs"
)

// Algorithms lists every supported algorithm in a stable order
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmKahn, AlgorithmDFS}
}

// ParseAlgorithm resolves a case-insensitive algorithm name
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case AlgorithmKahn:
		return AlgorithmKahn, nil
	case AlgorithmDFS:
		return AlgorithmDFS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Detector finds one cycle in the graph it was built for.
// Separate detectors share no state; a single detector is not safe for concurrent calls.
type Detector interface {
	// Algorithm returns which strategy this detector uses
	Algorithm() Algorithm

	// DetectCycle reports whether the graph is cyclic and, if so, one closed walk
	DetectCycle() (Result, error)
}

// New creates a detector for the given algorithm over a copy of m
func New(algorithm Algorithm, m *adjacency.Matrix) (Detector, error) {
	switch algorithm {
	case AlgorithmKahn:
		return NewKahn(m), nil
	case AlgorithmDFS:
		return NewDFS(m), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// Detect validates rows, then runs one detection with the named algorithm
func Detect(rows [][]int, algorithm Algorithm) (Result, error) {
	m, err := adjacency.New(rows)
	if err != nil {
		return Result{}, err
	}

	d, err := New(algorithm, m)
	if err != nil {
		return Result{}, err
	}

	return d.DetectCycle()
}

// checked verifies a detector's own answer before it reaches the caller
func checked(m *adjacency.Matrix, algorithm Algorithm, r Result) (Result, error) {
	if !r.Cyclic {
		return r, nil
	}
	if err := Verify(m, r.Cycle); err != nil {
		return Result{}, fmt.Errorf("%w: %s produced an invalid cycle: %v", ErrInternalInconsistency, algorithm, err)
	}
	return r, nil
}
