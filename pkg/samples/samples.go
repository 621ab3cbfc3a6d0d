// Package samples holds the fixed graphs used to demonstrate cycle detection.
package samples

import "github.com/ritzau/cycle-detector/pkg/adjacency"

// Sample is a named demonstration graph
type Sample struct {
	Name   string
	Matrix *adjacency.Matrix
}

// All returns the demonstration graphs in presentation order
func All() []Sample {
	return []Sample{
		{
			// 0 -> 1 -> 2 -> 3 -> 0
			Name: "four-cycle",
			Matrix: adjacency.MustNew([][]int{
				{0, 1, 0, 0},
				{0, 0, 1, 0},
				{0, 0, 0, 1},
				{1, 0, 0, 0},
			}),
		},
		{
			// Two paths into a shared sink
			Name: "diamond",
			Matrix: adjacency.MustNew([][]int{
				{0, 1, 1, 0},
				{0, 0, 0, 1},
				{0, 0, 0, 1},
				{0, 0, 0, 0},
			}),
		},
		{
			Name: "self-loop",
			Matrix: adjacency.MustNew([][]int{
				{1, 0, 0},
				{0, 0, 1},
				{0, 0, 0},
			}),
		},
		{
			Name:   "empty",
			Matrix: adjacency.MustNew([][]int{}),
		},
	}
}

// Find returns the sample with the given name
func Find(name string) (Sample, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}
