package cycles

import (
	"strconv"
	"strings"
)

// Result is the outcome of a single detection run
type Result struct {
	Cyclic bool  `json:"cyclic"`
	Cycle  []int `json:"cycle"` // closed walk [v0, ..., vk, v0]; empty when acyclic
}

// Acyclic returns the result for a graph without cycles
func Acyclic() Result {
	return Result{Cycle: []int{}}
}

// Cyclic returns the result for a graph with the given closed walk
func Cyclic(cycle []int) Result {
	return Result{Cyclic: true, Cycle: cycle}
}

// Vertices returns the distinct vertices of the cycle, in walk order
func (r Result) Vertices() []int {
	if len(r.Cycle) == 0 {
		return nil
	}
	// The closing vertex repeats the first one
	return r.Cycle[:len(r.Cycle)-1]
}

// FormatCycle joins a cycle with arrows, e.g. "0 -> 1 -> 0"
func FormatCycle(cycle []int) string {
	parts := make([]string, len(cycle))
	for i, v := range cycle {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " -> ")
}

// String implements fmt.Stringer
func (r Result) String() string {
	if !r.Cyclic {
		return "acyclic"
	}
	return "cyclic: " + FormatCycle(r.Cycle)
}
