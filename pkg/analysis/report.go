package analysis

import (
	"fmt"
	"time"

	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/cycles"
	"github.com/ritzau/cycle-detector/pkg/logging"
)

// Detection is one algorithm's answer for one graph
type Detection struct {
	Algorithm cycles.Algorithm `json:"algorithm"`
	Result    cycles.Result    `json:"result"`
}

// Report is everything computed for a single graph
type Report struct {
	Name       string            `json:"name,omitempty"`
	Vertices   int               `json:"vertices"`
	Edges      int               `json:"edges"`
	Matrix     *adjacency.Matrix `json:"matrix,omitempty"`
	Detections []Detection       `json:"detections"`
	Components [][]int           `json:"components,omitempty"` // nil unless requested
}

// Options configures what Analyze computes
type Options struct {
	Algorithms    []cycles.Algorithm
	Components    bool // also list cyclic strongly connected components
	IncludeMatrix bool // attach the matrix to the report
}

// Cyclic reports whether any detector found a cycle
func (r Report) Cyclic() bool {
	for _, d := range r.Detections {
		if d.Result.Cyclic {
			return true
		}
	}
	return false
}

// Analyze runs every configured detector over m. Each detector gets its own instance.
func Analyze(name string, m *adjacency.Matrix, opts Options) (Report, error) {
	report := Report{
		Name:       name,
		Vertices:   m.Size(),
		Edges:      m.EdgeCount(),
		Detections: make([]Detection, 0, len(opts.Algorithms)),
	}
	if opts.IncludeMatrix {
		report.Matrix = m
	}

	for _, alg := range opts.Algorithms {
		detector, err := cycles.New(alg, m)
		if err != nil {
			return Report{}, err
		}

		start := time.Now()
		result, err := detector.DetectCycle()
		if err != nil {
			return Report{}, fmt.Errorf("%s detection on %q: %w", alg, name, err)
		}

		logging.Debug("detection finished",
			"graph", name,
			"algorithm", string(alg),
			"cyclic", result.Cyclic,
			"cycle", result.Cycle,
			"durationMs", time.Since(start).Milliseconds(),
		)

		report.Detections = append(report.Detections, Detection{Algorithm: alg, Result: result})
	}

	if opts.Components {
		report.Components = cycles.StronglyConnected(m)
	}

	return report, nil
}
