package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/cycles"
)

// PrintMatrix writes the matrix as space-separated rows
func PrintMatrix(w io.Writer, m *adjacency.Matrix) {
	bold := color.New(color.Bold)

	bold.Fprintln(w, "Adjacency Matrix:")
	for _, row := range m.Rows() {
		for j, cell := range row {
			if j > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
}

// PrintDetection writes one algorithm's verdict with the cycle joined by arrows
func PrintDetection(w io.Writer, d analysis.Detection) {
	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Fprintf(w, "[%s] ", d.Algorithm)
	if !d.Result.Cyclic {
		green.Fprintln(w, "Graph is ACYCLIC!")
		return
	}

	red.Fprintln(w, "Graph is CYCLIC!")
	fmt.Fprint(w, "Cycle found: ")
	cyan.Fprintln(w, cycles.FormatCycle(d.Result.Cycle))
}

// PrintReport writes a full text report: header, matrix, verdicts and components
func PrintReport(w io.Writer, r analysis.Report) {
	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)

	if r.Name != "" {
		bold.Fprintf(w, "\n%s\n", r.Name)
	}
	fmt.Fprintf(w, "Vertices: %d, edges: %d\n", r.Vertices, r.Edges)

	if r.Matrix != nil {
		PrintMatrix(w, r.Matrix)
	}

	for _, d := range r.Detections {
		PrintDetection(w, d)
	}

	if r.Components != nil {
		if len(r.Components) == 0 {
			fmt.Fprintln(w, "Cyclic components: none")
			return
		}
		yellow.Fprintf(w, "Cyclic components: %d\n", len(r.Components))
		for _, c := range r.Components {
			fmt.Fprintf(w, "  %v\n", c)
		}
	}
}

// WriteJSON writes reports as an indented JSON array
func WriteJSON(w io.Writer, reports []analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}
